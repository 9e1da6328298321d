// Package tagger extracts structured tactical tags from free-text skill
// descriptions. The game manual distinguishes damage types, defensive and
// control mechanics, and cross-character synergy hooks; all of them are
// detected with a fixed battery of case-insensitive patterns.
//
// The tagger is total: unmatched patterns leave their field at the zero
// value, and extraction never fails, even for empty descriptions.
package tagger

import (
	"regexp"
	"strconv"

	"github.com/arenalab/arena-advisor/internal/roster"
)

// DamageType classifies a skill's damage line.
//
// Normal damage is blocked by damage reduction and destructible defense.
// Piercing ignores damage reduction. Affliction ignores both. Health
// steal goes through damage reduction and heals the user.
type DamageType string

const (
	DamageNone        DamageType = ""
	DamageNormal      DamageType = "normal"
	DamagePiercing    DamageType = "piercing"
	DamageAffliction  DamageType = "affliction"
	DamageHealthSteal DamageType = "healthSteal"
)

// Target classifies who a skill affects.
type Target string

const (
	TargetSelf       Target = "self"
	TargetAlly       Target = "ally"
	TargetAllAllies  Target = "allAllies"
	TargetEnemy      Target = "enemy"
	TargetAllEnemies Target = "allEnemies"
)

// Offensive reports whether the target classification is an enemy-facing one.
func (t Target) Offensive() bool {
	return t == TargetEnemy || t == TargetAllEnemies
}

// Burst is single-target damage at or above this value with no
// damage-over-time component.
const burstDamageThreshold = 40

// DefenseTags are the defensive mechanics detected in a description.
type DefenseTags struct {
	DamageReduction     bool
	UnpierceableDR      bool
	DestructibleDefense bool
	Invulnerable        bool
	SelfInvul           bool
	TeamInvul           bool
	Heal                bool
	Cleanse             bool
	Lifelink            bool
	IgnoreHarmful       bool
	IgnoreHelpful       bool
}

// ControlTags are the control and disruption mechanics.
type ControlTags struct {
	HardStun         bool
	ClassStun        bool
	AoEStun          bool
	EnergyRemoval    bool
	EnergySteal      bool
	Counter          bool
	Reflect          bool
	SkillRemoval     bool
	CooldownIncrease bool
	CooldownDecrease bool
}

// HookTags are setup/payoff relationships used for combo detection.
type HookTags struct {
	NeedsStunnedTarget     bool
	NeedsMarkedTarget      bool
	CreatesStun            bool
	CreatesMark            bool
	PunishesSkillUse       bool
	PunishesActionOverTime bool
}

// SkillTags is the full structured view of one skill. Recomputed on
// demand, never cached per skill.
type SkillTags struct {
	DamageType  DamageType
	DamageValue int
	HasDot      bool
	IsBurst     bool
	IsAoE       bool

	Defense DefenseTags
	Control ControlTags
	Hooks   HookTags

	EnergyGain   int
	UsesRandom   bool
	EnergyColors []string

	MainClass   string
	Persistence string

	Target Target
}

var (
	afflictionDamageRe = regexp.MustCompile(`(?i)affliction damage`)
	piercingDamageRe   = regexp.MustCompile(`(?i)piercing damage`)
	healthStealRe      = regexp.MustCompile(`(?i)steal \d+ health|health is stolen`)
	anyDamageRe        = regexp.MustCompile(`(?i)\d+ damage`)
	damageValueRe      = regexp.MustCompile(`(?i)(\d+)\s*(?:affliction|piercing)?\s*damage`)
	dotDurationRe      = regexp.MustCompile(`(?i)for \d+ turns`)
	damageWordRe       = regexp.MustCompile(`(?i)damage`)

	allEnemiesRe = regexp.MustCompile(`(?i)all enemies|all characters`)
	allAlliesRe  = regexp.MustCompile(`(?i)all allies`)
	allyRe       = regexp.MustCompile(`(?i)one ally|target ally|an ally`)
	selfRe       = regexp.MustCompile(`(?i)self|user`)

	damageReductionRe = regexp.MustCompile(`(?i)damage reduction`)
	unpierceableDRRe  = regexp.MustCompile(`(?i)unpierceable damage reduction`)
	destructibleRe    = regexp.MustCompile(`(?i)destructible defense`)
	invulnerableRe    = regexp.MustCompile(`(?i)invulnerable for \d+ turn`)
	selfInvulRe       = regexp.MustCompile(`(?i)this (skill|character) makes .* invulnerable`)
	teamInvulRe       = regexp.MustCompile(`(?i)(one ally|all allies).*invulnerable`)
	healRe            = regexp.MustCompile(`(?i)heals? .* for \d+ health|heal \d+ health|recovers? \d+ health`)
	cleanseRe         = regexp.MustCompile(`(?i)removes? all harmful effects|removes? harmful effects`)
	lifelinkRe        = regexp.MustCompile(`(?i)lifelink`)
	ignoreHarmfulRe   = regexp.MustCompile(`(?i)ignores? (all )?harmful effects`)
	ignoreHelpfulRe   = regexp.MustCompile(`(?i)ignores? (all )?helpful effects`)

	hardStunRe      = regexp.MustCompile(`(?i)stun(s|ned)? the target`)
	classStunRe     = regexp.MustCompile(`(?i)stunned.*(physical|energy|mental|strategic|affliction)`)
	aoeStunRe       = regexp.MustCompile(`(?i)all enemies.*stunned`)
	energyRemovalRe = regexp.MustCompile(`(?i)removes? \d+ .* energy|loses? \d+ .* energy`)
	energyStealRe   = regexp.MustCompile(`(?i)(steal|drain)s? \d+ .* energy`)
	counterRe       = regexp.MustCompile(`(?i)counter|will be countered`)
	reflectRe       = regexp.MustCompile(`(?i)reflect`)
	skillRemovalRe  = regexp.MustCompile(`(?i)removes? .* (skill|effect)`)
	cdIncreaseRe    = regexp.MustCompile(`(?i)cooldowns? .* increased`)
	cdDecreaseRe    = regexp.MustCompile(`(?i)cooldowns? .* decreased`)

	energyGainRe = regexp.MustCompile(`(?i)gains? \d+ random energy|gains? \d+ .* energy`)
	gainAmountRe = regexp.MustCompile(`(?i)gains? (\d+)`)

	needsStunnedRe   = regexp.MustCompile(`(?i)if.*target is stunned|if.*enemy is stunned`)
	needsMarkedRe    = regexp.MustCompile(`(?i)if.*marked|if.*seal is active|affected by`)
	createsStunRe    = regexp.MustCompile(`(?i)stuns? .* for \d+ turn`)
	createsMarkRe    = regexp.MustCompile(`(?i)mark|seal|tag`)
	punishesSkillRe  = regexp.MustCompile(`(?i)if.*uses a new skill`)
	punishesActionRe = regexp.MustCompile(`(?i)each turn.*uses a skill`)
)

// DetectDamageType classifies a description's damage line. The checks are
// mutually exclusive and run in fixed priority order: affliction, then
// piercing, then health steal, then generic damage.
func DetectDamageType(desc string) DamageType {
	switch {
	case afflictionDamageRe.MatchString(desc):
		return DamageAffliction
	case piercingDamageRe.MatchString(desc):
		return DamagePiercing
	case healthStealRe.MatchString(desc):
		return DamageHealthSteal
	case anyDamageRe.MatchString(desc):
		return DamageNormal
	}
	return DamageNone
}

// ExtractDamageValue returns the first damage number mentioned in the
// description. Multiple damage mentions are not summed here; tempo
// estimation does its own summation.
func ExtractDamageValue(desc string) int {
	m := damageValueRe.FindStringSubmatch(desc)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// HasDot reports whether the description has a duration-based damage
// component.
func HasDot(desc string) bool {
	return dotDurationRe.MatchString(desc) && damageWordRe.MatchString(desc)
}

// DetectTarget classifies targeting by keyword priority. Skills with no
// targeting keywords default to single-enemy.
func DetectTarget(desc string) Target {
	switch {
	case allEnemiesRe.MatchString(desc):
		return TargetAllEnemies
	case allAlliesRe.MatchString(desc):
		return TargetAllAllies
	case allyRe.MatchString(desc):
		return TargetAlly
	case selfRe.MatchString(desc):
		return TargetSelf
	}
	return TargetEnemy
}

// Extract runs the full pattern battery over one skill.
func Extract(skill roster.Skill) SkillTags {
	desc := skill.Description

	tags := SkillTags{
		DamageType:  DetectDamageType(desc),
		DamageValue: ExtractDamageValue(desc),
		HasDot:      HasDot(desc),
		Target:      DetectTarget(desc),
	}
	tags.IsAoE = tags.Target == TargetAllEnemies || tags.Target == TargetAllAllies
	tags.IsBurst = tags.DamageValue >= burstDamageThreshold && !tags.HasDot && !allEnemiesRe.MatchString(desc)

	tags.Defense = DefenseTags{
		DamageReduction:     damageReductionRe.MatchString(desc),
		UnpierceableDR:      unpierceableDRRe.MatchString(desc),
		DestructibleDefense: destructibleRe.MatchString(desc),
		Invulnerable:        invulnerableRe.MatchString(desc),
		SelfInvul:           selfInvulRe.MatchString(desc),
		TeamInvul:           teamInvulRe.MatchString(desc),
		Heal:                healRe.MatchString(desc),
		Cleanse:             cleanseRe.MatchString(desc),
		Lifelink:            lifelinkRe.MatchString(desc),
		IgnoreHarmful:       ignoreHarmfulRe.MatchString(desc),
		IgnoreHelpful:       ignoreHelpfulRe.MatchString(desc),
	}

	tags.Control = ControlTags{
		HardStun:         hardStunRe.MatchString(desc),
		ClassStun:        classStunRe.MatchString(desc),
		AoEStun:          aoeStunRe.MatchString(desc),
		EnergyRemoval:    energyRemovalRe.MatchString(desc),
		EnergySteal:      energyStealRe.MatchString(desc),
		Counter:          counterRe.MatchString(desc),
		Reflect:          reflectRe.MatchString(desc),
		SkillRemoval:     skillRemovalRe.MatchString(desc),
		CooldownIncrease: cdIncreaseRe.MatchString(desc),
		CooldownDecrease: cdDecreaseRe.MatchString(desc),
	}

	tags.Hooks = HookTags{
		NeedsStunnedTarget:     needsStunnedRe.MatchString(desc),
		NeedsMarkedTarget:      needsMarkedRe.MatchString(desc),
		CreatesStun:            createsStunRe.MatchString(desc),
		CreatesMark:            createsMarkRe.MatchString(desc),
		PunishesSkillUse:       punishesSkillRe.MatchString(desc),
		PunishesActionOverTime: punishesActionRe.MatchString(desc),
	}

	if energyGainRe.MatchString(desc) {
		tags.EnergyGain = 1
		if m := gainAmountRe.FindStringSubmatch(desc); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				tags.EnergyGain = n
			}
		}
	}

	for _, color := range skill.Energy {
		if color == "black" {
			tags.UsesRandom = true
		}
		if color != "none" {
			tags.EnergyColors = append(tags.EnergyColors, color)
		}
	}

	switch {
	case skill.Classes.Contains("physical"):
		tags.MainClass = "physical"
	case skill.Classes.Contains("energy"):
		tags.MainClass = "energy"
	case skill.Classes.Contains("mental"):
		tags.MainClass = "mental"
	case skill.Classes.Contains("affliction"):
		tags.MainClass = "affliction"
	case skill.Classes.Contains("strategic"):
		tags.MainClass = "strategic"
	case skill.Classes.Contains("achievement"):
		tags.MainClass = "achievement"
	}

	switch {
	case skill.Classes.Contains("instant"):
		tags.Persistence = "instant"
	case skill.Classes.Contains("action"):
		tags.Persistence = "action"
	case skill.Classes.Contains("control"):
		tags.Persistence = "control"
	}

	return tags
}
