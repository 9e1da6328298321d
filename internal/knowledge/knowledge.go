// Package knowledge builds and caches the per-character knowledge base.
//
// Each entry wraps the typed capability profile with the legacy-shaped
// views older consumers expect: coarse mechanic buckets (antiTank,
// stacking, sustain...), a hooks summary, flattened per-skill string
// tags, and a deduplicated combinedTags set. All of these are pure
// projections of the same underlying evidence, never independently
// maintained structures.
//
// Evidence is chosen per character by trust: hand-curated mechanics
// data first, structured per-skill effect records second, text-pattern
// tags last.
package knowledge

import (
	"regexp"

	"github.com/arenalab/arena-advisor/internal/profile"
	"github.com/arenalab/arena-advisor/internal/roster"
	"github.com/arenalab/arena-advisor/internal/tagger"
)

// Legacy bucket keys that have no fine-grained counter of their own.
var legacyOnlyKeys = []string{
	"invisible", "immunity", "punisher", "skillSteal", "statusShield",
	"antiAffliction", "triggerOnAction", "triggerOnHit", "achievement", "setup",
}

// HookSummary classifies a character's combo participation.
type HookSummary struct {
	Setups        []string `json:"setups"`
	Payoffs       []string `json:"payoffs"`
	Sustain       []string `json:"sustain"`
	EnergySupport []string `json:"energySupport"`
}

// SkillProfile is the flattened string-tag view of one skill, kept for
// consumers that predate the typed profile.
type SkillProfile struct {
	Name   string   `json:"name"`
	Tags   []string `json:"tags"`
	Damage int      `json:"damage"`
}

// Dependencies are the needs/creates condition sets derived from curated
// mechanics data. Only characters with curated data carry them.
type Dependencies struct {
	Needs   map[string]bool `json:"needs"`
	Creates map[string]bool `json:"creates"`
}

// Entry is the cached knowledge for one character. Lookups for
// unprofilable characters still return fully-populated zeroed structures
// so downstream consumers never crash.
type Entry struct {
	ID   roster.ID `json:"id"`
	Name string    `json:"name"`

	// Profile is nil when the character has no skills.
	Profile *profile.Profile `json:"profile,omitempty"`

	Roles    profile.Roles         `json:"roles"`
	Granular profile.GranularRoles `json:"granularRoles"`

	// Mechanics holds both the fine-grained counters and the legacy
	// buckets in one map, so scoring code can address either vocabulary.
	Mechanics map[string]float64 `json:"mechanics"`

	Hooks         HookSummary    `json:"hooks"`
	SkillProfiles []SkillProfile `json:"skillProfiles"`
	CombinedTags  []string       `json:"combinedTags"`

	// Dependencies is non-nil only for curated characters.
	Dependencies *Dependencies `json:"dependencies,omitempty"`
	Curated      bool          `json:"curated"`
}

// Base is the roster-wide knowledge cache. Build it once at startup and
// treat it as read-only; Rebuild replaces the contents wholesale and must
// not race with readers.
type Base struct {
	entries map[roster.ID]*Entry
	order   []roster.ID
}

// Build constructs the knowledge base for a roster.
func Build(chars []roster.Character) *Base {
	b := &Base{}
	b.Rebuild(chars)
	return b
}

// Rebuild replaces the cache with entries for the given roster.
func (b *Base) Rebuild(chars []roster.Character) {
	entries := make(map[roster.ID]*Entry, len(chars))
	order := make([]roster.ID, 0, len(chars))
	for _, c := range chars {
		entries[c.ID] = BuildEntry(c)
		order = append(order, c.ID)
	}
	b.entries = entries
	b.order = order
}

// Get returns the entry for a character id, or nil if unknown. Callers
// treat an unknown id the same as "no curated data": fall back to text
// heuristics.
func (b *Base) Get(id roster.ID) *Entry {
	return b.entries[id]
}

// Len returns the number of cached entries.
func (b *Base) Len() int {
	return len(b.entries)
}

// IDs returns the cached character ids in roster order.
func (b *Base) IDs() []roster.ID {
	return b.order
}

var structuredCleanseRe = regexp.MustCompile(`(?i)remov(?:es?|ing).{0,30}harmful`)

// BuildEntry computes the knowledge entry for one character. Exported so
// analysis of characters outside the cached roster reuses the same
// derivation.
func BuildEntry(c roster.Character) *Entry {
	e := &Entry{ID: c.ID, Name: c.Name}

	p := profile.Build(c)
	e.Profile = p

	var fine profile.Mechanics
	var hooks profile.Hooks
	if p != nil {
		e.Roles = p.Roles
		e.Granular = p.Granular
		fine = p.Mechanics
		hooks = p.Hooks
	}

	if hasStructuredEffects(c) {
		fine, hooks = structuredMechanics(c, hooks)
		e.SkillProfiles = structuredSkillProfiles(c)
	} else {
		e.SkillProfiles = textSkillProfiles(c)
	}

	e.Mechanics = mechanicsMap(fine)

	if c.Curated != nil {
		e.Curated = true
		applyCurated(e, c.Curated)
	}

	e.Hooks = summarizeHooks(fine, hooks)
	e.CombinedTags = combineTags(e.SkillProfiles)

	return e
}

func hasStructuredEffects(c roster.Character) bool {
	for _, s := range c.Skills {
		if s.Effects != nil {
			return true
		}
	}
	return false
}

// structuredMechanics counts mechanics from per-skill effect records
// instead of text patterns. Needs-type hooks have no structured source,
// so those keep their text-derived values.
func structuredMechanics(c roster.Character, textHooks profile.Hooks) (profile.Mechanics, profile.Hooks) {
	var m profile.Mechanics
	hooks := profile.Hooks{
		NeedsStunnedTarget: textHooks.NeedsStunnedTarget,
		NeedsMarkedTarget:  textHooks.NeedsMarkedTarget,
		PunishesSkillUse:   textHooks.PunishesSkillUse,
	}

	for _, s := range c.Skills {
		fx := s.Effects
		if fx == nil {
			continue
		}

		if fx.Damage != nil && fx.Damage.Base > 0 {
			switch fx.Damage.Type {
			case "piercing":
				m.Piercing++
			case "affliction":
				m.Affliction++
			case "healthSteal":
				m.HealthSteal++
			default:
				m.Normal++
			}
			if fx.Flags.IsBurst {
				m.Burst++
			}
			if fx.Flags.IsDot {
				m.Dot++
			}
			if fx.Flags.IsAoE {
				m.AoE++
			}
			if fx.Damage.Conditional {
				hooks.CreatesMark = true
			}
		}

		if _, ok := fx.Effects["damageReduction"]; ok {
			m.DamageReduction++
		}
		if _, ok := fx.Effects["destructibleDefense"]; ok {
			m.DestructibleDefense++
		}
		if _, ok := fx.Effects["invulnerable"]; ok {
			m.Invulnerable++
		}
		if _, ok := fx.Effects["heal"]; ok {
			m.Heal++
		}
		if structuredCleanseRe.MatchString(s.Description) {
			m.Cleanse++
		}
		if _, ok := fx.Effects["stun"]; ok {
			m.Stun++
			hooks.CreatesStun = true
		}
		if _, ok := fx.Effects["energyRemoval"]; ok {
			m.EnergyRemoval++
		}
		if gain, ok := fx.Effects["energyGain"]; ok {
			amount := gain.Amount
			if amount == 0 {
				amount = 1
			}
			m.EnergyGain += amount
		}
	}

	return m, hooks
}

func structuredSkillProfiles(c roster.Character) []SkillProfile {
	profiles := make([]SkillProfile, 0, len(c.Skills))
	for _, s := range c.Skills {
		fx := s.Effects
		if fx == nil {
			profiles = append(profiles, SkillProfile{Name: s.Name, Tags: []string{}})
			continue
		}

		var tags []string
		damage := 0
		if fx.Damage != nil && fx.Damage.Base > 0 {
			damage = fx.Damage.Base
			switch fx.Damage.Type {
			case "piercing":
				tags = append(tags, "piercing")
			case "affliction":
				tags = append(tags, "affliction")
			case "healthSteal":
				tags = append(tags, "healthSteal", "sustain")
			}
			if fx.Flags.IsBurst {
				tags = append(tags, "finisher")
			}
			if fx.Flags.IsDot {
				tags = append(tags, "dot")
			}
			if fx.Flags.IsAoE {
				tags = append(tags, "aoe")
			}
			if fx.Damage.Conditional {
				tags = append(tags, "setup")
			}
		}
		if _, ok := fx.Effects["damageReduction"]; ok {
			tags = append(tags, "shield")
		}
		if _, ok := fx.Effects["destructibleDefense"]; ok {
			tags = append(tags, "defense")
		}
		if _, ok := fx.Effects["invulnerable"]; ok {
			tags = append(tags, "invulnerable")
		}
		if _, ok := fx.Effects["heal"]; ok {
			tags = append(tags, "heal", "sustain")
		}
		if structuredCleanseRe.MatchString(s.Description) {
			tags = append(tags, "cleanse")
		}
		if _, ok := fx.Effects["stun"]; ok {
			tags = append(tags, "stun")
		}
		if _, ok := fx.Effects["energyRemoval"]; ok {
			tags = append(tags, "energyDeny")
		}
		if _, ok := fx.Effects["energyGain"]; ok {
			tags = append(tags, "energyGain")
		}
		if fx.Flags.IgnoresInvulnerability {
			tags = append(tags, "ignoresInvuln")
		}
		if fx.Flags.CannotBeCountered {
			tags = append(tags, "unCounterable")
		}
		if fx.Cost != nil && fx.Cost.Total >= 3 {
			tags = append(tags, "highCost")
		}

		profiles = append(profiles, SkillProfile{Name: s.Name, Tags: tags, Damage: damage})
	}
	return profiles
}

func textSkillProfiles(c roster.Character) []SkillProfile {
	profiles := make([]SkillProfile, 0, len(c.Skills))
	for _, s := range c.Skills {
		tags := tagger.Extract(s)

		var out []string
		if tags.Target.Offensive() {
			switch tags.DamageType {
			case tagger.DamagePiercing:
				out = append(out, "piercing")
			case tagger.DamageAffliction:
				out = append(out, "affliction")
			case tagger.DamageHealthSteal:
				out = append(out, "healthSteal", "sustain")
			}
			if tags.IsBurst {
				out = append(out, "finisher")
			}
			if tags.HasDot {
				out = append(out, "dot")
			}
			if tags.IsAoE {
				out = append(out, "aoe")
			}
		}
		if tags.Defense.DamageReduction {
			out = append(out, "shield")
		}
		if tags.Defense.DestructibleDefense {
			out = append(out, "defense")
		}
		if tags.Defense.Invulnerable {
			out = append(out, "invulnerable")
		}
		if tags.Defense.Heal {
			out = append(out, "heal", "sustain")
		}
		if tags.Defense.Cleanse {
			out = append(out, "cleanse")
		}
		if tags.Control.HardStun || tags.Control.ClassStun {
			out = append(out, "stun")
		}
		if tags.Control.EnergyRemoval {
			out = append(out, "energyDeny")
		}
		if tags.EnergyGain > 0 {
			out = append(out, "energyGain")
		}
		if tags.Hooks.CreatesMark {
			out = append(out, "setup")
		}
		if len(tags.EnergyColors) >= 3 {
			out = append(out, "highCost")
		}

		profiles = append(profiles, SkillProfile{
			Name:   s.Name,
			Tags:   out,
			Damage: tags.DamageValue,
		})
	}
	return profiles
}

// mechanicsMap flattens the fine-grained counters and overlays the legacy
// buckets older scoring code addresses.
func mechanicsMap(m profile.Mechanics) map[string]float64 {
	mm := map[string]float64{
		"normal":              float64(m.Normal),
		"piercing":            float64(m.Piercing),
		"affliction":          float64(m.Affliction),
		"healthSteal":         float64(m.HealthSteal),
		"burst":               float64(m.Burst),
		"dot":                 float64(m.Dot),
		"aoe":                 float64(m.AoE),
		"damageReduction":     float64(m.DamageReduction),
		"destructibleDefense": float64(m.DestructibleDefense),
		"invulnerable":        float64(m.Invulnerable),
		"heal":                float64(m.Heal),
		"cleanse":             float64(m.Cleanse),
		"stun":                float64(m.Stun),
		"energyRemoval":       float64(m.EnergyRemoval),
		"reflect":             float64(m.Reflect),
		"energyGain":          float64(m.EnergyGain),

		"counter":   float64(m.Counter + m.Reflect),
		"antiTank":  float64(m.Piercing),
		"stacking":  float64(m.Dot + m.Affliction),
		"sustain":   float64(m.Heal + m.HealthSteal),
		"defense":   float64(m.DamageReduction + m.DestructibleDefense),
		"energyGen": float64(m.EnergyGain),
	}
	for _, k := range legacyOnlyKeys {
		mm[k] = 0
	}
	return mm
}

// summarizeHooks derives the setups/payoffs/sustain/energySupport
// classification used for combo counting.
func summarizeHooks(m profile.Mechanics, hooks profile.Hooks) HookSummary {
	h := HookSummary{
		Setups:        []string{},
		Payoffs:       []string{},
		Sustain:       []string{},
		EnergySupport: []string{},
	}

	if hooks.CreatesMark {
		h.Setups = append(h.Setups, "mark")
	}
	if hooks.CreatesStun {
		h.Setups = append(h.Setups, "stun")
	}
	if m.Dot > 0 {
		h.Setups = append(h.Setups, "dot")
	}
	if m.Affliction > 0 {
		h.Setups = append(h.Setups, "affliction")
	}

	if m.Burst > 0 {
		h.Payoffs = append(h.Payoffs, "finisher")
	}
	if m.Piercing > 0 {
		h.Payoffs = append(h.Payoffs, "piercing")
	}
	if hooks.NeedsStunnedTarget || hooks.NeedsMarkedTarget {
		h.Payoffs = append(h.Payoffs, "conditional")
	}

	if m.Heal > 0 || m.HealthSteal > 0 {
		h.Sustain = append(h.Sustain, "sustain")
	}
	if m.Cleanse > 0 {
		h.Sustain = append(h.Sustain, "cleanse")
	}

	if m.EnergyGain > 0 {
		h.EnergySupport = append(h.EnergySupport, "gain")
	}

	return h
}

func combineTags(profiles []SkillProfile) []string {
	seen := make(map[string]struct{})
	var combined []string
	for _, sp := range profiles {
		for _, tag := range sp.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			combined = append(combined, tag)
		}
	}
	if combined == nil {
		combined = []string{}
	}
	return combined
}
