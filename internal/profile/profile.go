// Package profile aggregates a character's per-skill tags into a
// capability profile: role weights, mechanic counts, energy profile,
// synergy hooks, and derived flags.
package profile

import (
	"github.com/arenalab/arena-advisor/internal/roster"
	"github.com/arenalab/arena-advisor/internal/tagger"
)

// Roles is the coarse role-weight vector. After aggregation it is
// normalized so the weights sum to 2, keeping magnitudes comparable
// across characters with different skill counts.
type Roles struct {
	DPS     float64 `json:"dps"`
	Tank    float64 `json:"tank"`
	Support float64 `json:"support"`
	Control float64 `json:"control"`
}

// Granular role names, used for partner-fit complementarity.
const (
	RoleNuker         = "nuker"
	RoleAoESpecialist = "aoe_specialist"
	RoleDotSpecialist = "dot_specialist"
	RoleProtector     = "protector"
	RoleStaller       = "staller"
	RoleDisruptor     = "disruptor"
	RoleEnabler       = "enabler"
)

// GranularRoles is the finer-grained archetype vector. Unlike Roles it is
// not normalized; weights accumulate per qualifying skill.
type GranularRoles struct {
	Nuker         float64 `json:"nuker"`
	AoESpecialist float64 `json:"aoe_specialist"`
	DotSpecialist float64 `json:"dot_specialist"`
	Protector     float64 `json:"protector"`
	Staller       float64 `json:"staller"`
	Disruptor     float64 `json:"disruptor"`
	Enabler       float64 `json:"enabler"`
}

// Dominant returns the highest-weighted nonzero granular role, or ""
// if the character has no granular role weight at all. Ties resolve in
// declaration order.
func (g GranularRoles) Dominant() string {
	best := ""
	bestWeight := 0.0
	for _, entry := range []struct {
		name   string
		weight float64
	}{
		{RoleNuker, g.Nuker},
		{RoleAoESpecialist, g.AoESpecialist},
		{RoleDotSpecialist, g.DotSpecialist},
		{RoleProtector, g.Protector},
		{RoleStaller, g.Staller},
		{RoleDisruptor, g.Disruptor},
		{RoleEnabler, g.Enabler},
	} {
		if entry.weight > bestWeight {
			best = entry.name
			bestWeight = entry.weight
		}
	}
	return best
}

// Offensive reports whether a granular role name is one of the damage
// archetypes.
func Offensive(role string) bool {
	return role == RoleNuker || role == RoleAoESpecialist || role == RoleDotSpecialist
}

// Mechanics counts qualifying skills per mechanic. Damage-type counters
// only count skills with offensive targeting; defense and control
// counters are targeting-independent. EnergyGain is a running amount,
// not a skill count.
type Mechanics struct {
	Affliction  int `json:"affliction"`
	Piercing    int `json:"piercing"`
	Normal      int `json:"normal"`
	HealthSteal int `json:"healthSteal"`
	Burst       int `json:"burst"`
	Dot         int `json:"dot"`
	AoE         int `json:"aoe"`

	DamageReduction     int `json:"damageReduction"`
	DestructibleDefense int `json:"destructibleDefense"`
	Invulnerable        int `json:"invulnerable"`
	Heal                int `json:"heal"`
	Cleanse             int `json:"cleanse"`

	Stun          int `json:"stun"`
	EnergyRemoval int `json:"energyRemoval"`
	Counter       int `json:"counter"`
	Reflect       int `json:"reflect"`

	EnergyGain int `json:"energyGain"`
}

// Hooks are the aggregated synergy hooks; a character has a hook if any
// one skill exhibits it.
type Hooks struct {
	NeedsStunnedTarget bool `json:"needsStunnedTarget"`
	CreatesStun        bool `json:"createsStun"`
	NeedsMarkedTarget  bool `json:"needsMarkedTarget"`
	CreatesMark        bool `json:"createsMark"`
	PunishesSkillUse   bool `json:"punishesSkillUse"`
}

// Energy summarizes a character's energy economy.
type Energy struct {
	AvgCost    float64        `json:"avgCost"`
	Colors     map[string]int `json:"colors"`
	UsesRandom bool           `json:"usesRandom"`
}

// Profile is the full capability profile of one character. It is a pure
// function of the skill list; rebuilding is idempotent.
type Profile struct {
	ID   roster.ID `json:"id"`
	Name string    `json:"name"`

	Roles    Roles         `json:"roles"`
	Granular GranularRoles `json:"granularRoles"`

	Mechanics Mechanics `json:"mechanics"`
	Hooks     Hooks     `json:"hooks"`
	Energy    Energy    `json:"energy"`

	Targeting map[tagger.Target]int `json:"targeting"`

	IsGlassCannon  bool `json:"isGlassCannon"`
	IsEnergyHungry bool `json:"isEnergyHungry"`
}

// Build aggregates a character's skill tags into a profile. Returns nil
// for a character with no skills; every consumer must check this before
// using the profile.
func Build(c roster.Character) *Profile {
	if len(c.Skills) == 0 {
		return nil
	}

	p := &Profile{
		ID:   c.ID,
		Name: c.Name,
		Energy: Energy{
			Colors: map[string]int{"green": 0, "red": 0, "blue": 0, "white": 0, "black": 0},
		},
		Targeting: make(map[tagger.Target]int),
	}

	// Raw role points accumulate one per qualifying skill; flags below
	// read these before normalization squashes them.
	var rawDPS, rawTank, rawSupport, rawControl float64
	totalCost := 0

	for _, skill := range c.Skills {
		tags := tagger.Extract(skill)
		offensive := tags.Target.Offensive()

		if offensive {
			switch tags.DamageType {
			case tagger.DamageAffliction:
				p.Mechanics.Affliction++
			case tagger.DamagePiercing:
				p.Mechanics.Piercing++
			case tagger.DamageNormal:
				p.Mechanics.Normal++
			case tagger.DamageHealthSteal:
				p.Mechanics.HealthSteal++
			}
			if tags.IsBurst {
				p.Mechanics.Burst++
				p.Granular.Nuker += 1.5
			}
			if tags.HasDot {
				p.Mechanics.Dot++
			}
			if tags.IsAoE {
				p.Mechanics.AoE++
				p.Granular.AoESpecialist += 1.2
			}
			if tags.HasDot || tags.DamageType == tagger.DamageAffliction {
				p.Granular.DotSpecialist += 1.2
			}
		}

		if tags.Defense.DamageReduction {
			p.Mechanics.DamageReduction++
		}
		if tags.Defense.DestructibleDefense {
			p.Mechanics.DestructibleDefense++
		}
		if tags.Defense.Invulnerable {
			p.Mechanics.Invulnerable++
		}
		if tags.Defense.Heal {
			p.Mechanics.Heal++
		}
		if tags.Defense.Cleanse {
			p.Mechanics.Cleanse++
		}

		if tags.Control.HardStun || tags.Control.ClassStun {
			p.Mechanics.Stun++
		}
		if tags.Control.EnergyRemoval {
			p.Mechanics.EnergyRemoval++
		}
		if tags.Control.Counter {
			p.Mechanics.Counter++
		}
		if tags.Control.Reflect {
			p.Mechanics.Reflect++
		}

		p.Mechanics.EnergyGain += tags.EnergyGain

		if tags.Defense.Heal || tags.Defense.Cleanse {
			p.Granular.Protector += 1.5
		}
		shielding := tags.Defense.DamageReduction || tags.Defense.DestructibleDefense || tags.Defense.Invulnerable
		if shielding {
			p.Granular.Staller += 1.2
		}
		if tags.Control.HardStun || tags.Control.EnergyRemoval || tags.Control.Counter {
			p.Granular.Disruptor += 1.3
		}
		if tags.EnergyGain > 0 {
			p.Granular.Enabler += 1.5
		}

		p.Hooks.NeedsStunnedTarget = p.Hooks.NeedsStunnedTarget || tags.Hooks.NeedsStunnedTarget
		p.Hooks.CreatesStun = p.Hooks.CreatesStun || tags.Hooks.CreatesStun
		p.Hooks.NeedsMarkedTarget = p.Hooks.NeedsMarkedTarget || tags.Hooks.NeedsMarkedTarget
		p.Hooks.CreatesMark = p.Hooks.CreatesMark || tags.Hooks.CreatesMark
		p.Hooks.PunishesSkillUse = p.Hooks.PunishesSkillUse || tags.Hooks.PunishesSkillUse

		if tags.UsesRandom {
			p.Energy.UsesRandom = true
		}
		for _, color := range tags.EnergyColors {
			p.Energy.Colors[color]++
			totalCost++
		}

		p.Targeting[tags.Target]++

		anyControl := tags.Control != (tagger.ControlTags{})
		if anyControl {
			rawControl++
		}
		if tags.DamageType != tagger.DamageNone || tags.IsBurst {
			rawDPS++
		}
		if shielding {
			rawTank++
		}
		if tags.Defense.Heal || tags.Defense.Cleanse || tags.EnergyGain > 0 {
			rawSupport++
		}
	}

	p.Energy.AvgCost = float64(totalCost) / float64(len(c.Skills))

	// Flags read the raw role totals; after normalization a dps weight
	// of 3 is unreachable.
	p.IsGlassCannon = rawDPS >= 3 && rawTank == 0
	p.IsEnergyHungry = p.Energy.AvgCost >= 2

	p.Roles = normalizeRoles(rawDPS, rawTank, rawSupport, rawControl)

	return p
}

// normalizeRoles scales the raw role totals so the vector sums to 2.
func normalizeRoles(dps, tank, support, control float64) Roles {
	sum := dps + tank + support + control
	if sum == 0 {
		return Roles{}
	}
	scale := 2 / sum
	return Roles{
		DPS:     dps * scale,
		Tank:    tank * scale,
		Support: support * scale,
		Control: control * scale,
	}
}
