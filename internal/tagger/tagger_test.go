package tagger

import (
	"testing"

	"github.com/arenalab/arena-advisor/internal/roster"
)

func TestDetectDamageType(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want DamageType
	}{
		{"affliction", "Deals 15 affliction damage to one enemy for 3 turns.", DamageAffliction},
		{"piercing", "Deals 25 piercing damage to one enemy.", DamagePiercing},
		{"health steal", "This skill will steal 20 health from one enemy.", DamageHealthSteal},
		{"normal", "Deals 30 damage to one enemy.", DamageNormal},
		{"no damage", "Makes the user invulnerable for 1 turn.", DamageNone},
		{"empty", "", DamageNone},
		// Priority is fixed: affliction beats piercing when both appear.
		{"affliction over piercing", "Deals 10 affliction damage and ignores piercing defenses.", DamageAffliction},
		{"piercing over normal", "Deals 20 piercing damage and 10 damage to another enemy.", DamagePiercing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDamageType(tt.desc); got != tt.want {
				t.Errorf("DetectDamageType(%q) = %q, want %q", tt.desc, got, tt.want)
			}
		})
	}
}

func TestExtractDamageValue(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want int
	}{
		{"plain", "Deals 30 damage to one enemy.", 30},
		{"piercing qualifier", "Deals 45 piercing damage.", 45},
		{"affliction qualifier", "Deals 5 affliction damage for 3 turns.", 5},
		{"first match only", "Deals 20 damage, then 35 damage next turn.", 20},
		{"no damage", "Gains 2 random energy.", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractDamageValue(tt.desc); got != tt.want {
				t.Errorf("ExtractDamageValue(%q) = %d, want %d", tt.desc, got, tt.want)
			}
		})
	}
}

func TestDetectTarget(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want Target
	}{
		{"all enemies", "Deals 15 damage to all enemies.", TargetAllEnemies},
		{"all characters", "All characters are stunned for 1 turn.", TargetAllEnemies},
		{"all allies", "All allies gain 25% damage reduction.", TargetAllAllies},
		{"one ally", "Heals one ally for 25 health.", TargetAlly},
		{"self", "The user becomes invulnerable for 1 turn.", TargetSelf},
		{"default enemy", "Deals 30 damage.", TargetEnemy},
		// "all enemies" outranks the "user" mention.
		{"priority", "The user deals 10 damage to all enemies.", TargetAllEnemies},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectTarget(tt.desc); got != tt.want {
				t.Errorf("DetectTarget(%q) = %q, want %q", tt.desc, got, tt.want)
			}
		})
	}
}

func TestExtractBurst(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want bool
	}{
		{"big single target", "Deals 45 damage to one enemy.", true},
		{"below threshold", "Deals 35 damage to one enemy.", false},
		{"dot disqualifies", "Deals 45 damage to one enemy for 3 turns.", false},
		{"aoe disqualifies", "Deals 45 damage to all enemies.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := Extract(roster.Skill{Description: tt.desc})
			if tags.IsBurst != tt.want {
				t.Errorf("IsBurst = %v, want %v", tags.IsBurst, tt.want)
			}
		})
	}
}

func TestExtractDefenseAndControl(t *testing.T) {
	tags := Extract(roster.Skill{
		Description: "Grants the user 15 points of destructible defense and stuns the target for 1 turn. Removes all harmful effects from one ally.",
	})

	if !tags.Defense.DestructibleDefense {
		t.Error("expected destructible defense")
	}
	if !tags.Defense.Cleanse {
		t.Error("expected cleanse")
	}
	if !tags.Control.HardStun {
		t.Error("expected hard stun")
	}
	if tags.Control.Reflect {
		t.Error("did not expect reflect")
	}
}

func TestExtractEnergyGain(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want int
	}{
		{"captured amount", "The user gains 2 random energy.", 2},
		{"no gain", "Deals 30 damage to one enemy.", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := Extract(roster.Skill{Description: tt.desc})
			if tags.EnergyGain != tt.want {
				t.Errorf("EnergyGain = %d, want %d", tags.EnergyGain, tt.want)
			}
		})
	}
}

func TestExtractHooks(t *testing.T) {
	tags := Extract(roster.Skill{
		Description: "If the target is stunned, this skill deals 20 additional damage and marks the target.",
	})

	if !tags.Hooks.NeedsStunnedTarget {
		t.Error("expected NeedsStunnedTarget")
	}
	if !tags.Hooks.CreatesMark {
		t.Error("expected CreatesMark")
	}
	if tags.Hooks.PunishesSkillUse {
		t.Error("did not expect PunishesSkillUse")
	}
}

func TestExtractEnergyColors(t *testing.T) {
	tags := Extract(roster.Skill{
		Description: "Deals 20 damage.",
		Energy:      []string{"red", "black", "none"},
	})

	if !tags.UsesRandom {
		t.Error("expected UsesRandom for black energy")
	}
	if len(tags.EnergyColors) != 2 || tags.EnergyColors[0] != "red" || tags.EnergyColors[1] != "black" {
		t.Errorf("EnergyColors = %v, want [red black]", tags.EnergyColors)
	}
}

func TestExtractClasses(t *testing.T) {
	tags := Extract(roster.Skill{
		Description: "Deals 20 damage.",
		Classes:     "Physical,Instant,Melee",
	})

	if tags.MainClass != "physical" {
		t.Errorf("MainClass = %q, want physical", tags.MainClass)
	}
	if tags.Persistence != "instant" {
		t.Errorf("Persistence = %q, want instant", tags.Persistence)
	}
}

func TestExtractTotalOnEmptySkill(t *testing.T) {
	tags := Extract(roster.Skill{})

	if tags.DamageType != DamageNone || tags.DamageValue != 0 {
		t.Error("empty skill should produce zero damage tags")
	}
	if tags.Target != TargetEnemy {
		t.Errorf("Target = %q, want default enemy", tags.Target)
	}
}
