package knowledge

import (
	"testing"

	"github.com/arenalab/arena-advisor/internal/roster"
)

func afflictionStaller() roster.Character {
	return roster.Character{
		ID:   "10",
		Name: "Poison Turtle",
		Skills: []roster.Skill{
			{Name: "Venom", Description: "Deals 10 affliction damage to one enemy for 3 turns.", Energy: []string{"green"}},
			{Name: "Shell", Description: "The user gains 25 points of damage reduction for 2 turns.", Energy: []string{"none"}},
			{Name: "Mend", Description: "Heals one ally for 20 health.", Energy: []string{"white"}},
		},
	}
}

func TestBuildEntryLegacyBuckets(t *testing.T) {
	e := BuildEntry(afflictionStaller())

	if e.Mechanics["affliction"] != 1 {
		t.Errorf("affliction = %v, want 1", e.Mechanics["affliction"])
	}
	// stacking = dot + affliction
	if e.Mechanics["stacking"] != 2 {
		t.Errorf("stacking = %v, want 2", e.Mechanics["stacking"])
	}
	if e.Mechanics["defense"] != 1 {
		t.Errorf("defense = %v, want 1", e.Mechanics["defense"])
	}
	if e.Mechanics["sustain"] != 1 {
		t.Errorf("sustain = %v, want 1", e.Mechanics["sustain"])
	}
	// Legacy-only buckets exist and default to zero.
	if v, ok := e.Mechanics["statusShield"]; !ok || v != 0 {
		t.Errorf("statusShield = %v (present=%v), want 0 present", v, ok)
	}
}

func TestBuildEntryHookSummary(t *testing.T) {
	e := BuildEntry(afflictionStaller())

	if !contains(e.Hooks.Setups, "dot") || !contains(e.Hooks.Setups, "affliction") {
		t.Errorf("Setups = %v, want dot and affliction", e.Hooks.Setups)
	}
	if !contains(e.Hooks.Sustain, "sustain") {
		t.Errorf("Sustain = %v, want sustain", e.Hooks.Sustain)
	}
	if len(e.Hooks.EnergySupport) != 0 {
		t.Errorf("EnergySupport = %v, want empty", e.Hooks.EnergySupport)
	}
}

func TestBuildEntryCombinedTags(t *testing.T) {
	e := BuildEntry(afflictionStaller())

	if !contains(e.CombinedTags, "affliction") || !contains(e.CombinedTags, "shield") || !contains(e.CombinedTags, "heal") {
		t.Errorf("CombinedTags = %v, want affliction, shield, heal", e.CombinedTags)
	}
	seen := map[string]int{}
	for _, tag := range e.CombinedTags {
		seen[tag]++
		if seen[tag] > 1 {
			t.Errorf("CombinedTags contains duplicate %q", tag)
		}
	}
}

func TestBuildEntryWithoutSkills(t *testing.T) {
	e := BuildEntry(roster.Character{ID: "11", Name: "Blank"})

	if e.Profile != nil {
		t.Error("expected nil profile for character without skills")
	}
	if e.Mechanics == nil {
		t.Fatal("expected zeroed mechanics map, got nil")
	}
	if e.Mechanics["stun"] != 0 {
		t.Errorf("stun = %v, want 0", e.Mechanics["stun"])
	}
	if e.Roles.DPS != 0 || e.Roles.Tank != 0 {
		t.Errorf("Roles = %+v, want zeroed", e.Roles)
	}
	if e.CombinedTags == nil || e.Hooks.Setups == nil {
		t.Error("expected empty (non-nil) tag and hook slices")
	}
}

func TestBuildEntryCuratedOverride(t *testing.T) {
	c := afflictionStaller()
	c.Curated = &roster.CuratedMechanics{
		Skills: []roster.CuratedSkill{
			{
				Classes:   []string{"Mental", "StatusShield"},
				Synergies: []roster.SynergyNote{{Type: "targetHas", Condition: "Stun"}},
			},
			{Applies: []string{"Mark"}},
		},
	}

	e := BuildEntry(c)

	if !e.Curated {
		t.Fatal("expected Curated flag")
	}
	// Mental asserts a stun the text never detected.
	if e.Mechanics["stun"] != 1 {
		t.Errorf("stun = %v, want 1 from curated data", e.Mechanics["stun"])
	}
	if e.Mechanics["statusShield"] != 1 {
		t.Errorf("statusShield = %v, want 1", e.Mechanics["statusShield"])
	}
	// Keys curated data is silent about keep their derived values.
	if e.Mechanics["affliction"] != 1 {
		t.Errorf("affliction = %v, want 1 preserved", e.Mechanics["affliction"])
	}

	if e.Dependencies == nil {
		t.Fatal("expected dependencies for curated character")
	}
	if !e.Dependencies.Needs["stun"] {
		t.Errorf("Needs = %v, want stun", e.Dependencies.Needs)
	}
	if !e.Dependencies.Creates["mark"] {
		t.Errorf("Creates = %v, want mark", e.Dependencies.Creates)
	}
}

func TestBuildEntryStructuredEffects(t *testing.T) {
	c := roster.Character{
		ID:   "12",
		Name: "Structured",
		Skills: []roster.Skill{
			{
				Name:        "Pierce",
				Description: "Deals 35 piercing damage to one enemy.",
				Effects: &roster.SkillEffects{
					Damage: &roster.DamageEffect{Base: 35, Type: "piercing"},
					Flags:  roster.EffectFlags{IsBurst: true},
					Cost:   &roster.CostDetail{Total: 3},
				},
			},
			{
				Name: "Jolt",
				Effects: &roster.SkillEffects{
					Effects: map[string]roster.EffectDetail{
						"stun": {Duration: 1},
					},
				},
			},
		},
	}

	e := BuildEntry(c)

	if e.Mechanics["piercing"] != 1 || e.Mechanics["burst"] != 1 {
		t.Errorf("mechanics = %v, want piercing=1 burst=1", e.Mechanics)
	}
	if e.Mechanics["stun"] != 1 {
		t.Errorf("stun = %v, want 1 from structured effect", e.Mechanics["stun"])
	}
	if !contains(e.SkillProfiles[0].Tags, "highCost") {
		t.Errorf("tags = %v, want highCost at total cost 3", e.SkillProfiles[0].Tags)
	}
	if e.SkillProfiles[0].Damage != 35 {
		t.Errorf("Damage = %d, want 35", e.SkillProfiles[0].Damage)
	}
	if !contains(e.Hooks.Setups, "stun") {
		t.Errorf("Setups = %v, want stun", e.Hooks.Setups)
	}
}

func TestBaseRebuild(t *testing.T) {
	b := Build([]roster.Character{afflictionStaller()})

	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", b.Len())
	}
	if b.Get("10") == nil {
		t.Fatal("expected entry for id 10")
	}
	if b.Get("missing") != nil {
		t.Error("expected nil for unknown id")
	}

	b.Rebuild([]roster.Character{{ID: "20", Name: "Other", Skills: []roster.Skill{{Description: "Deals 30 damage."}}}})
	if b.Get("10") != nil {
		t.Error("expected old entry to be dropped after rebuild")
	}
	if b.Get("20") == nil {
		t.Error("expected new entry after rebuild")
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
