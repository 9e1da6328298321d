package team

import (
	"math"
	"testing"

	"github.com/arenalab/arena-advisor/internal/knowledge"
	"github.com/arenalab/arena-advisor/internal/roster"
)

func newAnalyzer(chars ...roster.Character) *Analyzer {
	return NewAnalyzer(knowledge.Build(chars))
}

func burstChar(id, name, value string) roster.Character {
	return roster.Character{
		ID:   roster.ID(id),
		Name: name,
		Skills: []roster.Skill{
			{Name: "Strike", Description: "Deals " + value + " damage to one enemy.", Energy: []string{"red"}},
		},
	}
}

func TestAnalyzeTeamEmpty(t *testing.T) {
	a := newAnalyzer()
	analysis := a.AnalyzeTeam(nil)

	if analysis.SynergyScore != 0 {
		t.Errorf("SynergyScore = %d, want 0", analysis.SynergyScore)
	}
	if len(analysis.Strengths) != 0 || len(analysis.Weaknesses) != 0 {
		t.Errorf("expected empty narrative lists, got strengths=%v weaknesses=%v",
			analysis.Strengths, analysis.Weaknesses)
	}
	if analysis.Tempo.EstimatedKillTurns != nil {
		t.Error("expected nil EstimatedKillTurns for empty team")
	}
}

func TestAnalyzeTeamScoreClamp(t *testing.T) {
	members := []roster.Character{
		{
			ID: "1", Name: "Loaded",
			Skills: []roster.Skill{
				{Description: "Deals 45 piercing damage to one enemy.", Energy: []string{"red"}},
				{Description: "Stuns the target for 1 turn.", Energy: []string{"green"}},
				{Description: "Removes all harmful effects from one ally and heals one ally for 25 health.", Energy: []string{"white"}},
				{Description: "The user gains 2 random energy.", Energy: []string{"none"}},
			},
		},
		{
			ID: "2", Name: "Loaded Two",
			Skills: []roster.Skill{
				{Description: "Deals 20 affliction damage to all enemies for 3 turns.", Energy: []string{"blue"}},
				{Description: "Makes the user invulnerable for 1 turn.", Energy: []string{"none"}},
				{Description: "Deals 50 damage to one enemy.", Energy: []string{"red", "black"}},
			},
		},
	}

	a := newAnalyzer(members...)
	analysis := a.AnalyzeTeam(members)

	if analysis.SynergyScore < 0 || analysis.SynergyScore > 100 {
		t.Errorf("SynergyScore = %d, want within [0,100]", analysis.SynergyScore)
	}
	if analysis.SynergyScoreRaw <= 0 {
		t.Errorf("SynergyScoreRaw = %f, want positive for a loaded team", analysis.SynergyScoreRaw)
	}
}

func TestTempoKillTurns(t *testing.T) {
	// Best-burst skills sum to exactly 100: round(300/(100*0.7)) = 4.
	members := []roster.Character{
		burstChar("1", "Sixty", "60"),
		burstChar("2", "Forty", "40"),
	}

	a := newAnalyzer(members...)
	analysis := a.AnalyzeTeam(members)

	if analysis.Tempo.BurstDamage != 100 {
		t.Fatalf("BurstDamage = %d, want 100", analysis.Tempo.BurstDamage)
	}
	if analysis.Tempo.EstimatedKillTurns == nil {
		t.Fatal("EstimatedKillTurns is nil")
	}
	if *analysis.Tempo.EstimatedKillTurns != 4 {
		t.Errorf("EstimatedKillTurns = %d, want 4", *analysis.Tempo.EstimatedKillTurns)
	}
	if analysis.Tempo.CostToKill == nil || *analysis.Tempo.CostToKill != 8 {
		t.Errorf("CostToKill = %v, want 8 (4 turns x 2 energy)", analysis.Tempo.CostToKill)
	}
}

func TestTempoZeroDamage(t *testing.T) {
	members := []roster.Character{
		{ID: "1", Name: "Pacifist", Skills: []roster.Skill{
			{Description: "Heals one ally for 25 health.", Energy: []string{"white"}},
		}},
	}

	a := newAnalyzer(members...)
	analysis := a.AnalyzeTeam(members)

	if analysis.Tempo.EstimatedKillTurns != nil {
		t.Error("expected nil EstimatedKillTurns with zero burst")
	}
	if analysis.Tempo.CostToKill != nil {
		t.Error("expected nil CostToKill with zero burst")
	}
}

func TestSkillDamageSummation(t *testing.T) {
	tests := []struct {
		name  string
		skill roster.Skill
		want  float64
	}{
		{
			name:  "sums every mention",
			skill: roster.Skill{Description: "Deals 20 damage to one enemy and deals 15 damage to another."},
			want:  35,
		},
		{
			name:  "aoe multiplier",
			skill: roster.Skill{Description: "Deals 20 damage to all enemies."},
			want:  50,
		},
		{
			name: "structured data preferred",
			skill: roster.Skill{
				Description: "Deals 20 damage.",
				Effects:     &roster.SkillEffects{Damage: &roster.DamageEffect{Base: 33}},
			},
			want: 33,
		},
		{
			name:  "no damage",
			skill: roster.Skill{Description: "Heals one ally for 25 health."},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := skillDamage(tt.skill); got != tt.want {
				t.Errorf("skillDamage() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestEnergyConcentrationPenalty(t *testing.T) {
	// 5 of 6 colored tokens are red: ratio 0.833, penalty (0.833-0.5)*60 = 20.
	members := []roster.Character{
		{
			ID: "1", Name: "Mono",
			Skills: []roster.Skill{
				{Description: "Deals 30 damage.", Energy: []string{"red", "red"}},
				{Description: "Deals 20 damage.", Energy: []string{"red", "red"}},
				{Description: "Deals 10 damage.", Energy: []string{"red", "blue"}},
			},
		},
	}

	a := newAnalyzer(members...)
	analysis := a.AnalyzeTeam(members)

	if math.Abs(analysis.Breakdown.EnergyPenalty-20) > 0.5 {
		t.Errorf("EnergyPenalty = %f, want ~20", analysis.Breakdown.EnergyPenalty)
	}
	if !hasPrefixIn(analysis.Weaknesses, "Concentrated chakra") {
		t.Errorf("Weaknesses = %v, want concentrated chakra colors entry", analysis.Weaknesses)
	}
}

func TestCoverageMonotonicity(t *testing.T) {
	base := []roster.Character{burstChar("1", "Plain", "30")}
	stunner := roster.Character{
		ID: "2", Name: "Stunner",
		Skills: []roster.Skill{{Description: "Stuns the target for 1 turn.", Energy: []string{"green"}}},
	}

	a := newAnalyzer(base[0], stunner)

	before := a.AnalyzeTeam(base)
	after := a.AnalyzeTeam(append(base, stunner))

	if !containsStr(before.MissingCapabilities, "stun") {
		t.Fatalf("MissingCapabilities = %v, want stun before", before.MissingCapabilities)
	}
	if containsStr(after.MissingCapabilities, "stun") {
		t.Errorf("MissingCapabilities = %v, stun should be covered after", after.MissingCapabilities)
	}
	if diff := after.Breakdown.Coverage - before.Breakdown.Coverage; diff != 5 {
		t.Errorf("coverage increased by %f, want exactly 5", diff)
	}
}

func TestAnalyzeCharacterZeroed(t *testing.T) {
	a := newAnalyzer()
	result := a.AnalyzeCharacter(roster.Character{ID: "99", Name: "Empty"})

	if result.Mechanics == nil {
		t.Fatal("Mechanics is nil, want zeroed map")
	}
	if result.Mechanics["stun"] != 0 {
		t.Errorf("stun = %v, want 0", result.Mechanics["stun"])
	}
	if result.Knowledge != nil {
		t.Error("Knowledge should be nil for an id outside the roster")
	}
}

func TestCalculateSynergy(t *testing.T) {
	c1 := burstChar("1", "A", "45")
	c2 := burstChar("2", "B", "45")
	a := newAnalyzer(c1, c2)

	score := a.CalculateSynergy([]roster.Character{c1}, c2)
	if score < 0 || score > 100 {
		t.Errorf("CalculateSynergy = %d, want within [0,100]", score)
	}

	want := a.AnalyzeTeam([]roster.Character{c1, c2}).SynergyScore
	if score != want {
		t.Errorf("CalculateSynergy = %d, want %d (same as AnalyzeTeam)", score, want)
	}
}

func hasPrefixIn(list []string, prefix string) bool {
	for _, s := range list {
		if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

func containsStr(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
