package meta

import (
	"testing"

	"github.com/arenalab/arena-advisor/internal/knowledge"
	"github.com/arenalab/arena-advisor/internal/profile"
	"github.com/arenalab/arena-advisor/internal/roster"
	"github.com/arenalab/arena-advisor/internal/team"
)

func stunner(id, name string) roster.Character {
	return roster.Character{ID: roster.ID(id), Name: name, Skills: []roster.Skill{
		{Name: "Lock", Description: "Stuns the target for 1 turn.", Energy: []string{"green"}},
	}}
}

func healer(id, name string) roster.Character {
	return roster.Character{ID: roster.ID(id), Name: name, Skills: []roster.Skill{
		{Name: "Mend", Description: "Heals one ally for 25 health.", Energy: []string{"white"}},
	}}
}

func striker(id, name string) roster.Character {
	return roster.Character{ID: roster.ID(id), Name: name, Skills: []roster.Skill{
		{Name: "Slash", Description: "Deals 30 damage to one enemy.", Energy: []string{"red"}},
	}}
}

func newBuilder(chars ...roster.Character) *Builder {
	return NewBuilder(team.NewAnalyzer(knowledge.Build(chars)))
}

func TestGenerateTeamsTooFewOwned(t *testing.T) {
	chars := []roster.Character{stunner("1", "A"), healer("2", "B")}
	b := newBuilder(chars...)

	if got := b.GenerateTeams(chars, nil, Filters{}); len(got) != 0 {
		t.Errorf("got %d teams from a two-character pool, want 0", len(got))
	}
}

func TestGenerateTeams(t *testing.T) {
	chars := []roster.Character{
		stunner("1", "A"), healer("2", "B"), striker("3", "C"), striker("4", "D"),
	}
	b := newBuilder(chars...)

	got := b.GenerateTeams(chars, nil, Filters{})

	if len(got) == 0 {
		t.Fatal("got no teams from a viable four-character pool")
	}
	if len(got) > maxResults {
		t.Errorf("got %d teams, want at most %d", len(got), maxResults)
	}
	for i, tm := range got {
		if len(tm.Members) != teamSize {
			t.Errorf("team %d has %d members, want %d", i, len(tm.Members), teamSize)
		}
		if tm.Playstyle == "" {
			t.Errorf("team %d missing playstyle description", i)
		}
		if tm.Analysis == nil {
			t.Errorf("team %d missing analysis", i)
		}
		if i > 0 && got[i-1].MetaScore < tm.MetaScore {
			t.Errorf("teams not sorted descending at index %d", i)
		}
	}
}

func TestGenerateTeamsRespectsOwnedFilter(t *testing.T) {
	chars := []roster.Character{
		stunner("1", "A"), healer("2", "B"), striker("3", "C"), striker("4", "D"),
	}
	b := newBuilder(chars...)

	owned := roster.NewOwnedFilter([]roster.ID{"1", "2", "3"})
	got := b.GenerateTeams(chars, owned, Filters{})

	for _, tm := range got {
		for _, m := range tm.Members {
			if m.ID == "4" {
				t.Fatal("generated team contains an unowned character")
			}
		}
	}
}

func TestGenerateTeamsFilters(t *testing.T) {
	expensive := func(id, name, desc string) roster.Character {
		return roster.Character{ID: roster.ID(id), Name: name, Skills: []roster.Skill{
			{Name: "Big", Description: desc, Energy: []string{"red", "red"}},
		}}
	}
	chars := []roster.Character{
		expensive("1", "A", "Stuns the target for 1 turn."),
		expensive("2", "B", "Heals one ally for 25 health."),
		expensive("3", "C", "Deals 30 damage to one enemy."),
	}
	b := newBuilder(chars...)

	if got := b.GenerateTeams(chars, nil, Filters{MaxAvgCost: 1.5}); len(got) != 0 {
		t.Errorf("got %d teams with avg cost 2 under a 1.5 cap, want 0", len(got))
	}
	if got := b.GenerateTeams(chars, nil, Filters{MinFlexibility: 80}); len(got) != 0 {
		t.Errorf("got %d teams at flexibility 70 under an 80 floor, want 0", len(got))
	}
	if got := b.GenerateTeams(chars, nil, Filters{MaxAvgCost: 3, MinFlexibility: 50}); len(got) == 0 {
		t.Error("got no teams under permissive filters")
	}
}

func TestScoreCharacter(t *testing.T) {
	tests := []struct {
		name string
		char roster.Character
		want int
	}{
		{
			name: "cheap stun",
			char: stunner("1", "A"),
			want: 5 + 10 + 10, // base + cheap + stun keyword
		},
		{
			name: "expensive damage",
			char: roster.Character{ID: "2", Skills: []roster.Skill{
				{Description: "Deals 50 damage to one enemy.", Energy: []string{"red", "red", "red", "red"}},
			}},
			want: 5 - 5 + 8,
		},
		{
			name: "cheap invulnerability",
			char: roster.Character{ID: "3", Skills: []roster.Skill{
				{Description: "The user becomes invulnerable for 1 turn.", Energy: []string{"none"}},
			}},
			want: 5 + 10 + 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreCharacter(tt.char); got != tt.want {
				t.Errorf("scoreCharacter() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHasRoleBalance(t *testing.T) {
	if hasRoleBalance([]roster.Character{striker("1", "A"), striker("2", "B"), striker("3", "C")}) {
		t.Error("all-striker team reported balanced")
	}
	if !hasRoleBalance([]roster.Character{stunner("1", "A"), healer("2", "B"), striker("3", "C")}) {
		t.Error("stun plus heal team reported unbalanced")
	}
}

func TestEnergyFlexibility(t *testing.T) {
	tests := []struct {
		avgCost float64
		want    float64
	}{
		{1.0, 100},
		{1.5, 100},
		{2.0, 70},
		{3.0, 70},
		{3.5, 30},
	}
	for _, tt := range tests {
		if got := energyFlexibility(tt.avgCost); got != tt.want {
			t.Errorf("energyFlexibility(%f) = %f, want %f", tt.avgCost, got, tt.want)
		}
	}
}

func TestPlaystyleDescription(t *testing.T) {
	killTurns := func(n int) *int { return &n }

	tests := []struct {
		name     string
		analysis *team.Analysis
		want     string
	}{
		{
			name: "control lock",
			analysis: &team.Analysis{
				Roles:     profile.Roles{Control: 2},
				Mechanics: map[string]float64{"stun": 4},
			},
			want: "Control Lock: Disable enemies and dictate pace",
		},
		{
			name: "setup archetype",
			analysis: &team.Analysis{
				Mechanics: map[string]float64{"setup": 1, "immunity": 1},
			},
			want: "Setup Archetype: Safe buffing into explosive payoff",
		},
		{
			name: "aggressive rush",
			analysis: &team.Analysis{
				Mechanics: map[string]float64{},
				Tempo:     team.Tempo{EstimatedKillTurns: killTurns(3)},
			},
			want: "Aggressive Rush: Fast burst damage for quick wins",
		},
		{
			name: "sustain",
			analysis: &team.Analysis{
				Roles:     profile.Roles{Tank: 1, Support: 1},
				Mechanics: map[string]float64{},
			},
			want: "Sustain & Survive: Outlast enemies with defense",
		},
		{
			name:     "balanced fallback",
			analysis: &team.Analysis{Mechanics: map[string]float64{}},
			want:     "Balanced Composition: Flexible strategy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlaystyleDescription(tt.analysis); got != tt.want {
				t.Errorf("PlaystyleDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}
