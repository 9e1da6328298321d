package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenalab/arena-advisor/internal/meta"
	"github.com/arenalab/arena-advisor/internal/roster"
)

func testRoster() []roster.Character {
	return []roster.Character{
		{ID: "1", Name: "Striker", Skills: []roster.Skill{
			{Name: "Slash", Description: "Deals 45 damage to one enemy.", Energy: []string{"red"}},
		}},
		{ID: "2", Name: "Medic", Skills: []roster.Skill{
			{Name: "Mend", Description: "Heals one ally for 25 health.", Energy: []string{"white"}},
		}},
		{ID: "3", Name: "Lockdown", Skills: []roster.Skill{
			{Name: "Hold", Description: "Stuns the target for 1 turn.", Energy: []string{"green"}},
		}},
	}
}

func TestServiceLookupAndAnalyze(t *testing.T) {
	s := NewService(testRoster())

	require.Equal(t, 3, s.KnowledgeSize())
	require.NotNil(t, s.Character("2"))
	assert.Nil(t, s.Character("99"))

	analysis, err := s.AnalyzeTeam([]roster.ID{"1", "2"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, analysis.SynergyScore, 0)
	assert.LessOrEqual(t, analysis.SynergyScore, 100)

	_, err = s.AnalyzeTeam([]roster.ID{"1", "nope"})
	assert.Error(t, err, "unknown ids must be rejected")
}

func TestServiceSuggestionsAndOwned(t *testing.T) {
	s := NewService(testRoster())

	suggestions, err := s.Suggestions([]roster.ID{"1"}, 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	s.SetOwned([]roster.ID{"1", "3"})
	suggestions, err = s.Suggestions([]roster.ID{"1"}, 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, roster.ID("3"), suggestions[0].ID)
}

func TestServiceReloadRoster(t *testing.T) {
	s := NewService(testRoster())

	s.ReloadRoster([]roster.Character{
		{ID: "10", Name: "Solo", Skills: []roster.Skill{
			{Name: "Hit", Description: "Deals 10 damage.", Energy: []string{"red"}},
		}},
	})

	assert.Equal(t, 1, s.KnowledgeSize())
	assert.Nil(t, s.Character("1"))
	require.NotNil(t, s.Character("10"))
}

func TestServiceCountersAndMeta(t *testing.T) {
	s := NewService(testRoster())

	counters, err := s.Counters([]roster.ID{"3"}, nil, 5)
	require.NoError(t, err)
	assert.Len(t, counters, 3)

	teams := s.MetaTeams(meta.Filters{})
	require.Len(t, teams, 1)
	assert.Len(t, teams[0].Members, 3)
	assert.NotEmpty(t, teams[0].Playstyle)
}
