// Package recommend ranks candidate characters: partners for a partial
// team, counters against an enemy team. Scoring combines role
// complementarity, mechanic dependency matching, and energy-color
// conflict analysis over the knowledge base.
package recommend

import (
	"sort"

	"github.com/arenalab/arena-advisor/internal/knowledge"
	"github.com/arenalab/arena-advisor/internal/roster"
	"github.com/arenalab/arena-advisor/internal/team"
)

// Suggestion is a ranked teammate candidate.
type Suggestion struct {
	roster.Character
	SynergyScore float64  `json:"synergyScore"`
	Notes        []string `json:"notes,omitempty"`
}

// PartnerSuggestion is a ranked build-around partner.
type PartnerSuggestion struct {
	roster.Character
	Score float64  `json:"buildAroundScore"`
	Notes []string `json:"buildAroundNotes"`
}

// CounterSuggestion is a ranked counter pick against an enemy team.
type CounterSuggestion struct {
	roster.Character
	CounterScore  float64 `json:"counterScore"`
	CounterReason string  `json:"counterReason"`
}

// Recommender scores candidates against a knowledge base.
type Recommender struct {
	kb       *knowledge.Base
	analyzer *team.Analyzer
}

// New creates a recommender backed by the given knowledge base.
func New(kb *knowledge.Base) *Recommender {
	return &Recommender{
		kb:       kb,
		analyzer: team.NewAnalyzer(kb),
	}
}

// Analyzer exposes the underlying team analyzer so callers do not build
// a second one against the same knowledge base.
func (r *Recommender) Analyzer() *team.Analyzer {
	return r.analyzer
}

func (r *Recommender) entry(c roster.Character) *knowledge.Entry {
	if e := r.kb.Get(c.ID); e != nil {
		return e
	}
	return knowledge.BuildEntry(c)
}

// Blend weights for two-member teams: fit with the first member matters
// most, then fit with the second, then the full three-member synergy.
const (
	blendFirstFit  = 0.5
	blendSecondFit = 0.3
	blendTeamScore = 0.2
)

// GetSuggestions ranks teammate candidates for a partial team. A
// one-member team delegates to RecommendPartnersForMain; a two-member
// team blends pairwise fit with full-team synergy. Empty and full teams
// have no valid operation and return an empty list.
func (r *Recommender) GetSuggestions(all []roster.Character, current []roster.Character, count int, owned roster.OwnedFilter) []Suggestion {
	switch len(current) {
	case 1:
		partners := r.RecommendPartnersForMain(current[0], all, owned, count)
		suggestions := make([]Suggestion, 0, len(partners))
		for _, p := range partners {
			suggestions = append(suggestions, Suggestion{
				Character:    p.Character,
				SynergyScore: p.Score,
				Notes:        p.Notes,
			})
		}
		return suggestions

	case 2:
		var suggestions []Suggestion
		for _, candidate := range candidates(all, current, owned) {
			firstFit, _ := r.ScorePartnerFit(current[0], candidate)
			secondFit, _ := r.ScorePartnerFit(current[1], candidate)
			// The raw synergy score keeps gradation beyond the 0-100 clamp.
			teamScore := r.analyzer.CalculateSynergyRaw(current, candidate)

			score := blendFirstFit*firstFit + blendSecondFit*secondFit + blendTeamScore*teamScore
			suggestions = append(suggestions, Suggestion{Character: candidate, SynergyScore: score})
		}
		sortByScore(suggestions, func(s Suggestion) float64 { return s.SynergyScore })
		return truncate(suggestions, count)

	default:
		return []Suggestion{}
	}
}

// candidates filters the roster to valid, owned characters outside the
// current team.
func candidates(all []roster.Character, current []roster.Character, owned roster.OwnedFilter) []roster.Character {
	inTeam := make(map[roster.ID]bool, len(current))
	for _, m := range current {
		inTeam[m.ID] = true
	}

	var out []roster.Character
	for _, c := range all {
		if c.ID == "" || c.Name == "" {
			continue
		}
		if inTeam[c.ID] || !owned.Owns(c.ID) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func sortByScore[T any](list []T, score func(T) float64) {
	sort.SliceStable(list, func(i, j int) bool {
		return score(list[i]) > score(list[j])
	})
}

func truncate[T any](list []T, n int) []T {
	if n <= 0 || n >= len(list) {
		if list == nil {
			return []T{}
		}
		return list
	}
	return list[:n]
}
