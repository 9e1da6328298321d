// Package advisor wires the roster, knowledge base, analyzer, and
// recommenders behind one concurrency-safe service. The API server and
// CLI both talk to it.
package advisor

import (
	"fmt"
	"sync"

	"github.com/arenalab/arena-advisor/internal/knowledge"
	"github.com/arenalab/arena-advisor/internal/meta"
	"github.com/arenalab/arena-advisor/internal/recommend"
	"github.com/arenalab/arena-advisor/internal/roster"
	"github.com/arenalab/arena-advisor/internal/team"
)

// Service holds the advisor state for one roster. All methods are safe
// for concurrent use; ReloadRoster swaps the whole state atomically.
type Service struct {
	mu      sync.RWMutex
	chars   []roster.Character
	byID    map[roster.ID]roster.Character
	kb      *knowledge.Base
	rec     *recommend.Recommender
	builder *meta.Builder
	owned   roster.OwnedFilter
}

// NewService creates a service over the given roster.
func NewService(chars []roster.Character) *Service {
	s := &Service{}
	s.install(chars)
	return s
}

func (s *Service) install(chars []roster.Character) {
	byID := make(map[roster.ID]roster.Character, len(chars))
	for _, c := range chars {
		if c.ID != "" {
			byID[c.ID] = c
		}
	}

	kb := knowledge.Build(chars)
	rec := recommend.New(kb)

	s.chars = chars
	s.byID = byID
	s.kb = kb
	s.rec = rec
	s.builder = meta.NewBuilder(rec.Analyzer())
}

// ReloadRoster replaces the roster and rebuilds the knowledge base.
func (s *Service) ReloadRoster(chars []roster.Character) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.install(chars)
}

// Characters returns the current roster.
func (s *Service) Characters() []roster.Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chars
}

// Character returns one character by id, or nil when unknown.
func (s *Service) Character(id roster.ID) *roster.Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.byID[id]; ok {
		return &c
	}
	return nil
}

// SetOwned replaces the owned-character filter. An empty list means
// every character is available.
func (s *Service) SetOwned(ids []roster.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owned = roster.NewOwnedFilter(ids)
}

// Resolve maps character ids to their roster entries, failing on the
// first unknown id.
func (s *Service) Resolve(ids []roster.ID) ([]roster.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chars := make([]roster.Character, 0, len(ids))
	for _, id := range ids {
		c, ok := s.byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown character id %q", id)
		}
		chars = append(chars, c)
	}
	return chars, nil
}

// AnalyzeTeam analyzes the team formed by the given ids.
func (s *Service) AnalyzeTeam(ids []roster.ID) (*team.Analysis, error) {
	members, err := s.Resolve(ids)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Analyzer().AnalyzeTeam(members), nil
}

// AnalyzeCharacter analyzes a single character by id.
func (s *Service) AnalyzeCharacter(id roster.ID) (*team.CharacterAnalysis, error) {
	members, err := s.Resolve([]roster.ID{id})
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	analysis := s.rec.Analyzer().AnalyzeCharacter(members[0])
	return &analysis, nil
}

// Suggestions ranks teammate candidates for a partial team.
func (s *Service) Suggestions(teamIDs []roster.ID, count int) ([]recommend.Suggestion, error) {
	current, err := s.Resolve(teamIDs)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.GetSuggestions(s.chars, current, count, s.owned), nil
}

// Partners ranks build-around partners for one main character.
func (s *Service) Partners(mainID roster.ID, count int) ([]recommend.PartnerSuggestion, error) {
	members, err := s.Resolve([]roster.ID{mainID})
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.RecommendPartnersForMain(members[0], s.chars, s.owned, count), nil
}

// Counters ranks counter picks against an enemy team, optionally biased
// toward synergy with the caller's current team.
func (s *Service) Counters(enemyIDs, currentIDs []roster.ID, count int) ([]recommend.CounterSuggestion, error) {
	enemy, err := s.Resolve(enemyIDs)
	if err != nil {
		return nil, err
	}
	current, err := s.Resolve(currentIDs)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.RecommendCounterCandidates(enemy, s.chars, s.owned, current, count), nil
}

// MetaTeams generates the top team compositions under the given filters.
func (s *Service) MetaTeams(filters meta.Filters) []meta.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builder.GenerateTeams(s.chars, s.owned, filters)
}

// KnowledgeSize reports how many characters the knowledge base covers.
func (s *Service) KnowledgeSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kb.Len()
}
