// Package team aggregates member profiles into a team-level analysis:
// roles, mechanics coverage, energy distribution, tempo, a weighted
// synergy score with breakdown, and the narrative strengths/weaknesses
// shown to the player.
package team

import (
	"github.com/arenalab/arena-advisor/internal/knowledge"
	"github.com/arenalab/arena-advisor/internal/profile"
	"github.com/arenalab/arena-advisor/internal/roster"
)

// HookCounts accumulates combo evidence across the team. Contributions
// derived from string tags alone are weighted at half value versus
// explicit hook lists.
type HookCounts struct {
	Setups          float64 `json:"setups"`
	Payoffs         float64 `json:"payoffs"`
	Sustain         float64 `json:"sustain"`
	EnergySupport   float64 `json:"energySupport"`
	HighCostThreats float64 `json:"highCostThreats"`
}

// ScoreBreakdown exposes the weighted synergy components.
type ScoreBreakdown struct {
	Role          float64 `json:"role"`
	Mechanic      float64 `json:"mechanic"`
	Coverage      float64 `json:"coverage"`
	Combo         float64 `json:"combo"`
	Pressure      float64 `json:"pressure"`
	EnergyPenalty float64 `json:"energyPenalty"`
}

// Analysis is the full team-level result. Recomputed per call, never
// cached.
type Analysis struct {
	Roles    profile.Roles         `json:"roles"`
	Granular profile.GranularRoles `json:"granularRoles"`

	Mechanics          map[string]float64 `json:"mechanics"`
	EnergyDistribution map[string]int     `json:"energyDistribution"`
	AvgCost            float64            `json:"avgCost"`

	Hooks HookCounts `json:"hooks"`
	Tempo Tempo      `json:"tempo"`

	SynergyScore    int            `json:"synergyScore"`
	SynergyScoreRaw float64        `json:"synergyScoreRaw"`
	Breakdown       ScoreBreakdown `json:"breakdown"`

	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	Warnings            []string `json:"warnings"`
	Strategies          []string `json:"strategies"`
	MissingCapabilities []string `json:"missingCapabilities"`
}

// CharacterAnalysis is the per-character view exposed to collaborators.
// Roles and Mechanics are always fully populated, even for characters
// that cannot be profiled; Knowledge is nil for ids outside the cached
// roster.
type CharacterAnalysis struct {
	Roles     profile.Roles      `json:"roles"`
	Mechanics map[string]float64 `json:"mechanics"`
	Knowledge *knowledge.Entry   `json:"knowledge,omitempty"`
}

// Analyzer computes team analyses against a knowledge base.
type Analyzer struct {
	kb *knowledge.Base
}

// NewAnalyzer creates an analyzer backed by the given knowledge base.
func NewAnalyzer(kb *knowledge.Base) *Analyzer {
	return &Analyzer{kb: kb}
}

// entry returns the cached knowledge for a character, deriving it on the
// fly for characters outside the cached roster.
func (a *Analyzer) entry(c roster.Character) *knowledge.Entry {
	if e := a.kb.Get(c.ID); e != nil {
		return e
	}
	return knowledge.BuildEntry(c)
}

// AnalyzeCharacter returns the roles and mechanics for one character.
func (a *Analyzer) AnalyzeCharacter(c roster.Character) CharacterAnalysis {
	e := a.entry(c)
	return CharacterAnalysis{
		Roles:     e.Roles,
		Mechanics: e.Mechanics,
		Knowledge: a.kb.Get(c.ID),
	}
}

// DefaultAnalysis is the fixed all-zero analysis for an empty team. Every
// caller handling an incomplete team shares this base case.
func DefaultAnalysis() *Analysis {
	return &Analysis{
		Mechanics:           map[string]float64{},
		EnergyDistribution:  map[string]int{},
		Strengths:           []string{},
		Weaknesses:          []string{},
		Warnings:            []string{},
		Strategies:          []string{},
		MissingCapabilities: []string{},
	}
}

// AnalyzeTeam aggregates the members into a team analysis. An empty
// member list yields the default all-zero analysis.
func (a *Analyzer) AnalyzeTeam(members []roster.Character) *Analysis {
	if len(members) == 0 {
		return DefaultAnalysis()
	}

	analysis := DefaultAnalysis()
	totalSkills := 0
	totalTokens := 0

	for _, member := range members {
		e := a.entry(member)

		analysis.Roles.DPS += e.Roles.DPS
		analysis.Roles.Tank += e.Roles.Tank
		analysis.Roles.Support += e.Roles.Support
		analysis.Roles.Control += e.Roles.Control

		analysis.Granular.Nuker += e.Granular.Nuker
		analysis.Granular.AoESpecialist += e.Granular.AoESpecialist
		analysis.Granular.DotSpecialist += e.Granular.DotSpecialist
		analysis.Granular.Protector += e.Granular.Protector
		analysis.Granular.Staller += e.Granular.Staller
		analysis.Granular.Disruptor += e.Granular.Disruptor
		analysis.Granular.Enabler += e.Granular.Enabler

		for k, v := range e.Mechanics {
			analysis.Mechanics[k] += v
		}

		accumulateHooks(&analysis.Hooks, e)

		for _, skill := range member.Skills {
			totalSkills++
			for _, token := range skill.Energy {
				if token == "none" {
					continue
				}
				analysis.EnergyDistribution[token]++
				totalTokens++
			}
		}
	}

	if totalSkills > 0 {
		analysis.AvgCost = float64(totalTokens) / float64(totalSkills)
	}

	analysis.Tempo = computeTempo(members, analysis.Mechanics)

	scoreSynergy(analysis)
	deriveNarrative(analysis)

	return analysis
}

// CalculateSynergy scores the team that results from adding candidate to
// the current members. Returns the clamped 0-100 display score.
func (a *Analyzer) CalculateSynergy(members []roster.Character, candidate roster.Character) int {
	combined := make([]roster.Character, 0, len(members)+1)
	combined = append(combined, members...)
	combined = append(combined, candidate)
	return a.AnalyzeTeam(combined).SynergyScore
}

// CalculateSynergyRaw is CalculateSynergy without the display clamp,
// for callers blending scores beyond the 0-100 range.
func (a *Analyzer) CalculateSynergyRaw(members []roster.Character, candidate roster.Character) float64 {
	combined := make([]roster.Character, 0, len(members)+1)
	combined = append(combined, members...)
	combined = append(combined, candidate)
	return a.AnalyzeTeam(combined).SynergyScoreRaw
}

// accumulateHooks adds one member's combo evidence. Explicit hook lists
// count at full weight; when a member has none, tag-only evidence counts
// at half. High-cost threats are tag-only by nature and count at half
// weight per tagged skill.
func accumulateHooks(h *HookCounts, e *knowledge.Entry) {
	h.Setups += float64(len(e.Hooks.Setups))
	h.Payoffs += float64(len(e.Hooks.Payoffs))
	h.Sustain += float64(len(e.Hooks.Sustain))
	h.EnergySupport += float64(len(e.Hooks.EnergySupport))

	tags := make(map[string]bool, len(e.CombinedTags))
	for _, t := range e.CombinedTags {
		tags[t] = true
	}

	if len(e.Hooks.Setups) == 0 && tags["setup"] {
		h.Setups += 0.5
	}
	if len(e.Hooks.Payoffs) == 0 && (tags["finisher"] || tags["conditional"]) {
		h.Payoffs += 0.5
	}
	if len(e.Hooks.Sustain) == 0 && tags["sustain"] {
		h.Sustain += 0.5
	}
	if len(e.Hooks.EnergySupport) == 0 && tags["energyGain"] {
		h.EnergySupport += 0.5
	}

	for _, sp := range e.SkillProfiles {
		for _, t := range sp.Tags {
			if t == "highCost" {
				h.HighCostThreats += 0.5
				break
			}
		}
	}
}
