package recommend

import (
	"math"
	"strings"

	"github.com/arenalab/arena-advisor/internal/roster"
)

// counterPriorityWeights tiers the counter-need keys by how decisive the
// mechanic is against an enemy gameplan.
var counterPriorityWeights = map[string]float64{
	"statusShield":   5, // critical
	"antiAffliction": 5,
	"antiTank":       4, // high
	"cleanse":        4,
	"stun":           3, // medium
	"stacking":       3,
	"immunity":       2, // support
	"counter":        2,
	"energyGen":      2,
	"aoe":            2,
}

const (
	counterScoreScale   = 10
	counterSynergyShare = 0.25
)

// DeriveCounterNeeds converts an enemy team's aggregated mechanics into
// a needs vector via a fixed escalation table. Every team needs a
// baseline of control, anti-tank, and cleanse regardless of the enemy.
func DeriveCounterNeeds(enemy map[string]float64) map[string]float64 {
	needs := map[string]float64{
		"stun":     1,
		"antiTank": 1,
		"cleanse":  1,
	}

	if enemy["immunity"] >= 2 || enemy["invulnerable"] >= 2 {
		needs["antiTank"] += 4
		needs["stacking"] += 3
		needs["energyGen"] += 1
	}
	if enemy["stacking"] >= 3 {
		needs["antiAffliction"] += 4
		needs["cleanse"] += 3
		needs["stun"] += 2
		needs["statusShield"] += 2
	}
	if enemy["stun"] >= 3 || enemy["counter"] >= 2 {
		needs["statusShield"] += 4
		needs["immunity"] += 2
		needs["counter"] += 2
		needs["cleanse"] += 1
	}
	if enemy["aoe"] >= 3 {
		needs["immunity"] += 2
		needs["aoe"] += 2
	}
	if enemy["energyGen"] >= 2 {
		needs["energyGen"] += 2
		needs["stun"] += 2
	}
	if enemy["counter"] >= 3 {
		needs["statusShield"] += 2
		needs["stacking"] += 2
	}
	if enemy["setup"] >= 2 || enemy["achievement"] >= 2 {
		needs["stun"] += 2
		needs["counter"] += 2
	}
	if enemy["sustain"] >= 2 {
		needs["stacking"] += 3
		needs["energyGen"] += 1
	}
	if enemy["defense"] >= 2 {
		needs["antiTank"] += 4
		needs["stacking"] += 2
	}
	if enemy["piercing"] >= 2 {
		needs["immunity"] += 2
		needs["counter"] += 1
	}

	return needs
}

// ScoreCounterCandidate scores one candidate against the needs vector.
// Each need is satisfied at most up to its demanded amount, weighted by
// priority tier; the sum is scaled and topped up with a share of the
// synergy the candidate would add to the current team. Never negative.
func (r *Recommender) ScoreCounterCandidate(candidate roster.Character, needs map[string]float64, current []roster.Character) float64 {
	e := r.entry(candidate)

	base := 0.0
	for key, need := range needs {
		weight, ok := counterPriorityWeights[key]
		if !ok {
			continue
		}
		base += math.Min(e.Mechanics[key], need) * weight
	}

	score := base * counterScoreScale
	if len(current) > 0 {
		score += counterSynergyShare * float64(r.analyzer.CalculateSynergy(current, candidate))
	}
	return math.Max(score, 0)
}

// ExplainCounterFit names the candidate's advantages against the enemy
// mechanics, one clause per matching rule.
func (r *Recommender) ExplainCounterFit(candidate roster.Character, enemy map[string]float64) string {
	m := r.entry(candidate).Mechanics

	var reasons []string
	if m["stacking"] > 0 && (enemy["defense"] > 0 || enemy["damageReduction"] > 0) {
		reasons = append(reasons, "Affliction damage bypasses their defenses")
	}
	if m["antiTank"] > 0 && enemy["damageReduction"] > 0 {
		reasons = append(reasons, "Piercing ignores their damage reduction")
	}
	if m["cleanse"] > 0 && enemy["stacking"] >= 2 {
		reasons = append(reasons, "Cleanse removes their afflictions")
	}
	if (m["invulnerable"] > 0 || m["statusShield"] > 0) && enemy["stun"] >= 2 {
		reasons = append(reasons, "Protection blanks their stuns")
	}
	if m["energyGen"] > 0 && enemy["energyRemoval"] >= 2 {
		reasons = append(reasons, "Energy generation outpaces their drain")
	}
	if m["burst"] >= 2 {
		reasons = append(reasons, "High burst threat")
	}
	if m["stun"] > 0 {
		reasons = append(reasons, "Can disrupt with stuns")
	}

	if len(reasons) == 0 {
		return "General advantage"
	}
	return strings.Join(reasons, " | ")
}

// RecommendCounterCandidates ranks counter picks against an enemy team.
// An empty enemy team has nothing to counter and yields an empty list.
func (r *Recommender) RecommendCounterCandidates(enemy []roster.Character, all []roster.Character, owned roster.OwnedFilter, current []roster.Character, maxResults int) []CounterSuggestion {
	if len(enemy) == 0 {
		return []CounterSuggestion{}
	}

	enemyMechanics := r.analyzer.AnalyzeTeam(enemy).Mechanics
	needs := DeriveCounterNeeds(enemyMechanics)

	var suggestions []CounterSuggestion
	for _, candidate := range candidates(all, current, owned) {
		suggestions = append(suggestions, CounterSuggestion{
			Character:     candidate,
			CounterScore:  r.ScoreCounterCandidate(candidate, needs, current),
			CounterReason: r.ExplainCounterFit(candidate, enemyMechanics),
		})
	}

	sortByScore(suggestions, func(s CounterSuggestion) float64 { return s.CounterScore })
	return truncate(suggestions, maxResults)
}
