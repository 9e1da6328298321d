package team

import (
	"math"
	"regexp"
	"strconv"

	"github.com/arenalab/arena-advisor/internal/roster"
)

// Tempo summarizes the team's damage output over time against a baseline
// of three 100-HP opponents.
type Tempo struct {
	BurstDamage int     `json:"burstDamage"`
	MaxDPE      float64 `json:"maxDPE"`
	AvgDPE      float64 `json:"avgDPE"`

	// EstimatedKillTurns and CostToKill are nil when the team has no
	// damage output at all.
	EstimatedKillTurns *int `json:"estimatedKillTurns"`
	CostToKill         *int `json:"costToKill"`

	PressureRating int `json:"pressureRating"`
}

// totalEnemyHP models three 100-HP opponents; burstDiscount converts
// peak burst into a sustainable-DPS estimate. Both are fixed design
// constants, not tunable inputs.
const (
	totalEnemyHP  = 300.0
	burstDiscount = 0.7
)

// The tempo parser sums every damage mention and applies an AoE
// multiplier. This deliberately disagrees with the tagger's first-match
// parser: classification and tempo estimation answer different questions
// and the two numbers are not meant to reconcile.
var (
	tempoDamageRe = regexp.MustCompile(`(?i)deals? (\d+)\s*(?:affliction |piercing )?damage`)
	tempoAoERe    = regexp.MustCompile(`(?i)all enemies`)
)

const aoeDamageMultiplier = 2.5

// skillDamage estimates one skill's damage contribution, preferring
// structured effect data over text parsing.
func skillDamage(s roster.Skill) float64 {
	if s.Effects != nil && s.Effects.Damage != nil {
		return float64(s.Effects.Damage.Base)
	}

	total := 0.0
	for _, m := range tempoDamageRe.FindAllStringSubmatch(s.Description, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += float64(n)
		}
	}
	if total > 0 && tempoAoERe.MatchString(s.Description) {
		total *= aoeDamageMultiplier
	}
	return total
}

// skillEnergyCost counts a skill's non-"none" cost tokens.
func skillEnergyCost(s roster.Skill) int {
	cost := 0
	for _, token := range s.Energy {
		if token != "none" {
			cost++
		}
	}
	return cost
}

// skillDPECost counts the tokens that matter for damage-per-energy:
// random ("black") tokens are excluded because any color satisfies them.
func skillDPECost(s roster.Skill) int {
	cost := 0
	for _, token := range s.Energy {
		if token != "none" && token != "black" {
			cost++
		}
	}
	return cost
}

func computeTempo(members []roster.Character, mechanics map[string]float64) Tempo {
	var tempo Tempo

	burstTotal := 0.0
	burstEnergy := 0
	var dpes []float64

	for _, member := range members {
		bestBurst := 0.0
		bestBurstCost := 0
		bestDPE := 0.0

		for _, skill := range member.Skills {
			dmg := skillDamage(skill)
			if dmg > bestBurst {
				bestBurst = dmg
				bestBurstCost = skillEnergyCost(skill)
			}
			if cost := skillDPECost(skill); cost > 0 && dmg > 0 {
				if dpe := dmg / float64(cost); dpe > bestDPE {
					bestDPE = dpe
				}
			}
		}

		if bestBurst > 0 {
			burstTotal += bestBurst
			if bestBurstCost < 1 {
				bestBurstCost = 1
			}
			burstEnergy += bestBurstCost
		}
		if bestDPE > 0 {
			dpes = append(dpes, bestDPE)
		}
	}

	tempo.BurstDamage = int(math.Round(burstTotal))

	if len(dpes) > 0 {
		sum := 0.0
		for _, d := range dpes {
			sum += d
			if d > tempo.MaxDPE {
				tempo.MaxDPE = d
			}
		}
		tempo.AvgDPE = sum / float64(len(dpes))
	}

	if burstTotal > 0 {
		turns := int(math.Round(totalEnemyHP / (burstTotal * burstDiscount)))
		if turns < 1 {
			turns = 1
		}
		if turns > 8 {
			turns = 8
		}
		tempo.EstimatedKillTurns = &turns

		cost := turns * burstEnergy
		tempo.CostToKill = &cost
	}

	tempo.PressureRating = pressureRating(burstTotal, tempo.AvgDPE, mechanics)

	return tempo
}

// pressureRating scores 0-100: up to 40 points from burst damage (capped
// at 150), up to 20 from average DPE (capped at 25), plus flat bonuses
// for stacking, stun, anti-tank, and AoE presence.
func pressureRating(burst, avgDPE float64, mechanics map[string]float64) int {
	score := math.Min(burst, 150) / 150 * 40
	score += math.Min(avgDPE, 25) / 25 * 20

	if mechanics["stacking"] > 0 {
		score += 10
	}
	if mechanics["stun"] > 0 {
		score += 12
	}
	if mechanics["antiTank"] > 0 || mechanics["piercing"] > 0 {
		score += 10
	}
	if mechanics["aoe"] > 0 {
		score += 8
	}

	return clampInt(int(math.Round(score)), 0, 100)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
