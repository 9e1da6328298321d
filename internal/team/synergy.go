package team

import "math"

// keyCapabilities is the fixed capability list used for coverage scoring
// and missing-capability reporting.
var keyCapabilities = []string{
	"piercing", "affliction", "stun", "heal", "cleanse", "counter",
	"invulnerable", "energyGen", "aoe", "invisible", "statusShield", "antiTank",
}

const comboScoreCap = 30

// scoreSynergy fills the analysis breakdown and both synergy scores. The
// raw value is retained unclamped for callers blending beyond the 0-100
// display range.
func scoreSynergy(a *Analysis) {
	a.Breakdown.Role = roleScore(a)
	a.Breakdown.Mechanic = mechanicScore(a.Mechanics)
	a.Breakdown.Coverage = coverageScore(a.Mechanics)
	a.Breakdown.Combo = comboScore(a.Hooks)
	a.Breakdown.Pressure = float64(a.Tempo.PressureRating) * 0.3
	a.Breakdown.EnergyPenalty = energyTeamPenalty(a.EnergyDistribution)

	a.SynergyScoreRaw = a.Breakdown.Role +
		a.Breakdown.Mechanic +
		a.Breakdown.Coverage +
		a.Breakdown.Combo +
		a.Breakdown.Pressure -
		a.Breakdown.EnergyPenalty

	a.SynergyScore = clampInt(int(math.Round(a.SynergyScoreRaw)), 0, 100)
}

func roleScore(a *Analysis) float64 {
	score := 0.0
	if a.Roles.DPS >= 2 {
		score += 20
	}
	if a.Roles.Support >= 1 || a.Roles.Tank >= 1 {
		score += 15
	}
	if a.Roles.Control >= 1 {
		score += 10
	}

	nonzero := 0
	for _, w := range []float64{a.Roles.DPS, a.Roles.Tank, a.Roles.Support, a.Roles.Control} {
		if w > 0 {
			nonzero++
		}
	}
	if nonzero >= 3 {
		score += 10
	}
	return score
}

func mechanicScore(m map[string]float64) float64 {
	score := 0.0
	if m["stun"] > 0 {
		score += 18
	}
	if m["cleanse"] > 0 {
		score += 16
	}
	if m["statusShield"] > 0 {
		score += 16
	}
	if m["stacking"] > 0 {
		score += 12
	}
	if m["antiTank"] > 0 || m["piercing"] > 0 {
		score += 12
	}
	if m["immunity"] > 0 || m["invulnerable"] > 0 {
		score += 10
	}
	if m["antiAffliction"] > 0 {
		score += 14
	}
	if m["energyGen"] > 0 {
		score += 8
	}
	if m["counter"] > 0 {
		score += 6
	}
	return score
}

func coverageScore(m map[string]float64) float64 {
	covered := 0
	for _, cap := range keyCapabilities {
		if m[cap] > 0 {
			covered++
		}
	}
	return float64(covered) * 5
}

func comboScore(h HookCounts) float64 {
	score := math.Min(h.Setups, h.Payoffs)*8 +
		math.Min(h.EnergySupport, h.HighCostThreats)*6 +
		math.Min(h.Sustain, h.HighCostThreats)*4
	return math.Min(score, comboScoreCap)
}

// energyTeamPenalty discourages mono-color compositions: when the most
// used color accounts for 60% or more of all colored cost tokens, the
// penalty scales with the overshoot past an even split.
func energyTeamPenalty(dist map[string]int) float64 {
	total := 0
	dominant := 0
	for _, count := range dist {
		total += count
		if count > dominant {
			dominant = count
		}
	}
	if total == 0 {
		return 0
	}

	ratio := float64(dominant) / float64(total)
	if ratio < 0.6 {
		return 0
	}
	return (ratio - 0.5) * 60
}
