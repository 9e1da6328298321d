package team

// deriveNarrative fills the strengths, weaknesses, warnings, strategy,
// and missing-capability lists from the aggregated numbers. The rules
// are fixed; only list ordering depends on rule order.
func deriveNarrative(a *Analysis) {
	m := a.Mechanics
	g := a.Granular

	// Strengths.
	if a.Tempo.PressureRating >= 75 {
		a.Strengths = append(a.Strengths, "High-pressure offense that forces early defensive plays")
	}
	if a.Roles.DPS > 2.5 && m["piercing"] > 0 {
		a.Strengths = append(a.Strengths, "Strong anti-tank capability through piercing damage")
	}
	if m["stun"] > 1 || m["counter"] > 1 {
		a.Strengths = append(a.Strengths, "Reliable control over enemy actions")
	}
	if m["cleanse"] > 0 && m["heal"] > 0 {
		a.Strengths = append(a.Strengths, "Solid sustain with healing and cleanse")
	}
	if g.AoESpecialist > 1.5 {
		a.Strengths = append(a.Strengths, "Wide AoE pressure across the enemy team")
	}
	if m["energyGen"] > 1 {
		a.Strengths = append(a.Strengths, "Energy generation supports expensive skills")
	}

	// Weaknesses.
	if a.Roles.DPS < 1.5 && a.Tempo.BurstDamage < 90 {
		a.Weaknesses = append(a.Weaknesses, "No clear win condition: low damage and low burst")
		a.Warnings = append(a.Warnings, "This team may struggle to close out games")
	}
	if a.Roles.DPS > 2.5 && g.Protector == 0 && g.Staller == 0 {
		a.Weaknesses = append(a.Weaknesses, "Glass cannon team with no protection or stalling")
	}
	if g.Disruptor < 1 {
		a.Weaknesses = append(a.Weaknesses, "Vulnerable to enemy combos without disruption")
	}
	if g.Protector < 1 {
		a.Weaknesses = append(a.Weaknesses, "No sustain: losses are permanent")
	}
	if m["antiTank"] == 0 && m["piercing"] == 0 {
		a.Weaknesses = append(a.Weaknesses, "No anti-defense tools against damage reduction")
	}
	if m["cleanse"] == 0 && m["statusShield"] == 0 {
		a.Weaknesses = append(a.Weaknesses, "Susceptible to stuns and afflictions")
	}
	if a.Breakdown.EnergyPenalty > 0 {
		a.Weaknesses = append(a.Weaknesses, "Concentrated chakra colors risk resource starvation")
	}

	// Warnings.
	if a.Hooks.HighCostThreats > 1 && m["energyGen"] == 0 {
		a.Warnings = append(a.Warnings, "Multiple expensive skills with no energy generation")
	}
	if color, ratio, total := dominantColor(a.EnergyDistribution); total >= 6 && ratio >= 0.6 {
		a.Warnings = append(a.Warnings, "Heavy reliance on "+color+" energy creates a bottleneck")
	}
	if a.Hooks.Setups >= 2 && a.Hooks.Payoffs < 1 {
		a.Warnings = append(a.Warnings, "Setup-heavy team with no payoff skills")
	}

	// Missing capabilities.
	for _, cap := range keyCapabilities {
		if m[cap] == 0 {
			a.MissingCapabilities = append(a.MissingCapabilities, cap)
		}
	}

	a.Strategies = append(a.Strategies, strategy(a))
}

// strategy picks exactly one narrative via a priority chain over the
// granular role vector.
func strategy(a *Analysis) string {
	g := a.Granular
	switch {
	case g.Nuker >= 2:
		return "Focus burst damage on one target at a time to force early kills"
	case g.AoESpecialist >= 2:
		return "Spread AoE pressure to wear down the whole enemy team"
	case g.DotSpecialist >= 1.5 && g.Staller >= 1:
		return "Play for attrition: stack damage over time and stall behind defenses"
	case g.Disruptor >= 1.5 && a.Roles.DPS >= 1.5:
		return "Lock down key threats with control, then capitalize with damage"
	default:
		return "Flexible composition: adapt the game plan to the matchup"
	}
}

func dominantColor(dist map[string]int) (string, float64, int) {
	total := 0
	best := ""
	bestCount := 0
	for color, count := range dist {
		total += count
		if count > bestCount {
			best = color
			bestCount = count
		}
	}
	if total == 0 {
		return "", 0, 0
	}
	return best, float64(bestCount) / float64(total), total
}
