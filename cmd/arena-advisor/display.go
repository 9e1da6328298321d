package main

import (
	"fmt"
	"strings"

	"github.com/arenalab/arena-advisor/internal/meta"
	"github.com/arenalab/arena-advisor/internal/recommend"
	"github.com/arenalab/arena-advisor/internal/team"
)

func displayTeamAnalysis(a *team.Analysis, names []string) {
	fmt.Printf("Team: %s\n", strings.Join(names, ", "))
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	fmt.Printf("Synergy Score: %d/100\n", a.SynergyScore)
	fmt.Printf("  Roles: %.1f  Mechanics: %.1f  Coverage: %.1f  Combos: %.1f  Pressure: %.1f",
		a.Breakdown.Role, a.Breakdown.Mechanic, a.Breakdown.Coverage, a.Breakdown.Combo, a.Breakdown.Pressure)
	if a.Breakdown.EnergyPenalty > 0 {
		fmt.Printf("  Energy Penalty: -%.1f", a.Breakdown.EnergyPenalty)
	}
	fmt.Println()
	fmt.Println()

	fmt.Printf("Roles: DPS %.1f | Tank %.1f | Support %.1f | Control %.1f\n",
		a.Roles.DPS, a.Roles.Tank, a.Roles.Support, a.Roles.Control)
	fmt.Printf("Average Cost: %.2f energy per skill\n", a.AvgCost)
	fmt.Println()

	fmt.Printf("Burst Damage: %d (pressure %d/100)\n", a.Tempo.BurstDamage, a.Tempo.PressureRating)
	if a.Tempo.EstimatedKillTurns != nil {
		fmt.Printf("Estimated Kill Turns: %d", *a.Tempo.EstimatedKillTurns)
		if a.Tempo.CostToKill != nil {
			fmt.Printf(" (~%d energy)", *a.Tempo.CostToKill)
		}
		fmt.Println()
	}
	fmt.Println()

	printList("Strengths", a.Strengths)
	printList("Weaknesses", a.Weaknesses)
	printList("Warnings", a.Warnings)
	printList("Suggested Strategies", a.Strategies)
	printList("Missing Capabilities", a.MissingCapabilities)
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
	fmt.Println()
}

func displaySuggestions(suggestions []recommend.Suggestion, teamNames []string) {
	fmt.Printf("Suggestions for team: %s\n", strings.Join(teamNames, ", "))
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	if len(suggestions) == 0 {
		fmt.Println("No suggestions. A team of one or two members is required.")
		return
	}

	for i, s := range suggestions {
		fmt.Printf("%d. %s (score %.1f)\n", i+1, s.Name, s.SynergyScore)
		for _, note := range s.Notes {
			fmt.Printf("   %s\n", note)
		}
	}
}

func displayCounters(counters []recommend.CounterSuggestion, enemyNames []string) {
	fmt.Printf("Counters against: %s\n", strings.Join(enemyNames, ", "))
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	if len(counters) == 0 {
		fmt.Println("No counter candidates found.")
		return
	}

	for i, c := range counters {
		fmt.Printf("%d. %s (score %.1f)\n", i+1, c.Name, c.CounterScore)
		fmt.Printf("   %s\n", c.CounterReason)
	}
}

func displayMetaTeams(teams []meta.Team) {
	fmt.Println("Top Team Compositions")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	if len(teams) == 0 {
		fmt.Println("No teams generated. Check the owned filter and constraints.")
		return
	}

	for i, t := range teams {
		names := make([]string, len(t.Members))
		for j, m := range t.Members {
			names[j] = m.Name
		}
		fmt.Printf("%d. %s — meta score %d\n", i+1, strings.Join(names, ", "), t.MetaScore)
		fmt.Printf("   %s\n", t.Playstyle)
		if t.Analysis != nil {
			fmt.Printf("   Synergy %d/100, avg cost %.2f\n", t.Analysis.SynergyScore, t.Analysis.AvgCost)
		}
		fmt.Println()
	}
}
