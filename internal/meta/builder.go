// Package meta generates top team compositions from a character pool.
// Brute force over the whole roster is intractable, so candidates are
// pre-filtered by individual strength before enumerating combinations.
package meta

import (
	"math"
	"sort"
	"strings"

	"github.com/arenalab/arena-advisor/internal/roster"
	"github.com/arenalab/arena-advisor/internal/team"
)

// Pool and result bounds. 50 candidates keeps the C(50,3) enumeration
// around twenty thousand combinations.
const (
	maxPoolSize = 50
	maxResults  = 10
	teamSize    = 3
)

// Meta score blend weights.
const (
	weightSynergy     = 0.5
	weightFlexibility = 0.2
	weightBalance     = 0.15
	weightDiversity   = 0.15
)

// metaDiversityKeys are the mechanic buckets counted for the diversity
// component.
var metaDiversityKeys = []string{
	"counter", "invisible", "immunity", "piercing", "punisher", "antiTank",
	"cleanse", "aoe", "stacking", "energyGen", "skillSteal", "stun",
	"invulnerable", "statusShield", "antiAffliction", "setup", "sustain",
}

// Filters constrains generated teams. Zero values disable a filter.
type Filters struct {
	MaxAvgCost     float64 `json:"maxAvgCost"`
	MinFlexibility float64 `json:"minFlexibility"`
}

// Team is one generated composition with its analysis.
type Team struct {
	Members   []roster.Character `json:"members"`
	MetaScore int                `json:"metaScore"`
	Playstyle string             `json:"playstyle"`
	Analysis  *team.Analysis     `json:"analysis"`
}

// Builder generates meta teams using a shared team analyzer.
type Builder struct {
	analyzer *team.Analyzer
}

// NewBuilder creates a meta-team builder.
func NewBuilder(analyzer *team.Analyzer) *Builder {
	return &Builder{analyzer: analyzer}
}

// GenerateTeams returns the top compositions from the owned pool, sorted
// by meta score. Fewer than three owned characters yields an empty list.
func (b *Builder) GenerateTeams(all []roster.Character, owned roster.OwnedFilter, filters Filters) []Team {
	var pool []roster.Character
	for _, c := range all {
		if owned.Owns(c.ID) {
			pool = append(pool, c)
		}
	}
	if len(pool) < teamSize {
		return []Team{}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return scoreCharacter(pool[i]) > scoreCharacter(pool[j])
	})
	if len(pool) > maxPoolSize {
		pool = pool[:maxPoolSize]
	}

	var teams []Team
	for i := 0; i < len(pool)-2; i++ {
		for j := i + 1; j < len(pool)-1; j++ {
			for k := j + 1; k < len(pool); k++ {
				members := []roster.Character{pool[i], pool[j], pool[k]}

				if !hasRoleBalance(members) {
					continue
				}

				analysis := b.analyzer.AnalyzeTeam(members)
				flexibility := energyFlexibility(analysis.AvgCost)

				if filters.MaxAvgCost > 0 && analysis.AvgCost > filters.MaxAvgCost {
					continue
				}
				if filters.MinFlexibility > 0 && flexibility < filters.MinFlexibility {
					continue
				}

				teams = append(teams, Team{
					Members:   members,
					MetaScore: metaScore(analysis, flexibility),
					Playstyle: PlaystyleDescription(analysis),
					Analysis:  analysis,
				})
			}
		}
	}

	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].MetaScore > teams[j].MetaScore
	})
	if len(teams) > maxResults {
		teams = teams[:maxResults]
	}
	if teams == nil {
		teams = []Team{}
	}
	return teams
}

// scoreCharacter estimates individual strength for pre-filtering. Cheap
// keyword checks only; the real analysis happens per combination.
func scoreCharacter(c roster.Character) int {
	score := len(c.Skills) * 5

	for _, skill := range c.Skills {
		cost := 0
		for _, token := range skill.Energy {
			if token != "none" {
				cost++
			}
		}
		if cost <= 1 {
			score += 10
		}
		if cost > 3 {
			score -= 5
		}

		desc := strings.ToLower(skill.Description)
		if strings.Contains(desc, "damage") {
			score += 8
		}
		if strings.Contains(desc, "stun") {
			score += 10
		}
		if strings.Contains(desc, "immunity") || strings.Contains(desc, "invulnerable") {
			score += 12
		}
	}

	return score
}

// hasRoleBalance is the quick pre-analysis filter: a viable team shows
// at least one control indicator and one tank/support indicator.
func hasRoleBalance(members []roster.Character) bool {
	hasControl := false
	hasTankOrSupport := false

	for _, c := range members {
		for _, skill := range c.Skills {
			desc := strings.ToLower(skill.Description)

			if strings.Contains(desc, "stun") || skill.Classes.Contains("control") || skill.Classes.Contains("mental") {
				hasControl = true
			}
			if strings.Contains(desc, "invulnerable") || strings.Contains(desc, "reduce damage") ||
				strings.Contains(desc, "heal") || skill.Classes.Contains("strategic") {
				hasTankOrSupport = true
			}
		}
	}

	return hasControl && hasTankOrSupport
}

// energyFlexibility maps average cost to a 0-100 flexibility rating.
func energyFlexibility(avgCost float64) float64 {
	switch {
	case avgCost <= 1.5:
		return 100
	case avgCost > 3:
		return 30
	default:
		return 70
	}
}

func metaScore(a *team.Analysis, flexibility float64) int {
	hasControl := a.Roles.Control >= 1
	hasTankOrSupport := a.Roles.Tank+a.Roles.Support >= 1
	balance := 50.0
	if hasControl && hasTankOrSupport {
		balance = 100
	}

	unique := 0
	for _, key := range metaDiversityKeys {
		if a.Mechanics[key] > 0 {
			unique++
		}
	}
	diversity := float64(unique) / float64(len(metaDiversityKeys)) * 100

	score := float64(a.SynergyScore)*weightSynergy +
		flexibility*weightFlexibility +
		balance*weightBalance +
		diversity*weightDiversity
	return int(math.Round(score))
}

// PlaystyleDescription names the team's game plan via a fixed priority
// chain over the analysis.
func PlaystyleDescription(a *team.Analysis) string {
	m := a.Mechanics

	if m["stun"] >= 4 && a.Roles.Control >= 2 {
		return "Control Lock: Disable enemies and dictate pace"
	}
	if m["setup"] > 0 && m["immunity"] > 0 {
		return "Setup Archetype: Safe buffing into explosive payoff"
	}
	if a.Tempo.EstimatedKillTurns != nil && *a.Tempo.EstimatedKillTurns <= 3 {
		return "Aggressive Rush: Fast burst damage for quick wins"
	}
	if m["punisher"] > 0 && a.Roles.Control >= 1 {
		return "Trap & Punish: Force enemies into bad choices"
	}
	if a.Roles.DPS >= 2 && a.Tempo.PressureRating >= 80 {
		return "High Pressure DPS: Constant damage output"
	}
	if a.Roles.Tank+a.Roles.Support >= 2 {
		return "Sustain & Survive: Outlast enemies with defense"
	}
	return "Balanced Composition: Flexible strategy"
}
