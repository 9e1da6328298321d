package charts

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/arenalab/arena-advisor/internal/team"
)

// reportMechanics are the mechanic buckets shown on the report bar
// chart, in display order.
var reportMechanics = []string{
	"stun", "aoe", "stacking", "antiTank", "cleanse", "sustain",
	"statusShield", "immunity", "counter", "energyGen", "setup", "punisher",
}

// RenderTeamReport writes a single HTML page with the synergy breakdown,
// mechanic coverage, energy distribution, and role radar for a team.
func RenderTeamReport(analysis *team.Analysis, memberNames []string, outputPath string) error {
	if analysis == nil {
		return fmt.Errorf("no analysis provided")
	}

	title := strings.Join(memberNames, " / ")
	page := components.NewPage()
	page.SetPageTitle("Team Report")

	breakdownCfg := DefaultChartConfig()
	breakdownCfg.Title = "Synergy Breakdown"
	breakdownCfg.Subtitle = fmt.Sprintf("%s — score %d", title, analysis.SynergyScore)
	breakdown := []DataPoint{
		{Label: "Roles", Value: analysis.Breakdown.Role},
		{Label: "Mechanics", Value: analysis.Breakdown.Mechanic},
		{Label: "Coverage", Value: analysis.Breakdown.Coverage},
		{Label: "Combos", Value: analysis.Breakdown.Combo},
		{Label: "Pressure", Value: analysis.Breakdown.Pressure},
		{Label: "Energy Penalty", Value: -analysis.Breakdown.EnergyPenalty},
	}
	page.AddCharts(newBarChart(breakdown, "Points", breakdownCfg))

	mechanicCfg := DefaultChartConfig()
	mechanicCfg.Title = "Mechanic Coverage"
	var mechanics []DataPoint
	for _, key := range reportMechanics {
		mechanics = append(mechanics, DataPoint{Label: key, Value: analysis.Mechanics[key]})
	}
	page.AddCharts(newBarChart(mechanics, "Count", mechanicCfg))

	energyCfg := DefaultChartConfig()
	energyCfg.Title = "Energy Distribution"
	var energy []DataPoint
	for _, color := range []string{"green", "red", "blue", "white", "black"} {
		if count := analysis.EnergyDistribution[color]; count > 0 {
			energy = append(energy, DataPoint{Label: color, Value: float64(count)})
		}
	}
	if len(energy) > 0 {
		page.AddCharts(newPieChart(energy, "Energy", energyCfg))
	}

	roleCfg := DefaultChartConfig()
	roleCfg.Title = "Role Balance"
	roles := []DataPoint{
		{Label: "DPS", Value: analysis.Roles.DPS},
		{Label: "Tank", Value: analysis.Roles.Tank},
		{Label: "Support", Value: analysis.Roles.Support},
		{Label: "Control", Value: analysis.Roles.Control},
	}
	page.AddCharts(newRadarChart(roles, "Roles", 6, roleCfg))

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	return nil
}
