package recommend

import (
	"fmt"

	"github.com/arenalab/arena-advisor/internal/knowledge"
	"github.com/arenalab/arena-advisor/internal/profile"
	"github.com/arenalab/arena-advisor/internal/roster"
)

// RecommendPartnersForMain ranks every valid candidate by pairwise fit
// with the main character, descending. Candidates without a profile
// score zero and sink to the bottom rather than being dropped.
func (r *Recommender) RecommendPartnersForMain(main roster.Character, all []roster.Character, owned roster.OwnedFilter, maxResults int) []PartnerSuggestion {
	var suggestions []PartnerSuggestion
	for _, candidate := range candidates(all, []roster.Character{main}, owned) {
		score, notes := r.ScorePartnerFit(main, candidate)
		suggestions = append(suggestions, PartnerSuggestion{
			Character: candidate,
			Score:     score,
			Notes:     notes,
		})
	}

	sortByScore(suggestions, func(s PartnerSuggestion) float64 { return s.Score })
	return truncate(suggestions, maxResults)
}

// Partner-fit bonuses. Dependency matches dominate because curated data
// identifies real combo lines; everything else is heuristic.
const (
	bonusOffensiveProtector = 30
	bonusOffensiveStaller   = 25
	bonusOffensiveDisruptor = 20
	bonusOffensiveEnabler   = 25
	bonusSupportOffense     = 30
	bonusDisruptorFollowup  = 28

	bonusDependencyMatch = 50
	bonusHookMatch       = 35

	bonusEnablerForHungry   = 30
	bonusProtectorForCannon = 30
	bonusStallerDotPair     = 25

	penaltySpamColorConflict = 25
	bonusNewColor            = 5
	bonusNewSpammableColor   = 10
	penaltySharedHeavyColor  = 10
)

// ScorePartnerFit scores how well candidate complements main, with one
// note per triggered rule. Either character lacking a profile yields a
// zero score.
func (r *Recommender) ScorePartnerFit(main, candidate roster.Character) (float64, []string) {
	em := r.entry(main)
	ec := r.entry(candidate)
	if em.Profile == nil || ec.Profile == nil {
		return 0, nil
	}

	score := 0.0
	var notes []string
	addBonus := func(points float64, note string) {
		score += points
		notes = append(notes, note)
	}

	mainRole := em.Granular.Dominant()
	candRole := ec.Granular.Dominant()

	if profile.Offensive(mainRole) {
		switch candRole {
		case profile.RoleProtector:
			addBonus(bonusOffensiveProtector, fmt.Sprintf("%s protects %s's offense", candidate.Name, main.Name))
		case profile.RoleStaller:
			addBonus(bonusOffensiveStaller, fmt.Sprintf("%s buys time for %s", candidate.Name, main.Name))
		case profile.RoleDisruptor:
			addBonus(bonusOffensiveDisruptor, fmt.Sprintf("%s disrupts enemies while %s deals damage", candidate.Name, main.Name))
		case profile.RoleEnabler:
			addBonus(bonusOffensiveEnabler, fmt.Sprintf("%s fuels %s's skills", candidate.Name, main.Name))
		}
	}
	if (mainRole == profile.RoleProtector || mainRole == profile.RoleEnabler) && profile.Offensive(candRole) {
		addBonus(bonusSupportOffense, fmt.Sprintf("%s supplies the offense %s supports", candidate.Name, main.Name))
	}
	if mainRole == profile.RoleDisruptor && (candRole == profile.RoleNuker || candRole == profile.RoleDotSpecialist) {
		addBonus(bonusDisruptorFollowup, fmt.Sprintf("%s capitalizes on %s's control", candidate.Name, main.Name))
	}

	if em.Dependencies != nil && ec.Dependencies != nil {
		score += r.scoreDependencies(em, ec, main.Name, candidate.Name, &notes)
	} else {
		score += scoreHookFallback(em.Profile, ec.Profile, main.Name, candidate.Name, &notes)
	}

	if em.Profile.IsEnergyHungry && candRole == profile.RoleEnabler {
		addBonus(bonusEnablerForHungry, fmt.Sprintf("%s generates energy for %s's expensive skills", candidate.Name, main.Name))
	}
	if ec.Profile.IsEnergyHungry && mainRole == profile.RoleEnabler {
		addBonus(bonusEnablerForHungry, fmt.Sprintf("%s generates energy for %s's expensive skills", main.Name, candidate.Name))
	}

	if em.Profile.IsGlassCannon && candRole == profile.RoleProtector {
		addBonus(bonusProtectorForCannon, fmt.Sprintf("%s keeps glass cannon %s alive", candidate.Name, main.Name))
	}
	if ec.Profile.IsGlassCannon && mainRole == profile.RoleProtector {
		addBonus(bonusProtectorForCannon, fmt.Sprintf("%s keeps glass cannon %s alive", main.Name, candidate.Name))
	}

	if (mainRole == profile.RoleStaller && candRole == profile.RoleDotSpecialist) ||
		(mainRole == profile.RoleDotSpecialist && candRole == profile.RoleStaller) {
		addBonus(bonusStallerDotPair, "Damage over time stacks while the staller holds the line")
	}

	score += scoreEnergyFit(main, candidate, em.Profile, ec.Profile, &notes)

	return score, notes
}

// scoreDependencies awards curated needs/creates matches in both
// directions. A need is unmet only if the character cannot satisfy it
// itself.
func (r *Recommender) scoreDependencies(em, ec *knowledge.Entry, mainName, candName string, notes *[]string) float64 {
	score := 0.0
	for need := range em.Dependencies.Needs {
		if em.Dependencies.Creates[need] {
			continue
		}
		if ec.Dependencies.Creates[need] {
			score += bonusDependencyMatch
			*notes = append(*notes, fmt.Sprintf("%s applies %s for %s's combo", candName, need, mainName))
		}
	}
	for need := range ec.Dependencies.Needs {
		if ec.Dependencies.Creates[need] {
			continue
		}
		if em.Dependencies.Creates[need] {
			score += bonusDependencyMatch
			*notes = append(*notes, fmt.Sprintf("%s applies %s for %s's combo", mainName, need, candName))
		}
	}
	return score
}

// scoreHookFallback is the legacy text-hook pairing used when curated
// dependency data is missing on either side.
func scoreHookFallback(main, candidate *profile.Profile, mainName, candName string, notes *[]string) float64 {
	score := 0.0
	if main.Hooks.NeedsStunnedTarget && candidate.Hooks.CreatesStun {
		score += bonusHookMatch
		*notes = append(*notes, fmt.Sprintf("%s stuns for %s's combo", candName, mainName))
	}
	if main.Hooks.NeedsMarkedTarget && candidate.Hooks.CreatesMark {
		score += bonusHookMatch
		*notes = append(*notes, fmt.Sprintf("%s marks targets for %s's payoff", candName, mainName))
	}
	if candidate.Hooks.NeedsStunnedTarget && main.Hooks.CreatesStun {
		score += bonusHookMatch
		*notes = append(*notes, fmt.Sprintf("%s stuns for %s's combo", mainName, candName))
	}
	if candidate.Hooks.NeedsMarkedTarget && main.Hooks.CreatesMark {
		score += bonusHookMatch
		*notes = append(*notes, fmt.Sprintf("%s marks targets for %s's payoff", mainName, candName))
	}
	return score
}

// scoreEnergyFit applies the color conflict/complement heuristic: two
// characters fighting over the same spammable color is a real cost,
// while bringing an uncontested color is a small benefit.
func scoreEnergyFit(main, candidate roster.Character, pm, pc *profile.Profile, notes *[]string) float64 {
	spam := spammableColors(main)
	used := usedColors(pm)

	score := 0.0
	conflictNoted := false
	diversifyNoted := false

	for _, skill := range candidate.Skills {
		colors := costColors(skill)
		if len(colors) == 0 {
			continue
		}

		overlapsSpam := false
		allNew := true
		for _, color := range colors {
			if spam[color] {
				overlapsSpam = true
			}
			if used[color] {
				allNew = false
			}
		}

		if overlapsSpam && skill.Cooldown == 0 {
			score -= penaltySpamColorConflict
			if !conflictNoted {
				*notes = append(*notes, fmt.Sprintf("Competes with %s for the same spammable energy", main.Name))
				conflictNoted = true
			}
		}
		if allNew {
			score += bonusNewColor
			if skill.Cooldown == 0 {
				score += bonusNewSpammableColor
			}
			if !diversifyNoted {
				*notes = append(*notes, fmt.Sprintf("Brings energy colors %s does not use", main.Name))
				diversifyNoted = true
			}
		}
	}

	for _, color := range []string{"green", "red", "blue", "white"} {
		if pm.Energy.Colors[color] >= 2 && pc.Energy.Colors[color] >= 2 {
			score -= penaltySharedHeavyColor
			*notes = append(*notes, fmt.Sprintf("Both lean heavily on %s energy", color))
		}
	}

	return score
}

// spammableColors returns the colors main can spend on zero-cooldown
// skills.
func spammableColors(c roster.Character) map[string]bool {
	spam := make(map[string]bool)
	for _, skill := range c.Skills {
		if skill.Cooldown != 0 {
			continue
		}
		for _, color := range costColors(skill) {
			spam[color] = true
		}
	}
	return spam
}

func usedColors(p *profile.Profile) map[string]bool {
	used := make(map[string]bool)
	for color, count := range p.Energy.Colors {
		if color == "black" {
			continue
		}
		if count > 0 {
			used[color] = true
		}
	}
	return used
}

// costColors returns a skill's concrete cost colors, excluding free and
// random/placeholder tokens.
func costColors(s roster.Skill) []string {
	var colors []string
	for _, token := range s.Energy {
		switch token {
		case "none", "black", "random", "specific":
			continue
		}
		colors = append(colors, token)
	}
	return colors
}
