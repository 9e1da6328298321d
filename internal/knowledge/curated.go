package knowledge

import (
	"strings"

	"github.com/arenalab/arena-advisor/internal/roster"
)

// curatedClassMechanics maps a curated skill class tag to the mechanic
// keys it asserts. Curated data uses the manual's vocabulary, so the
// table covers both the fine-grained keys and the legacy buckets.
var curatedClassMechanics = map[string][]string{
	"stun":         {"stun"},
	"mental":       {"stun"},
	"affliction":   {"affliction", "stacking"},
	"dot":          {"dot", "stacking"},
	"piercing":     {"piercing", "antiTank"},
	"drain":        {"energyRemoval"},
	"heal":         {"heal", "sustain"},
	"cleanse":      {"cleanse"},
	"invulnerable": {"invulnerable"},
	"counter":      {"counter"},
	"reflect":      {"counter"},
	"energy":       {"energyGen"},
	"statusshield": {"statusShield"},
	"immunity":     {"immunity"},
	"invisible":    {"invisible"},
	"punisher":     {"punisher"},
	"setup":        {"setup"},
	"aoe":          {"aoe"},
	"burst":        {"burst"},
	"defense":      {"defense"},
}

// Synergy note types that express a requirement on the target or an ally.
var curatedNeedTypes = map[string]bool{
	"targethas": true,
	"allyhas":   true,
	"requires":  true,
}

// applyCurated overlays hand-curated mechanics onto an entry. Curated
// counts replace the derived value for every mechanic key the curated
// data mentions; keys it is silent about keep their derived values.
// Curated skills also contribute their class tags to the per-skill tag
// lists and yield the dependency needs/creates sets.
func applyCurated(e *Entry, curated *roster.CuratedMechanics) {
	counts := make(map[string]float64)
	deps := &Dependencies{
		Needs:   make(map[string]bool),
		Creates: make(map[string]bool),
	}

	for i, cs := range curated.Skills {
		for _, class := range cs.Classes {
			key := strings.ToLower(class)
			keys, ok := curatedClassMechanics[key]
			if !ok {
				continue
			}
			for _, k := range keys {
				counts[k]++
			}
			if i < len(e.SkillProfiles) {
				e.SkillProfiles[i].Tags = appendUnique(e.SkillProfiles[i].Tags, key)
			}
		}

		for _, syn := range cs.Synergies {
			if curatedNeedTypes[strings.ToLower(syn.Type)] && syn.Condition != "" {
				deps.Needs[strings.ToLower(syn.Condition)] = true
			}
		}
		for _, applied := range cs.Applies {
			if applied != "" {
				deps.Creates[strings.ToLower(applied)] = true
			}
		}
	}

	for k, v := range counts {
		e.Mechanics[k] = v
	}
	e.Dependencies = deps
}

func appendUnique(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
