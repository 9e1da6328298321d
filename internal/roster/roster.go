// Package roster defines the character dataset consumed by the advisor
// engine: characters, skills, structured skill effects, and the curated
// mechanics annotations that override text-derived analysis.
package roster

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a character. Roster sources are inconsistent about whether
// ids are numbers or strings, so both unmarshal into the same type.
type ID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("parsing character id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("parsing character id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Cooldown is a skill cooldown in turns. Dataset files encode "no cooldown"
// as the string "None", an absent field, or 0.
type Cooldown int

// UnmarshalJSON accepts an integer or the string "None".
func (c *Cooldown) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("parsing cooldown: %w", err)
		}
		if s == "" || strings.EqualFold(s, "none") {
			*c = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("parsing cooldown %q: %w", s, err)
		}
		*c = Cooldown(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("parsing cooldown: %w", err)
	}
	*c = Cooldown(n)
	return nil
}

// ClassList is a skill's class tags. Sources encode this either as a
// comma-separated string ("Physical,Instant") or as a JSON array.
type ClassList string

// UnmarshalJSON accepts a string or an array of strings.
func (cl *ClassList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var parts []string
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("parsing classes: %w", err)
		}
		*cl = ClassList(strings.Join(parts, ","))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parsing classes: %w", err)
	}
	*cl = ClassList(s)
	return nil
}

// Contains reports whether the class list includes the given tag,
// case-insensitively.
func (cl ClassList) Contains(tag string) bool {
	return strings.Contains(strings.ToLower(string(cl)), strings.ToLower(tag))
}

// Character is one roster entry. Immutable from the engine's perspective.
type Character struct {
	ID      ID                `json:"id"`
	Name    string            `json:"name"`
	Skills  []Skill           `json:"skills"`
	Curated *CuratedMechanics `json:"trueMechanics,omitempty"`
}

// Skill is a single character skill. The description is free natural
// language and is the primary information source for the tagger.
type Skill struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Energy      []string      `json:"energy"`
	Classes     ClassList     `json:"classes"`
	Cooldown    Cooldown      `json:"cooldown"`
	Effects     *SkillEffects `json:"effects,omitempty"`
}

// SkillEffects is the optional structured effect record produced by the
// dataset builder. When present it is trusted over text parsing.
type SkillEffects struct {
	Damage  *DamageEffect           `json:"damage,omitempty"`
	Effects map[string]EffectDetail `json:"effects,omitempty"`
	Flags   EffectFlags             `json:"flags"`
	Cost    *CostDetail             `json:"cost,omitempty"`
}

// DamageEffect describes a skill's damage line.
type DamageEffect struct {
	Base        int    `json:"base"`
	Type        string `json:"type"`
	Conditional bool   `json:"conditional"`
}

// EffectDetail is one named non-damage effect (heal, stun, damageReduction...).
type EffectDetail struct {
	Amount   int `json:"amount"`
	Duration int `json:"duration"`
}

// EffectFlags are boolean qualifiers on a skill's damage profile.
type EffectFlags struct {
	IsBurst                bool `json:"isBurst"`
	IsDot                  bool `json:"isDot"`
	IsAoE                  bool `json:"isAoE"`
	IgnoresInvulnerability bool `json:"ignoresInvulnerability"`
	CannotBeCountered      bool `json:"cannotBeCountered"`
}

// CostDetail is a skill's total energy cost from structured data.
type CostDetail struct {
	Total int `json:"total"`
}

// CuratedMechanics is hand-curated per-skill mechanics data. When a
// character carries it, the knowledge base trusts it over anything
// derived from skill text.
type CuratedMechanics struct {
	Skills []CuratedSkill `json:"skills"`
}

// CuratedSkill annotates one skill with authoritative class tags, the
// conditions it depends on, and the conditions it applies to targets.
type CuratedSkill struct {
	Name      string        `json:"name,omitempty"`
	Classes   []string      `json:"classes,omitempty"`
	Synergies []SynergyNote `json:"synergies,omitempty"`
	Applies   []string      `json:"applies,omitempty"`
}

// SynergyNote records one dependency of a curated skill, e.g.
// {Type: "targetHas", Condition: "Stun"}.
type SynergyNote struct {
	Type      string `json:"type"`
	Condition string `json:"condition"`
}

// OwnedFilter restricts recommendations to characters a player owns.
// A nil filter means everything is owned.
type OwnedFilter map[ID]struct{}

// NewOwnedFilter builds a filter from an id list. An empty or nil list
// yields a nil filter, which treats every character as owned.
func NewOwnedFilter(ids []ID) OwnedFilter {
	if len(ids) == 0 {
		return nil
	}
	f := make(OwnedFilter, len(ids))
	for _, id := range ids {
		f[id] = struct{}{}
	}
	return f
}

// Owns reports whether the filter permits the given character.
func (f OwnedFilter) Owns(id ID) bool {
	if f == nil {
		return true
	}
	_, ok := f[id]
	return ok
}
