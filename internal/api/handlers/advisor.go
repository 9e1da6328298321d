// Package handlers implements the HTTP handlers for the advisor API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/arenalab/arena-advisor/internal/advisor"
	"github.com/arenalab/arena-advisor/internal/api/response"
	"github.com/arenalab/arena-advisor/internal/meta"
	"github.com/arenalab/arena-advisor/internal/roster"
)

const defaultSuggestionCount = 5

// AdvisorHandler handles advisor API requests.
type AdvisorHandler struct {
	service *advisor.Service
}

// NewAdvisorHandler creates a new AdvisorHandler.
func NewAdvisorHandler(service *advisor.Service) *AdvisorHandler {
	return &AdvisorHandler{service: service}
}

// ListCharacters returns the roster, optionally filtered by a name
// substring via ?q=.
func (h *AdvisorHandler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	chars := h.service.Characters()

	if q := strings.ToLower(r.URL.Query().Get("q")); q != "" {
		var filtered []roster.Character
		for _, c := range chars {
			if strings.Contains(strings.ToLower(c.Name), q) {
				filtered = append(filtered, c)
			}
		}
		chars = filtered
	}

	if chars == nil {
		chars = []roster.Character{}
	}
	response.Success(w, chars)
}

// GetCharacter returns a single character by id.
func (h *AdvisorHandler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	id := roster.ID(chi.URLParam(r, "characterID"))

	c := h.service.Character(id)
	if c == nil {
		response.NotFound(w, fmt.Errorf("character %q not found", id))
		return
	}
	response.Success(w, c)
}

// AnalyzeCharacter returns the per-character profile analysis.
func (h *AdvisorHandler) AnalyzeCharacter(w http.ResponseWriter, r *http.Request) {
	id := roster.ID(chi.URLParam(r, "characterID"))

	analysis, err := h.service.AnalyzeCharacter(id)
	if err != nil {
		response.NotFound(w, err)
		return
	}
	response.Success(w, analysis)
}

// GetPartners returns build-around partners for one character.
func (h *AdvisorHandler) GetPartners(w http.ResponseWriter, r *http.Request) {
	id := roster.ID(chi.URLParam(r, "characterID"))
	count := queryCount(r, defaultSuggestionCount)

	partners, err := h.service.Partners(id, count)
	if err != nil {
		response.NotFound(w, err)
		return
	}
	response.Success(w, partners)
}

// TeamRequest identifies a team by character ids.
type TeamRequest struct {
	CharacterIDs []roster.ID `json:"characterIds"`
	Count        int         `json:"count,omitempty"`
}

// AnalyzeTeam analyzes a team composition.
func (h *AdvisorHandler) AnalyzeTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	analysis, err := h.service.AnalyzeTeam(req.CharacterIDs)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	response.Success(w, analysis)
}

// GetSuggestions returns teammate suggestions for a partial team.
func (h *AdvisorHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	count := req.Count
	if count <= 0 {
		count = defaultSuggestionCount
	}

	suggestions, err := h.service.Suggestions(req.CharacterIDs, count)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	response.Success(w, suggestions)
}

// CounterRequest identifies an enemy team and, optionally, the caller's
// current team.
type CounterRequest struct {
	EnemyIDs []roster.ID `json:"enemyIds"`
	TeamIDs  []roster.ID `json:"teamIds,omitempty"`
	Count    int         `json:"count,omitempty"`
}

// GetCounters returns counter picks against an enemy team.
func (h *AdvisorHandler) GetCounters(w http.ResponseWriter, r *http.Request) {
	var req CounterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	count := req.Count
	if count <= 0 {
		count = defaultSuggestionCount
	}

	counters, err := h.service.Counters(req.EnemyIDs, req.TeamIDs, count)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	response.Success(w, counters)
}

// GenerateMetaTeams returns the top generated compositions.
func (h *AdvisorHandler) GenerateMetaTeams(w http.ResponseWriter, r *http.Request) {
	var filters meta.Filters
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
			response.BadRequest(w, errors.New("invalid request body"))
			return
		}
	}

	response.Success(w, h.service.MetaTeams(filters))
}

// OwnedRequest replaces the owned-character filter.
type OwnedRequest struct {
	CharacterIDs []roster.ID `json:"characterIds"`
}

// SetOwned replaces the owned-character filter. An empty list clears it.
func (h *AdvisorHandler) SetOwned(w http.ResponseWriter, r *http.Request) {
	var req OwnedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	h.service.SetOwned(req.CharacterIDs)
	response.NoContent(w)
}

func queryCount(r *http.Request, fallback int) int {
	if raw := r.URL.Query().Get("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
