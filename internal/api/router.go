package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arenalab/arena-advisor/internal/api/handlers"
	"github.com/arenalab/arena-advisor/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	// WebSocket endpoint (no JSON content-type requirement)
	s.router.Get("/ws", s.wsHub.ServeWs)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		advisorHandler := handlers.NewAdvisorHandler(s.service)

		r.Route("/characters", func(r chi.Router) {
			r.Get("/", advisorHandler.ListCharacters)
			r.Get("/{characterID}", advisorHandler.GetCharacter)
			r.Get("/{characterID}/analysis", advisorHandler.AnalyzeCharacter)
			r.Get("/{characterID}/partners", advisorHandler.GetPartners)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Post("/analyze", advisorHandler.AnalyzeTeam)
			r.Post("/suggestions", advisorHandler.GetSuggestions)
			r.Post("/counters", advisorHandler.GetCounters)
			r.Post("/meta", advisorHandler.GenerateMetaTeams)
		})

		r.Put("/owned", advisorHandler.SetOwned)
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"service":    "arena-advisor-api",
		"characters": s.service.KnowledgeSize(),
	})
}
