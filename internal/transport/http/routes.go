package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes builds the full router: public team/game routes, the websocket
// push channel, and the password-guarded admin surface.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/teams", s.handleCreateTeam)
		r.Get("/teams", s.handleListTeams)
		r.Post("/teams/{teamID}/join", s.handleJoinTeam)
		r.Post("/teams/{teamID}/leave", s.handleLeaveTeam)
		r.Get("/player/{name}/team", s.handleFindPlayerTeam)
		r.Get("/question", s.handleQuestion)
		r.Post("/answer", s.handleAnswer)
		r.Get("/scoreboard", s.handleScoreboard)
	})

	r.Route("/admin/api", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/status", s.handleAdminStatus)
		r.Post("/game/start", s.handleStartGame)
		r.Post("/game/stop", s.handleStopGame)
		r.Post("/game/pause", s.handlePauseGame)
		r.Post("/game/resume", s.handleResumeGame)
		r.Post("/next_question", s.handleNextQuestion)
		r.Post("/set_question", s.handleSetQuestion)
		r.Put("/teams/{teamID}/name", s.handleRenameTeam)
		r.Post("/teams/{teamID}/players", s.handleAddPlayer)
		r.Delete("/teams/{teamID}/players/{player}", s.handleRemovePlayer)
		r.Delete("/teams/{teamID}", s.handleDeleteTeam)
	})

	r.Get("/ws", s.handleWS)

	return r
}

// requireAdmin guards the admin surface with a shared password carried
// in the X-Admin-Password header. An empty configured password disables
// the admin API entirely.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		supplied := r.Header.Get("X-Admin-Password")
		if s.adminPassword == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(s.adminPassword)) != 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"error":   "admin authentication required",
				"code":    "unauthorized",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
