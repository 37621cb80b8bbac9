package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cjbarker/trivia-app/internal/domain"
	"github.com/cjbarker/trivia-app/internal/game"
)

// Server exposes the game over REST commands and a websocket push
// channel.
type Server struct {
	game          *game.Game
	adminPassword string
}

func NewServer(g *game.Game, adminPassword string) *Server {
	return &Server{game: g, adminPassword: adminPassword}
}

type createTeamRequest struct {
	TeamName   string `json:"team_name"`
	PlayerName string `json:"player_name"`
}

type playerRequest struct {
	PlayerName string `json:"player_name"`
}

type answerRequest struct {
	TeamID string `json:"team_id"`
	Answer string `json:"answer"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type setQuestionRequest struct {
	QuestionNumber int `json:"question_number"` // 1-based, as displayed
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if !decode(w, r, &req) {
		return
	}
	if req.PlayerName == "" {
		badRequest(w, "player_name is required")
		return
	}
	teamID := s.game.CreateTeam(req.TeamName, req.PlayerName)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "team_id": teamID})
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.game.Teams())
}

func (s *Server) handleJoinTeam(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !decode(w, r, &req) {
		return
	}
	if req.PlayerName == "" {
		badRequest(w, "player_name is required")
		return
	}
	if err := s.game.JoinTeam(chi.URLParam(r, "teamID"), req.PlayerName); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleLeaveTeam(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.game.LeaveTeam(chi.URLParam(r, "teamID"), req.PlayerName); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleFindPlayerTeam(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "name")
	teamID, ok := s.game.FindPlayerTeam(player)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"has_team": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"has_team": true, "team_id": teamID})
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")
	view, err := s.game.CurrentQuestion(teamID)
	if errors.Is(err, domain.ErrNoCurrentQuestion) {
		// The sequence is exhausted; clients render the "no more
		// questions" terminal state from a null body.
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := s.game.SubmitAnswer(req.TeamID, req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"correct":        result.Correct,
		"points_earned":  result.PointsEarned,
		"bonus_points":   result.BonusPoints,
		"answer_time":    result.AnswerTime,
		"correct_answer": result.CorrectAnswer,
		"team_score":     result.TeamScore,
	})
}

func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.game.Scoreboard())
}

func (s *Server) handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.game.Status())
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	s.game.Start()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleStopGame(w http.ResponseWriter, r *http.Request) {
	s.game.Stop()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handlePauseGame(w http.ResponseWriter, r *http.Request) {
	if err := s.game.Pause(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleResumeGame(w http.ResponseWriter, r *http.Request) {
	if err := s.game.Resume(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	if err := s.game.NextQuestion(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleSetQuestion(w http.ResponseWriter, r *http.Request) {
	var req setQuestionRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.game.SetQuestion(req.QuestionNumber - 1); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleRenameTeam(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.game.RenameTeam(chi.URLParam(r, "teamID"), req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !decode(w, r, &req) {
		return
	}
	if req.PlayerName == "" {
		badRequest(w, "player_name is required")
		return
	}
	if err := s.game.AddPlayer(chi.URLParam(r, "teamID"), req.PlayerName); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.game.RemovePlayer(chi.URLParam(r, "teamID"), chi.URLParam(r, "player"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "team_deleted": deleted})
}

func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := s.game.DeleteTeam(chi.URLParam(r, "teamID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"error":   msg,
		"code":    "bad_request",
	})
}

// writeError maps domain errors to HTTP statuses while keeping a stable
// machine-readable code in the body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrQuestionSetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyAnswered):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   err.Error(),
		"code":    domain.ErrorCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}
