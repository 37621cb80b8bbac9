package domain

import "errors"

var (
	// ErrTeamNotFound is returned when a team ID does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrPlayerNotFound is returned when a player is not on the given team.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrInvalidTeamName rejects blank or whitespace-only team names.
	ErrInvalidTeamName = errors.New("team name cannot be empty")
	// ErrInvalidQuestionIndex rejects out-of-range admin question jumps.
	ErrInvalidQuestionIndex = errors.New("invalid question index")
	// ErrNoCurrentQuestion indicates the question sequence is exhausted.
	ErrNoCurrentQuestion = errors.New("no current question")
	// ErrAlreadyAnswered enforces one answer per team per question.
	ErrAlreadyAnswered = errors.New("team has already answered this question")
	// ErrGameNotStarted rejects pause/resume before the game starts.
	ErrGameNotStarted = errors.New("game has not started")
	// ErrQuestionSetNotFound indicates question content could not be loaded.
	ErrQuestionSetNotFound = errors.New("question set not found")
)

// ErrorCode maps a domain error to a stable machine-readable kind for
// transport payloads. Unknown errors map to "internal".
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrTeamNotFound):
		return "team_not_found"
	case errors.Is(err, ErrPlayerNotFound):
		return "player_not_found"
	case errors.Is(err, ErrInvalidTeamName):
		return "invalid_team_name"
	case errors.Is(err, ErrInvalidQuestionIndex):
		return "invalid_question_index"
	case errors.Is(err, ErrNoCurrentQuestion):
		return "no_current_question"
	case errors.Is(err, ErrAlreadyAnswered):
		return "already_answered"
	case errors.Is(err, ErrGameNotStarted):
		return "game_not_started"
	case errors.Is(err, ErrQuestionSetNotFound):
		return "question_set_not_found"
	default:
		return "internal"
	}
}
