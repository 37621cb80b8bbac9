package domain

// QuestionType distinguishes how a question is presented and answered.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	FillInBlank    QuestionType = "fill_in_blank"
)

// Question is immutable once loaded. Options is empty for fill-in-blank.
type Question struct {
	Text          string       `json:"question_text"`
	Type          QuestionType `json:"question_type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
}

// QuestionSet is an ordered collection of questions identified by name.
type QuestionSet struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// TeamSummary is the public view of a team.
type TeamSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Players     []string `json:"players"`
	Score       int      `json:"score"`
	PlayerCount int      `json:"player_count"`
}

// TimerSnapshot reports the countdown state at a single instant.
type TimerSnapshot struct {
	TimeRemaining float64 `json:"time_remaining"`
	BonusPoints   int     `json:"bonus_points"`
	Running       bool    `json:"running"`
}

// QuestionView is the team-scoped projection of the current question.
// CorrectAnswer is only populated once the team has answered.
type QuestionView struct {
	Number          int           `json:"question_number"`
	Total           int           `json:"total_questions"`
	Text            string        `json:"question_text"`
	Type            QuestionType  `json:"question_type"`
	Options         []string      `json:"options"`
	AlreadyAnswered bool          `json:"already_answered"`
	SubmittedAnswer string        `json:"submitted_answer,omitempty"`
	CorrectAnswer   string        `json:"correct_answer,omitempty"`
	Timer           TimerSnapshot `json:"timer"`
}

// AnswerResult summarizes the outcome of a submission for one team.
type AnswerResult struct {
	Correct       bool    `json:"correct"`
	PointsEarned  int     `json:"points_earned"`
	BonusPoints   int     `json:"bonus_points"`
	AnswerTime    float64 `json:"answer_time"`
	CorrectAnswer string  `json:"correct_answer"`
	TeamScore     int     `json:"team_score"`
}

// ScoreboardEntry is one row of the score-ordered scoreboard.
type ScoreboardEntry struct {
	TeamName string   `json:"team_name"`
	Score    int      `json:"score"`
	Players  []string `json:"players"`
}

// TeamAnswerStatus is the admin-facing per-team breakdown for the
// current question.
type TeamAnswerStatus struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Answered bool   `json:"answered"`
	Answer   string `json:"answer,omitempty"`
	Correct  bool   `json:"correct"`
	Score    int    `json:"score"`
}

// GameStatus is the admin projection of the whole game.
type GameStatus struct {
	Started              bool               `json:"started"`
	Paused               bool               `json:"paused"`
	CurrentQuestion      int                `json:"current_question"` // 1-based for display
	TotalQuestions       int                `json:"total_questions"`
	Question             *Question          `json:"question,omitempty"`
	Timer                *TimerSnapshot     `json:"timer,omitempty"`
	TeamCount            int                `json:"team_count"`
	Teams                []TeamAnswerStatus `json:"teams"`
	TeamsAnswered        int                `json:"teams_answered"`
	CorrectAnswers       int                `json:"correct_answers"`
	CompletionPercentage int                `json:"completion_percentage"`
}
