package game

import (
	"math"
	"sync"
	"time"

	"github.com/cjbarker/trivia-app/internal/domain"
)

// team is the mutable registry entry behind the TeamSummary view.
type team struct {
	id      string
	name    string
	players []string
	score   int
	answers map[int]string // question index -> submitted answer, at most one entry
}

func (t *team) hasPlayer(name string) bool {
	for _, p := range t.players {
		if p == name {
			return true
		}
	}
	return false
}

func (t *team) removePlayer(name string) bool {
	for i, p := range t.players {
		if p == name {
			t.players = append(t.players[:i], t.players[i+1:]...)
			return true
		}
	}
	return false
}

// Game is the authoritative state of one trivia session: the question
// sequence, the team registry, the countdown timer, and the broadcast
// fan-out. One mutex serializes every mutation, including reads from the
// background tick loop.
//
// Player identity is name-based with no authentication; anyone typing
// the same name is the same player. That trust boundary is accepted, not
// papered over here.
type Game struct {
	mu  sync.Mutex
	now func() time.Time

	questions []domain.Question
	current   int
	started   bool
	paused    bool

	timer   *countdown
	tickGen int

	teams     map[string]*team
	teamOrder []string // creation order, the stable scoreboard tiebreak

	subscribers map[chan Event]struct{}
}

// New builds a game over an immutable question sequence. A non-positive
// duration falls back to DefaultQuestionDuration.
func New(questions []domain.Question, duration time.Duration) *Game {
	return NewWithClock(questions, duration, time.Now)
}

// NewWithClock allows deterministic time in tests.
func NewWithClock(questions []domain.Question, duration time.Duration, now func() time.Time) *Game {
	return &Game{
		now:         now,
		questions:   questions,
		timer:       newCountdown(duration),
		teams:       make(map[string]*team),
		subscribers: make(map[chan Event]struct{}),
	}
}

// Start begins (or restarts) the game and kicks off the countdown for
// whichever question is current. Calling it again while running simply
// restarts the current question's timer.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.started = true
	g.paused = false
	if g.current < len(g.questions) {
		g.timer.start(g.now())
		g.startTickingLocked()
	} else {
		g.timer.stop()
		g.stopTickingLocked()
	}
	g.publishLocked(Event{Type: EventGameStatus, Payload: g.statusLocked()})
	g.publishQuestionLocked()
}

// Stop ends the game. A stopped game reports paused=true and runs no
// countdown.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.started = false
	g.paused = true
	g.timer.stop()
	g.stopTickingLocked()
	g.publishLocked(Event{Type: EventGameStatus, Payload: g.statusLocked()})
	g.publishLocked(Event{Type: EventGameStopped, Payload: map[string]any{
		"scoreboard": g.scoreboardLocked(),
	}})
}

// Pause freezes the countdown. Only valid while the game is started.
func (g *Game) Pause() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.started {
		return domain.ErrGameNotStarted
	}
	g.paused = true
	g.timer.pause(g.now())
	g.stopTickingLocked()
	g.publishLocked(Event{Type: EventGameStatus, Payload: g.statusLocked()})
	g.publishLocked(Event{Type: EventGamePaused, Payload: map[string]any{
		"message": "Game has been paused by the administrator",
	}})
	return nil
}

// Resume continues a paused countdown from the elapsed time captured at
// pause. Only valid while the game is started.
func (g *Game) Resume() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.started {
		return domain.ErrGameNotStarted
	}
	g.paused = false
	if g.timer.paused {
		g.timer.resume(g.now())
		g.startTickingLocked()
	}
	g.publishLocked(Event{Type: EventGameStatus, Payload: g.statusLocked()})
	g.publishLocked(Event{Type: EventGameResumed, Payload: map[string]any{
		"message": "Game has been resumed",
	}})
	g.publishQuestionLocked()
	return nil
}

// NextQuestion advances the question pointer. Landing one past the last
// question is the terminal "no more questions" state; advancing again
// from there fails. A fresh countdown starts only while the game is
// running and unpaused.
func (g *Game) NextQuestion() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current >= len(g.questions) {
		return domain.ErrNoCurrentQuestion
	}
	g.current++
	if g.current < len(g.questions) && g.started && !g.paused {
		g.timer.start(g.now())
		g.startTickingLocked()
	} else {
		g.timer.stop()
		g.stopTickingLocked()
	}
	g.publishLocked(Event{Type: EventGameStatus, Payload: g.statusLocked()})
	g.publishQuestionLocked()
	return nil
}

// SetQuestion jumps to an arbitrary valid index. It never restarts the
// countdown; jumping back to an answered question must still show the
// originally recorded answer against the original clock.
func (g *Game) SetQuestion(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if index < 0 || index >= len(g.questions) {
		return domain.ErrInvalidQuestionIndex
	}
	g.current = index
	g.publishLocked(Event{Type: EventGameStatus, Payload: g.statusLocked()})
	g.publishQuestionLocked()
	return nil
}

// SubmitAnswer records a team's answer for the current question and
// awards points. A second submission for the same question is rejected
// and changes nothing.
func (g *Game) SubmitAnswer(teamID, answer string) (domain.AnswerResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.teams[teamID]
	if !ok {
		return domain.AnswerResult{}, domain.ErrTeamNotFound
	}
	if g.current >= len(g.questions) {
		return domain.AnswerResult{}, domain.ErrNoCurrentQuestion
	}
	if _, answered := t.answers[g.current]; answered {
		return domain.AnswerResult{}, domain.ErrAlreadyAnswered
	}

	question := g.questions[g.current]
	elapsed := math.Round(g.timer.elapsed(g.now())*10) / 10
	bonus := BonusPoints(elapsed)
	correct := answersMatch(answer, question.CorrectAnswer)
	points := Score(correct, bonus)

	t.answers[g.current] = answer
	g.timer.recordAnswerTime(g.current, teamID, elapsed)
	t.score += points

	result := domain.AnswerResult{
		Correct:       correct,
		PointsEarned:  points,
		BonusPoints:   bonus,
		AnswerTime:    elapsed,
		CorrectAnswer: question.CorrectAnswer,
		TeamScore:     t.score,
	}
	if !correct {
		result.BonusPoints = 0
	}
	g.publishLocked(Event{Type: EventScoreUpdate, Payload: g.scoreboardLocked()})
	return result, nil
}

// publishQuestionLocked sends each team its own view of the current
// question. Nothing is sent once the sequence is exhausted.
func (g *Game) publishQuestionLocked() {
	if g.current >= len(g.questions) {
		return
	}
	for _, id := range g.teamOrder {
		g.publishLocked(Event{
			Type:    EventNewQuestion,
			TeamID:  id,
			Payload: g.questionViewLocked(g.teams[id]),
		})
	}
}
