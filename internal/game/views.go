package game

import (
	"math"
	"sort"

	"github.com/cjbarker/trivia-app/internal/domain"
)

// CurrentQuestion builds the team-scoped view of the current question.
// The correct answer is revealed only to teams that already answered.
func (g *Game) CurrentQuestion(teamID string) (domain.QuestionView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.teams[teamID]
	if !ok {
		return domain.QuestionView{}, domain.ErrTeamNotFound
	}
	if g.current >= len(g.questions) {
		return domain.QuestionView{}, domain.ErrNoCurrentQuestion
	}
	return g.questionViewLocked(t), nil
}

// Status builds the admin projection: full question details, timer
// snapshot, per-team answer breakdown, and completion stats.
func (g *Game) Status() domain.GameStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.statusLocked()
}

// Scoreboard lists teams by score, descending. Ties keep creation order.
func (g *Game) Scoreboard() []domain.ScoreboardEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scoreboardLocked()
}

func (g *Game) questionViewLocked(t *team) domain.QuestionView {
	question := g.questions[g.current]
	view := domain.QuestionView{
		Number:  g.current + 1,
		Total:   len(g.questions),
		Text:    question.Text,
		Type:    question.Type,
		Options: question.Options,
		Timer:   g.timerSnapshotLocked(),
	}
	if submitted, ok := t.answers[g.current]; ok {
		view.AlreadyAnswered = true
		view.SubmittedAnswer = submitted
		view.CorrectAnswer = question.CorrectAnswer
	}
	return view
}

func (g *Game) statusLocked() domain.GameStatus {
	status := domain.GameStatus{
		Started:         g.started,
		Paused:          g.paused,
		CurrentQuestion: g.current + 1,
		TotalQuestions:  len(g.questions),
		TeamCount:       len(g.teams),
		Teams:           make([]domain.TeamAnswerStatus, 0, len(g.teams)),
	}

	var question *domain.Question
	if g.current < len(g.questions) {
		q := g.questions[g.current]
		question = &q
		snap := g.timerSnapshotLocked()
		status.Timer = &snap
	}
	status.Question = question

	for _, id := range g.teamOrder {
		t := g.teams[id]
		entry := domain.TeamAnswerStatus{
			TeamID:   id,
			TeamName: t.name,
			Score:    t.score,
		}
		if question != nil {
			if answer, ok := t.answers[g.current]; ok {
				entry.Answered = true
				entry.Answer = answer
				entry.Correct = answersMatch(answer, question.CorrectAnswer)
				status.TeamsAnswered++
				if entry.Correct {
					status.CorrectAnswers++
				}
			}
		}
		status.Teams = append(status.Teams, entry)
	}

	// Percentage is defined as 0 with no teams; no division by zero.
	if len(g.teams) > 0 {
		status.CompletionPercentage = int(math.Round(100 * float64(status.TeamsAnswered) / float64(len(g.teams))))
	}
	return status
}

func (g *Game) timerSnapshotLocked() domain.TimerSnapshot {
	now := g.now()
	return domainTimerSnapshot(
		g.timer.remaining(now),
		BonusPoints(g.timer.elapsed(now)),
		g.timer.running,
	)
}

func domainTimerSnapshot(remaining float64, bonus int, running bool) domain.TimerSnapshot {
	return domain.TimerSnapshot{
		TimeRemaining: math.Round(remaining*10) / 10,
		BonusPoints:   bonus,
		Running:       running,
	}
}

func (g *Game) teamsLocked() []domain.TeamSummary {
	out := make([]domain.TeamSummary, 0, len(g.teams))
	for _, id := range g.teamOrder {
		t := g.teams[id]
		out = append(out, domain.TeamSummary{
			ID:          id,
			Name:        t.name,
			Players:     append([]string(nil), t.players...),
			Score:       t.score,
			PlayerCount: len(t.players),
		})
	}
	return out
}

func (g *Game) scoreboardLocked() []domain.ScoreboardEntry {
	entries := make([]domain.ScoreboardEntry, 0, len(g.teams))
	for _, id := range g.teamOrder {
		t := g.teams[id]
		entries = append(entries, domain.ScoreboardEntry{
			TeamName: t.name,
			Score:    t.score,
			Players:  append([]string(nil), t.players...),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}
