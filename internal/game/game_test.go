package game

import (
	"errors"
	"testing"
	"time"

	"github.com/cjbarker/trivia-app/internal/domain"
)

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Text:          "What is the capital of France?",
			Type:          domain.MultipleChoice,
			Options:       []string{"Paris", "London", "Berlin", "Madrid"},
			CorrectAnswer: "Paris",
		},
		{
			Text:          "What is the capital of England?",
			Type:          domain.FillInBlank,
			CorrectAnswer: "London",
		},
		{
			Text:          "What is the capital of Germany?",
			Type:          domain.FillInBlank,
			CorrectAnswer: "Berlin",
		},
	}
}

func newTestGame() (*Game, *fakeClock) {
	clock := newFakeClock()
	return NewWithClock(sampleQuestions(), time.Minute, clock.now), clock
}

func TestCreateAndJoinTeam(t *testing.T) {
	g, _ := newTestGame()

	teamID := g.CreateTeam("Red", "Ann")
	if teamID == "" {
		t.Fatalf("expected a team id")
	}
	if err := g.JoinTeam(teamID, "Bob"); err != nil {
		t.Fatalf("join: %v", err)
	}

	teams := g.Teams()
	if len(teams) != 1 {
		t.Fatalf("expected 1 team, got %d", len(teams))
	}
	if teams[0].PlayerCount != 2 {
		t.Fatalf("expected player count 2, got %d", teams[0].PlayerCount)
	}
}

func TestJoinUnknownTeam(t *testing.T) {
	g, _ := newTestGame()
	if err := g.JoinTeam("nope", "Ann"); !errors.Is(err, domain.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestJoinIsIdempotentForMembers(t *testing.T) {
	g, _ := newTestGame()
	teamID := g.CreateTeam("Red", "Ann")

	if err := g.JoinTeam(teamID, "Ann"); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	teams := g.Teams()
	if len(teams[0].Players) != 1 {
		t.Fatalf("roster must not contain duplicates: %v", teams[0].Players)
	}
}

func TestPlayerBelongsToOneTeam(t *testing.T) {
	g, _ := newTestGame()

	g.CreateTeam("Red", "Ann")
	blue := g.CreateTeam("Blue", "Bob")

	if err := g.JoinTeam(blue, "Ann"); err != nil {
		t.Fatalf("join: %v", err)
	}

	// Ann was Red's only player, so Red is gone and Ann is on Blue.
	if id, ok := g.FindPlayerTeam("Ann"); !ok || id != blue {
		t.Fatalf("Ann on team %q, want %q", id, blue)
	}
	teams := g.Teams()
	if len(teams) != 1 {
		t.Fatalf("emptied team must be deleted, got %d teams", len(teams))
	}
}

func TestLeaveTeamDeletesEmptyTeam(t *testing.T) {
	g, _ := newTestGame()
	teamID := g.CreateTeam("Red", "Ann")

	if err := g.LeaveTeam(teamID, "Ann"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if len(g.Teams()) != 0 {
		t.Fatalf("expected no teams after roster emptied")
	}

	if err := g.LeaveTeam(teamID, "Ann"); !errors.Is(err, domain.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestLeaveTeamUnknownPlayer(t *testing.T) {
	g, _ := newTestGame()
	teamID := g.CreateTeam("Red", "Ann")
	if err := g.LeaveTeam(teamID, "Zed"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestSubmitAnswerQuickBonus(t *testing.T) {
	g, clock := newTestGame()
	teamID := g.CreateTeam("Red", "Ann")

	g.Start()
	clock.advance(time.Second)

	result, err := g.SubmitAnswer(teamID, "Paris")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Correct {
		t.Fatalf("expected correct answer")
	}
	if result.BonusPoints != 6 {
		t.Fatalf("bonus = %d, want 6", result.BonusPoints)
	}
	if result.PointsEarned != 7 {
		t.Fatalf("points = %d, want 7", result.PointsEarned)
	}
	if result.TeamScore != 7 {
		t.Fatalf("team score = %d, want 7", result.TeamScore)
	}
	if result.AnswerTime != 1 {
		t.Fatalf("answer time = %v, want 1", result.AnswerTime)
	}
}

func TestSubmitAnswerOncePerQuestion(t *testing.T) {
	g, clock := newTestGame()
	teamID := g.CreateTeam("Red", "Ann")
	g.Start()

	if _, err := g.SubmitAnswer(teamID, "Paris"); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	clock.advance(3 * time.Second)
	if _, err := g.SubmitAnswer(teamID, "London"); !errors.Is(err, domain.ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}

	// Neither the score nor the stored answer may change.
	teams := g.Teams()
	if teams[0].Score != 7 {
		t.Fatalf("score changed on duplicate submit: %d", teams[0].Score)
	}
	view, err := g.CurrentQuestion(teamID)
	if err != nil {
		t.Fatalf("current question: %v", err)
	}
	if !view.AlreadyAnswered || view.SubmittedAnswer != "Paris" {
		t.Fatalf("stored answer changed: %+v", view)
	}
}

func TestSubmitWrongAnswerEarnsNothing(t *testing.T) {
	g, _ := newTestGame()
	teamID := g.CreateTeam("Red", "Ann")
	g.Start()

	result, err := g.SubmitAnswer(teamID, "London")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Correct || result.PointsEarned != 0 || result.BonusPoints != 0 {
		t.Fatalf("wrong answer must earn nothing: %+v", result)
	}
	if result.CorrectAnswer != "Paris" {
		t.Fatalf("expected reveal of correct answer, got %q", result.CorrectAnswer)
	}
}

func TestSubmitWithoutTimerGetsZeroBonus(t *testing.T) {
	g, _ := newTestGame()
	teamID := g.CreateTeam("Red", "Ann")

	// Game never started: elapsed defaults to the full duration.
	result, err := g.SubmitAnswer(teamID, "Paris")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.BonusPoints != 0 || result.PointsEarned != 1 {
		t.Fatalf("expected 1 point with no bonus, got %+v", result)
	}
}

func TestSubmitAnswerUnknownTeam(t *testing.T) {
	g, _ := newTestGame()
	if _, err := g.SubmitAnswer("nope", "Paris"); !errors.Is(err, domain.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestSetQuestionPreservesRecordedAnswer(t *testing.T) {
	g, clock := newTestGame()
	teamID := g.CreateTeam("Red", "Ann")
	g.Start()

	if _, err := g.SubmitAnswer(teamID, "Paris"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	clock.advance(5 * time.Second)

	if err := g.SetQuestion(1); err != nil {
		t.Fatalf("set question 1: %v", err)
	}
	if err := g.SetQuestion(0); err != nil {
		t.Fatalf("set question 0: %v", err)
	}

	view, err := g.CurrentQuestion(teamID)
	if err != nil {
		t.Fatalf("current question: %v", err)
	}
	if !view.AlreadyAnswered || view.SubmittedAnswer != "Paris" {
		t.Fatalf("navigation must not disturb recorded answers: %+v", view)
	}
	if view.CorrectAnswer != "Paris" {
		t.Fatalf("answered team should see the correct answer")
	}
}

func TestSetQuestionRejectsInvalidIndex(t *testing.T) {
	g, _ := newTestGame()
	if err := g.SetQuestion(-1); !errors.Is(err, domain.ErrInvalidQuestionIndex) {
		t.Fatalf("expected ErrInvalidQuestionIndex, got %v", err)
	}
	if err := g.SetQuestion(3); !errors.Is(err, domain.ErrInvalidQuestionIndex) {
		t.Fatalf("expected ErrInvalidQuestionIndex, got %v", err)
	}
}

func TestNextQuestionTerminalState(t *testing.T) {
	g, _ := newTestGame()
	teamID := g.CreateTeam("Red", "Ann")
	g.Start()

	for i := 0; i < 3; i++ {
		if err := g.NextQuestion(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	// Index now equals len(questions): valid terminal state.
	if _, err := g.CurrentQuestion(teamID); !errors.Is(err, domain.ErrNoCurrentQuestion) {
		t.Fatalf("expected ErrNoCurrentQuestion, got %v", err)
	}
	if _, err := g.SubmitAnswer(teamID, "x"); !errors.Is(err, domain.ErrNoCurrentQuestion) {
		t.Fatalf("expected ErrNoCurrentQuestion on submit, got %v", err)
	}
	if err := g.NextQuestion(); !errors.Is(err, domain.ErrNoCurrentQuestion) {
		t.Fatalf("expected ErrNoCurrentQuestion past the end, got %v", err)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	g, clock := newTestGame()
	teamID := g.CreateTeam("Red", "Ann")

	g.Start()
	clock.advance(15 * time.Second)
	g.Start()

	status := g.Status()
	if !status.Started || status.Paused {
		t.Fatalf("expected started and unpaused, got %+v", status)
	}
	// Second start restarts the countdown for the current question.
	if status.Timer == nil || status.Timer.TimeRemaining != 60 {
		t.Fatalf("expected a fresh 60s countdown, got %+v", status.Timer)
	}

	if _, err := g.SubmitAnswer(teamID, "Paris"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if score := g.Teams()[0].Score; score != 7 {
		t.Fatalf("double start must not double-award: score %d", score)
	}
}

func TestPauseResumeFreezesClock(t *testing.T) {
	g, clock := newTestGame()
	g.CreateTeam("Red", "Ann")
	g.Start()

	clock.advance(10 * time.Second)
	if err := g.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	clock.advance(5 * time.Second)

	status := g.Status()
	if !status.Paused {
		t.Fatalf("expected paused status")
	}
	if status.Timer.TimeRemaining != 50 {
		t.Fatalf("remaining while paused = %v, want 50", status.Timer.TimeRemaining)
	}

	if err := g.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if got := g.Status().Timer.TimeRemaining; got != 50 {
		t.Fatalf("remaining after resume = %v, want 50", got)
	}
	clock.advance(10 * time.Second)
	if got := g.Status().Timer.TimeRemaining; got != 40 {
		t.Fatalf("remaining 10s after resume = %v, want 40", got)
	}
}

func TestPauseResumeRequireStartedGame(t *testing.T) {
	g, _ := newTestGame()
	if err := g.Pause(); !errors.Is(err, domain.ErrGameNotStarted) {
		t.Fatalf("expected ErrGameNotStarted, got %v", err)
	}
	if err := g.Resume(); !errors.Is(err, domain.ErrGameNotStarted) {
		t.Fatalf("expected ErrGameNotStarted, got %v", err)
	}
}

func TestStopReportsPausedAndClearsTimer(t *testing.T) {
	g, clock := newTestGame()
	g.Start()
	clock.advance(20 * time.Second)

	g.Stop()

	status := g.Status()
	if status.Started || !status.Paused {
		t.Fatalf("stopped game must report started=false paused=true: %+v", status)
	}
	if status.Timer.Running || status.Timer.TimeRemaining != 60 {
		t.Fatalf("stopped game must run no countdown: %+v", status.Timer)
	}
}

func TestAdminRenameTeam(t *testing.T) {
	g, _ := newTestGame()
	teamID := g.CreateTeam("Red", "Ann")

	if err := g.RenameTeam(teamID, "   "); !errors.Is(err, domain.ErrInvalidTeamName) {
		t.Fatalf("expected ErrInvalidTeamName, got %v", err)
	}
	if err := g.RenameTeam(teamID, "  Crimson  "); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got := g.Teams()[0].Name; got != "Crimson" {
		t.Fatalf("name = %q, want Crimson", got)
	}
	if err := g.RenameTeam("nope", "x"); !errors.Is(err, domain.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestAdminAddPlayerMigrates(t *testing.T) {
	g, _ := newTestGame()
	red := g.CreateTeam("Red", "Ann")
	blue := g.CreateTeam("Blue", "Bob")

	if err := g.AddPlayer(red, "Bob"); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if id, _ := g.FindPlayerTeam("Bob"); id != red {
		t.Fatalf("Bob should have migrated to Red")
	}
	// Blue emptied when Bob left, so it is gone.
	if err := g.JoinTeam(blue, "Cam"); !errors.Is(err, domain.ErrTeamNotFound) {
		t.Fatalf("expected Blue to be deleted, got %v", err)
	}
}

func TestAdminRemovePlayerReportsTeamDeletion(t *testing.T) {
	g, _ := newTestGame()
	teamID := g.CreateTeam("Red", "Ann")
	if err := g.JoinTeam(teamID, "Bob"); err != nil {
		t.Fatalf("join: %v", err)
	}

	deleted, err := g.RemovePlayer(teamID, "Bob")
	if err != nil || deleted {
		t.Fatalf("removal should not delete a non-empty team: deleted=%v err=%v", deleted, err)
	}
	deleted, err = g.RemovePlayer(teamID, "Ann")
	if err != nil || !deleted {
		t.Fatalf("removing the last player must delete the team: deleted=%v err=%v", deleted, err)
	}
}

func TestDeleteTeam(t *testing.T) {
	g, _ := newTestGame()
	teamID := g.CreateTeam("Red", "Ann")
	if err := g.DeleteTeam(teamID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := g.DeleteTeam(teamID); !errors.Is(err, domain.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestScoreboardSortedWithStableTies(t *testing.T) {
	g, _ := newTestGame()
	g.CreateTeam("Alpha", "Ann")
	beta := g.CreateTeam("Beta", "Bob")
	g.CreateTeam("Gamma", "Cam")
	g.Start()

	if _, err := g.SubmitAnswer(beta, "Paris"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	board := g.Scoreboard()
	if board[0].TeamName != "Beta" {
		t.Fatalf("expected Beta first, got %s", board[0].TeamName)
	}
	// Alpha and Gamma are tied at 0; creation order is the tiebreak.
	if board[1].TeamName != "Alpha" || board[2].TeamName != "Gamma" {
		t.Fatalf("tie order unstable: %s, %s", board[1].TeamName, board[2].TeamName)
	}
}

func TestStatusCompletionStats(t *testing.T) {
	g, _ := newTestGame()

	// No teams: percentage defined as zero, not a division error.
	if got := g.Status().CompletionPercentage; got != 0 {
		t.Fatalf("completion with no teams = %d, want 0", got)
	}

	red := g.CreateTeam("Red", "Ann")
	g.CreateTeam("Blue", "Bob")
	g.CreateTeam("Green", "Cam")
	g.Start()

	if _, err := g.SubmitAnswer(red, "Paris"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	status := g.Status()
	if status.TeamsAnswered != 1 || status.CorrectAnswers != 1 {
		t.Fatalf("stats wrong: %+v", status)
	}
	if status.CompletionPercentage != 33 {
		t.Fatalf("completion = %d, want 33", status.CompletionPercentage)
	}
	if status.Question == nil || status.Question.CorrectAnswer != "Paris" {
		t.Fatalf("admin status must include the correct answer")
	}
}

func TestSubscribeReceivesTeamAndScoreEvents(t *testing.T) {
	g, _ := newTestGame()
	events, cancel := g.Subscribe()
	defer cancel()

	teamID := g.CreateTeam("Red", "Ann")

	ev := <-events
	if ev.Type != EventTeamsUpdated {
		t.Fatalf("expected teams_updated, got %s", ev.Type)
	}
	teams, ok := ev.Payload.([]domain.TeamSummary)
	if !ok || len(teams) != 1 {
		t.Fatalf("unexpected payload: %+v", ev.Payload)
	}

	g.Start()
	drainUntil(t, events, EventNewQuestion)

	if _, err := g.SubmitAnswer(teamID, "Paris"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	drainUntil(t, events, EventScoreUpdate)
}

func drainUntil(t *testing.T, events <-chan Event, want EventType) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Type == want {
				return ev
			}
		case <-deadline:
			t.Fatalf("never received %s", want)
		}
	}
}
