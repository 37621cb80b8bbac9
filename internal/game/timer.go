package game

import (
	"time"
)

// DefaultQuestionDuration is the countdown length used when no duration
// is configured.
const DefaultQuestionDuration = 60 * time.Second

// countdown tracks elapsed time for the current question. All access is
// serialized by the owning Game's mutex. States: idle (nothing running),
// running (startedAt set), paused (frozen elapsed preserved). Expiry is
// derived, not stored: a running countdown whose elapsed time passed the
// duration simply reports zero remaining.
type countdown struct {
	duration  time.Duration
	startedAt time.Time
	running   bool
	paused    bool
	frozen    time.Duration

	// answerTimes records elapsed seconds at submission, write-once per
	// (question, team). The write-once rule is enforced by SubmitAnswer
	// before anything reaches this map.
	answerTimes map[int]map[string]float64
}

func newCountdown(duration time.Duration) *countdown {
	if duration <= 0 {
		duration = DefaultQuestionDuration
	}
	return &countdown{
		duration:    duration,
		answerTimes: make(map[int]map[string]float64),
	}
}

// start begins a fresh countdown at now. Starting while already running
// restarts from zero; callers that want a no-op check running first.
func (c *countdown) start(now time.Time) {
	c.startedAt = now
	c.running = true
	c.paused = false
	c.frozen = 0
}

// pause freezes the elapsed time so a later resume continues the same
// countdown instead of restarting it.
func (c *countdown) pause(now time.Time) {
	if !c.running {
		return
	}
	c.frozen = now.Sub(c.startedAt)
	c.running = false
	c.paused = true
}

// resume continues a paused countdown, backdating the start point so
// elapsed time picks up where pause left it.
func (c *countdown) resume(now time.Time) {
	if !c.paused {
		return
	}
	c.startedAt = now.Add(-c.frozen)
	c.running = true
	c.paused = false
	c.frozen = 0
}

// stop returns the countdown to idle.
func (c *countdown) stop() {
	c.running = false
	c.paused = false
	c.frozen = 0
}

// elapsed reports seconds since the countdown started. Idle countdowns
// report the full duration, which yields a zero bonus for answers
// submitted when no timer was ever started.
func (c *countdown) elapsed(now time.Time) float64 {
	switch {
	case c.running:
		return now.Sub(c.startedAt).Seconds()
	case c.paused:
		return c.frozen.Seconds()
	default:
		return c.duration.Seconds()
	}
}

// remaining reports seconds left, clamped at zero. Idle countdowns
// report the full duration.
func (c *countdown) remaining(now time.Time) float64 {
	if !c.running && !c.paused {
		return c.duration.Seconds()
	}
	left := c.duration.Seconds() - c.elapsed(now)
	if left < 0 {
		return 0
	}
	return left
}

func (c *countdown) recordAnswerTime(questionIndex int, teamID string, elapsedSeconds float64) {
	times, ok := c.answerTimes[questionIndex]
	if !ok {
		times = make(map[string]float64)
		c.answerTimes[questionIndex] = times
	}
	times[teamID] = elapsedSeconds
}

// startTicking spawns the once-per-second tick loop. Each call bumps the
// generation counter so any loop from a previous question or a paused
// run observes the mismatch and stops rescheduling itself.
func (g *Game) startTickingLocked() {
	g.tickGen++
	gen := g.tickGen
	go g.tickLoop(gen)
}

// stopTickingLocked cancels any in-flight tick loop without starting a
// new one.
func (g *Game) stopTickingLocked() {
	g.tickGen++
}

func (g *Game) tickLoop(gen int) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.C {
		if !g.tick(gen) {
			return
		}
	}
}

// tick emits one timer update. It returns false once the loop should
// stop: a stale generation, a stopped or paused countdown, or expiry.
func (g *Game) tick(gen int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if gen != g.tickGen || !g.timer.running {
		return false
	}

	now := g.now()
	remaining := g.timer.remaining(now)
	snap := domainTimerSnapshot(remaining, BonusPoints(g.timer.elapsed(now)), true)
	if remaining <= 0 {
		snap.Running = false
		snap.BonusPoints = 0
		g.publishLocked(Event{Type: EventTimerExpired, Payload: snap})
		return false
	}
	g.publishLocked(Event{Type: EventTimerTick, Payload: snap})
	return true
}
