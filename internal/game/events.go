package game

// EventType identifies a broadcast event emitted by the game.
type EventType string

const (
	EventTeamsUpdated EventType = "teams_updated"
	EventNewQuestion  EventType = "new_question"
	EventScoreUpdate  EventType = "score_update"
	EventGameStatus   EventType = "game_status_update"
	EventGamePaused   EventType = "game_paused"
	EventGameResumed  EventType = "game_resumed"
	EventGameStopped  EventType = "game_stopped"
	EventTimerTick    EventType = "timer_tick"
	EventTimerExpired EventType = "timer_expired"
)

// Event is a broadcast-worthy state change. TeamID is set for
// team-scoped events (new_question carries a per-team answered flag);
// it is empty for events addressed to every client.
type Event struct {
	Type    EventType `json:"type"`
	TeamID  string    `json:"-"`
	Payload any       `json:"payload"`
}

// Subscribe returns a channel that receives game events. The caller
// must invoke the returned cancel function to avoid leaks.
func (g *Game) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 32)

	g.mu.Lock()
	g.subscribers[ch] = struct{}{}
	g.mu.Unlock()

	cancel := func() {
		g.mu.Lock()
		if _, ok := g.subscribers[ch]; ok {
			delete(g.subscribers, ch)
			close(ch)
		}
		g.mu.Unlock()
	}
	return ch, cancel
}

// publishLocked fans an event out to all subscribers. Slow subscribers
// lose their oldest pending event rather than blocking the game.
func (g *Game) publishLocked(ev Event) {
	for ch := range g.subscribers {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}
