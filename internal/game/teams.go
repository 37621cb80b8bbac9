package game

import (
	"strings"

	"github.com/google/uuid"

	"github.com/cjbarker/trivia-app/internal/domain"
)

// CreateTeam allocates a new team with one founding player and returns
// its ID. The player is first evicted from any team they already belong
// to, so membership stays globally unique.
func (g *Game) CreateTeam(name, player string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.evictPlayerLocked(player)

	t := &team{
		id:      uuid.NewString(),
		name:    name,
		players: []string{player},
		answers: make(map[int]string),
	}
	g.teams[t.id] = t
	g.teamOrder = append(g.teamOrder, t.id)
	g.publishLocked(Event{Type: EventTeamsUpdated, Payload: g.teamsLocked()})
	return t.id
}

// JoinTeam adds a player to an existing team, evicting them from any
// prior team first. Joining a team you are already on is a no-op.
func (g *Game) JoinTeam(teamID, player string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.teams[teamID]
	if !ok {
		return domain.ErrTeamNotFound
	}
	if t.hasPlayer(player) {
		return nil
	}
	g.evictPlayerLocked(player)
	// Eviction can only have shrunk other teams; t is still registered.
	t.players = append(t.players, player)
	g.publishLocked(Event{Type: EventTeamsUpdated, Payload: g.teamsLocked()})
	return nil
}

// LeaveTeam removes a player from a team. A team whose roster empties is
// deleted as a side effect.
func (g *Game) LeaveTeam(teamID, player string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.teams[teamID]
	if !ok {
		return domain.ErrTeamNotFound
	}
	if !t.removePlayer(player) {
		return domain.ErrPlayerNotFound
	}
	if len(t.players) == 0 {
		g.deleteTeamLocked(teamID)
	}
	g.publishLocked(Event{Type: EventTeamsUpdated, Payload: g.teamsLocked()})
	return nil
}

// FindPlayerTeam reports which team a player belongs to, if any.
func (g *Game) FindPlayerTeam(player string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range g.teamOrder {
		if g.teams[id].hasPlayer(player) {
			return id, true
		}
	}
	return "", false
}

// Teams lists all teams in creation order.
func (g *Game) Teams() []domain.TeamSummary {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.teamsLocked()
}

// RenameTeam is the admin rename. Blank and whitespace-only names are
// rejected.
func (g *Game) RenameTeam(teamID, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidTeamName
	}
	t, ok := g.teams[teamID]
	if !ok {
		return domain.ErrTeamNotFound
	}
	t.name = name
	g.publishLocked(Event{Type: EventTeamsUpdated, Payload: g.teamsLocked()})
	return nil
}

// AddPlayer is the admin variant of JoinTeam: it silently migrates the
// player from any existing team, deleting that team if the move empties
// it.
func (g *Game) AddPlayer(teamID, player string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.teams[teamID]
	if !ok {
		return domain.ErrTeamNotFound
	}
	if t.hasPlayer(player) {
		return nil
	}
	g.evictPlayerLocked(player)
	t.players = append(t.players, player)
	g.publishLocked(Event{Type: EventTeamsUpdated, Payload: g.teamsLocked()})
	return nil
}

// RemovePlayer is the admin removal. It reports whether the removal
// emptied and therefore deleted the team.
func (g *Game) RemovePlayer(teamID, player string) (teamDeleted bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.teams[teamID]
	if !ok {
		return false, domain.ErrTeamNotFound
	}
	if !t.removePlayer(player) {
		return false, domain.ErrPlayerNotFound
	}
	if len(t.players) == 0 {
		g.deleteTeamLocked(teamID)
		teamDeleted = true
	}
	g.publishLocked(Event{Type: EventTeamsUpdated, Payload: g.teamsLocked()})
	return teamDeleted, nil
}

// DeleteTeam removes a team outright.
func (g *Game) DeleteTeam(teamID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.teams[teamID]; !ok {
		return domain.ErrTeamNotFound
	}
	g.deleteTeamLocked(teamID)
	g.publishLocked(Event{Type: EventTeamsUpdated, Payload: g.teamsLocked()})
	return nil
}

// evictPlayerLocked removes a player from whatever team they are on,
// deleting the team if that empties it.
func (g *Game) evictPlayerLocked(player string) {
	for _, id := range g.teamOrder {
		t := g.teams[id]
		if t == nil || !t.hasPlayer(player) {
			continue
		}
		t.removePlayer(player)
		if len(t.players) == 0 {
			g.deleteTeamLocked(id)
		}
		return
	}
}

func (g *Game) deleteTeamLocked(teamID string) {
	delete(g.teams, teamID)
	for i, id := range g.teamOrder {
		if id == teamID {
			g.teamOrder = append(g.teamOrder[:i], g.teamOrder[i+1:]...)
			return
		}
	}
}
