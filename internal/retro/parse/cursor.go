package parse

import (
	"stormlightlabs.org/sabermetrics/internal/retro/lineup"
	"stormlightlabs.org/sabermetrics/internal/retro/state"
	"stormlightlabs.org/sabermetrics/internal/retro/store"
)

// fileCursor is the parser's per-file position: which file is being read
// and the 1-based line number of the line currently being processed. Kept
// apart from GameCursor since file position survives across games while
// game position resets on every "id" line.
type fileCursor struct {
	Name string
	Line int
}

// GameCursor is the parser's per-game mutable position: the game being
// built, the running game Instance, the last/current state handles, and
// the player records for the batter and pitcher of the play in progress.
// This is the Go shape of the source parser's m_curGame/m_curInstance/
// m_lastState/m_currentState/m_currentBatter/m_currentPitcher fields.
type GameCursor struct {
	Game     *store.Game
	Instance lineup.Instance

	LastState state.Handle
	State     state.Handle

	Batter  *store.Player
	Pitcher *store.Player
}

// reset reinitializes the cursor for a newly encountered "id" line.
func (c *GameCursor) reset(g *store.Game) {
	c.Game = g
	c.Instance = lineup.Starter
	c.LastState = state.NoHandle
	c.State = state.NoHandle
	c.Batter = nil
	c.Pitcher = nil
}
