package store

import (
	"strings"
	"sync"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/lineup"
	"stormlightlabs.org/sabermetrics/internal/retro/state"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// Game is a single game's record: its metadata, the lineup book covering
// every player who appeared, and the head of its State chain.
type Game struct {
	Record

	StartDate domain.Date
	StartTime string
	Year      int
	Type      domain.GameType

	Sky            domain.Sky
	Condition      domain.FieldCondition
	Precipitation  domain.Precipitation
	Temperature    float64
	WindDirection  domain.WindDirection
	WindSpeed      float64

	UseDH bool

	Attendance int
	Duration   int
	Night      bool

	Ballpark tag.Tag

	TeamHome      tag.Tag
	TeamVisiting  tag.Tag

	Comment string

	PitcherWin  tag.Tag
	PitcherLoss tag.Tag
	PitcherSave tag.Tag

	RunsHome     int
	RunsVisiting int

	Lineup *lineup.Lineup

	// Plays is the handle of the first State node in this game's chain.
	Plays state.Handle
}

// NewGame returns a fresh Game record for t with an initialized lineup and
// no plays recorded yet.
func NewGame(t tag.Tag) *Game {
	return &Game{
		Record: Record{Tag: t},
		Lineup: lineup.NewLineup(),
		Plays:  state.NoHandle,
	}
}

// GameTable is the process-wide, tag-keyed table of Game records.
type GameTable struct {
	mu   sync.Mutex
	rows map[string]*Game
}

// NewGameTable returns an empty table.
func NewGameTable() *GameTable {
	return &GameTable{rows: make(map[string]*Game)}
}

func gameKey(t tag.Tag) string { return strings.ToLower(t.Ref) }

// Get returns the record for t, or nil if absent.
func (tbl *GameTable) Get(t tag.Tag) *Game {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	return tbl.rows[gameKey(t)]
}

// CreateOrGet returns the existing record for t, or creates and stores a new
// one (with a fresh Lineup) if absent.
func (tbl *GameTable) CreateOrGet(t tag.Tag) *Game {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	key := gameKey(t)
	if r, ok := tbl.rows[key]; ok {
		return r
	}
	r := NewGame(t)
	tbl.rows[key] = r
	return r
}

// Count returns the number of records in the table.
func (tbl *GameTable) Count() int {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	return len(tbl.rows)
}

// Filter returns every record for which pred returns true, or every record
// when pred is nil.
func (tbl *GameTable) Filter(pred func(*Game) bool) []*Game {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	var out []*Game
	for _, r := range tbl.rows {
		if pred == nil || pred(r) {
			out = append(out, r)
		}
	}
	return out
}
