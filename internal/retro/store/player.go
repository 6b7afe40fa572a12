package store

import (
	"strings"
	"sync"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// TeamYearKind discriminates the three variants of a player-year map key:
// by team only, by team and year, or by year only. Mirrors the source's
// Player::Record::TeamYear tagged union (TEAM, TEAMYEAR, YEAR) — the
// identical enumerator order, since the total order is kind-first.
type TeamYearKind int

const (
	ByTeam TeamYearKind = iota
	ByTeamYear
	ByYear
)

// TeamYearKey is the tagged-union key into a Player's year map: (team),
// (year), or (team, year).
type TeamYearKey struct {
	Kind TeamYearKind
	Team tag.Tag
	Year int
}

// NewTeamYearKey builds the (team, year) variant used throughout ingestion.
func NewTeamYearKey(team tag.Tag, year int) TeamYearKey {
	return TeamYearKey{Kind: ByTeamYear, Team: team, Year: year}
}

// Less gives keys a total order: kind first, then team, then year.
func (k TeamYearKey) Less(o TeamYearKey) bool {
	if k.Kind != o.Kind {
		return k.Kind < o.Kind
	}
	if !k.Team.Equal(o.Team) {
		return k.Team.Less(o.Team)
	}
	return k.Year < o.Year
}

// PlayerYear is a player's single-team-season record: roster details plus
// the five counter structs accumulated as ingestion replays events.
type PlayerYear struct {
	YearEntry

	Team      tag.Tag
	Number    int
	Positions []domain.Position
	Throws    domain.Handedness
	Bats      domain.Handedness

	Batting     Batting
	Fielding    Fielding
	Pitching    Pitching
	BaseRunning BaseRunning
	General     General
}

// Player is a player record: identity plus a map of team-year entries.
type Player struct {
	Record

	FirstName string
	SurName   string
	Debut     domain.Date

	years map[TeamYearKey]*PlayerYear
}

// Year returns the entry for key, creating it (still invalid) if absent.
func (p *Player) Year(key TeamYearKey) *PlayerYear {
	if p.years == nil {
		p.years = make(map[TeamYearKey]*PlayerYear)
	}
	y, ok := p.years[key]
	if !ok {
		y = &PlayerYear{}
		p.years[key] = y
	}
	return y
}

// YearOrNil returns the entry for key without creating one, or nil if absent.
func (p *Player) YearOrNil(key TeamYearKey) *PlayerYear {
	if p.years == nil {
		return nil
	}
	return p.years[key]
}

// Years returns the key of every entry on record for p. The returned slice
// has no defined order.
func (p *Player) Years() []TeamYearKey {
	keys := make([]TeamYearKey, 0, len(p.years))
	for k := range p.years {
		keys = append(keys, k)
	}
	return keys
}

// PlayerTable is the process-wide, tag-keyed table of Player records.
type PlayerTable struct {
	mu   sync.Mutex
	rows map[string]*Player
}

// NewPlayerTable returns an empty table.
func NewPlayerTable() *PlayerTable {
	return &PlayerTable{rows: make(map[string]*Player)}
}

func playerKey(t tag.Tag) string { return strings.ToLower(t.Ref) }

// Get returns the record for t, or nil if absent.
func (tbl *PlayerTable) Get(t tag.Tag) *Player {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	return tbl.rows[playerKey(t)]
}

// CreateOrGet returns the existing record for t, or creates and stores a new
// one if absent.
func (tbl *PlayerTable) CreateOrGet(t tag.Tag) *Player {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	key := playerKey(t)
	if r, ok := tbl.rows[key]; ok {
		return r
	}
	r := &Player{Record: Record{Tag: t}}
	tbl.rows[key] = r
	return r
}

// Count returns the number of records in the table.
func (tbl *PlayerTable) Count() int {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	return len(tbl.rows)
}

// Filter returns every record for which pred returns true, or every record
// when pred is nil.
func (tbl *PlayerTable) Filter(pred func(*Player) bool) []*Player {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	var out []*Player
	for _, r := range tbl.rows {
		if pred == nil || pred(r) {
			out = append(out, r)
		}
	}
	return out
}
