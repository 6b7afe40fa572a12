package store

import (
	"strings"
	"sync"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// TeamYear is the per-season entry on a Team record: its location, display
// name, and league for that year.
type TeamYear struct {
	YearEntry

	Location string
	Name     string
	League   domain.League
}

// Team is a franchise record, tagged and carrying a year map.
type Team struct {
	Record

	Debut domain.Date

	years map[int]*TeamYear
}

// Year returns the entry for yr, creating it (still invalid) if absent.
func (t *Team) Year(yr int) *TeamYear {
	if t.years == nil {
		t.years = make(map[int]*TeamYear)
	}
	y, ok := t.years[yr]
	if !ok {
		y = &TeamYear{}
		t.years[yr] = y
	}
	return y
}

// YearOrNil returns the entry for yr without creating one, or nil if absent.
func (t *Team) YearOrNil(yr int) *TeamYear {
	if t.years == nil {
		return nil
	}
	return t.years[yr]
}

// TeamTable is the process-wide, tag-keyed table of Team records.
type TeamTable struct {
	mu   sync.Mutex
	rows map[string]*Team
}

// NewTeamTable returns an empty table.
func NewTeamTable() *TeamTable {
	return &TeamTable{rows: make(map[string]*Team)}
}

func teamKey(t tag.Tag) string { return strings.ToLower(t.Ref) }

// Get returns the record for t, or nil if absent.
func (tbl *TeamTable) Get(t tag.Tag) *Team {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	return tbl.rows[teamKey(t)]
}

// CreateOrGet returns the existing record for t, or creates and stores a new
// one if absent.
func (tbl *TeamTable) CreateOrGet(t tag.Tag) *Team {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	key := teamKey(t)
	if r, ok := tbl.rows[key]; ok {
		return r
	}
	r := &Team{Record: Record{Tag: t}}
	tbl.rows[key] = r
	return r
}

// Count returns the number of records in the table.
func (tbl *TeamTable) Count() int {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	return len(tbl.rows)
}

// Filter returns every record for which pred returns true, or every record
// when pred is nil.
func (tbl *TeamTable) Filter(pred func(*Team) bool) []*Team {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	var out []*Team
	for _, r := range tbl.rows {
		if pred == nil || pred(r) {
			out = append(out, r)
		}
	}
	return out
}
