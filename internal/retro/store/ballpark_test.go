package store

import (
	"strings"
	"testing"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// TestBallparkScenario covers scenario 1: BOS07,Fenway Park,,Boston,MA,
// 04/20/1912,,AL,notes,with,commas — closed is unset (active), and notes
// absorbs every trailing comma-delimited field.
func TestBallparkScenario(t *testing.T) {
	tbl := NewBallparkTable()
	park := tbl.CreateOrGet(tag.NewBallpark("BOS07"))
	park.Name = "Fenway Park"
	park.City = "Boston"
	park.State = "MA"
	park.Opened = domain.ParseDate("04/20/1912")
	park.League = domain.AL
	park.Notes = strings.Join([]string{"notes", "with", "commas"}, ",")

	if !park.IsActive() {
		t.Error("a park with no closing date should be active")
	}
	if park.Notes != "notes,with,commas" {
		t.Errorf("Notes = %q, want notes,with,commas", park.Notes)
	}
}

func TestBallparkIsActiveCorrectedSemantics(t *testing.T) {
	park := &Ballpark{}
	if !park.IsActive() {
		t.Error("park with no Closed date should be active")
	}
	park.Closed = domain.ParseDate("10/01/1999")
	if park.IsActive() {
		t.Error("park with a Closed date should not be active")
	}
}

func TestBallparkTableCreateOrGetIdempotent(t *testing.T) {
	tbl := NewBallparkTable()
	a := tbl.CreateOrGet(tag.NewBallpark("bos07"))
	b := tbl.CreateOrGet(tag.NewBallpark("BOS07"))
	if a != b {
		t.Error("CreateOrGet should be case-insensitive and idempotent")
	}
	if tbl.Count() != 1 {
		t.Errorf("Count() = %d, want 1", tbl.Count())
	}
}

func TestBallparkTableGetMissing(t *testing.T) {
	tbl := NewBallparkTable()
	if tbl.Get(tag.NewBallpark("nope")) != nil {
		t.Error("Get on an absent tag should return nil")
	}
}

func TestBallparkTableFilter(t *testing.T) {
	tbl := NewBallparkTable()
	tbl.CreateOrGet(tag.NewBallpark("ACTIVE1")).League = domain.AL
	closedPark := tbl.CreateOrGet(tag.NewBallpark("CLOSED1"))
	closedPark.League = domain.NL
	closedPark.Closed = domain.ParseDate("01/01/2000")

	active := tbl.Filter(func(b *Ballpark) bool { return b.IsActive() })
	if len(active) != 1 {
		t.Errorf("expected exactly 1 active park, got %d", len(active))
	}

	all := tbl.Filter(nil)
	if len(all) != 2 {
		t.Errorf("expected Filter(nil) to return all 2 parks, got %d", len(all))
	}
}
