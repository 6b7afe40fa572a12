package store

import (
	"testing"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

func TestTeamYearGetOrCreate(t *testing.T) {
	team := &Team{Record: Record{Tag: tag.NewTeam("BOS")}}

	y := team.Year(1912)
	if y.IsValid() {
		t.Error("a freshly created team year should start invalid")
	}
	y.Location = "Boston"
	y.Name = "Red Sox"
	y.League = domain.AL
	y.Validate()

	again := team.Year(1912)
	if again != y {
		t.Error("Year() should return the same entry on repeat calls")
	}
	if !again.IsValid() {
		t.Error("entry should remain valid after Validate()")
	}
}

func TestTeamYearOrNilAbsent(t *testing.T) {
	team := &Team{Record: Record{Tag: tag.NewTeam("BOS")}}
	if team.YearOrNil(1912) != nil {
		t.Error("YearOrNil should return nil before any Year() call")
	}
}

func TestTeamTableCreateOrGet(t *testing.T) {
	tbl := NewTeamTable()
	a := tbl.CreateOrGet(tag.NewTeam("bos"))
	b := tbl.CreateOrGet(tag.NewTeam("BOS"))
	if a != b {
		t.Error("CreateOrGet should be case-insensitive and idempotent")
	}
	if tbl.Count() != 1 {
		t.Errorf("Count() = %d, want 1", tbl.Count())
	}
}
