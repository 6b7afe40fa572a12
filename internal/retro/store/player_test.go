package store

import (
	"testing"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// TestPlayerYearValidOnRosterTouch covers P5: for every player present in a
// roster, PlayerYear[teamYear].isValid == true after roster ingestion.
func TestPlayerYearValidOnRosterTouch(t *testing.T) {
	player := &Player{Record: Record{Tag: tag.NewPlayer("troutmi01")}}
	key := NewTeamYearKey(tag.NewTeam("LAA"), 2018)

	y := player.Year(key)
	if y.IsValid() {
		t.Error("a freshly created player year should start invalid")
	}

	y.Bats = domain.HandednessRight
	y.Throws = domain.HandednessRight
	y.Validate()

	if !player.Year(key).IsValid() {
		t.Error("player year should be valid after roster ingestion touches it")
	}
}

func TestTeamYearKeyOrdering(t *testing.T) {
	team := tag.NewTeam("BOS")

	byTeam := TeamYearKey{Kind: ByTeam, Team: team}
	byTeamYear := TeamYearKey{Kind: ByTeamYear, Team: team, Year: 1912}
	byYear := TeamYearKey{Kind: ByYear, Year: 1912}

	if !byTeam.Less(byTeamYear) {
		t.Error("ByTeam should sort before ByTeamYear")
	}
	if !byTeamYear.Less(byYear) {
		t.Error("ByTeamYear should sort before ByYear")
	}

	a := NewTeamYearKey(team, 1911)
	b := NewTeamYearKey(team, 1912)
	if !a.Less(b) {
		t.Error("within the same kind/team, earlier year should sort first")
	}
}

func TestBattingDerivedStatsZeroDenominator(t *testing.T) {
	var b Batting
	if b.OBP() != 0 {
		t.Errorf("OBP() with no plate appearances = %v, want 0", b.OBP())
	}
	if b.SLG() != 0 {
		t.Errorf("SLG() with no at-bats = %v, want 0", b.SLG())
	}
}

func TestBattingDerivedStats(t *testing.T) {
	b := Batting{H1B: 2, H2B: 1, H3B: 0, HR: 1, AB: 10, BB: 2}
	if got := b.H(); got != 4 {
		t.Errorf("H() = %d, want 4", got)
	}

	wantSLG := float64(2+2*1+4*1) / 10.0
	if got := b.SLG(); got != wantSLG {
		t.Errorf("SLG() = %v, want %v", got, wantSLG)
	}

	wantOBP := float64(4+2) / float64(10+2)
	if got := b.OBP(); got != wantOBP {
		t.Errorf("OBP() = %v, want %v", got, wantOBP)
	}
}

func TestPlayerTableCreateOrGet(t *testing.T) {
	tbl := NewPlayerTable()
	a := tbl.CreateOrGet(tag.NewPlayer("bondb001"))
	b := tbl.CreateOrGet(tag.NewPlayer("BONDB001"))
	if a != b {
		t.Error("CreateOrGet should be case-insensitive and idempotent")
	}
}
