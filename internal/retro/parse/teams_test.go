package parse

import (
	"os"
	"path/filepath"
	"testing"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

func TestParseTeams(t *testing.T) {
	dir := t.TempDir()
	content := "BOS,A,Boston,Red Sox\nmalformed,line\n"
	if err := os.WriteFile(filepath.Join(dir, "TEAM1918"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDriver(nil)
	if err := d.parseTeams(dir, 1918); err != nil {
		t.Fatalf("parseTeams: %v", err)
	}

	team := d.Teams.Get(tag.NewTeam("BOS"))
	if team == nil {
		t.Fatal("expected a team record for BOS")
	}
	y := team.YearOrNil(1918)
	if y == nil {
		t.Fatal("expected a 1918 team-year entry")
	}
	if y.League != domain.AL {
		t.Errorf("League = %v, want AL", y.League)
	}
	if y.Name != "Red Sox" {
		t.Errorf("Name = %q, want Red Sox", y.Name)
	}
}

// TestParseRostersRequiresKnownPlayer covers the roster parser's dependency
// on retroid.dat having already registered the player: a roster line for an
// unknown tag is silently skipped rather than creating a new Player record.
func TestParseRostersRequiresKnownPlayer(t *testing.T) {
	dir := t.TempDir()
	content := "bondb001,Bonds,Barry,L,L,SFN,7\nunknownp,Nobody,N,R,R,SFN,9\n"
	if err := os.WriteFile(filepath.Join(dir, "SFN1993.ROS"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDriver(nil)
	d.Players.CreateOrGet(tag.NewPlayer("bondb001"))

	if err := d.parseRosters(dir, 1993); err != nil {
		t.Fatalf("parseRosters: %v", err)
	}

	if d.Players.Get(tag.NewPlayer("unknownp")) != nil {
		t.Error("a roster line for an unregistered player should not create one")
	}

	player := d.Players.Get(tag.NewPlayer("bondb001"))
	key := player.Years()
	if len(key) != 1 {
		t.Fatalf("expected exactly 1 team-year on bondb001, got %d", len(key))
	}
	y := player.YearOrNil(key[0])
	if y.Bats != domain.HandednessLeft || y.Throws != domain.HandednessLeft {
		t.Errorf("Bats/Throws = %v/%v, want Left/Left", y.Bats, y.Throws)
	}
	if !y.IsValid() {
		t.Error("roster-touched player year should be valid (P5)")
	}
}

func TestParseRostersCaseInsensitiveSuffix(t *testing.T) {
	dir := t.TempDir()
	content := "bondb001,Bonds,Barry,L,L,SFN,7\n"
	if err := os.WriteFile(filepath.Join(dir, "SFN1993.ros"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDriver(nil)
	d.Players.CreateOrGet(tag.NewPlayer("bondb001"))

	if err := d.parseRosters(dir, 1993); err != nil {
		t.Fatalf("parseRosters: %v", err)
	}
	if len(d.Players.Get(tag.NewPlayer("bondb001")).Years()) != 1 {
		t.Error("a lowercase .ros extension should still be picked up")
	}
}
