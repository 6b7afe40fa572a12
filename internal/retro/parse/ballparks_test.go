package parse

import (
	"os"
	"path/filepath"
	"testing"

	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// TestParseBallparksScenario covers scenario 1: a parks.dat line whose notes
// field absorbs trailing commas and whose closed date is absent (active).
func TestParseBallparksScenario(t *testing.T) {
	dir := t.TempDir()
	line := "BOS07,Fenway Park,,Boston,MA,04/20/1912,,AL,notes,with,commas\n"
	if err := os.WriteFile(filepath.Join(dir, "parks.dat"), []byte(line), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDriver(nil)
	if err := d.parseBallparks(dir); err != nil {
		t.Fatalf("parseBallparks: %v", err)
	}

	park := d.Ballparks.Get(tag.NewBallpark("BOS07"))
	if park == nil {
		t.Fatal("expected a ballpark record for BOS07")
	}
	if park.Name != "Fenway Park" {
		t.Errorf("Name = %q, want Fenway Park", park.Name)
	}
	if !park.IsActive() {
		t.Error("a park with no closing date should be active")
	}
	if park.Notes != "notes,with,commas" {
		t.Errorf("Notes = %q, want notes,with,commas", park.Notes)
	}
}

func TestParseBallparksSkipsShortLines(t *testing.T) {
	dir := t.TempDir()
	content := "too,few,fields\nBOS07,Fenway Park,,Boston,MA,04/20/1912,,AL,notes\n"
	if err := os.WriteFile(filepath.Join(dir, "parks.dat"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDriver(nil)
	if err := d.parseBallparks(dir); err != nil {
		t.Fatalf("parseBallparks: %v", err)
	}
	if d.Ballparks.Count() != 1 {
		t.Errorf("Count() = %d, want 1", d.Ballparks.Count())
	}
}

func TestParseBallparksMissingFile(t *testing.T) {
	d := NewDriver(nil)
	if err := d.parseBallparks(t.TempDir()); err == nil {
		t.Error("expected an error for a missing parks.dat")
	}
}
