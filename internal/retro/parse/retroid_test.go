package parse

import (
	"os"
	"path/filepath"
	"testing"
)

// TestParseRetroIdsFiltersByKindDigit covers scenario 2: the retroid's sixth
// character (index 5) selects player records (0/1) versus manager/umpire
// records (8/9), which are dropped.
func TestParseRetroIdsFiltersByKindDigit(t *testing.T) {
	dir := t.TempDir()
	lines := []string{
		"Ruth,Babe,aaaaa0pp,04/19/1914",
		"Gehrig,Lou,bbbbb1qq,06/15/1923",
		"Skipper,Manager,ccccc8rr,01/01/1950",
		"Ump,Blue,ddddd9ss,01/01/1950",
		"",
	}
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(filepath.Join(dir, "retroid.dat"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDriver(nil)
	if err := d.parseRetroIds(dir); err != nil {
		t.Fatalf("parseRetroIds: %v", err)
	}

	if d.Players.Count() != 2 {
		t.Errorf("Players.Count() = %d, want 2", d.Players.Count())
	}
}

func TestParseRetroIdsMissingFile(t *testing.T) {
	d := NewDriver(nil)
	if err := d.parseRetroIds(t.TempDir()); err == nil {
		t.Error("expected an error for a missing retroid.dat")
	}
}
