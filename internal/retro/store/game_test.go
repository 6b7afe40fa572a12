package store

import (
	"testing"

	"stormlightlabs.org/sabermetrics/internal/retro/state"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

func TestNewGameHasEmptyLineupAndNoPlays(t *testing.T) {
	g := NewGame(tag.NewGame("BOS191204200"))
	if g.Lineup == nil {
		t.Fatal("NewGame should initialize a Lineup")
	}
	if g.Plays != state.NoHandle {
		t.Errorf("Plays = %v, want NoHandle for a fresh game", g.Plays)
	}
}

func TestGameTableCreateOrGet(t *testing.T) {
	tbl := NewGameTable()
	gameTag := tag.NewGame("BOS191204200")

	a := tbl.CreateOrGet(gameTag)
	b := tbl.CreateOrGet(gameTag)
	if a != b {
		t.Error("CreateOrGet should be idempotent for the same tag")
	}
	if tbl.Count() != 1 {
		t.Errorf("Count() = %d, want 1", tbl.Count())
	}
}

func TestGameTableGetMissing(t *testing.T) {
	tbl := NewGameTable()
	if tbl.Get(tag.NewGame("nope")) != nil {
		t.Error("Get on an absent tag should return nil")
	}
}
