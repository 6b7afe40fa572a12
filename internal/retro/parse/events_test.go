package parse

import (
	"testing"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/store"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

func TestParseSubStarterCountsGameAndStart(t *testing.T) {
	d, g := newPlayTestGame(t, "SUB01")
	playerTag := tag.NewPlayer("battera1")
	d.Players.CreateOrGet(playerTag)

	if err := d.parseSub("start,battera1,\"A Batter\",0,3,9"); err != nil {
		t.Fatalf("parseSub: %v", err)
	}

	y := d.Players.Get(playerTag).Year(store.NewTeamYearKey(g.TeamVisiting, g.Year))
	if y.General.GP != 1 {
		t.Errorf("GP = %d, want 1", y.General.GP)
	}
	if y.General.GS != 1 {
		t.Errorf("GS = %d, want 1", y.General.GS)
	}
	if !y.IsValid() {
		t.Error("player year should be valid after a substitution touches it")
	}

	card := g.Lineup.Card(playerTag)
	if card.Position != domain.RightField || card.Order != 3 || !card.Visiting {
		t.Errorf("card = %+v, want RF/order 3/visiting", card)
	}
}

func TestParseSubMidGameReplacementDoesNotCountAsStart(t *testing.T) {
	d, g := newPlayTestGame(t, "SUB02")
	playerTag := tag.NewPlayer("subbb001")
	d.Players.CreateOrGet(playerTag)

	d.cur.Instance.Inning = 7

	if err := d.parseSub("sub,subbb001,\"Sub Guy\",1,3,9"); err != nil {
		t.Fatalf("parseSub: %v", err)
	}

	y := d.Players.Get(playerTag).Year(store.NewTeamYearKey(g.TeamHome, g.Year))
	if y.General.GP != 1 {
		t.Errorf("GP = %d, want 1", y.General.GP)
	}
	if y.General.GS != 0 {
		t.Errorf("GS = %d, want 0 (entered mid-game, not at the Starter instance)", y.General.GS)
	}
}

func TestParseSubRepeatSubstitutionDoesNotDoubleCountGP(t *testing.T) {
	d, g := newPlayTestGame(t, "SUB03")
	playerTag := tag.NewPlayer("battera1")
	d.Players.CreateOrGet(playerTag)

	if err := d.parseSub("start,battera1,\"A Batter\",0,3,9"); err != nil {
		t.Fatalf("parseSub (start): %v", err)
	}
	if err := d.parseSub("sub,battera1,\"A Batter\",0,3,7"); err != nil {
		t.Fatalf("parseSub (reposition): %v", err)
	}

	y := d.Players.Get(playerTag).Year(store.NewTeamYearKey(g.TeamVisiting, g.Year))
	if y.General.GP != 1 {
		t.Errorf("GP = %d, want 1 (repositioning isn't a fresh appearance)", y.General.GP)
	}

	card := g.Lineup.Card(playerTag)
	if card.Position != domain.LeftField {
		t.Errorf("card.Position = %v, want LeftField after the reposition", card.Position)
	}
}

func TestParseSubNoOpenGame(t *testing.T) {
	d := NewDriver(nil)
	if err := d.parseSub("start,battera1,\"A Batter\",0,3,9"); err == nil {
		t.Error("expected an error for a sub line with no open game")
	}
}
