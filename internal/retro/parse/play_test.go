package parse

import (
	"testing"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/lineup"
	"stormlightlabs.org/sabermetrics/internal/retro/state"
	"stormlightlabs.org/sabermetrics/internal/retro/store"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// newPlayTestGame wires a fresh Driver with one open game between a visiting
// and home team, the cursor reset onto it, and returns both.
func newPlayTestGame(t *testing.T, id string) (*Driver, *store.Game) {
	t.Helper()
	d := NewDriver(nil)
	g := d.Games.CreateOrGet(tag.NewGame(id))
	g.Year = 2001
	g.TeamHome = tag.NewTeam("NYA")
	g.TeamVisiting = tag.NewTeam("BOS")
	d.cur.reset(g)
	return d, g
}

// TestParsePlayHomeRunAdvance covers scenario 3: a home run with an explicit
// batter-to-home advance clause scores one run, crediting the batter an HR
// and RBI and the pitcher an earned run.
func TestParsePlayHomeRunAdvance(t *testing.T) {
	d, g := newPlayTestGame(t, "TEST01")

	batterTag := tag.NewPlayer("battera1")
	pitcherTag := tag.NewPlayer("pitcherp")
	d.Players.CreateOrGet(batterTag)
	d.Players.CreateOrGet(pitcherTag)
	g.Lineup.Sub(batterTag, lineup.Starter, domain.RightField, 3, true)
	g.Lineup.Sub(pitcherTag, lineup.Starter, domain.Pitcher, 0, false)

	if err := d.parsePlay("play,1,0,battera1,31,BBCX,HR/9.B-H"); err != nil {
		t.Fatalf("parsePlay: %v", err)
	}

	node := d.Arena.At(d.cur.State)
	if node == nil {
		t.Fatal("expected a state node for the play")
	}
	if node.Event.Type != state.EventHR {
		t.Errorf("Event.Type = %v, want EventHR", node.Event.Type)
	}
	if node.Event.RunsScored != 1 {
		t.Errorf("Event.RunsScored = %d, want 1", node.Event.RunsScored)
	}

	batterYear := d.Players.Get(batterTag).Year(store.NewTeamYearKey(tag.NewTeam("BOS"), 2001))
	if batterYear.Batting.HR != 1 {
		t.Errorf("batter HR = %d, want 1", batterYear.Batting.HR)
	}
	if batterYear.Batting.RBI != 1 {
		t.Errorf("batter RBI = %d, want 1", batterYear.Batting.RBI)
	}

	pitcherYear := d.Players.Get(pitcherTag).Year(store.NewTeamYearKey(tag.NewTeam("NYA"), 2001))
	if pitcherYear.Pitching.ER != 1 {
		t.Errorf("pitcher ER = %d, want 1", pitcherYear.Pitching.ER)
	}
}

// TestParsePlayWalkImplicitAdvance covers scenario 4: a walk with no advance
// clause sends the batter to first and credits a walk, with no out recorded.
func TestParsePlayWalkImplicitAdvance(t *testing.T) {
	d, g := newPlayTestGame(t, "TEST02")

	batterTag := tag.NewPlayer("battera1")
	d.Players.CreateOrGet(batterTag)
	g.Lineup.Sub(batterTag, lineup.Starter, domain.RightField, 3, true)

	if err := d.parsePlay("play,1,0,battera1,40,BBBB,W"); err != nil {
		t.Fatalf("parsePlay: %v", err)
	}

	node := d.Arena.At(d.cur.State)
	if node.Event.Advance.Get(domain.Batter) != domain.First {
		t.Errorf("Event.Advance[Batter] = %v, want First", node.Event.Advance.Get(domain.Batter))
	}
	if !d.cur.Instance.BaseOut.First {
		t.Error("BaseOut.First should be true after an unobstructed walk")
	}
	if d.cur.Instance.BaseOut.Outs != 0 {
		t.Errorf("Outs = %d, want 0", d.cur.Instance.BaseOut.Outs)
	}

	batterYear := d.Players.Get(batterTag).Year(store.NewTeamYearKey(tag.NewTeam("BOS"), 2001))
	if batterYear.Batting.BB != 1 {
		t.Errorf("batter BB = %d, want 1", batterYear.Batting.BB)
	}
}

// TestParsePlayStrikeoutEndsHalf covers scenario 5: the third out of a half
// inning resets BaseOut and pre-allocates a fresh S___0 node for the next
// half, even though the current play's own node was created as S___2.
func TestParsePlayStrikeoutEndsHalf(t *testing.T) {
	d, g := newPlayTestGame(t, "TEST03")

	batterTag := tag.NewPlayer("battera1")
	d.Players.CreateOrGet(batterTag)
	g.Lineup.Sub(batterTag, lineup.Starter, domain.RightField, 3, true)

	if err := d.parsePlay("play,1,0,battera1,00,X,63"); err != nil {
		t.Fatalf("parsePlay (out 1): %v", err)
	}
	if err := d.parsePlay("play,1,0,battera1,00,X,63"); err != nil {
		t.Fatalf("parsePlay (out 2): %v", err)
	}

	if err := d.parsePlay("play,1,0,battera1,00,X,K"); err != nil {
		t.Fatalf("parsePlay (strikeout): %v", err)
	}

	// node.Type is fixed at creation time, from the BaseOut the chain held
	// before this play ran: two prior outs and empty bases is S___2.
	node := d.Arena.At(d.cur.State)
	if node.Type != state.S___2 {
		t.Errorf("strikeout play's own node Type = %v, want S___2", node.Type)
	}
	if node.Event.Type != state.EventK {
		t.Errorf("Event.Type = %v, want EventK", node.Event.Type)
	}
	if d.cur.Instance.BaseOut.Outs != 0 {
		t.Errorf("Outs = %d, want 0 (reset at 3 outs)", d.cur.Instance.BaseOut.Outs)
	}

	next := d.Arena.At(node.GameLink)
	if next == nil {
		t.Fatal("expected a pre-allocated next-half node")
	}
	if next.Type != state.S___0 {
		t.Errorf("pre-allocated next state Type = %v, want S___0", next.Type)
	}
}

// TestParsePlayFreshChainPerGame exercises the GameCursor.reset fix: a new
// game's first play must not reuse the previous game's trailing state node.
func TestParsePlayFreshChainPerGame(t *testing.T) {
	d, g1 := newPlayTestGame(t, "GAME1")
	batterTag := tag.NewPlayer("battera1")
	d.Players.CreateOrGet(batterTag)
	g1.Lineup.Sub(batterTag, lineup.Starter, domain.RightField, 3, true)

	if err := d.parsePlay("play,1,0,battera1,00,X,63"); err != nil {
		t.Fatalf("parsePlay in game 1: %v", err)
	}
	if d.cur.LastState == state.NoHandle {
		t.Fatal("expected game 1 to leave a non-empty LastState")
	}

	g2 := d.Games.CreateOrGet(tag.NewGame("GAME2"))
	g2.Year = 2001
	g2.TeamHome = tag.NewTeam("NYA")
	g2.TeamVisiting = tag.NewTeam("BOS")
	d.cur.reset(g2)

	if d.cur.LastState != state.NoHandle {
		t.Fatal("GameCursor.reset should clear LastState for a new game")
	}

	g2.Lineup.Sub(batterTag, lineup.Starter, domain.RightField, 3, true)
	if err := d.parsePlay("play,1,0,battera1,00,X,63"); err != nil {
		t.Fatalf("parsePlay in game 2: %v", err)
	}

	if g2.Plays == g1.Plays {
		t.Error("game 2's first play should not reuse game 1's chain head")
	}
	if d.Arena.At(g2.Plays).Type != state.S___0 {
		t.Errorf("game 2's first node Type = %v, want S___0", d.Arena.At(g2.Plays).Type)
	}
}

// TestParseEventAdvAccumulatesMultipleRunners exercises the fix for
// multi-runner advance clauses: every semicolon-separated token's
// destination must survive into the BaseOut applied after the whole clause,
// not just the last token's.
func TestParseEventAdvAccumulatesMultipleRunners(t *testing.T) {
	d := NewDriver(nil)
	d.cur.Instance.BaseOut = state.BaseOut{First: true, Second: true}

	ctx := &playContext{node: &state.Node{}}
	d.parseEventAdv("1-2;2-3", ctx)

	want := state.BaseOut{First: false, Second: true, Third: true, Outs: 0}
	if d.cur.Instance.BaseOut != want {
		t.Errorf("BaseOut = %+v, want %+v", d.cur.Instance.BaseOut, want)
	}
}
