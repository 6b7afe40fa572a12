package state

import (
	"testing"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
)

// TestStateBijection covers P3/P7: BaseOut.State() is a bijection between
// admissible (first, second, third, outs in 0..2) tuples and the 24 in-play
// state tags.
func TestStateBijection(t *testing.T) {
	seen := map[Type]BaseOut{}
	for _, first := range []bool{false, true} {
		for _, second := range []bool{false, true} {
			for _, third := range []bool{false, true} {
				for outs := 0; outs <= 2; outs++ {
					b := BaseOut{First: first, Second: second, Third: third, Outs: outs}
					ty := b.State()
					if ty == SNULL {
						t.Fatalf("unexpected SNULL for %+v", b)
					}
					if prior, ok := seen[ty]; ok {
						t.Fatalf("state %v produced by both %+v and %+v", ty, prior, b)
					}
					seen[ty] = b

					roundTrip := FromType(ty)
					if roundTrip != b {
						t.Fatalf("round trip mismatch: %+v -> %v -> %+v", b, ty, roundTrip)
					}
				}
			}
		}
	}
	if len(seen) != 24 {
		t.Fatalf("expected exactly 24 distinct in-play states, got %d", len(seen))
	}
}

func TestFromTypeTerminalStatesAreEmpty(t *testing.T) {
	for _, ty := range []Type{SNULL, SENDHALF, SENDINNING, SENDGAME} {
		b := FromType(ty)
		if b != (BaseOut{}) {
			t.Errorf("FromType(%v) = %+v, want zero value", ty, b)
		}
	}
}

func TestEndInningTerminal(t *testing.T) {
	if !SENDHALF.EndInning() {
		t.Error("SENDHALF should end the inning's half")
	}
	if !SENDINNING.EndInning() {
		t.Error("SENDINNING should end the inning")
	}
	if SENDGAME.EndInning() {
		t.Error("SENDGAME is not itself a half/inning boundary")
	}
	if !SENDGAME.Terminal() {
		t.Error("SENDGAME should be terminal")
	}
	if S___0.Terminal() {
		t.Error("an in-play state should not be terminal")
	}
}

func TestRunnerPlacesAndRemoves(t *testing.T) {
	var b BaseOut
	b.Runner(domain.First, false)
	if !b.First {
		t.Fatal("expected runner placed on first")
	}
	b.Runner(domain.First, true)
	if b.First {
		t.Fatal("expected runner removed from first")
	}
}

func TestAdvanceSetsOccupancyFromDestinations(t *testing.T) {
	var adv domain.Advance
	adv.Set(domain.Batter, domain.First)
	adv.Set(domain.First, domain.Second)

	var b BaseOut
	b.Advance(adv)

	if !b.First || !b.Second || b.Third {
		t.Fatalf("expected runners on first and second only, got %+v", b)
	}
}

// TestAdvanceRoundTrip covers P8: applying an Advance to a fresh BaseOut
// yields exactly the occupancy implied by its destination bases.
func TestAdvanceRoundTrip(t *testing.T) {
	var adv domain.Advance
	adv.Set(domain.Batter, domain.Third)

	var b BaseOut
	b.Advance(adv)

	want := BaseOut{Third: true}
	if b != want {
		t.Fatalf("got %+v, want %+v", b, want)
	}
}

func TestForceAndForced(t *testing.T) {
	empty := BaseOut{}
	if !empty.Force(domain.First) {
		t.Error("first base is always force-able for the batter-runner")
	}
	if empty.Force(domain.Second) {
		t.Error("no force at second with bases empty")
	}
	if empty.Forced() != domain.First {
		t.Errorf("Forced() on empty bases = %v, want First", empty.Forced())
	}

	loaded := BaseOut{First: true, Second: true, Third: true}
	if !loaded.Force(domain.Home) {
		t.Error("bases loaded forces at home")
	}
	if loaded.Forced() != domain.Home {
		t.Errorf("Forced() on loaded bases = %v, want Home", loaded.Forced())
	}

	onFirst := BaseOut{First: true}
	if onFirst.Forced() != domain.Second {
		t.Errorf("Forced() with runner on first = %v, want Second", onFirst.Forced())
	}
}

func TestScoringPositionAndRunners(t *testing.T) {
	b := BaseOut{Second: true}
	if !b.ScoringPosition() {
		t.Error("runner on second should be scoring position")
	}
	if b.Runners() != 1 {
		t.Errorf("Runners() = %d, want 1", b.Runners())
	}

	loaded := BaseOut{First: true, Second: true, Third: true}
	if loaded.Runners() != 3 {
		t.Errorf("Runners() = %d, want 3", loaded.Runners())
	}
}

func TestReset(t *testing.T) {
	b := BaseOut{First: true, Second: true, Third: true, Outs: 2}
	b.Reset()
	if b != (BaseOut{}) {
		t.Errorf("Reset() left %+v, want zero value", b)
	}
}
