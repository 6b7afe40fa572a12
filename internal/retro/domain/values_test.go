package domain

import "testing"

func TestParseCountObviousSemantics(t *testing.T) {
	if got := ParseCount("31"); got != (Count{Balls: 3, Strikes: 1}) {
		t.Errorf("ParseCount(31) = %+v, want 3-1", got)
	}
	if got := ParseCount("00"); !got.IsValid() {
		t.Errorf("ParseCount(00) should be valid, got %+v", got)
	}
	if got := ParseCount("??"); got != InvalidCount {
		t.Errorf(`ParseCount("??") = %+v, want InvalidCount`, got)
	}
	if got := ParseCount("x"); got != InvalidCount {
		t.Errorf("ParseCount(malformed) should be InvalidCount, got %+v", got)
	}
}

func TestParseDate(t *testing.T) {
	d := ParseDate("04/20/1912")
	want := Date{Month: 4, Day: 20, Year: 1912}
	if d != want {
		t.Errorf("ParseDate = %+v, want %+v", d, want)
	}
	if got := ParseDate(""); !got.IsZero() {
		t.Errorf("ParseDate(empty) should be zero, got %+v", got)
	}
}

func TestDateLess(t *testing.T) {
	a := Date{Month: 4, Day: 20, Year: 1912}
	b := Date{Month: 5, Day: 1, Year: 1912}
	if !a.Less(b) {
		t.Error("expected earlier date to be Less")
	}
	if b.Less(a) {
		t.Error("expected later date to not be Less")
	}
}

func TestAdvanceGetSet(t *testing.T) {
	var a Advance
	a.Set(Batter, First)
	a.Set(First, Third)

	if got := a.Get(Batter); got != First {
		t.Errorf("a.Get(Batter) = %v, want First", got)
	}
	if got := a.Get(First); got != Third {
		t.Errorf("a.Get(First) = %v, want Third", got)
	}
	if got := a.Get(Second); got != NoBase {
		t.Errorf("a.Get(Second) = %v, want NoBase (unset)", got)
	}
	if got := a.Get(Home); got != NoBase {
		t.Errorf("a.Get(Home) should be NoBase (invalid origin), got %v", got)
	}
}

func TestAdvanceRuns(t *testing.T) {
	var a Advance
	a.Set(Batter, Home)
	a.Set(Third, Home)
	a.Set(First, Second)

	if got := a.Runs(); got != 2 {
		t.Errorf("a.Runs() = %d, want 2", got)
	}
}

func TestAdvanceMerge(t *testing.T) {
	var a Advance
	a.Set(Batter, First)

	var b Advance
	b.Set(First, Second)
	b.Error = true

	a.Merge(b)

	if got := a.Get(Batter); got != First {
		t.Errorf("merge should preserve a's existing Batter advance, got %v", got)
	}
	if got := a.Get(First); got != Second {
		t.Errorf("merge should fold in b's First advance, got %v", got)
	}
	if !a.Error {
		t.Error("merge should fold in b's Error flag")
	}
}

func TestOutIsFly(t *testing.T) {
	fly := Out{Base: Batter, Unassisted: true}
	if !fly.IsFly() {
		t.Error("expected unassisted putout on the batter to be a fly")
	}

	grounder := Out{Base: Batter, Unassisted: false}
	if grounder.IsFly() {
		t.Error("assisted putout on the batter should not be a fly")
	}

	forceAtSecond := Out{Base: Second, Unassisted: true}
	if forceAtSecond.IsFly() {
		t.Error("unassisted putout at a base other than Batter should not be a fly")
	}
}

func TestParsePitchLetter(t *testing.T) {
	cases := map[byte]PitchType{
		'B': PitchBall,
		'C': PitchStrikeCalled,
		'X': PitchInPlay,
		'K': PitchStrike,
	}
	for in, want := range cases {
		got, ok := ParsePitchLetter(in)
		if !ok || got != want {
			t.Errorf("ParsePitchLetter(%q) = (%v, %v), want (%v, true)", in, got, ok, want)
		}
	}
	if _, ok := ParsePitchLetter('9'); ok {
		t.Error("ParsePitchLetter('9') should be unrecognized")
	}
}

func TestPickoffBase(t *testing.T) {
	if got := PickoffBase('1', false); got != PickoffFirst {
		t.Errorf("PickoffBase(1, pitcher) = %v, want PickoffFirst", got)
	}
	if got := PickoffBase('2', true); got != CatcherSecond {
		t.Errorf("PickoffBase(2, catcher) = %v, want CatcherSecond", got)
	}
}

func TestParseBattedBallFlag(t *testing.T) {
	if got := ParseBattedBallFlag("G"); got != BattedBallGrounder {
		t.Errorf("ParseBattedBallFlag(G) = %v, want BattedBallGrounder", got)
	}
	if got := ParseBattedBallFlag("GDP"); got != BattedBallNone {
		t.Errorf("ParseBattedBallFlag(GDP) = %v, want BattedBallNone (not a trajectory flag)", got)
	}
}
