package tag

import "testing"

func TestEqualCaseInsensitive(t *testing.T) {
	a := NewPlayer("BONDB001")
	b := NewPlayer("bondb001")

	if !a.Equal(b) {
		t.Fatalf("expected %v to equal %v", a, b)
	}
}

func TestEqualDifferentKind(t *testing.T) {
	a := NewPlayer("BOS07")
	b := NewTeam("BOS07")

	if a.Equal(b) {
		t.Fatalf("expected tags of different kind to differ: %v vs %v", a, b)
	}
}

func TestLessOrdersByKindThenRef(t *testing.T) {
	players := NewPlayer("zzzzz")
	teams := NewTeam("aaaaa")

	if !players.Less(teams) {
		t.Fatalf("expected Player kind to sort before Team kind regardless of ref")
	}

	a := NewPlayer("aardsd01")
	b := NewPlayer("bondb001")

	if !a.Less(b) {
		t.Fatalf("expected %q to sort before %q", a.Ref, b.Ref)
	}
}

func TestKeyNormalizesCase(t *testing.T) {
	a := Key(NewPlayer("BondB001"))
	b := Key(NewPlayer("bondb001"))

	if a != b {
		t.Fatalf("expected normalized keys to be equal: %v vs %v", a, b)
	}
}

func TestNewTruncatesOverlongRef(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyz"
	tg := NewPlayer(long)

	if len(tg.Ref) != MaxLen {
		t.Fatalf("expected ref truncated to %d chars, got %d (%q)", MaxLen, len(tg.Ref), tg.Ref)
	}
}

func TestIsZero(t *testing.T) {
	var zero Tag
	if !zero.IsZero() {
		t.Fatalf("expected zero value Tag to be IsZero")
	}

	if NewPlayer("foo").IsZero() {
		t.Fatalf("expected non-empty tag to not be IsZero")
	}
}
