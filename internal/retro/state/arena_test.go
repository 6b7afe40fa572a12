package state

import "testing"

func TestArenaCreateAndAt(t *testing.T) {
	a := NewArena()

	h1 := a.Create(S___0)
	h2 := a.Create(S__X0)

	if a.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", a.Count())
	}

	n1 := a.At(h1)
	if n1 == nil || n1.Type != S___0 {
		t.Fatalf("At(h1) = %+v, want type S___0", n1)
	}

	n2 := a.At(h2)
	if n2 == nil || n2.Type != S__X0 {
		t.Fatalf("At(h2) = %+v, want type S__X0", n2)
	}

	if n1.PlayerLink != NoHandle || n1.GameLink != NoHandle {
		t.Errorf("new node should start with NoHandle links, got %+v", n1)
	}
}

func TestArenaAtOutOfRange(t *testing.T) {
	a := NewArena()
	a.Create(S___0)

	if n := a.At(NoHandle); n != nil {
		t.Errorf("At(NoHandle) = %+v, want nil", n)
	}
	if n := a.At(99); n != nil {
		t.Errorf("At(99) = %+v, want nil", n)
	}
}

func TestArenaHandlesStayValidAsChainGrows(t *testing.T) {
	a := NewArena()

	h1 := a.Create(S___0)
	n1 := a.At(h1)
	n1.GameLink = a.Create(S__X0)

	// h1's node pointer must remain usable after further Create calls.
	if a.At(h1).GameLink != 1 {
		t.Errorf("expected h1's game link to be handle 1, got %v", a.At(h1).GameLink)
	}
}

func TestArenaIndex(t *testing.T) {
	a := NewArena()
	h := a.Create(S___0)
	n := a.At(h)
	if n.Index() != int(h) {
		t.Errorf("Index() = %d, want %d", n.Index(), h)
	}
}
