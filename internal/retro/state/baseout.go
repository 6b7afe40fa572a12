// Package state implements the BaseOut occupancy/out algebra and the
// arena-owned State/Event chain that threads one game's plays together.
package state

import "stormlightlabs.org/sabermetrics/internal/retro/domain"

// Type enumerates the 24 in-play base/out states plus the terminal markers.
// The in-play encoding is 0x10*(outs+1) | (first<<2) | (second<<1) | third,
// matching the source's State::Type bit layout exactly so BaseOut round-trips
// through it without a lookup table.
type Type int

const (
	SNULL Type = 0

	S___0 Type = 0x10
	S__X0 Type = 0x11
	S_X_0 Type = 0x12
	S_XX0 Type = 0x13
	SX__0 Type = 0x14
	SX_X0 Type = 0x15
	SXX_0 Type = 0x16
	SXXX0 Type = 0x17

	S___1 Type = 0x20
	S__X1 Type = 0x21
	S_X_1 Type = 0x22
	S_XX1 Type = 0x23
	SX__1 Type = 0x24
	SX_X1 Type = 0x25
	SXX_1 Type = 0x26
	SXXX1 Type = 0x27

	S___2 Type = 0x30
	S__X2 Type = 0x31
	S_X_2 Type = 0x32
	S_XX2 Type = 0x33
	SX__2 Type = 0x34
	SX_X2 Type = 0x35
	SXX_2 Type = 0x36
	SXXX2 Type = 0x37

	SENDHALF   Type = 0x40
	SENDINNING Type = 0x41
	SENDGAME   Type = 0x42
)

// EndInning reports whether t marks the close of a half-inning or inning.
func (t Type) EndInning() bool { return t == SENDHALF || t == SENDINNING }

// Terminal reports whether t is any of the three non-playable sentinels.
func (t Type) Terminal() bool { return t == SENDHALF || t == SENDINNING || t == SENDGAME }

// BaseOut is the occupancy/out tuple identifying one of the 25 canonical
// game situations (24 in-play plus the reset-to-empty state at 3 outs).
type BaseOut struct {
	First  bool
	Second bool
	Third  bool
	Outs   int
}

// FromType decodes a BaseOut from its bit-encoded State.Type. Terminal
// markers (and SNULL) decode to the empty, no-out BaseOut.
func FromType(t Type) BaseOut {
	if t == SNULL || t.Terminal() {
		return BaseOut{}
	}
	c := uint(t)
	return BaseOut{
		Third:  c&0x01 != 0,
		Second: c&0x02 != 0,
		First:  c&0x04 != 0,
		Outs:   int(c>>4) - 1,
	}
}

// State converts b to its bit-encoded Type. Returns SNULL for an
// out-of-range out count (anything but 0, 1, or 2).
func (b BaseOut) State() Type {
	if b.Outs < 0 || b.Outs > 2 {
		return SNULL
	}
	var bits uint
	if b.First {
		bits |= 0x04
	}
	if b.Second {
		bits |= 0x02
	}
	if b.Third {
		bits |= 0x01
	}
	return Type(0x10*(uint(b.Outs)+1) | bits)
}

// Runner places or removes a runner at base. When out is true the base is
// cleared; Home and Batter are no-ops (not occupiable bases).
func (b *BaseOut) Runner(base domain.Base, out bool) {
	switch base {
	case domain.First:
		b.First = !out
	case domain.Second:
		b.Second = !out
	case domain.Third:
		b.Third = !out
	}
}

// Advance replaces the occupancy bits wholesale from adv's destinations:
// any origin (Batter..Third) whose advance lands on First/Second/Third
// occupies that base; origins with no matching destination leave the base
// empty. This mirrors the source's BaseOut::advance, which is applied after
// an Advance has been fully resolved for the play (not an incremental merge).
func (b *BaseOut) Advance(adv domain.Advance) {
	b.First = false
	b.Second = false
	b.Third = false

	for origin := domain.Batter; origin <= domain.Third; origin++ {
		switch adv.Get(origin) {
		case domain.First:
			b.First = true
		case domain.Second:
			b.Second = true
		case domain.Third:
			b.Third = true
		}
	}
}

// Reset clears occupancy and outs, as at the start of a half-inning.
func (b *BaseOut) Reset() {
	b.First = false
	b.Second = false
	b.Third = false
	b.Outs = 0
}

// ScoringPosition reports whether a runner occupies second or third.
func (b BaseOut) ScoringPosition() bool { return b.Second || b.Third }

// Runners counts occupied bases.
func (b BaseOut) Runners() int {
	n := 0
	if b.First {
		n++
	}
	if b.Second {
		n++
	}
	if b.Third {
		n++
	}
	return n
}

// Force reports whether there is a force play at base, given the current
// occupancy (before the play being decoded is applied).
func (b BaseOut) Force(base domain.Base) bool {
	switch base {
	case domain.First:
		return true
	case domain.Second:
		return b.First
	case domain.Third:
		return b.First && b.Second
	case domain.Home:
		return b.First && b.Second && b.Third
	default:
		return false
	}
}

// Forced returns the lead base at which a force is possible — the farthest
// occupied base a batter-runner's arrival forces action at. With the bases
// loaded this is Home even though every base is technically forceable.
func (b BaseOut) Forced() domain.Base {
	switch {
	case b.First && b.Second && b.Third:
		return domain.Home
	case b.First && b.Second:
		return domain.Third
	case b.First:
		return domain.Second
	default:
		return domain.First
	}
}
