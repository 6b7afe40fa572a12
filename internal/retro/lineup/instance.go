// Package lineup implements the per-game lineup book: which player occupies
// which position or batting-order slot at any moment (Instance) in the game,
// including the nearest-instance tie-break rule substitutions require.
package lineup

import "stormlightlabs.org/sabermetrics/internal/retro/state"

// Instance is the (BaseOut, inning, runs) triple that uniquely identifies a
// moment in a game — the time coordinate substitutions and plays are ordered
// by.
type Instance struct {
	BaseOut state.BaseOut
	Inning  int
	Runs    int
}

// Starter is the instance of the first pitch of the game: empty bases, no
// outs, the first inning, no runs scored.
var Starter = Instance{BaseOut: state.BaseOut{}, Inning: 1, Runs: 0}

// Greater reports whether i is strictly later than o: compared by inning,
// then runs, then outs, then number of runners — the same ordering as the
// source's Instance::operator>.
func (i Instance) Greater(o Instance) bool {
	switch {
	case i.Inning != o.Inning:
		return i.Inning > o.Inning
	case i.Runs != o.Runs:
		return i.Runs > o.Runs
	case i.BaseOut.Outs != o.BaseOut.Outs:
		return i.BaseOut.Outs > o.BaseOut.Outs
	default:
		return i.BaseOut.Runners() > o.BaseOut.Runners()
	}
}

// Less reports whether i is strictly earlier than o.
func (i Instance) Less(o Instance) bool { return !i.GreaterOrEqual(o) }

// GreaterOrEqual reports whether i is later than or equal to o.
func (i Instance) GreaterOrEqual(o Instance) bool { return i.Greater(o) || i == o }

// LessOrEqual reports whether i is earlier than or equal to o.
func (i Instance) LessOrEqual(o Instance) bool { return !i.Greater(o) }
