package lineup

import (
	"testing"

	"stormlightlabs.org/sabermetrics/internal/retro/state"
)

func TestInstanceGreaterByInning(t *testing.T) {
	a := Instance{Inning: 2}
	b := Instance{Inning: 1}
	if !a.Greater(b) {
		t.Error("later inning should be Greater")
	}
	if b.Greater(a) {
		t.Error("earlier inning should not be Greater")
	}
}

func TestInstanceGreaterByRunsThenOutsThenRunners(t *testing.T) {
	base := Instance{Inning: 3, Runs: 1, BaseOut: state.BaseOut{Outs: 1}}

	moreRuns := Instance{Inning: 3, Runs: 2, BaseOut: state.BaseOut{Outs: 0}}
	if !moreRuns.Greater(base) {
		t.Error("more runs at the same inning should be Greater")
	}

	moreOuts := Instance{Inning: 3, Runs: 1, BaseOut: state.BaseOut{Outs: 2}}
	if !moreOuts.Greater(base) {
		t.Error("more outs at the same inning/runs should be Greater")
	}

	moreRunners := Instance{Inning: 3, Runs: 1, BaseOut: state.BaseOut{Outs: 1, First: true}}
	if !moreRunners.Greater(base) {
		t.Error("more runners at the same inning/runs/outs should be Greater")
	}
}

func TestInstanceLessAndEquality(t *testing.T) {
	a := Instance{Inning: 1}
	b := Instance{Inning: 2}
	if !a.Less(b) {
		t.Error("earlier instance should be Less")
	}
	if a.Less(a) {
		t.Error("an instance should not be Less than itself")
	}
	if !a.GreaterOrEqual(a) {
		t.Error("an instance should be GreaterOrEqual to itself")
	}
}
