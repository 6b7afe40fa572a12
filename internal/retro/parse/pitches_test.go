package parse

import (
	"reflect"
	"testing"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
)

func TestParsePlayPitchesBasicLetters(t *testing.T) {
	got := parsePlayPitches("BCX")
	want := []domain.Pitch{
		{Type: domain.PitchBall},
		{Type: domain.PitchStrikeCalled},
		{Type: domain.PitchInPlay},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parsePlayPitches(BCX) = %+v, want %+v", got, want)
	}
}

func TestParsePlayPitchesRunnerGoingCarriesToNextPitch(t *testing.T) {
	got := parsePlayPitches(">BX")
	want := []domain.Pitch{
		{Type: domain.PitchBall, RunnerGoing: true},
		{Type: domain.PitchInPlay},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parsePlayPitches(>BX) = %+v, want %+v", got, want)
	}
}

func TestParsePlayPitchesBlockedAndSeparator(t *testing.T) {
	got := parsePlayPitches("*B.C")
	want := []domain.Pitch{
		{Type: domain.PitchBall, Blocked: true},
		{Type: domain.PitchStrikeCalled},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parsePlayPitches(*B.C) = %+v, want %+v", got, want)
	}
}

func TestParsePlayPitchesPickoffs(t *testing.T) {
	got := parsePlayPitches("1+2")
	want := []domain.Pitch{
		{Pickoff: domain.PickoffFirst},
		{Pickoff: domain.CatcherSecond},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parsePlayPitches(1+2) = %+v, want %+v", got, want)
	}
}

func TestParsePlayPitchesUnrecognizedCharacterDropped(t *testing.T) {
	got := parsePlayPitches("B?C")
	want := []domain.Pitch{
		{Type: domain.PitchBall},
		{Type: domain.PitchStrikeCalled},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parsePlayPitches(B?C) = %+v, want %+v", got, want)
	}
}
