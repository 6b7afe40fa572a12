package domain

import "testing"

func TestParseHandedness(t *testing.T) {
	cases := map[string]Handedness{
		"B": HandednessSwitch,
		"S": HandednessSwitch,
		"L": HandednessLeft,
		"R": HandednessRight,
		"r": HandednessRight,
		"":  HandednessUnknown,
		"X": HandednessUnknown,
	}
	for in, want := range cases {
		if got := ParseHandedness(in); got != want {
			t.Errorf("ParseHandedness(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseLeagueFallsBackToNL(t *testing.T) {
	if got := ParseLeague("XX"); got != NL {
		t.Errorf("ParseLeague(unknown) = %v, want NL", got)
	}
	if got := ParseLeague("AL"); got != AL {
		t.Errorf("ParseLeague(AL) = %v, want AL", got)
	}
}

func TestLeagueString(t *testing.T) {
	if NL.String() != "NL" {
		t.Errorf("NL.String() = %q, want NL", NL.String())
	}
	if AL.String() != "AL" {
		t.Errorf("AL.String() = %q, want AL", AL.String())
	}
}

func TestParseLeagueLetter(t *testing.T) {
	if got := ParseLeagueLetter("A"); got != AL {
		t.Errorf("ParseLeagueLetter(A) = %v, want AL", got)
	}
	if got := ParseLeagueLetter("N"); got != NL {
		t.Errorf("ParseLeagueLetter(N) = %v, want NL", got)
	}
}

func TestParseBase(t *testing.T) {
	cases := map[string]Base{
		"1":   First,
		"2":   Second,
		"3":   Third,
		"B":   Batter,
		"H":   Home,
		"":    NoBase,
		"Q":   NoBase,
		"3B":  Third,
	}
	for in, want := range cases {
		if got := ParseBase(in); got != want {
			t.Errorf("ParseBase(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParsePosition(t *testing.T) {
	cases := map[string]Position{
		"1":  Pitcher,
		"9":  RightField,
		"D":  DesignatedHitter,
		"PH": PinchHitter,
		"PR": PinchRunner,
		"":   NoPosition,
		"0":  NoPosition,
	}
	for in, want := range cases {
		if got := ParsePosition(in); got != want {
			t.Errorf("ParsePosition(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPositionString(t *testing.T) {
	if Pitcher.String() != "P" {
		t.Errorf("Pitcher.String() = %q, want P", Pitcher.String())
	}
	if RightField.String() != "RF" {
		t.Errorf("RightField.String() = %q, want RF", RightField.String())
	}
	if NoPosition.String() != "?" {
		t.Errorf("NoPosition.String() = %q, want ?", NoPosition.String())
	}
}

func TestParseBoolObviousSemantics(t *testing.T) {
	if !ParseBool("true") {
		t.Error(`ParseBool("true") should be true`)
	}
	if !ParseBool("TRUE") {
		t.Error(`ParseBool("TRUE") should be true (case-insensitive)`)
	}
	if ParseBool("false") {
		t.Error(`ParseBool("false") should be false`)
	}
	if ParseBool("") {
		t.Error(`ParseBool("") should be false`)
	}
}

func TestParseGameType(t *testing.T) {
	cases := map[int]GameType{
		0: SingleGame,
		1: DoubleHeaderFirst,
		2: DoubleHeaderSecond,
		3: UnknownGameType,
		-1: UnknownGameType,
	}
	for in, want := range cases {
		if got := ParseGameType(in); got != want {
			t.Errorf("ParseGameType(%d) = %v, want %v", in, got, want)
		}
	}
}

func TestParseSkyFieldPrecipWind(t *testing.T) {
	if ParseSky("night") != SkyNight {
		t.Error("ParseSky(night) mismatch")
	}
	if ParseSky("gibberish") != SkyUnknown {
		t.Error("ParseSky(unknown) should fall back to SkyUnknown")
	}
	if ParseFieldCondition("dry") != FieldDry {
		t.Error("ParseFieldCondition(dry) mismatch")
	}
	if ParsePrecipitation("showers") != PrecipShowers {
		t.Error("ParsePrecipitation(showers) mismatch")
	}
	if ParseWindDirection("ltor") != DirLeftToRight {
		t.Error("ParseWindDirection(ltor) mismatch")
	}
	if ParseWindDirection("bogus") != DirUnknown {
		t.Error("ParseWindDirection(bogus) should fall back to DirUnknown")
	}
}
