// Package domain implements the fixed enumerations and compound value types
// of the ingestion core: handedness, league, position, base, pitch kind,
// batted-ball type, weather/field attributes, and the compound Count, Date,
// Advance, Out, and PositionRef values built from them.
package domain

import "strings"

// Handedness is a batting or throwing side.
type Handedness int

const (
	HandednessUnknown Handedness = iota
	HandednessLeft
	HandednessRight
	HandednessSwitch
)

// ParseHandedness maps a roster letter to a Handedness: B|S switch, L left,
// R right, anything else unknown.
func ParseHandedness(letter string) Handedness {
	switch strings.ToUpper(strings.TrimSpace(letter)) {
	case "B", "S":
		return HandednessSwitch
	case "L":
		return HandednessLeft
	case "R":
		return HandednessRight
	default:
		return HandednessUnknown
	}
}

func (h Handedness) String() string {
	switch h {
	case HandednessLeft:
		return "L"
	case HandednessRight:
		return "R"
	case HandednessSwitch:
		return "S"
	default:
		return "?"
	}
}

// League is a major-league affiliation, National Association onward.
type League int

const (
	NA League = iota // National Association
	NL                // National League
	AA                // American Association
	UA                // Union Association
	PL                // Players League
	AL                // American League
	FL                // Federal League
)

var leagueNames = [...]string{"NA", "NL", "AA", "UA", "PL", "AL", "FL"}

func (l League) String() string {
	if l < NA || l > FL {
		return "NL"
	}
	return leagueNames[l]
}

// ParseLeague recognizes the exact league codes; any unrecognized string
// falls back to NL, matching the source parser's legacy behaviour.
func ParseLeague(s string) League {
	switch s {
	case "NA":
		return NA
	case "AA":
		return AA
	case "UA":
		return UA
	case "PL":
		return PL
	case "AL":
		return AL
	case "FL":
		return FL
	default:
		return NL
	}
}

// ParseLeagueLetter maps the team-file single-character league code.
func ParseLeagueLetter(letter string) League {
	switch strings.ToUpper(strings.TrimSpace(letter)) {
	case "A":
		return AL
	case "N":
		return NL
	default:
		return NL
	}
}

// Base is a base or pseudo-base destination used by outs and advances.
type Base int

const (
	NoBase Base = iota
	Home
	Batter
	First
	Second
	Third
)

// ParseBase maps the first character of a Retrosheet base token: 1/2/3,
// B (batter), H (home).
func ParseBase(s string) Base {
	if s == "" {
		return NoBase
	}
	switch s[0] {
	case '1':
		return First
	case '2':
		return Second
	case '3':
		return Third
	case 'B':
		return Batter
	case 'H':
		return Home
	default:
		return NoBase
	}
}

func (b Base) String() string {
	switch b {
	case Home:
		return "H"
	case Batter:
		return "B"
	case First:
		return "1"
	case Second:
		return "2"
	case Third:
		return "3"
	default:
		return "?"
	}
}

// Position is a defensive position (or DH/pinch role) a player occupies.
type Position int

const (
	NoPosition Position = iota
	Pitcher
	Catcher
	FirstBase
	SecondBase
	ThirdBase
	ShortStop
	LeftField
	CenterField
	RightField
	DesignatedHitter
	PinchHitter
	PinchRunner
)

var positionNames = [...]string{
	"?", "P", "C", "1B",
	"2B", "3B", "SS", "LF",
	"CF", "RF", "DH", "PH",
	"PR",
}

// String renders the Retrosheet-conventional abbreviation.
func (p Position) String() string {
	if p < NoPosition || int(p) >= len(positionNames) {
		return "?"
	}
	return positionNames[p]
}

// ParsePosition maps a Retrosheet position code (a digit 1-9, or D/PH/PR in
// roster files) to a Position.
func ParsePosition(s string) Position {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoPosition
	}
	switch strings.ToUpper(s) {
	case "D":
		return DesignatedHitter
	case "PH":
		return PinchHitter
	case "PR":
		return PinchRunner
	}
	c := s[0]
	if c >= '0' && c <= '9' {
		n := int(c - '0')
		if n >= int(Pitcher) && n <= int(PinchRunner) {
			return Position(n)
		}
	}
	return NoPosition
}

// Sky is the recorded sky condition from an event file's "info" records.
type Sky int

const (
	SkyUnknown Sky = iota
	SkySunny
	SkyCloudy
	SkyOvercast
	SkyNight
	SkyDome
)

// ParseSky recognizes the lowercase Retrosheet sky tokens.
func ParseSky(s string) Sky {
	switch s {
	case "cloudy":
		return SkyCloudy
	case "dome":
		return SkyDome
	case "night":
		return SkyNight
	case "overcast":
		return SkyOvercast
	case "sunny":
		return SkySunny
	default:
		return SkyUnknown
	}
}

// FieldCondition is the recorded field surface condition.
type FieldCondition int

const (
	FieldUnknown FieldCondition = iota
	FieldSoaked
	FieldWet
	FieldDamp
	FieldDry
)

// ParseFieldCondition recognizes the lowercase Retrosheet field tokens.
func ParseFieldCondition(s string) FieldCondition {
	switch s {
	case "dry":
		return FieldDry
	case "soaked":
		return FieldSoaked
	case "wet":
		return FieldWet
	default:
		return FieldUnknown
	}
}

// Precipitation is the recorded precipitation condition.
type Precipitation int

const (
	PrecipUnknown Precipitation = iota
	PrecipNone
	PrecipDrizzle
	PrecipShowers
	PrecipRain
	PrecipSnow
)

// ParsePrecipitation recognizes the lowercase Retrosheet precipitation tokens.
func ParsePrecipitation(s string) Precipitation {
	switch s {
	case "drizzle":
		return PrecipDrizzle
	case "none":
		return PrecipNone
	case "rain":
		return PrecipRain
	case "showers":
		return PrecipShowers
	case "snow":
		return PrecipSnow
	default:
		return PrecipUnknown
	}
}

// WindDirection is the recorded wind direction relative to the field.
type WindDirection int

const (
	DirUnknown WindDirection = iota
	DirToLeft
	DirToCenter
	DirToRight
	DirLeftToRight
	DirFromLeft
	DirFromCenter
	DirFromRight
	DirRightToLeft
)

// ParseWindDirection recognizes the lowercase Retrosheet wind tokens.
func ParseWindDirection(s string) WindDirection {
	switch s {
	case "fromcf":
		return DirFromCenter
	case "fromlf":
		return DirFromLeft
	case "fromrf":
		return DirFromRight
	case "ltor":
		return DirLeftToRight
	case "rtol":
		return DirRightToLeft
	case "tocf":
		return DirToCenter
	case "tolf":
		return DirToLeft
	case "torf":
		return DirToRight
	default:
		return DirUnknown
	}
}

// ParseBool implements the "obvious" semantics for Retrosheet's true/false
// tokens. The source's Parse<bool> specialization returns true whenever
// sz.compare("true") is non-zero (i.e. whenever sz is NOT "true") — almost
// certainly an inverted-logic bug. This reimplements it the sensible way:
// true iff the token is exactly "true" (case-insensitive).
func ParseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// GameType distinguishes a single game from either half of a doubleheader.
type GameType int

const (
	UnknownGameType GameType = iota
	SingleGame
	DoubleHeaderFirst
	DoubleHeaderSecond
)

// ParseGameType maps the "info,number,<n>" field: 0 single, 1 first game of
// a doubleheader, 2 second game; any other value is Unknown.
func ParseGameType(n int) GameType {
	switch n {
	case 0:
		return SingleGame
	case 1:
		return DoubleHeaderFirst
	case 2:
		return DoubleHeaderSecond
	default:
		return UnknownGameType
	}
}
