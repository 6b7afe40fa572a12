package domain

// PitchType is the kind of a single pitch, as recorded in the pitch
// sequence's letter tokens.
type PitchType int

const (
	PitchUnknown PitchType = iota
	PitchBall
	PitchBallIntentional
	PitchBallCalled
	PitchStrike
	PitchStrikeSwinging
	PitchStrikeCalled
	PitchFoul
	PitchFoulTip
	PitchHitBatter
	PitchBuntFoul
	PitchBuntFoulTip
	PitchBuntMissed
	PitchNoPitch
	PitchPitchout
	PitchPitchoutSwinging
	PitchPitchoutFoul
	PitchPitchoutInPlay
	PitchInPlay
)

// PickOff marks a pitch that also represents a pickoff attempt, and whether
// the attempt originated from the pitcher or the catcher.
type PickOff int

const (
	NoPickoff PickOff = iota
	PickoffFirst
	PickoffSecond
	PickoffThird
	CatcherFirst
	CatcherSecond
	CatcherThird
)

// Pitch is one token of a play's pitch sequence.
type Pitch struct {
	Type         PitchType
	Pickoff      PickOff
	RunnerGoing  bool // '>' — runner going on the pitch
	Blocked      bool // '*' — pitch blocked by the catcher
}

// pitchLetters maps the single-character pitch-sequence tokens to PitchType,
// per Retrosheet's event-file pitch grammar.
var pitchLetters = map[byte]PitchType{
	'B': PitchBall,
	'C': PitchStrikeCalled,
	'F': PitchFoul,
	'H': PitchHitBatter,
	'I': PitchBallIntentional,
	'K': PitchStrike,
	'L': PitchBuntFoul,
	'M': PitchBuntMissed,
	'N': PitchNoPitch,
	'O': PitchBuntFoulTip,
	'P': PitchPitchout,
	'Q': PitchPitchoutSwinging,
	'R': PitchPitchoutFoul,
	'S': PitchStrikeSwinging,
	'T': PitchFoulTip,
	'U': PitchUnknown,
	'V': PitchBallCalled,
	'X': PitchInPlay,
	'Y': PitchPitchoutInPlay,
}

// ParsePitchLetter maps a single pitch-sequence letter to its PitchType. The
// second return is false for unrecognized letters (including the '+', '*',
// '>', '.' modifiers, which the pitch-sequence tokenizer handles itself and
// never passes here).
func ParsePitchLetter(c byte) (PitchType, bool) {
	t, ok := pitchLetters[c]
	return t, ok
}

// PickoffBase maps a digit token ('1', '2', '3') to the corresponding
// PickOff value, tagged pitcher- or catcher-origin.
func PickoffBase(digit byte, catcherOrigin bool) PickOff {
	switch digit {
	case '1':
		if catcherOrigin {
			return CatcherFirst
		}
		return PickoffFirst
	case '2':
		if catcherOrigin {
			return CatcherSecond
		}
		return PickoffSecond
	case '3':
		if catcherOrigin {
			return CatcherThird
		}
		return PickoffThird
	default:
		return NoPickoff
	}
}

// BattedBallType classifies the trajectory of a ball put in play.
type BattedBallType int

const (
	BattedBallNone BattedBallType = iota
	BattedBallUnknown
	BattedBallBunt
	BattedBallLiner
	BattedBallPopup
	BattedBallGrounder
	BattedBallFly
	BattedBallFoul
)

// battedBallLetters maps the description-flag letters that denote batted
// ball trajectory (e.g. the "L" in "S8/L", the "G" in "64(1)3/G").
var battedBallLetters = map[string]BattedBallType{
	"B": BattedBallBunt,
	"L": BattedBallLiner,
	"P": BattedBallPopup,
	"G": BattedBallGrounder,
	"F": BattedBallFly,
}

// ParseBattedBallFlag maps a description-list flag token to a BattedBallType.
// Flags the table doesn't recognize (GDP, SF, and the like) yield
// BattedBallNone — they describe the play's outcome, not its trajectory.
func ParseBattedBallFlag(flag string) BattedBallType {
	if t, ok := battedBallLetters[flag]; ok {
		return t
	}
	return BattedBallNone
}

// FieldDesignationLen bounds the fielder-designation text carried alongside
// a BattedBall value (e.g. "78" for a ball hit between left and center).
const FieldDesignationLen = 6

// BattedBall describes a ball put into play: its trajectory and the
// fielders involved, as derived from the event's description flags.
type BattedBall struct {
	Type              BattedBallType
	FieldDesignation string
}
