package parse

import "stormlightlabs.org/sabermetrics/internal/retro/domain"

// parsePlayPitches tokenizes a play's pitch-sequence field into a stream of
// Pitch values. Each character is one token: '+' flags the following pickoff
// digit as catcher-origin, '*' flags the following pitch as blocked, '>'
// flags the following pitch as thrown with the runner going, '.' is a pure
// separator, a digit ('1'/'2'/'3') records a pickoff attempt at that base,
// and a recognized letter records the pitch itself. Unrecognized characters
// are discarded without producing a Pitch.
func parsePlayPitches(pitches string) []domain.Pitch {
	var out []domain.Pitch

	var catcherPickoff, runnerGoing, blocked bool

	for i := 0; i < len(pitches); i++ {
		c := pitches[i]

		switch {
		case c >= '1' && c <= '3':
			pickoff := domain.PickoffBase(c, catcherPickoff)
			out = append(out, domain.Pitch{
				Pickoff:     pickoff,
				RunnerGoing: runnerGoing,
				Blocked:     blocked,
			})
			catcherPickoff, runnerGoing, blocked = false, false, false
		case c == '+':
			catcherPickoff = true
		case c == '*':
			blocked = true
		case c == '>':
			runnerGoing = true
		case c == '.':
			// pure separator, carries no pitch
		default:
			t, ok := domain.ParsePitchLetter(c)
			if !ok {
				continue
			}
			out = append(out, domain.Pitch{
				Type:        t,
				RunnerGoing: runnerGoing,
				Blocked:     blocked,
			})
			runnerGoing, blocked = false, false
		}
	}

	return out
}
