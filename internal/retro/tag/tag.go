// Package tag implements the typed, fixed-capacity identifiers ("tags") used
// to key every record table in the ingestion core: players, teams, games,
// ballparks, umpires, managers, and seasons.
//
// A Tag compares by kind first, then by case-folded reference, mirroring
// Retrosheet/Lahman's natural keys (e.g. "troutmi01", "BOS07").
package tag

import "strings"

// MaxLen is the maximum number of significant characters a tag reference
// may carry. Retrosheet/Lahman identifiers are all well under this.
const MaxLen = 12

// Kind discriminates what a Tag identifies.
type Kind int

const (
	Unknown Kind = iota
	Player
	Umpire
	Manager
	Team
	Game
	Season
	Ballpark
)

func (k Kind) String() string {
	switch k {
	case Player:
		return "player"
	case Umpire:
		return "umpire"
	case Manager:
		return "manager"
	case Team:
		return "team"
	case Game:
		return "game"
	case Season:
		return "season"
	case Ballpark:
		return "ballpark"
	default:
		return "unknown"
	}
}

// Tag is a kind-discriminated, case-insensitive identifier.
type Tag struct {
	Kind Kind
	Ref  string
}

// New builds a Tag of the given kind from a reference string, truncating to
// MaxLen characters.
func New(k Kind, ref string) Tag {
	if len(ref) > MaxLen {
		ref = ref[:MaxLen]
	}
	return Tag{Kind: k, Ref: ref}
}

// NewPlayer builds a Player tag.
func NewPlayer(ref string) Tag { return New(Player, ref) }

// NewUmpire builds an Umpire tag.
func NewUmpire(ref string) Tag { return New(Umpire, ref) }

// NewManager builds a Manager tag.
func NewManager(ref string) Tag { return New(Manager, ref) }

// NewTeam builds a Team tag.
func NewTeam(ref string) Tag { return New(Team, ref) }

// NewGame builds a Game tag.
func NewGame(ref string) Tag { return New(Game, ref) }

// NewSeason builds a Season tag.
func NewSeason(ref string) Tag { return New(Season, ref) }

// NewBallpark builds a Ballpark tag.
func NewBallpark(ref string) Tag { return New(Ballpark, ref) }

// IsZero reports whether t carries no reference (the empty-card sentinel
// used throughout the lineup book).
func (t Tag) IsZero() bool { return t.Kind == Unknown && t.Ref == "" }

// String renders the tag's reference (not its kind).
func (t Tag) String() string { return t.Ref }

// Equal compares kind first, then reference, case-insensitively.
func (t Tag) Equal(o Tag) bool {
	return t.Kind == o.Kind && strings.EqualFold(t.Ref, o.Ref)
}

// Less gives tags a total order: kind first, then case-folded reference.
// Used to key Go maps deterministically is unnecessary (maps key on Tag's
// natural comparability below), but Less supports sorted iteration in
// filtered table dumps.
func (t Tag) Less(o Tag) bool {
	if t.Kind != o.Kind {
		return t.Kind < o.Kind
	}
	a, b := strings.ToLower(t.Ref), strings.ToLower(o.Ref)
	return a < b
}

// key returns the case-folded comparison key used by record tables, so two
// tags that differ only in case land in the same map bucket.
func (t Tag) key() Tag {
	return Tag{Kind: t.Kind, Ref: strings.ToLower(t.Ref)}
}

// Key exposes the normalized map key for tables keyed directly by Tag.
func Key(t Tag) Tag { return t.key() }
