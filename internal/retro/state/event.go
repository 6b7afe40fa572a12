package state

import "stormlightlabs.org/sabermetrics/internal/retro/domain"

// EventType classifies the kind of play a State node's Event decodes.
type EventType int

const (
	EventNP EventType = iota // no play
	EventO                   // batted ball out
	EventE
	EventFLE // error on a foul fly ball
	EventB
	EventBDP
	EventBR // runner hit by batted ball
	EventK
	EventKC
	EventFL
	EventFO // force out
	EventINT
	EventIW
	EventW
	EventSF
	EventSH
	EventDP
	EventTP
	EventSB
	EventPOCS
	EventPO
	EventCS
	EventBK
	EventDI
	EventOA
	EventPB
	EventWP
	EventHBP
	EventH1B
	EventH2B
	EventH3B
	EventHR
	EventFC
	EventDGR
)

// Event is the decoded content of a single play: its classification, the
// outs recorded, the merged runner advances, and the runs scored.
type Event struct {
	Type       EventType
	Outs       []domain.Out
	Advance    domain.Advance
	RunsScored uint
}

// RunsFromAdvance returns the number of Home-bound destinations in Advance,
// a figure to cross-check against Event.RunsScored — a convenience
// supplementing the source's Advance::runs().
func (e Event) RunsFromAdvance() int { return e.Advance.Runs() }

// Handle is a non-owning reference into a state Arena: the node's index.
// The zero value refers to the first node created; use NoHandle for "absent".
type Handle int

// NoHandle is the sentinel for "no state" (a nil StateLink in the source).
const NoHandle Handle = -1

// Node is one arena-owned state: the decoded event plus the game context at
// the moment it was recorded, and two forward links (to the batter's next
// plate appearance, and to the next play in the game).
type Node struct {
	Type Type

	Event Event

	Batter      domain.PositionRef
	Pitches     []domain.Pitch
	BaseRunners []domain.PositionRef

	Inning int

	Count domain.Count

	Visiting bool

	RunsHome     int
	RunsVisiting int

	GameRef string // tag.Tag.Ref of the owning game

	PlayerLink Handle
	GameLink   Handle

	index int
}

// RunsScored returns the combined home/visiting run total recorded at this
// state (i.e. the game's score as of this play, not this play's runs).
func (n *Node) RunsScored() int { return n.RunsHome + n.RunsVisiting }

// Index returns this node's position in its arena.
func (n *Node) Index() int { return n.index }
