package lineup

import (
	"sync"

	"stormlightlabs.org/sabermetrics/internal/retro/domain"
	"stormlightlabs.org/sabermetrics/internal/retro/tag"
)

// Card is one lineup entry: the position played, batting order (0 for an AL
// pitcher), the instance at which the player entered, and which side
// (home/visiting) they play for.
type Card struct {
	Position domain.Position
	Order    int
	Instance Instance
	Visiting bool
}

// Lineup is the per-game map from player tag to Card. Insertion models a
// substitution: the first insertion for a tag records the card; a later
// insertion for the same tag updates position and order in place. A player
// who re-enters a game after leaving it keeps their original entry instance;
// the re-entry is not recorded as a second history entry.
type Lineup struct {
	mu      sync.Mutex
	entries map[tag.Tag]*Card
}

// NewLineup returns an empty lineup book.
func NewLineup() *Lineup {
	return &Lineup{entries: make(map[tag.Tag]*Card)}
}

// Sub records a substitution: pt enters at position p, batting order order,
// for the given instance and side. Returns true if this was pt's first
// appearance in this lineup (a fresh card), false if an existing card was
// updated in place.
func (l *Lineup) Sub(pt tag.Tag, inst Instance, p domain.Position, order int, visiting bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := tag.Key(pt)
	if existing, ok := l.entries[key]; ok {
		existing.Order = order
		existing.Position = p
		return false
	}

	l.entries[key] = &Card{
		Position: p,
		Order:    order,
		Instance: inst,
		Visiting: visiting,
	}
	return true
}

// Card returns the recorded card for t, or the zero Card if t never
// appeared in this lineup.
func (l *Lineup) Card(t tag.Tag) Card {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.entries[tag.Key(t)]; ok {
		return *c
	}
	return Card{}
}

// FindByInstance returns the first player tag whose card's instance equals
// inst, or the zero Tag if none matches. Iteration order over a Go map is
// unspecified, matching the source's "first match in table order" semantics
// only loosely — callers needing a deterministic choice among several
// players recorded at the exact same instance should not rely on which one
// this returns.
func (l *Lineup) FindByInstance(inst Instance) tag.Tag {
	l.mu.Lock()
	defer l.mu.Unlock()
	for t, c := range l.entries {
		if c.Instance == inst {
			return t
		}
	}
	return tag.Tag{}
}

// FindByPosition returns the player tag occupying position p for the given
// side, selecting among multiple candidates the one whose substitution
// instance is nearest to after: preferring the latest entry strictly before
// after, else the earliest entry strictly after after, with a candidate
// exactly at after preferred over any candidate the current best doesn't
// already match. Returns the zero Tag when no card matches.
func (l *Lineup) FindByPosition(p domain.Position, visiting bool, after Instance) tag.Tag {
	return l.find(after, func(c *Card) bool {
		return c.Position == p && c.Visiting == visiting
	})
}

// FindByOrder is FindByPosition's counterpart keyed on batting order instead
// of defensive position.
func (l *Lineup) FindByOrder(order int, visiting bool, after Instance) tag.Tag {
	return l.find(after, func(c *Card) bool {
		return c.Order == order && c.Visiting == visiting
	})
}

func (l *Lineup) find(after Instance, match func(*Card) bool) tag.Tag {
	l.mu.Lock()
	defer l.mu.Unlock()

	var bestTag tag.Tag
	var best *Card

	for t, c := range l.entries {
		if !match(c) {
			continue
		}

		if best == nil {
			bestTag, best = t, c
			continue
		}

		switch {
		case c.Instance.Less(after):
			if best.Instance.Greater(after) || c.Instance.Greater(best.Instance) {
				bestTag, best = t, c
			}
		case c.Instance.Greater(after):
			if c.Instance.Less(best.Instance) {
				bestTag, best = t, c
			}
		default:
			if c.Instance != best.Instance {
				bestTag, best = t, c
			}
		}
	}

	if best == nil {
		return tag.Tag{}
	}
	return bestTag
}
