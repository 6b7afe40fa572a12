package state

// Arena is the process-wide, single-writer owner of every State node across
// every game. Nodes are appended and never moved after creation; handles
// (arena indices) stay valid for the arena's lifetime. This corresponds to
// the source's StateManager singleton, reimplemented as an explicit value
// owned by the ingestion driver instead of a process-global — tests
// construct a fresh Arena per case instead of reaching for a global.
type Arena struct {
	nodes []*Node
}

// NewArena returns an empty state arena.
func NewArena() *Arena {
	return &Arena{}
}

// Create allocates a new node of the given type, appends it, and returns its
// handle. PlayerLink and GameLink start at NoHandle.
func (a *Arena) Create(t Type) Handle {
	n := &Node{
		Type:       t,
		PlayerLink: NoHandle,
		GameLink:   NoHandle,
		index:      len(a.nodes),
	}
	a.nodes = append(a.nodes, n)
	return Handle(n.index)
}

// At returns the node at handle h, or nil if h is out of range.
func (a *Arena) At(h Handle) *Node {
	if h < 0 || int(h) >= len(a.nodes) {
		return nil
	}
	return a.nodes[h]
}

// Count returns the number of nodes ever created in this arena.
func (a *Arena) Count() int { return len(a.nodes) }

// Remove erases the node at handle h by index. Not used during ingestion
// (nodes are append-only while parsing); exposed for parity with the
// source's StateManager::removeState and for test teardown of partial
// chains. Removing a node shifts every subsequent node's index, invalidating
// any handle greater than h — callers must not retain such handles across a
// Remove call.
func (a *Arena) Remove(h Handle) {
	if h < 0 || int(h) >= len(a.nodes) {
		return
	}
	a.nodes = append(a.nodes[:h], a.nodes[h+1:]...)
	for i := int(h); i < len(a.nodes); i++ {
		a.nodes[i].index = i
	}
}
