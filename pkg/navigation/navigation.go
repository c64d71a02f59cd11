// Package navigation provides a bounded circular cursor over an artwork
// sequence with synchronous change notification.
//
// A [State] is created once from a fully loaded catalog and lives as long as
// the exhibit. [State.Next] and [State.Prev] wrap around the ends of the
// sequence; [State.GoTo] jumps to an absolute position and reports
// out-of-range indices as errors instead of clamping them.
//
// # Notification
//
// Every successful move invokes the listeners subscribed to [EventNavigate]
// synchronously, in registration order, with a [Snapshot] taken after the
// move. There is no batching and no deduplication: moving to the position
// you are already on still notifies.
//
// # Empty Sequences
//
// An empty artwork list is valid (a gallery that is still loading). Current
// returns nil and Next/Prev return nil without notifying. GoTo fails for
// every index.
//
// State is not safe for concurrent use.
package navigation

import (
	"github.com/matzehuels/exhibit/pkg/catalog"
	"github.com/matzehuels/exhibit/pkg/errors"
)

// Snapshot describes the position after a navigation step.
type Snapshot struct {
	Artwork   *catalog.Artwork
	Index     int
	Critiques []catalog.Critique
}

// Listener receives navigation snapshots.
type Listener func(Snapshot)

// Subscription is the handle returned by Subscribe. Unsubscribe removes a
// listener by handle identity, so the same function may be registered twice
// and removed one registration at a time.
type Subscription struct {
	fn Listener
}

// State is the navigation cursor.
type State struct {
	artworks  []catalog.Artwork
	critiques []catalog.Critique
	personas  map[string]*catalog.Persona
	index     int
	listeners map[Event][]*Subscription
}

// New creates a cursor positioned on the first artwork. The slices are kept
// by reference and must not be modified afterwards.
func New(artworks []catalog.Artwork, critiques []catalog.Critique, personas []catalog.Persona) *State {
	s := &State{
		artworks:  artworks,
		critiques: critiques,
		personas:  make(map[string]*catalog.Persona, len(personas)),
		listeners: make(map[Event][]*Subscription),
	}
	for i := range personas {
		s.personas[personas[i].ID] = &personas[i]
	}
	if len(artworks) == 0 {
		s.index = -1
	}
	return s
}

// Len returns the number of artworks.
func (s *State) Len() int { return len(s.artworks) }

// Index returns the current position, or -1 for an empty sequence.
func (s *State) Index() int { return s.index }

// Next advances one position, wrapping to the start.
func (s *State) Next() *catalog.Artwork {
	n := len(s.artworks)
	if n == 0 {
		return nil
	}
	s.index = (s.index + 1) % n
	s.notify()
	return s.Current()
}

// Prev moves back one position, wrapping to the end.
func (s *State) Prev() *catalog.Artwork {
	n := len(s.artworks)
	if n == 0 {
		return nil
	}
	s.index = (s.index - 1 + n) % n
	s.notify()
	return s.Current()
}

// GoTo moves to an absolute position. An index outside [0, Len) returns an
// INDEX_OUT_OF_RANGE error and leaves the cursor untouched.
func (s *State) GoTo(index int) (*catalog.Artwork, error) {
	if index < 0 || index >= len(s.artworks) {
		return nil, errors.New(errors.ErrCodeIndexOutOfRange, "index %d out of range [0, %d)", index, len(s.artworks))
	}
	s.index = index
	s.notify()
	return s.Current(), nil
}

// Current returns the artwork at the cursor, or nil for an empty sequence.
func (s *State) Current() *catalog.Artwork {
	if len(s.artworks) == 0 {
		return nil
	}
	return &s.artworks[s.index]
}

// CurrentCritiques returns the critiques of the current artwork in catalog
// order. It returns an empty slice when there is no current artwork.
func (s *State) CurrentCritiques() []catalog.Critique {
	cur := s.Current()
	if cur == nil {
		return []catalog.Critique{}
	}
	out := []catalog.Critique{}
	for _, c := range s.critiques {
		if c.ArtworkID == cur.ID {
			out = append(out, c)
		}
	}
	return out
}

// IndexOf returns the position of the artwork with the given ID, or -1.
func (s *State) IndexOf(id string) int {
	for i := range s.artworks {
		if s.artworks[i].ID == id {
			return i
		}
	}
	return -1
}

// Persona looks up a critique author.
func (s *State) Persona(id string) (*catalog.Persona, bool) {
	p, ok := s.personas[id]
	return p, ok
}

// Snapshot returns the current position as a notification would report it.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Artwork: s.Current(), Index: s.index, Critiques: s.CurrentCritiques()}
}

// Subscribe registers fn for event. Any event value may be used; its
// listener list is created on first use. A nil fn registers nothing and
// returns nil.
func (s *State) Subscribe(event Event, fn Listener) *Subscription {
	if fn == nil {
		return nil
	}
	sub := &Subscription{fn: fn}
	s.listeners[event] = append(s.listeners[event], sub)
	return sub
}

// Unsubscribe removes sub from event's listeners. It reports whether the
// handle was registered.
func (s *State) Unsubscribe(event Event, sub *Subscription) bool {
	subs := s.listeners[event]
	for i, existing := range subs {
		if existing == sub {
			s.listeners[event] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}
	return false
}

func (s *State) notify() {
	subs := s.listeners[EventNavigate]
	if len(subs) == 0 {
		return
	}
	snap := s.Snapshot()
	// Listeners may unsubscribe while being notified.
	for _, sub := range append([]*Subscription(nil), subs...) {
		sub.fn(snap)
	}
}
