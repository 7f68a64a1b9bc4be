package runtime

import (
	"sync"

	"github.com/parleykit/parley/pkg/domain"
)

type listener struct {
	id int
	fn func()
}

// Signal is the edge-triggered "dialogue running" flag. Listeners fire
// synchronously, in registration order, and only on a state transition:
// started on false -> true, finished on true -> false.
type Signal struct {
	mu       sync.Mutex
	running  bool
	nextID   int
	started  []listener
	finished []listener
}

// NewSignal creates a lowered signal with no listeners.
func NewSignal() *Signal {
	return &Signal{}
}

// AddListener registers a callback for the given event kind and returns a
// handle for removal. Unknown kinds register nothing and return 0.
func (s *Signal) AddListener(kind domain.EventType, fn func()) int {
	if fn == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	entry := listener{id: s.nextID, fn: fn}
	switch kind {
	case domain.EventStarted:
		s.started = append(s.started, entry)
	case domain.EventFinished:
		s.finished = append(s.finished, entry)
	default:
		return 0
	}
	return entry.id
}

// RemoveListener unregisters the callback identified by the handle that
// AddListener returned. Unknown handles are ignored.
func (s *Signal) RemoveListener(kind domain.EventType, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case domain.EventStarted:
		s.started = remove(s.started, id)
	case domain.EventFinished:
		s.finished = remove(s.finished, id)
	}
}

// Raise marks the dialogue as running, firing started listeners only on
// the false -> true transition.
func (s *Signal) Raise() {
	s.fire(true)
}

// Lower marks the dialogue as stopped, firing finished listeners only on
// the true -> false transition.
func (s *Signal) Lower() {
	s.fire(false)
}

// Running reports the current signal state.
func (s *Signal) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Signal) fire(raise bool) {
	s.mu.Lock()
	if s.running == raise {
		s.mu.Unlock()
		return
	}
	s.running = raise
	src := s.finished
	if raise {
		src = s.started
	}
	// Snapshot before unlocking so a callback may add or remove listeners.
	batch := make([]listener, len(src))
	copy(batch, src)
	s.mu.Unlock()

	for _, l := range batch {
		l.fn()
	}
}

func remove(entries []listener, id int) []listener {
	for i, l := range entries {
		if l.id == id {
			return append(entries[:i], entries[i+1:]...)
		}
	}
	return entries
}
