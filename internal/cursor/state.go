// internal/cursor/state.go
package cursor

import (
	"context"
	"sync"
)

// cursorState holds the mutable fields of a cursor behind one mutex: the
// pointer location, the moving flag that arbitrates between directed calls
// and the roaming scheduler, and the roaming goroutine's lifecycle handles.
type cursorState struct {
	mu sync.Mutex

	loc    Point
	moving bool

	roamEnabled bool
	roamCancel  context.CancelFunc
	roamDone    chan struct{}
}

func (s *cursorState) location() Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loc
}

func (s *cursorState) setLocation(p Point) {
	s.mu.Lock()
	s.loc = p
	s.mu.Unlock()
}

// beginDirected raises the moving flag and returns its previous value so
// nested directed calls (Click wrapping Move) restore it correctly. The flag
// is an advisory mutex: the roaming loop checks it before each point it
// dispatches and backs off while it is set.
func (s *cursorState) beginDirected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.moving
	s.moving = true
	return prev
}

func (s *cursorState) endDirected(prev bool) {
	s.mu.Lock()
	s.moving = prev
	s.mu.Unlock()
}

func (s *cursorState) isMoving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moving
}
