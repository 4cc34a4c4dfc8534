// History package: append-only checkpoint stack with undo
package history

import (
	"fmt"
	"sync"

	"photo-adjust/internal/core"
)

// Stack holds fully rendered checkpoints. Index 0 is the base (the loaded
// original) and is never popped or evicted.
type Stack struct {
	mu          sync.RWMutex
	checkpoints []core.Image
	limit       int
}

// NewStack creates an empty stack. limit caps the number of checkpoints kept,
// base included; limit <= 0 means unbounded and 1 keeps only the base.
func NewStack(limit int) *Stack {
	if limit < 0 {
		limit = 0
	}
	return &Stack{
		checkpoints: make([]core.Image, 0),
		limit:       limit,
	}
}

// Reset clears the stack down to a single base checkpoint.
func (s *Stack) Reset(original core.Image) error {
	if err := core.ValidateImage(original); err != nil {
		return fmt.Errorf("history reset: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoints = []core.Image{original}
	return nil
}

// Push appends a checkpoint, evicting the oldest non-base entry when bounded.
func (s *Stack) Push(img core.Image) error {
	if err := core.ValidateImage(img); err != nil {
		return fmt.Errorf("history push: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.checkpoints) == 0 {
		return fmt.Errorf("%w: history has no base checkpoint", core.ErrInvalidInput)
	}
	if s.limit == 1 {
		return nil
	}

	s.checkpoints = append(s.checkpoints, img)
	if s.limit > 0 && len(s.checkpoints) > s.limit {
		s.checkpoints = append(s.checkpoints[:1], s.checkpoints[2:]...)
	}
	return nil
}

// Undo pops the newest checkpoint and returns the new top. With only the base
// left it returns the base together with core.ErrNoMoreUndo.
func (s *Stack) Undo() (core.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch len(s.checkpoints) {
	case 0:
		return core.Image{}, fmt.Errorf("%w: no image loaded", core.ErrInvalidInput)
	case 1:
		return s.checkpoints[0], core.ErrNoMoreUndo
	}

	s.checkpoints[len(s.checkpoints)-1] = core.Image{}
	s.checkpoints = s.checkpoints[:len(s.checkpoints)-1]
	return s.checkpoints[len(s.checkpoints)-1], nil
}

// Top returns the newest checkpoint, or false when nothing is loaded.
func (s *Stack) Top() (core.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.checkpoints) == 0 {
		return core.Image{}, false
	}
	return s.checkpoints[len(s.checkpoints)-1], true
}

// Base returns the bottom checkpoint.
func (s *Stack) Base() (core.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.checkpoints) == 0 {
		return core.Image{}, false
	}
	return s.checkpoints[0], true
}

func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.checkpoints)
}

func (s *Stack) Limit() int {
	return s.limit
}
