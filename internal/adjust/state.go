// Package adjust holds the values the controls edit. It never renders.
package adjust

import (
	"fmt"
	"sync"

	"photo-adjust/internal/algorithms"
	"photo-adjust/internal/core"
	"photo-adjust/internal/pipeline"
)

// State is the control-side record of every operation value. Blur entries and
// moire are 0/1 toggles; the four blurs share one Intensity.
type State struct {
	mu        sync.RWMutex
	values    [algorithms.NumOperations]float64
	intensity float64
}

// Snapshot is a copy of State used for rollback.
type Snapshot struct {
	values    [algorithms.NumOperations]float64
	intensity float64
}

func NewState() *State {
	return &State{intensity: algorithms.DefaultIntensity}
}

// Get returns the control value for id.
func (s *State) Get(id algorithms.OperationID) float64 {
	algorithms.Lookup(id)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[id]
}

// Set stores v for id. Blur entries and moire accept only 0 or 1; the rest are
// validated against the operation's domain.
func (s *State) Set(id algorithms.OperationID, v float64) error {
	if err := validate(id, v); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[id] = v
	return nil
}

func validate(id algorithms.OperationID, v float64) error {
	op := algorithms.Lookup(id)
	if op.Family == algorithms.FamilyBlur {
		if v != 0 && v != 1 {
			return fmt.Errorf("%w: %s toggle must be 0 or 1, got %v", core.ErrInvalidInput, op.Key, v)
		}
		return nil
	}
	return algorithms.Validate(id, v)
}

// Enabled reports whether a toggle is on or an adjustment is non-zero.
func (s *State) Enabled(id algorithms.OperationID) bool {
	return s.Get(id) != 0
}

// Intensity returns the shared blur intensity.
func (s *State) Intensity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.intensity
}

// SetIntensity changes the shared blur intensity.
func (s *State) SetIntensity(v float64) error {
	if err := algorithms.Validate(algorithms.GaussianBlur, v); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intensity = v
	return nil
}

// Reset zeroes every value and restores the default intensity.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = [algorithms.NumOperations]float64{}
	s.intensity = algorithms.DefaultIntensity
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{values: s.values, intensity: s.intensity}
}

func (s *State) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = snap.values
	s.intensity = snap.intensity
}

// Sync pushes every value into p. Values were validated on Set, so an error
// here means the registry and this record disagree.
func (s *State) Sync(p *pipeline.Pipeline) error {
	snap := s.Snapshot()
	for _, id := range algorithms.Order() {
		v := snap.values[id]
		var err error
		switch {
		case id.Family() == algorithms.FamilyBlur:
			err = p.SetOperation(id, v == 1, snap.intensity)
		case id == algorithms.Moire:
			err = p.SetOperation(id, v == 1, v)
		default:
			err = p.SetOperation(id, v != 0, v)
		}
		if err != nil {
			return fmt.Errorf("sync %s: %w", id, err)
		}
	}
	return nil
}
