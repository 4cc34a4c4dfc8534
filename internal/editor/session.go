// Package editor orchestrates the controls, the pipeline and the history for
// one editing session.
package editor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"photo-adjust/internal/adjust"
	"photo-adjust/internal/algorithms"
	"photo-adjust/internal/core"
	"photo-adjust/internal/pipeline"
)

// ErrSuperseded is returned by Render when a Load, Reset, Undo or a newer
// render committed while the kernels ran. The result was discarded.
var ErrSuperseded = errors.New("render superseded")

// Session serializes every mutation of its pipeline. Kernels run outside the
// lock, so a slow render never blocks the controls. A failed render rolls the
// controls back to the last values that rendered successfully.
type Session struct {
	mu       sync.Mutex
	logger   *logrus.Logger
	pipe     *pipeline.Pipeline
	controls *adjust.State
	good     adjust.Snapshot

	// epoch changes whenever history is rewritten outside a render.
	epoch     uint64
	started   uint64
	committed uint64

	// fallback returns the last good checkpoint alongside a render error.
	fallback bool
}

func NewSession(logger *logrus.Logger, pipe *pipeline.Pipeline, fallback bool) *Session {
	controls := adjust.NewState()
	return &Session{
		logger:   logger,
		pipe:     pipe,
		controls: controls,
		good:     controls.Snapshot(),
		fallback: fallback,
	}
}

// Load starts a new session on img.
func (s *Session) Load(img core.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.pipe.Load(img); err != nil {
		return err
	}
	s.epoch++
	s.controls.Reset()
	s.good = s.controls.Snapshot()
	return nil
}

// Set changes one control value and forwards it to the pipeline. It does not
// render.
func (s *Session) Set(id algorithms.OperationID, v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(func() error { return s.controls.Set(id, v) })
}

// SetIntensity changes the shared blur intensity.
func (s *Session) SetIntensity(v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(func() error { return s.controls.SetIntensity(v) })
}

// Toggle flips a blur or moire toggle.
func (s *Session) Toggle(id algorithms.OperationID) error {
	op := algorithms.Lookup(id)
	if op.Family != algorithms.FamilyBlur && op.Domain.Kind != algorithms.DomainToggle {
		return fmt.Errorf("%w: %s is not a toggle", core.ErrInvalidInput, op.Key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(func() error {
		next := 1.0
		if s.controls.Enabled(id) {
			next = 0
		}
		return s.controls.Set(id, next)
	})
}

func (s *Session) update(change func() error) error {
	snap := s.controls.Snapshot()
	if err := change(); err != nil {
		return err
	}
	if err := s.controls.Sync(s.pipe); err != nil {
		s.controls.Restore(snap)
		if syncErr := s.controls.Sync(s.pipe); syncErr != nil {
			s.logger.WithError(syncErr).Error("SESSION: Rollback failed")
		}
		return err
	}
	return nil
}

// Render recomputes the image from the current controls and, on success,
// pushes it as a checkpoint.
func (s *Session) Render() (core.Image, error) {
	s.mu.Lock()
	job := s.begin()
	s.mu.Unlock()

	out, err := s.pipe.RenderState(job.state)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(job, out, err)
}

// Apply sets one control and renders. On failure the control keeps its
// previous value.
func (s *Session) Apply(id algorithms.OperationID, v float64) (core.Image, error) {
	s.mu.Lock()
	if err := s.update(func() error { return s.controls.Set(id, v) }); err != nil {
		s.mu.Unlock()
		return core.Image{}, err
	}
	s.mu.Unlock()
	return s.Render()
}

// renderJob is what a render saw when it started.
type renderJob struct {
	seq      uint64
	epoch    uint64
	state    pipeline.OperationState
	controls adjust.Snapshot
}

func (s *Session) begin() renderJob {
	s.started++
	return renderJob{
		seq:      s.started,
		epoch:    s.epoch,
		state:    s.pipe.State(),
		controls: s.controls.Snapshot(),
	}
}

func (s *Session) commit(job renderJob, out core.Image, err error) (core.Image, error) {
	if job.epoch != s.epoch || job.seq < s.committed {
		s.logger.WithField("render", job.seq).Debug("SESSION: Discarding superseded render")
		return core.Image{}, ErrSuperseded
	}

	if err == nil {
		err = s.pipe.History().Push(out)
	}
	if err == nil {
		s.committed = job.seq
		s.good = job.controls
		return out, nil
	}

	s.controls.Restore(s.good)
	if syncErr := s.controls.Sync(s.pipe); syncErr != nil {
		s.logger.WithError(syncErr).Error("SESSION: Rollback failed")
	}

	if !s.fallback || !errors.Is(err, core.ErrOperationFailed) {
		return core.Image{}, err
	}
	last, ok := s.pipe.History().Top()
	if !ok {
		return core.Image{}, err
	}
	s.logger.WithError(err).Warn("SESSION: Render failed, showing last good checkpoint")
	return last, err
}

// Undo steps back one checkpoint. At the original it returns the original
// with core.ErrNoMoreUndo. The controls are not changed.
func (s *Session) Undo() (core.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := s.pipe.History().Undo()
	if err == nil {
		s.epoch++
	}
	if errors.Is(err, core.ErrNoMoreUndo) {
		s.logger.Debug("SESSION: Nothing to undo")
	}
	return img, err
}

// Reset clears every control and returns the original image.
func (s *Session) Reset() (core.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.controls.Reset()
	s.good = s.controls.Snapshot()
	s.pipe.Reset()
	s.epoch++

	original, ok := s.pipe.History().Base()
	if !ok {
		return core.Image{}, fmt.Errorf("reset: %w: no image loaded", core.ErrInvalidInput)
	}
	return original, nil
}

// Current returns the most recent checkpoint.
func (s *Session) Current() (core.Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipe.History().Top()
}

// Controls exposes the control values for display. Mutate them through the
// Session so the pipeline stays in sync.
func (s *Session) Controls() *adjust.State {
	return s.controls
}

func (s *Session) Pipeline() *pipeline.Pipeline {
	return s.pipe
}
