// Pipeline engine: re-derives the displayed image from the untouched original
// and the current operation state
package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"photo-adjust/internal/algorithms"
	"photo-adjust/internal/core"
	"photo-adjust/internal/history"
)

// Pipeline owns the original image, the operation state and the checkpoint
// history. State mutations are serialized; Render computes on a snapshot so it
// may run off the UI goroutine.
type Pipeline struct {
	mu        sync.Mutex
	logger    *logrus.Logger
	observers []Observer
	kernel    func(algorithms.OperationID, core.Image, float64) (core.Image, error)

	original core.Image
	loaded   bool
	state    OperationState
	history  *history.Stack
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver attaches an observer notified around every operation.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.observers = append(p.observers, o)
		}
	}
}

// WithHistoryLimit bounds the checkpoint stack (0 = unbounded).
func WithHistoryLimit(limit int) Option {
	return func(p *Pipeline) {
		p.history = history.NewStack(limit)
	}
}

// WithKernel replaces the kernel dispatcher, which defaults to
// algorithms.Apply.
func WithKernel(k func(algorithms.OperationID, core.Image, float64) (core.Image, error)) Option {
	return func(p *Pipeline) {
		if k != nil {
			p.kernel = k
		}
	}
}

func New(logger *logrus.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:  logger,
		state:   DefaultState(),
		history: history.NewStack(0),
		kernel:  algorithms.Apply,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load replaces the original, resets the operation state and truncates the
// history to a single checkpoint holding the new original.
func (p *Pipeline) Load(img core.Image) error {
	if err := core.ValidateImage(img); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.history.Reset(img); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	p.original = img
	p.loaded = true
	p.state = DefaultState()

	p.logger.WithFields(logrus.Fields{
		"width":  img.Width(),
		"height": img.Height(),
	}).Info("PIPELINE: Image loaded")
	return nil
}

// SetOperation updates one operation. It does not render.
func (p *Pipeline) SetOperation(id algorithms.OperationID, enabled bool, parameter float64) error {
	if err := algorithms.Validate(id, parameter); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = p.state.With(id, Setting{Enabled: enabled, Parameter: parameter})

	p.logger.WithFields(logrus.Fields{
		"operation": id.String(),
		"enabled":   enabled,
		"parameter": parameter,
	}).Debug("PIPELINE: Operation updated")
	return nil
}

// SetEnabled toggles one operation, keeping its parameter.
func (p *Pipeline) SetEnabled(id algorithms.OperationID, enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.state.Get(id)
	s.Enabled = enabled
	p.state = p.state.With(id, s)
}

// SetParameter changes one operation's parameter, keeping its enabled flag.
func (p *Pipeline) SetParameter(id algorithms.OperationID, parameter float64) error {
	if err := algorithms.Validate(id, parameter); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.state.Get(id)
	s.Parameter = parameter
	p.state = p.state.With(id, s)
	return nil
}

// State returns a snapshot of the current operation state.
func (p *Pipeline) State() OperationState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Render applies every active operation, in the fixed registry order, to the
// original. It never mutates the original and returns no image on failure.
func (p *Pipeline) Render() (core.Image, error) {
	return p.RenderState(p.State())
}

// RenderState renders a previously taken State snapshot against the loaded
// original, so callers can pair the result with their own bookkeeping.
func (p *Pipeline) RenderState(state OperationState) (core.Image, error) {
	p.mu.Lock()
	original, loaded := p.original, p.loaded
	p.mu.Unlock()

	if !loaded {
		return core.Image{}, fmt.Errorf("render: %w: no image loaded", core.ErrInvalidInput)
	}
	return p.render(original, state)
}

func (p *Pipeline) render(original core.Image, state OperationState) (core.Image, error) {
	start := time.Now()
	active := state.Active()
	current := original

	for _, id := range active {
		param := state.Get(id).Parameter
		next, err := p.apply(id, current, param)
		if err != nil {
			p.logger.WithFields(logrus.Fields{
				"operation": id.String(),
				"error":     err,
			}).Error("PIPELINE: Render aborted")
			return core.Image{}, &core.OperationError{Operation: id.String(), Err: err}
		}
		current = next
	}

	p.logger.WithFields(logrus.Fields{
		"operations": len(active),
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Debug("PIPELINE: Render completed")
	return current, nil
}

// apply runs one kernel, converting a native panic into an error.
func (p *Pipeline) apply(id algorithms.OperationID, input core.Image, param float64) (out core.Image, err error) {
	p.notify(Event{Stage: EventStarted, Operation: id, Parameter: param, Input: input})
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			out, err = core.Image{}, fmt.Errorf("panic in kernel: %v", r)
		}
		p.notify(Event{
			Stage:     EventFinished,
			Operation: id,
			Parameter: param,
			Input:     input,
			Output:    out,
			Elapsed:   time.Since(start),
			Err:       err,
		})
	}()

	return p.kernel(id, input, param)
}

func (p *Pipeline) notify(e Event) {
	for _, o := range p.observers {
		o.Observe(e)
	}
}

// Reset disables every operation and truncates the history to the original.
// The original itself is kept.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state = DefaultState()
	if p.loaded {
		// The original was validated on Load, so Reset cannot fail here.
		_ = p.history.Reset(p.original)
	}
	p.logger.Info("PIPELINE: Reset to original")
}

// Original returns the loaded original image.
func (p *Pipeline) Original() (core.Image, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.original, p.loaded
}

func (p *Pipeline) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// History exposes the checkpoint stack.
func (p *Pipeline) History() *history.Stack {
	return p.history
}
