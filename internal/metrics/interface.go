// Difference metrics between two renders of the same image
package metrics

import (
	"fmt"
	"sort"

	"photo-adjust/internal/core"
)

// Metric compares a reference image with a processed one of the same size.
type Metric interface {
	Calculate(reference, processed core.Image) (float64, error)
	Name() string
	Description() string
	// Range returns the practical value range (min, max).
	Range() (float64, float64)
	HigherBetter() bool
}

// Evaluator manages and calculates a named set of metrics.
type Evaluator struct {
	metrics map[string]Metric
}

// NewEvaluator creates an evaluator with the default metrics registered.
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
	}
	e.RegisterDefaultMetrics()
	return e
}

func (e *Evaluator) RegisterDefaultMetrics() {
	e.Register("mse", NewMSE())
	e.Register("psnr", NewPSNR())
	e.Register("max_diff", NewMaxAbsDiff())
	e.Register("changed", NewChangedRatio())
}

func (e *Evaluator) Register(name string, metric Metric) {
	e.metrics[name] = metric
}

// Names returns the registered metric names, sorted.
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.metrics))
	for name := range e.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Calculate calculates a specific metric.
func (e *Evaluator) Calculate(name string, reference, processed core.Image) (float64, error) {
	metric, exists := e.metrics[name]
	if !exists {
		return 0, fmt.Errorf("metric not found: %s", name)
	}
	return metric.Calculate(reference, processed)
}

// CalculateAll calculates every registered metric, skipping those that fail.
func (e *Evaluator) CalculateAll(reference, processed core.Image) map[string]float64 {
	results := make(map[string]float64, len(e.metrics))
	for name, metric := range e.metrics {
		if value, err := metric.Calculate(reference, processed); err == nil {
			results[name] = value
		}
	}
	return results
}

// CalculatePSNR calculates PSNR between two images.
func (e *Evaluator) CalculatePSNR(reference, processed core.Image) (float64, error) {
	return e.Calculate("psnr", reference, processed)
}

// sameShape checks both images are valid and share dimensions.
func sameShape(reference, processed core.Image) error {
	if reference.Empty() || processed.Empty() {
		return fmt.Errorf("%w: empty images", core.ErrInvalidInput)
	}
	if reference.Width() != processed.Width() || reference.Height() != processed.Height() {
		return fmt.Errorf("%w: image dimensions mismatch: %s vs %s", core.ErrInvalidInput, reference, processed)
	}
	return nil
}
