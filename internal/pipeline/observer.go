package pipeline

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"photo-adjust/internal/algorithms"
	"photo-adjust/internal/core"
	"photo-adjust/internal/metrics"
)

// Stage marks where in an operation an Event was emitted.
type Stage int

const (
	EventStarted Stage = iota
	EventFinished
)

// Event describes one operation of a render. Output, Elapsed and Err are set
// only for EventFinished.
type Event struct {
	Stage     Stage
	Operation algorithms.OperationID
	Parameter float64
	Input     core.Image
	Output    core.Image
	Elapsed   time.Duration
	Err       error
}

// Observer is notified around each operation a render executes. Observers run
// synchronously on the rendering goroutine and must not call back into the
// Pipeline.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// LogObserver logs each operation with its timing.
type LogObserver struct {
	logger *logrus.Logger
}

func NewLogObserver(logger *logrus.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Observe(e Event) {
	entry := o.logger.WithFields(logrus.Fields{
		"operation": e.Operation.String(),
		"parameter": e.Parameter,
		"size":      e.Input.String(),
	})

	switch {
	case e.Stage == EventStarted:
		entry.Debug("PIPELINE: Applying operation")
	case e.Err != nil:
		entry.WithError(e.Err).WithField("elapsed_ms", e.Elapsed.Milliseconds()).Error("PIPELINE: Operation failed")
	default:
		entry.WithField("elapsed_ms", e.Elapsed.Milliseconds()).Debug("PIPELINE: Operation completed")
	}
}

// MetricsObserver logs how much each successful operation changed the image.
type MetricsObserver struct {
	logger *logrus.Logger
	eval   *metrics.Evaluator
}

func NewMetricsObserver(logger *logrus.Logger, eval *metrics.Evaluator) *MetricsObserver {
	if eval == nil {
		eval = metrics.NewEvaluator()
	}
	return &MetricsObserver{logger: logger, eval: eval}
}

func (o *MetricsObserver) Observe(e Event) {
	if e.Stage != EventFinished || e.Err != nil {
		return
	}

	fields := logrus.Fields{"operation": e.Operation.String()}
	for name, value := range o.eval.CalculateAll(e.Input, e.Output) {
		// JSON cannot encode +Inf, which PSNR returns for unchanged images.
		if math.IsInf(value, 0) {
			fields[name] = "inf"
			continue
		}
		fields[name] = value
	}
	o.logger.WithFields(fields).Info("PIPELINE: Step metrics")
}
