package pipeline

import (
	"photo-adjust/internal/algorithms"
)

// Setting is the state of one operation.
type Setting struct {
	Enabled   bool
	Parameter float64
}

// Active reports whether the operation will touch pixels: it must be enabled
// and carry a non-zero parameter.
func (s Setting) Active() bool {
	return s.Enabled && s.Parameter != 0
}

// OperationState is an immutable snapshot of every operation's setting.
// It is a value type; With returns a modified copy.
type OperationState struct {
	settings [algorithms.NumOperations]Setting
}

// DefaultState has every operation disabled. Blur operations carry the
// default shared intensity, adjustments carry zero.
func DefaultState() OperationState {
	var s OperationState
	for _, op := range algorithms.All() {
		s.settings[op.ID] = Setting{Parameter: op.Default}
	}
	return s
}

// Get returns the setting for id.
func (s OperationState) Get(id algorithms.OperationID) Setting {
	algorithms.Lookup(id)
	return s.settings[id]
}

// With returns a copy of s with id set to setting.
func (s OperationState) With(id algorithms.OperationID, setting Setting) OperationState {
	algorithms.Lookup(id)
	s.settings[id] = setting
	return s
}

// Active lists the operations that will run, in application order.
func (s OperationState) Active() []algorithms.OperationID {
	var ids []algorithms.OperationID
	for _, id := range algorithms.Order() {
		if s.settings[id].Active() {
			ids = append(ids, id)
		}
	}
	return ids
}

// IsIdentity reports whether rendering this state reproduces the original.
func (s OperationState) IsIdentity() bool {
	return len(s.Active()) == 0
}
