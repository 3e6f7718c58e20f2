package mint

import (
	"time"

	"github.com/reoring/nftmeta"
)

// Window is a stage's active period. An absent End means open ended. Both
// bounds are inclusive.
type Window struct {
	Start time.Time
	End   nftmeta.Optional[time.Time]
}

// Contains reports whether t lies inside the window.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	if end, ok := w.End.Get(); ok && t.After(end) {
		return false
	}
	return true
}

// Overlaps reports whether the two windows share at least one instant.
func (w Window) Overlaps(o Window) bool {
	if end, ok := w.End.Get(); ok && end.Before(o.Start) {
		return false
	}
	if end, ok := o.End.Get(); ok && end.Before(w.Start) {
		return false
	}
	return true
}

// Scheduled is implemented by MintStage and EvmMintStage.
type Scheduled interface {
	Schedule() Window
}

// Active returns the stages whose window contains t, in order.
func Active[S Scheduled](stages []S, t time.Time) []S {
	var out []S
	for _, s := range stages {
		if s.Schedule().Contains(t) {
			out = append(out, s)
		}
	}
	return out
}

// Current returns the first stage active at t and its index.
func Current[S Scheduled](stages []S, t time.Time) (S, int, bool) {
	for i, s := range stages {
		if s.Schedule().Contains(t) {
			return s, i, true
		}
	}
	var zero S
	return zero, -1, false
}

// Next returns the stage with the earliest start after t.
func Next[S Scheduled](stages []S, t time.Time) (S, int, bool) {
	idx := -1
	for i, s := range stages {
		start := s.Schedule().Start
		if !start.After(t) {
			continue
		}
		if idx < 0 || start.Before(stages[idx].Schedule().Start) {
			idx = i
		}
	}
	if idx < 0 {
		var zero S
		return zero, -1, false
	}
	return stages[idx], idx, true
}
