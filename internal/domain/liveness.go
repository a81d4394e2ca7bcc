package domain

import "time"

// LivenessState is the last observation of the external process.
type LivenessState struct {
	Running    bool
	ObservedAt time.Time
}

// Transition is the edge produced by a liveness poll.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionRising
	TransitionFalling
)

// String returns a human-readable representation of the transition.
func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "None"
	case TransitionRising:
		return "Rising"
	case TransitionFalling:
		return "Falling"
	default:
		return "Unknown"
	}
}
