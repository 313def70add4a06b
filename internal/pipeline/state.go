package pipeline

import "fmt"

// State is a step of the run state machine.
type State int

const (
	StateValidating State = iota
	StateCollecting
	StateResizing
	StateWriting
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateCollecting:
		return "collecting"
	case StateResizing:
		return "resizing"
	case StateWriting:
		return "writing"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateDone || s == StateAborted
}

// MarshalText lets State appear by name in reports.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for candidate := StateValidating; candidate <= StateAborted; candidate++ {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}
