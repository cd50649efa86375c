package session

import "sync/atomic"

// State tracks what the terminal session is doing. Transitions are
// logged so interrupt handling can tell an idle menu apart from a
// long-running operation.
type State int32

const (
	StateIdle State = iota
	StateMenu
	StateWorking
	StateMonitoring
	StateError
	StateShuttingDown
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMenu:
		return "menu"
	case StateWorking:
		return "working"
	case StateMonitoring:
		return "monitoring"
	case StateError:
		return "error"
	case StateShuttingDown:
		return "shutting-down"
	default:
		return "unknown"
	}
}

type atomicState struct {
	v atomic.Int32
}

func (a *atomicState) Load() State   { return State(a.v.Load()) }
func (a *atomicState) Store(s State) { a.v.Store(int32(s)) }
func (a *atomicState) Swap(s State) State {
	return State(a.v.Swap(int32(s)))
}
