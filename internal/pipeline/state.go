package pipeline

// State is a driver state.
type State int

const (
	StateIdle State = iota
	StateInitializing
	StateShifting
	StateAligning
	StatePersisting
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:         "idle",
	StateInitializing: "initializing",
	StateShifting:     "shifting",
	StateAligning:     "aligning",
	StatePersisting:   "persisting",
	StateDone:         "done",
	StateFailed:       "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
