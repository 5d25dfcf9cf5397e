package engine

// State is the session's position in its lifecycle.
type State int

const (
	// StateSetup is before a hunter has been created.
	StateSetup State = iota
	// StateAwaitingCommand loops until one of the terminal states is reached.
	StateAwaitingCommand
	StateGameOver
	StateVictory
	StateExited
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateAwaitingCommand:
		return "awaiting-command"
	case StateGameOver:
		return "game-over"
	case StateVictory:
		return "victory"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateVictory || s == StateExited
}
