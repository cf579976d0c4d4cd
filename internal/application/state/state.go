package state

// GameState represents the current state of the gameplay scene
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateReplaying  // inputs come from a recording
	StateReplayDone // recording ran out, the last frame stays on screen
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateReplaying:
		return "Replaying"
	case StateReplayDone:
		return "ReplayDone"
	default:
		return "Unknown"
	}
}

// Steps reports whether the world advances in this state
func (s GameState) Steps() bool {
	return s == StatePlaying || s == StateReplaying
}
