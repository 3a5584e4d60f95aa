package component

// StateID identifies a state in an entity's behavior machine.
// Meanings are game-defined
type StateID uint8

// StateComponent is a minimal per-entity state machine: the current
// state and the game time it was entered, for duration-based
// transitions
type StateComponent struct {
	ID    StateID
	Since float64
}
