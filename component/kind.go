// Package component holds the pure-data component kinds attached to
// entities. Components carry no behavior; systems interpret them.
// A component references other entities by id only, never by live
// pointer, so a destroyed target resolves to an absent lookup instead
// of keeping anything alive
package component

// Kind identifies a built-in component table for detach requests
type Kind uint8

const (
	KindVisual Kind = iota
	KindPhysicsLink
	KindMovement
	KindHealth
	KindChase
	KindState
	KindAction
	KindPaused
)

func (k Kind) String() string {
	switch k {
	case KindVisual:
		return "visual"
	case KindPhysicsLink:
		return "physics_link"
	case KindMovement:
		return "movement"
	case KindHealth:
		return "health"
	case KindChase:
		return "chase"
	case KindState:
		return "state"
	case KindAction:
		return "action"
	case KindPaused:
		return "paused"
	}
	return "unknown"
}
