package physics

import "github.com/google/uuid"

// Shape is the collision shape kind of a body
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeRectangle
	ShapePolygon
	// ShapeBoundary is an edge/curve body. Two boundary bodies never
	// produce a contact event, an engine-level restriction this core
	// respects rather than assumes
	ShapeBoundary
)

// BodyHandle is an opaque reference to a body owned by the external
// physics engine
type BodyHandle struct {
	id uuid.UUID
}

// NilBodyHandle is the zero handle
var NilBodyHandle = BodyHandle{}

// NewBodyHandle allocates a fresh handle
func NewBodyHandle() BodyHandle {
	return BodyHandle{id: uuid.New()}
}

// IsNil reports whether the handle is the zero handle
func (h BodyHandle) IsNil() bool {
	return h == NilBodyHandle
}

func (h BodyHandle) String() string {
	return h.id.String()
}

// BodyDef describes a body's collision classification.
//
// Category is the body's identity, Collision is what it physically
// collides with, Contact is what overlaps it wants notified about
type BodyDef struct {
	Category  Mask
	Collision Mask
	Contact   Mask
	Shape     Shape
	Dynamic   bool
}

// Engine is the external physics boundary. Step drives the simulation
// for one tick and synchronously reports contacts through whatever
// sink the engine was wired to (see Filter.OnContactBegin/End).
// SetResting and DestroyBody are invoked only during deferred apply
type Engine interface {
	Step(dt float64)
	SetResting(h BodyHandle, resting bool)
	DestroyBody(h BodyHandle)
}
