package component

import (
	"github.com/lixenwraith/framecore/core"
	"github.com/lixenwraith/framecore/physics"
)

// PhysicsLinkComponent ties an entity to a body owned by the external
// physics engine. The relation is weak in both directions: the entity
// holds an opaque handle, and the body side knows only the owner id.
// Destroying the entity is the single path that tells the physics
// boundary to drop the body
type PhysicsLinkComponent struct {
	Body  physics.BodyHandle
	Owner core.Entity
}
