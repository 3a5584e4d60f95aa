package component

import (
	"github.com/lixenwraith/framecore/core"
	"github.com/lixenwraith/framecore/scene"
)

// VisualComponent links an entity to a node on the external rendering
// surface. Attaching it adds the node to the scene; destroying the
// owning entity removes it. Size is the entity's bounding extent in
// world units, used for viewport culling
type VisualComponent struct {
	Handle scene.VisualHandle
	Size   core.Vec2
}
