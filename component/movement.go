package component

import "github.com/lixenwraith/framecore/core"

// MovementComponent holds position and velocity in world units.
// Position integrates by velocity each logic phase
type MovementComponent struct {
	Pos core.Vec2
	Vel core.Vec2
}
