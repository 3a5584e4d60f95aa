package systems

import (
	"github.com/lixenwraith/framecore/engine"
	"github.com/lixenwraith/framecore/parameter"
)

// CameraClampSystem runs in the constraints phase, after physics has
// settled, and re-centers the viewport on the followed entity while
// clamping it inside the world bounds. Read-only with respect to the
// entity set
type CameraClampSystem struct {
	world  *engine.World
	camera *engine.CameraResource
}

// NewCameraClampSystem creates the camera constraint system
func NewCameraClampSystem(world *engine.World) engine.System {
	return &CameraClampSystem{
		world:  world,
		camera: world.Resources.Camera,
	}
}

// Priority returns the system's priority
func (s *CameraClampSystem) Priority() int {
	return parameter.PriorityCameraClamp
}

// Update re-applies the follow and clamp constraints
func (s *CameraClampSystem) Update() {
	follow := s.camera.Follow
	if follow.IsNil() || !s.world.Alive(follow) {
		return
	}
	m, ok := s.world.Stores.Movements.Get(follow)
	if !ok {
		return
	}

	view := s.camera.View
	view.X = m.Pos.X - view.W/2
	view.Y = m.Pos.Y - view.H/2

	bounds := s.camera.Bounds
	if bounds.W > 0 && bounds.H > 0 {
		if view.X < bounds.X {
			view.X = bounds.X
		}
		if view.Y < bounds.Y {
			view.Y = bounds.Y
		}
		if view.X+view.W > bounds.X+bounds.W {
			view.X = bounds.X + bounds.W - view.W
		}
		if view.Y+view.H > bounds.Y+bounds.H {
			view.Y = bounds.Y + bounds.H - view.H
		}
	}

	s.camera.View = view
}
