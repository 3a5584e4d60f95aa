package systems

import (
	"github.com/lixenwraith/framecore/component"
	"github.com/lixenwraith/framecore/engine"
	"github.com/lixenwraith/framecore/parameter"
)

// ChaseSystem steers chasing entities toward their target each logic
// phase by writing velocity; MovementSystem integrates it afterwards.
// A destroyed or position-less target stops the chaser in place,
// the expected stale-reference outcome rather than an error
type ChaseSystem struct {
	world *engine.World

	chases    *engine.Store[component.ChaseComponent]
	movements *engine.Store[component.MovementComponent]
	paused    *engine.Store[component.PausedComponent]
}

// NewChaseSystem creates the chase system
func NewChaseSystem(world *engine.World) engine.System {
	return &ChaseSystem{
		world:     world,
		chases:    world.Stores.Chases,
		movements: world.Stores.Movements,
		paused:    world.Stores.Paused,
	}
}

// Priority returns the system's priority. Runs before movement so the
// velocity written here is integrated in the same tick
func (s *ChaseSystem) Priority() int {
	return parameter.PriorityChase
}

// Update retargets every chaser
func (s *ChaseSystem) Update() {
	for _, e := range s.world.Query(s.chases, s.movements) {
		if s.paused.Has(e) {
			continue
		}
		chase, _ := s.chases.Get(e)
		self, _ := s.movements.Get(e)

		target, ok := s.movements.Get(chase.Target)
		if !ok || !s.world.Alive(chase.Target) {
			if self.Vel.X != 0 || self.Vel.Y != 0 {
				self.Vel.X, self.Vel.Y = 0, 0
				s.movements.Set(e, self)
			}
			continue
		}

		self.Vel = target.Pos.Sub(self.Pos).Normalized().Scale(chase.Speed)
		s.movements.Set(e, self)
	}
}
