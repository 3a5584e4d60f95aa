// Package systems contains the frame-phase systems built on the
// engine's component tables. Systems read the tick clock from world
// resources and stage all structural changes through the world,
// never applying them directly
package systems

import (
	"github.com/lixenwraith/framecore/component"
	"github.com/lixenwraith/framecore/engine"
	"github.com/lixenwraith/framecore/parameter"
)

// MovementSystem integrates position by velocity each logic phase.
// Paused entities do not move
type MovementSystem struct {
	world *engine.World

	movements *engine.Store[component.MovementComponent]
	paused    *engine.Store[component.PausedComponent]
	time      *engine.TimeResource
}

// NewMovementSystem creates the movement system
func NewMovementSystem(world *engine.World) engine.System {
	return &MovementSystem{
		world:     world,
		movements: world.Stores.Movements,
		paused:    world.Stores.Paused,
		time:      world.Resources.Time,
	}
}

// Priority returns the system's priority (lower runs first)
func (s *MovementSystem) Priority() int {
	return parameter.PriorityMovement
}

// Update advances every moving entity by one tick
func (s *MovementSystem) Update() {
	dt := s.time.Delta
	if dt == 0 {
		return
	}

	for _, e := range s.movements.All() {
		if s.paused.Has(e) {
			continue
		}
		m, ok := s.movements.Get(e)
		if !ok {
			continue
		}
		if m.Vel.X == 0 && m.Vel.Y == 0 {
			continue
		}
		m.Pos = m.Pos.Add(m.Vel.Scale(dt))
		s.movements.Set(e, m)
	}
}
