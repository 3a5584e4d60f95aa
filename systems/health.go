package systems

import (
	"github.com/lixenwraith/framecore/component"
	"github.com/lixenwraith/framecore/engine"
	"github.com/lixenwraith/framecore/parameter"
)

// HealthSystem stages destruction for entities whose health reached
// zero. Destruction lands at the deferred apply phase, so systems
// later in this tick still observe the entity
type HealthSystem struct {
	world   *engine.World
	healths *engine.Store[component.HealthComponent]
}

// NewHealthSystem creates the health system
func NewHealthSystem(world *engine.World) engine.System {
	return &HealthSystem{
		world:   world,
		healths: world.Stores.Healths,
	}
}

// Priority returns the system's priority
func (s *HealthSystem) Priority() int {
	return parameter.PriorityHealth
}

// Update sweeps for depleted entities
func (s *HealthSystem) Update() {
	for _, e := range s.healths.All() {
		h, ok := s.healths.Get(e)
		if !ok {
			continue
		}
		if h.Current <= 0 {
			s.world.Destroy(e)
		}
	}
}
