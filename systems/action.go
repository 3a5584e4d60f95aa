package systems

import (
	"github.com/lixenwraith/framecore/component"
	"github.com/lixenwraith/framecore/core"
	"github.com/lixenwraith/framecore/engine"
	"github.com/lixenwraith/framecore/parameter"
)

// ActionSystem runs in the actions phase and advances every entity's
// timed step sequence. A completed step applies its effect against the
// owner id; follow-up structural changes (destroy, detach) are staged,
// value changes (velocity, state) apply in place. When the sequence is
// exhausted the action component detaches itself
type ActionSystem struct {
	world *engine.World

	actions   *engine.Store[component.ActionComponent]
	movements *engine.Store[component.MovementComponent]
	states    *engine.Store[component.StateComponent]
	time      *engine.TimeResource
}

// NewActionSystem creates the action system
func NewActionSystem(world *engine.World) engine.System {
	return &ActionSystem{
		world:     world,
		actions:   world.Stores.Actions,
		movements: world.Stores.Movements,
		states:    world.Stores.States,
		time:      world.Resources.Time,
	}
}

// Priority returns the system's priority
func (s *ActionSystem) Priority() int {
	return parameter.PriorityAction
}

// Update advances all action sequences by one tick
func (s *ActionSystem) Update() {
	dt := s.time.Delta
	if dt == 0 {
		return
	}

	for _, e := range s.actions.All() {
		act, ok := s.actions.Get(e)
		if !ok || act.Index >= len(act.Steps) {
			continue
		}

		act.Elapsed += dt

		// A large delta may complete several steps in one tick
		for act.Index < len(act.Steps) {
			step := act.Steps[act.Index]
			if act.Elapsed < step.Duration {
				break
			}
			act.Elapsed -= step.Duration
			act.Index++
			s.applyStep(e, step)
		}

		if act.Index >= len(act.Steps) {
			s.world.Detach(e, component.KindAction)
			continue
		}
		s.actions.Set(e, act)
	}
}

func (s *ActionSystem) applyStep(e core.Entity, step component.ActionStep) {
	switch step.Kind {
	case component.StepWait:
		// Time-only step

	case component.StepSetVelocity:
		if m, ok := s.movements.Get(e); ok {
			m.Vel = step.Vel
			s.movements.Set(e, m)
		}

	case component.StepSetState:
		if st, ok := s.states.Get(e); ok {
			st.ID = step.State
			st.Since = s.time.Now
			s.states.Set(e, st)
		}

	case component.StepDestroy:
		s.world.Destroy(e)

	case component.StepDetach:
		s.world.Detach(e, step.Detach)

	case component.StepPause:
		s.world.Attach(e, component.PausedComponent{})
	}
}
