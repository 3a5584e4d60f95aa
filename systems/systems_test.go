package systems

import (
	"testing"

	"github.com/lixenwraith/framecore/component"
	"github.com/lixenwraith/framecore/core"
	"github.com/lixenwraith/framecore/engine"
)

func setTick(w *engine.World, now, delta float64) {
	w.Resources.Time.Update(now, delta, w.Resources.Time.Frame+1)
}

// Position integrates by velocity each update
func TestMovementIntegration(t *testing.T) {
	w := engine.NewWorld()
	e := w.Create()
	w.Attach(e, component.MovementComponent{
		Pos: core.Vec2{X: 10, Y: 10},
		Vel: core.Vec2{X: 5, Y: -10},
	})

	sys := NewMovementSystem(w)
	setTick(w, 1, 0.5)
	sys.Update()

	m, _ := w.Stores.Movements.Get(e)
	if m.Pos.X != 12.5 || m.Pos.Y != 5 {
		t.Errorf("Expected (12.5, 5), got %+v", m.Pos)
	}
}

// Paused entities do not move
func TestMovementSkipsPaused(t *testing.T) {
	w := engine.NewWorld()
	e := w.Create()
	w.Attach(e, component.MovementComponent{Vel: core.Vec2{X: 100}})
	w.Attach(e, component.PausedComponent{})

	sys := NewMovementSystem(w)
	setTick(w, 1, 0.5)
	sys.Update()

	m, _ := w.Stores.Movements.Get(e)
	if m.Pos.X != 0 {
		t.Errorf("Paused entity moved to %+v", m.Pos)
	}
}

// Chase steers toward the target at the configured speed
func TestChaseSteering(t *testing.T) {
	w := engine.NewWorld()

	target := w.Create()
	w.Attach(target, component.MovementComponent{Pos: core.Vec2{X: 100, Y: 0}})

	chaser := w.Create()
	w.Attach(chaser, component.MovementComponent{Pos: core.Vec2{X: 0, Y: 0}})
	w.Attach(chaser, component.ChaseComponent{Target: target, Speed: 20})

	sys := NewChaseSystem(w)
	setTick(w, 1, 0.1)
	sys.Update()

	m, _ := w.Stores.Movements.Get(chaser)
	if m.Vel.X != 20 || m.Vel.Y != 0 {
		t.Errorf("Expected velocity (20, 0), got %+v", m.Vel)
	}
}

// A destroyed target stops the chase instead of erroring
func TestChaseStaleTarget(t *testing.T) {
	w := engine.NewWorld()

	target := w.Create()
	w.Attach(target, component.MovementComponent{Pos: core.Vec2{X: 100}})

	chaser := w.Create()
	w.Attach(chaser, component.MovementComponent{Vel: core.Vec2{X: 20}})
	w.Attach(chaser, component.ChaseComponent{Target: target, Speed: 20})

	w.Destroy(target)

	sys := NewChaseSystem(w)
	setTick(w, 1, 0.1)
	sys.Update()

	m, _ := w.Stores.Movements.Get(chaser)
	if m.Vel.X != 0 || m.Vel.Y != 0 {
		t.Errorf("Expected zero velocity on stale target, got %+v", m.Vel)
	}
}

// Zero or negative health stages destruction
func TestHealthDestroysAtZero(t *testing.T) {
	w := engine.NewWorld()

	dead := w.Create()
	w.Attach(dead, component.HealthComponent{Current: 0, Max: 10})
	alive := w.Create()
	w.Attach(alive, component.HealthComponent{Current: 1, Max: 10})

	sys := NewHealthSystem(w)
	sys.Update()

	if w.Alive(dead) {
		t.Error("Entity with zero health survived")
	}
	if !w.Alive(alive) {
		t.Error("Healthy entity was destroyed")
	}
}

// Action steps apply in sequence and the component detaches when done
func TestActionSequence(t *testing.T) {
	w := engine.NewWorld()
	e := w.Create()
	w.Attach(e, component.MovementComponent{})
	w.Attach(e, component.StateComponent{ID: 1})
	w.Attach(e, component.ActionComponent{Steps: []component.ActionStep{
		{Duration: 1, Kind: component.StepSetVelocity, Vel: core.Vec2{X: 50}},
		{Duration: 1, Kind: component.StepSetState, State: 2},
	}})

	sys := NewActionSystem(w)

	// Half a step: nothing applies yet
	setTick(w, 0.5, 0.5)
	sys.Update()
	if m, _ := w.Stores.Movements.Get(e); m.Vel.X != 0 {
		t.Errorf("Step applied early, velocity %+v", m.Vel)
	}

	// First step completes
	setTick(w, 1.1, 0.6)
	sys.Update()
	if m, _ := w.Stores.Movements.Get(e); m.Vel.X != 50 {
		t.Errorf("Expected velocity 50 after first step, got %+v", m.Vel)
	}
	if st, _ := w.Stores.States.Get(e); st.ID != 1 {
		t.Errorf("Second step applied early, state %d", st.ID)
	}

	// Second step completes; the sequence detaches itself
	setTick(w, 2.2, 1.1)
	sys.Update()
	if st, _ := w.Stores.States.Get(e); st.ID != 2 {
		t.Errorf("Expected state 2 after second step, got %d", st.ID)
	}
	if w.Stores.Actions.Has(e) {
		t.Error("Action component survived its sequence")
	}
}

// A large delta completes several steps in one update
func TestActionMultiStepCatchUp(t *testing.T) {
	w := engine.NewWorld()
	e := w.Create()
	w.Attach(e, component.MovementComponent{})
	w.Attach(e, component.ActionComponent{Steps: []component.ActionStep{
		{Duration: 0.1, Kind: component.StepSetVelocity, Vel: core.Vec2{X: 1}},
		{Duration: 0.1, Kind: component.StepSetVelocity, Vel: core.Vec2{X: 2}},
		{Duration: 0.1, Kind: component.StepSetVelocity, Vel: core.Vec2{X: 3}},
	}})

	sys := NewActionSystem(w)
	setTick(w, 1, 0.25)
	sys.Update()

	m, _ := w.Stores.Movements.Get(e)
	if m.Vel.X != 2 {
		t.Errorf("Expected the second step's velocity, got %+v", m.Vel)
	}
	act, ok := w.Stores.Actions.Get(e)
	if !ok || act.Index != 2 {
		t.Errorf("Expected index 2, got %+v (%v)", act, ok)
	}
}

// A pause step suspends the owner
func TestActionPauseStep(t *testing.T) {
	w := engine.NewWorld()
	e := w.Create()
	w.Attach(e, component.ActionComponent{Steps: []component.ActionStep{
		{Duration: 0.1, Kind: component.StepPause},
	}})

	sys := NewActionSystem(w)
	setTick(w, 1, 0.2)
	sys.Update()

	if !w.Stores.Paused.Has(e) {
		t.Error("Pause step did not suspend the owner")
	}
}

// A destroy step removes the owner
func TestActionDestroyStep(t *testing.T) {
	w := engine.NewWorld()
	e := w.Create()
	w.Attach(e, component.ActionComponent{Steps: []component.ActionStep{
		{Duration: 0.1, Kind: component.StepDestroy},
	}})

	sys := NewActionSystem(w)
	setTick(w, 1, 0.2)
	sys.Update()

	if w.Alive(e) {
		t.Error("Destroy step did not remove the owner")
	}
}
