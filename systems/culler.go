package systems

import (
	"github.com/lixenwraith/framecore/component"
	"github.com/lixenwraith/framecore/core"
	"github.com/lixenwraith/framecore/engine"
	"github.com/lixenwraith/framecore/parameter"
)

// CullCandidate is one entity with its bounding shape in world units
type CullCandidate struct {
	Entity core.Entity
	Bounds core.Rect
}

// Classify partitions candidates by whether their bounds, expanded by
// the hysteresis padding, intersect the padding-expanded viewport.
// Pure classification: no entity is mutated, so the function is
// independently testable; callers stage the pause/resume side effects
// through the deferred mutation queue
func Classify(viewport core.Rect, padding float64, candidates []CullCandidate) (visible, hidden []core.Entity) {
	expanded := viewport.Expand(padding)
	for _, c := range candidates {
		if c.Bounds.Expand(padding).Intersects(expanded) {
			visible = append(visible, c.Entity)
		} else {
			hidden = append(hidden, c.Entity)
		}
	}
	return visible, hidden
}

// CullSystem applies Classify to every visual entity each logic phase.
// Entities leaving the expanded viewport get a Paused attach staged
// (which rests the physics body and pauses the visual node at deferred
// apply); entities re-entering get the detach staged
type CullSystem struct {
	world *engine.World

	visuals   *engine.Store[component.VisualComponent]
	movements *engine.Store[component.MovementComponent]
	paused    *engine.Store[component.PausedComponent]
	camera    *engine.CameraResource

	scratch []CullCandidate
}

// NewCullSystem creates the cull system
func NewCullSystem(world *engine.World) engine.System {
	return &CullSystem{
		world:     world,
		visuals:   world.Stores.Visuals,
		movements: world.Stores.Movements,
		paused:    world.Stores.Paused,
		camera:    world.Resources.Camera,
	}
}

// Priority returns the system's priority (runs late in logic, after
// positions settle)
func (s *CullSystem) Priority() int {
	return parameter.PriorityCull
}

// Update reclassifies all visual entities against the viewport
func (s *CullSystem) Update() {
	view := s.camera.View
	if view.W == 0 || view.H == 0 {
		return
	}

	s.scratch = s.scratch[:0]
	for _, e := range s.world.Query(s.visuals, s.movements) {
		v, _ := s.visuals.Get(e)
		m, _ := s.movements.Get(e)
		s.scratch = append(s.scratch, CullCandidate{
			Entity: e,
			Bounds: core.RectAround(m.Pos, v.Size),
		})
	}

	visible, hidden := Classify(view, s.camera.Padding, s.scratch)

	for _, e := range hidden {
		if !s.paused.Has(e) {
			s.world.Attach(e, component.PausedComponent{})
		}
	}
	for _, e := range visible {
		if s.paused.Has(e) {
			s.world.Detach(e, component.KindPaused)
		}
	}
}
