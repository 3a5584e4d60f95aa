package systems

import (
	"testing"

	"github.com/lixenwraith/framecore/component"
	"github.com/lixenwraith/framecore/core"
	"github.com/lixenwraith/framecore/engine"
	"github.com/lixenwraith/framecore/physics"
	"github.com/lixenwraith/framecore/scene"
)

// Both the candidate and the viewport expand by the padding, so an
// entity must clear twice the padding beyond the edge to be hidden
func TestClassifyHysteresis(t *testing.T) {
	viewport := core.Rect{X: 0, Y: 0, W: 100, H: 100}
	const padding = 10.0

	candidates := []CullCandidate{
		{Entity: core.MakeEntity(1, 0), Bounds: core.Rect{X: 50, Y: 50, W: 10, H: 10}},  // well inside
		{Entity: core.MakeEntity(2, 0), Bounds: core.Rect{X: 115, Y: 50, W: 10, H: 10}}, // within 2x padding of the edge
		{Entity: core.MakeEntity(3, 0), Bounds: core.Rect{X: 121, Y: 50, W: 10, H: 10}}, // beyond the hysteresis band
	}

	visible, hidden := Classify(viewport, padding, candidates)
	if len(visible) != 2 {
		t.Errorf("Expected 2 visible, got %d", len(visible))
	}
	if len(hidden) != 1 || hidden[0] != core.MakeEntity(3, 0) {
		t.Errorf("Expected only the distant entity hidden, got %v", hidden)
	}
}

// Zero padding degenerates to plain intersection
func TestClassifyNoPadding(t *testing.T) {
	viewport := core.Rect{X: 0, Y: 0, W: 100, H: 100}
	candidates := []CullCandidate{
		{Entity: core.MakeEntity(1, 0), Bounds: core.Rect{X: 99, Y: 0, W: 10, H: 10}},
		{Entity: core.MakeEntity(2, 0), Bounds: core.Rect{X: 100, Y: 0, W: 10, H: 10}}, // edge-touching
	}

	visible, hidden := Classify(viewport, 0, candidates)
	if len(visible) != 1 {
		t.Errorf("Expected 1 visible, got %d", len(visible))
	}
	if len(hidden) != 1 {
		t.Errorf("Expected edge-touching entity hidden, got %v", hidden)
	}
}

// The cull system pauses entities leaving the expanded viewport and
// resumes them when they return
func TestCullSystemPauseResume(t *testing.T) {
	w := engine.NewWorld()
	surface := scene.NewRecorder()
	body := physics.NewStubEngine()
	w.BindBoundary(surface, body)

	cam := w.Resources.Camera
	cam.View = core.Rect{X: 0, Y: 0, W: 100, H: 100}
	cam.Padding = 10

	e := w.Create()
	vh := scene.NewVisualHandle()
	w.Attach(e, component.VisualComponent{Handle: vh, Size: core.Vec2{X: 10, Y: 10}})
	w.Attach(e, component.MovementComponent{Pos: core.Vec2{X: 50, Y: 50}})

	sys := NewCullSystem(w)

	sys.Update()
	if w.Stores.Paused.Has(e) {
		t.Fatal("Entity inside the viewport was paused")
	}

	// Move far outside the hysteresis band
	m, _ := w.Stores.Movements.Get(e)
	m.Pos = core.Vec2{X: 200, Y: 50}
	w.Stores.Movements.Set(e, m)

	sys.Update()
	if !w.Stores.Paused.Has(e) {
		t.Fatal("Distant entity was not paused")
	}
	if paused, ok := surface.Paused(vh); !ok || !paused {
		t.Errorf("Surface not told to pause, got %v %v", paused, ok)
	}

	// Reclassifying while still hidden must not re-stage the attach
	sys.Update()
	if w.PendingMutations() != 0 {
		t.Errorf("Redundant pause staged, %d pending", w.PendingMutations())
	}

	// Move back inside
	m.Pos = core.Vec2{X: 50, Y: 50}
	w.Stores.Movements.Set(e, m)

	sys.Update()
	if w.Stores.Paused.Has(e) {
		t.Fatal("Returning entity stayed paused")
	}
	if paused, _ := surface.Paused(vh); paused {
		t.Error("Surface not told to resume")
	}
}

// A zero viewport disables culling entirely
func TestCullSystemZeroViewport(t *testing.T) {
	w := engine.NewWorld()

	e := w.Create()
	w.Attach(e, component.VisualComponent{Handle: scene.NewVisualHandle(), Size: core.Vec2{X: 10, Y: 10}})
	w.Attach(e, component.MovementComponent{Pos: core.Vec2{X: 9999, Y: 9999}})

	sys := NewCullSystem(w)
	sys.Update()
	if w.Stores.Paused.Has(e) {
		t.Error("Culling ran with a zero viewport")
	}
}

// The camera clamp re-centers on the followed entity within bounds
func TestCameraClamp(t *testing.T) {
	w := engine.NewWorld()

	player := w.Create()
	w.Attach(player, component.MovementComponent{Pos: core.Vec2{X: 10, Y: 10}})

	cam := w.Resources.Camera
	cam.View = core.Rect{W: 100, H: 100}
	cam.Bounds = core.Rect{X: 0, Y: 0, W: 400, H: 400}
	cam.Follow = player

	sys := NewCameraClampSystem(w)
	sys.Update()

	// Centering on (10, 10) would push the view to (-40, -40); the
	// bounds clamp it back to the origin
	if cam.View.X != 0 || cam.View.Y != 0 {
		t.Errorf("Expected view clamped to origin, got %+v", cam.View)
	}

	// A central position centers the view without clamping
	m, _ := w.Stores.Movements.Get(player)
	m.Pos = core.Vec2{X: 200, Y: 200}
	w.Stores.Movements.Set(player, m)
	sys.Update()
	if cam.View.X != 150 || cam.View.Y != 150 {
		t.Errorf("Expected view at (150, 150), got %+v", cam.View)
	}

	// A destroyed follow target leaves the view untouched
	w.Destroy(player)
	sys.Update()
	if cam.View.X != 150 || cam.View.Y != 150 {
		t.Errorf("View moved after follow target died, got %+v", cam.View)
	}
}
