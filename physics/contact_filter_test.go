package physics

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
)

const (
	catUnit Category = iota
	catHazard
	catWall
)

func fullDef(c Category, shape Shape) BodyDef {
	return BodyDef{
		Category:  MaskOf(c),
		Collision: MaskAll,
		Contact:   MaskAll,
		Shape:     shape,
	}
}

type countingHandler struct {
	calls  int
	events []ContactEvent
}

func (h *countingHandler) HandleContact(_ struct{}, ev ContactEvent) {
	h.calls++
	h.events = append(h.events, ev)
}

// A registered pair matches regardless of which body carries which
// category, but a single registration fires exactly once per event
func TestSymmetricSingleDispatch(t *testing.T) {
	f := NewFilter[struct{}](zap.NewNop())
	a, b := NewBodyHandle(), NewBodyHandle()
	f.Track(a, fullDef(catUnit, ShapeCircle))
	f.Track(b, fullDef(catHazard, ShapeRectangle))

	h := &countingHandler{}
	f.Register(catUnit, catHazard, h)

	f.OnContactBegin(a, b)
	if n := f.Dispatch(struct{}{}); n != 1 {
		t.Errorf("Expected 1 invocation, got %d", n)
	}
	if h.calls != 1 {
		t.Errorf("Expected handler called once, got %d", h.calls)
	}

	// Reversed body order still matches, still once
	f.OnContactBegin(b, a)
	f.Dispatch(struct{}{})
	if h.calls != 2 {
		t.Errorf("Expected handler called twice total, got %d", h.calls)
	}
}

// Registering with the categories swapped hits the same canonical pair
func TestRegistrationOrderIndependence(t *testing.T) {
	f := NewFilter[struct{}](zap.NewNop())
	a, b := NewBodyHandle(), NewBodyHandle()
	f.Track(a, fullDef(catUnit, ShapeCircle))
	f.Track(b, fullDef(catHazard, ShapeCircle))

	h := &countingHandler{}
	f.Register(catHazard, catUnit, h)

	f.OnContactBegin(a, b)
	f.Dispatch(struct{}{})
	if h.calls != 1 {
		t.Errorf("Expected 1 call for swapped registration, got %d", h.calls)
	}
}

// Same-category pair fires once, not twice, per event
func TestSameCategoryPair(t *testing.T) {
	f := NewFilter[struct{}](zap.NewNop())
	a, b := NewBodyHandle(), NewBodyHandle()
	f.Track(a, fullDef(catUnit, ShapeCircle))
	f.Track(b, fullDef(catUnit, ShapeCircle))

	h := &countingHandler{}
	f.Register(catUnit, catUnit, h)

	f.OnContactBegin(a, b)
	f.Dispatch(struct{}{})
	if h.calls != 1 {
		t.Errorf("Expected 1 call for same-category pair, got %d", h.calls)
	}
}

// A side whose contact mask excludes the other category never fires
func TestMaskRevalidation(t *testing.T) {
	f := NewFilter[struct{}](zap.NewNop())
	a, b := NewBodyHandle(), NewBodyHandle()

	deaf := fullDef(catUnit, ShapeCircle)
	deaf.Contact = MaskAll.Without(catHazard)
	f.Track(a, deaf)
	f.Track(b, fullDef(catHazard, ShapeCircle))

	h := &countingHandler{}
	f.Register(catUnit, catHazard, h)

	f.OnContactBegin(a, b)
	if n := f.Dispatch(struct{}{}); n != 0 {
		t.Errorf("Expected 0 invocations with excluded contact mask, got %d", n)
	}

	// Collision mask exclusion blocks dispatch the same way
	blind := fullDef(catUnit, ShapeCircle)
	blind.Collision = MaskAll.Without(catHazard)
	f.Track(a, blind)
	f.OnContactBegin(a, b)
	if n := f.Dispatch(struct{}{}); n != 0 {
		t.Errorf("Expected 0 invocations with excluded collision mask, got %d", n)
	}
}

// Events for untracked bodies are dropped at buffer time
func TestUntrackedBodyDropped(t *testing.T) {
	f := NewFilter[struct{}](zap.NewNop())
	a := NewBodyHandle()
	f.Track(a, fullDef(catUnit, ShapeCircle))

	f.OnContactBegin(a, NewBodyHandle())
	if n := f.PendingCount(); n != 0 {
		t.Errorf("Expected 0 pending events, got %d", n)
	}
}

// Two boundary bodies never produce an event; mixed pairs do
func TestBoundaryPairSuppressed(t *testing.T) {
	f := NewFilter[struct{}](zap.NewNop())
	e1, e2, c := NewBodyHandle(), NewBodyHandle(), NewBodyHandle()
	f.Track(e1, fullDef(catWall, ShapeBoundary))
	f.Track(e2, fullDef(catWall, ShapeBoundary))
	f.Track(c, fullDef(catUnit, ShapeCircle))

	f.OnContactBegin(e1, e2)
	if n := f.PendingCount(); n != 0 {
		t.Errorf("Boundary-boundary event buffered, pending %d", n)
	}

	f.OnContactBegin(e1, c)
	if n := f.PendingCount(); n != 1 {
		t.Errorf("Expected boundary-circle event buffered, pending %d", n)
	}
}

// Events buffer during the step and become visible only at Dispatch
func TestEventsDeferredUntilDispatch(t *testing.T) {
	f := NewFilter[struct{}](zap.NewNop())
	a, b := NewBodyHandle(), NewBodyHandle()
	f.Track(a, fullDef(catUnit, ShapeCircle))
	f.Track(b, fullDef(catHazard, ShapeCircle))

	h := &countingHandler{}
	f.Register(catUnit, catHazard, h)

	f.OnContactBegin(a, b)
	f.OnContactEnd(a, b)
	if h.calls != 0 {
		t.Errorf("Handler ran before Dispatch, %d calls", h.calls)
	}
	if n := f.PendingCount(); n != 2 {
		t.Errorf("Expected 2 pending events, got %d", n)
	}

	f.Dispatch(struct{}{})
	if h.calls != 2 {
		t.Errorf("Expected 2 calls after Dispatch, got %d", h.calls)
	}
	if h.events[0].Phase != ContactBegin || h.events[1].Phase != ContactEnd {
		t.Error("Events delivered out of order")
	}
	if n := f.PendingCount(); n != 0 {
		t.Errorf("Pending events not cleared, %d left", n)
	}
}

// A panicking handler is skipped; remaining handlers still run
func TestHandlerPanicIsolation(t *testing.T) {
	f := NewFilter[struct{}](zap.NewNop())
	a, b := NewBodyHandle(), NewBodyHandle()
	f.Track(a, fullDef(catUnit, ShapeCircle))
	f.Track(b, fullDef(catHazard, ShapeCircle))

	f.Register(catUnit, catHazard, ContactHandlerFunc[struct{}](
		func(struct{}, ContactEvent) { panic("boom") }))
	second := &countingHandler{}
	f.Register(catUnit, catHazard, second)

	f.OnContactBegin(a, b)
	f.Dispatch(struct{}{})
	if second.calls != 1 {
		t.Errorf("Second handler skipped after panic, %d calls", second.calls)
	}
}

// Handlers for the same pair run in registration order
func TestHandlersRunInRegistrationOrder(t *testing.T) {
	f := NewFilter[struct{}](zap.NewNop())
	a, b := NewBodyHandle(), NewBodyHandle()
	f.Track(a, fullDef(catUnit, ShapeCircle))
	f.Track(b, fullDef(catHazard, ShapeCircle))

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		f.Register(catUnit, catHazard, ContactHandlerFunc[struct{}](
			func(struct{}, ContactEvent) { order = append(order, i) }))
	}

	f.OnContactBegin(a, b)
	f.Dispatch(struct{}{})
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("Expected registration order 0,1,2, got %v", order)
	}
}

// Registry enforces the 32-category limit and unique names
func TestCategoryRegistryLimit(t *testing.T) {
	r := NewCategoryRegistry()
	for i := 0; i < MaxCategories; i++ {
		c, err := r.Register(fmt.Sprintf("cat%d", i))
		if err != nil {
			t.Fatalf("Register %d failed: %v", i, err)
		}
		if int(c) != i {
			t.Errorf("Expected category index %d, got %d", i, c)
		}
	}

	if _, err := r.Register("overflow"); err == nil {
		t.Error("Expected error for 33rd category")
	}
	if _, err := r.Register("cat0"); err == nil {
		t.Error("Expected error for duplicate name")
	}
	if r.Count() != MaxCategories {
		t.Errorf("Expected %d categories, got %d", MaxCategories, r.Count())
	}
}

// Lookup and Name round-trip
func TestCategoryRegistryLookup(t *testing.T) {
	r := NewCategoryRegistry()
	c, err := r.Register("player")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, ok := r.Lookup("player")
	if !ok || got != c {
		t.Errorf("Lookup mismatch: %d %v", got, ok)
	}
	name, ok := r.Name(c)
	if !ok || name != "player" {
		t.Errorf("Name mismatch: %q %v", name, ok)
	}
	if _, ok := r.Lookup("ghost"); ok {
		t.Error("Lookup of unregistered name should fail")
	}
	if _, ok := r.Name(Category(9)); ok {
		t.Error("Name of unassigned category should fail")
	}
}

// Mask bit operations
func TestMaskOps(t *testing.T) {
	m := MaskOf(catUnit, catWall)
	if !m.Has(catUnit) || !m.Has(catWall) || m.Has(catHazard) {
		t.Errorf("MaskOf produced wrong bits: %032b", m)
	}
	if !m.With(catHazard).Has(catHazard) {
		t.Error("With did not add the category")
	}
	if m.Without(catUnit).Has(catUnit) {
		t.Error("Without did not remove the category")
	}
	if !MaskAll.Has(Category(31)) {
		t.Error("MaskAll should include category 31")
	}
}
