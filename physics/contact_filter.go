package physics

import (
	"sync"

	"go.uber.org/zap"
)

// ContactPhase distinguishes begin and end events
type ContactPhase uint8

const (
	ContactBegin ContactPhase = iota
	ContactEnd
)

func (p ContactPhase) String() string {
	if p == ContactBegin {
		return "begin"
	}
	return "end"
}

// ContactEvent is one contact reported by the physics engine, paired
// with the descriptors the filter tracked for both bodies
type ContactEvent struct {
	A, B       BodyHandle
	DefA, DefB BodyDef
	Phase      ContactPhase
}

// ContactHandler processes contact events within a context T
// (typically the ECS world). Handlers must stage structural changes
// through the deferred mutation queue, never apply them directly
type ContactHandler[T any] interface {
	HandleContact(ctx T, ev ContactEvent)
}

// ContactHandlerFunc adapts a plain function to ContactHandler
type ContactHandlerFunc[T any] func(ctx T, ev ContactEvent)

func (f ContactHandlerFunc[T]) HandleContact(ctx T, ev ContactEvent) {
	f(ctx, ev)
}

// registration binds a handler to an unordered category pair.
// x <= y always holds after canonicalization
type registration[T any] struct {
	x, y    Category
	handler ContactHandler[T]
}

// Filter classifies engine contact callbacks against tracked body
// descriptors and dispatches them to handlers registered for category
// pairs.
//
// Events received during the physics step are buffered and become
// visible only when Dispatch runs, so handlers never observe contact
// state from a phase where it is not yet valid. Dispatch order is
// registration order; a panicking handler is logged and skipped
// without blocking the remaining handlers for the same event
type Filter[T any] struct {
	mu      sync.Mutex
	bodies  map[BodyHandle]BodyDef
	regs    []registration[T]
	pending []ContactEvent
	log     *zap.Logger
}

// NewFilter creates an empty contact filter
func NewFilter[T any](log *zap.Logger) *Filter[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Filter[T]{
		bodies: make(map[BodyHandle]BodyDef),
		log:    log,
	}
}

// Track registers a body descriptor so its contacts can be classified.
// Tracking an already-tracked handle updates the descriptor
func (f *Filter[T]) Track(h BodyHandle, def BodyDef) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[h] = def
}

// Untrack forgets a body. Pending events referencing it are still
// dispatched with the descriptor captured at event time
func (f *Filter[T]) Untrack(h BodyHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bodies, h)
}

// Tracked returns the descriptor currently tracked for h
func (f *Filter[T]) Tracked(h BodyHandle) (BodyDef, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	def, ok := f.bodies[h]
	return def, ok
}

// Register adds a handler for the unordered category pair (x, y).
// A handler fires once per event regardless of which body carries
// which category. Multiple handlers may share a pair; they run in
// registration order
func (f *Filter[T]) Register(x, y Category, h ContactHandler[T]) {
	if x > y {
		x, y = y, x
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs = append(f.regs, registration[T]{x: x, y: y, handler: h})
}

// OnContactBegin buffers a begin event reported by the physics engine
func (f *Filter[T]) OnContactBegin(a, b BodyHandle) {
	f.buffer(a, b, ContactBegin)
}

// OnContactEnd buffers an end event reported by the physics engine
func (f *Filter[T]) OnContactEnd(a, b BodyHandle) {
	f.buffer(a, b, ContactEnd)
}

func (f *Filter[T]) buffer(a, b BodyHandle, phase ContactPhase) {
	f.mu.Lock()
	defer f.mu.Unlock()

	defA, okA := f.bodies[a]
	defB, okB := f.bodies[b]
	if !okA || !okB {
		f.log.Debug("contact for untracked body dropped",
			zap.String("a", a.String()),
			zap.String("b", b.String()),
			zap.String("phase", phase.String()))
		return
	}

	// Boundary-boundary pairs never contact at the engine level.
	// Drop defensively rather than trusting the engine's filtering
	if defA.Shape == ShapeBoundary && defB.Shape == ShapeBoundary {
		return
	}

	f.pending = append(f.pending, ContactEvent{
		A: a, B: b, DefA: defA, DefB: defB, Phase: phase,
	})
}

// PendingCount returns the number of buffered, undispatched events
func (f *Filter[T]) PendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Dispatch delivers every buffered event to matching handlers and
// returns the number of handler invocations. Called once per tick
// during the contacts phase
func (f *Filter[T]) Dispatch(ctx T) int {
	f.mu.Lock()
	events := f.pending
	f.pending = nil
	regs := f.regs
	f.mu.Unlock()

	invocations := 0
	for _, ev := range events {
		for _, reg := range regs {
			if !f.matches(reg, ev) {
				continue
			}
			invocations++
			f.invoke(reg.handler, ctx, ev)
		}
	}
	return invocations
}

// matches reports whether a registration applies to an event. The pair
// is unordered: (x on A, y on B) and (y on A, x on B) both match, but
// a single registration fires at most once per event.
// Each side's collision and contact masks are re-validated against the
// other's category bit to guard against stale or edited descriptors
func (f *Filter[T]) matches(reg registration[T], ev ContactEvent) bool {
	if ev.DefA.Category.Has(reg.x) && ev.DefB.Category.Has(reg.y) {
		if f.validSides(ev.DefA, ev.DefB, reg.x, reg.y) {
			return true
		}
	}
	if reg.x != reg.y && ev.DefA.Category.Has(reg.y) && ev.DefB.Category.Has(reg.x) {
		return f.validSides(ev.DefA, ev.DefB, reg.y, reg.x)
	}
	return false
}

// validSides checks mask agreement with a on category ca and b on cb
func (f *Filter[T]) validSides(a, b BodyDef, ca, cb Category) bool {
	return a.Collision.Has(cb) && a.Contact.Has(cb) &&
		b.Collision.Has(ca) && b.Contact.Has(ca)
}

func (f *Filter[T]) invoke(h ContactHandler[T], ctx T, ev ContactEvent) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error("contact handler panicked",
				zap.Any("panic", r),
				zap.String("a", ev.A.String()),
				zap.String("b", ev.B.String()),
				zap.String("phase", ev.Phase.String()))
		}
	}()
	h.HandleContact(ctx, ev)
}
