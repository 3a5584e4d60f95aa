package engine

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/framecore/component"
	"github.com/lixenwraith/framecore/core"
	"github.com/lixenwraith/framecore/physics"
	"github.com/lixenwraith/framecore/scene"
)

// Stores groups the typed tables for the built-in component kinds,
// public for direct system access
type Stores struct {
	Visuals   *Store[component.VisualComponent]
	Links     *Store[component.PhysicsLinkComponent]
	Movements *Store[component.MovementComponent]
	Healths   *Store[component.HealthComponent]
	Chases    *Store[component.ChaseComponent]
	States    *Store[component.StateComponent]
	Actions   *Store[component.ActionComponent]
	Paused    *Store[component.PausedComponent]
}

// entityMeta tracks the lifecycle of one entity slot
type entityMeta struct {
	generation uint32
	// reserved: id handed out, not yet materialized
	// alive: materialized at deferred apply
	reserved bool
	alive    bool
}

// World owns the entity allocator, all component tables, and the
// staged mutation queue. Tables are owned exclusively by the tick
// thread; background workers communicate through the completion queue,
// never by direct mutation.
//
// Structural changes (create, destroy, attach, detach) requested while
// a tick is running are staged and applied only at the deferred apply
// phase. Outside a tick they apply immediately, which is the setup
// path used before the first tick
type World struct {
	mu   sync.RWMutex
	meta []entityMeta
	free []uint32
	live int

	Stores    Stores
	custom    map[reflect.Type]AnyStore
	allStores []AnyStore

	Resources *Resource

	queue *MutationQueue
	phase atomic.Uint32

	surface scene.Surface
	body    physics.Engine

	log *zap.Logger
}

// NewWorld creates a world with all built-in stores initialized
func NewWorld() *World {
	w := &World{
		meta:      make([]entityMeta, 1), // slot 0 reserved, never allocated
		custom:    make(map[reflect.Type]AnyStore),
		Resources: NewResource(),
		queue:     NewMutationQueue(),
		log:       zap.NewNop(),
	}

	w.Stores = Stores{
		Visuals:   NewStore[component.VisualComponent](),
		Links:     NewStore[component.PhysicsLinkComponent](),
		Movements: NewStore[component.MovementComponent](),
		Healths:   NewStore[component.HealthComponent](),
		Chases:    NewStore[component.ChaseComponent](),
		States:    NewStore[component.StateComponent](),
		Actions:   NewStore[component.ActionComponent](),
		Paused:    NewStore[component.PausedComponent](),
	}
	w.allStores = []AnyStore{
		w.Stores.Visuals,
		w.Stores.Links,
		w.Stores.Movements,
		w.Stores.Healths,
		w.Stores.Chases,
		w.Stores.States,
		w.Stores.Actions,
		w.Stores.Paused,
	}

	w.phase.Store(uint32(PhaseIdle))
	return w
}

// SetLogger replaces the world's logger. Call before the first tick
func (w *World) SetLogger(log *zap.Logger) {
	if log != nil {
		w.log = log
	}
}

// BindBoundary wires the external scene surface and physics engine.
// Either may be nil when the corresponding side effects are not wanted
// (headless tests). Call before the first tick
func (w *World) BindBoundary(surface scene.Surface, body physics.Engine) {
	w.surface = surface
	w.body = body
}

// GetStore returns the world's table for a custom component type T,
// creating and registering it on first use. The pointer remains valid
// for the lifetime of the world
func GetStore[T any](w *World) *Store[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()

	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.custom[t]; ok {
		return s.(*Store[T])
	}
	s := NewStore[T]()
	w.custom[t] = s
	w.allStores = append(w.allStores, s)
	return s
}

// Phase returns the pipeline phase currently executing
func (w *World) Phase() Phase {
	return Phase(w.phase.Load())
}

func (w *World) setPhase(p Phase) {
	w.phase.Store(uint32(p))
}

// Create reserves a new entity id. The id is immediately valid as an
// attach target, but the entity materializes (becomes visible to
// queries) only at the deferred apply phase of the current tick, or at
// once when no tick is running
func (w *World) Create() core.Entity {
	w.mu.Lock()
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		w.meta = append(w.meta, entityMeta{})
		idx = uint32(len(w.meta) - 1)
	}
	m := &w.meta[idx]
	m.reserved = true
	e := core.MakeEntity(idx, m.generation)
	w.mu.Unlock()

	w.stage(Mutation{op: opCreate, entity: e})
	return e
}

// Destroy stages removal of an entity, all its components, and its
// external scene and physics resources. Destroying an id that is
// already gone is a silent no-op
func (w *World) Destroy(e core.Entity) {
	w.stage(Mutation{op: opDestroy, entity: e})
}

// Attach stages adding a component to an entity. The concrete type of
// c selects the table; custom component types must have been
// registered through GetStore first
func (w *World) Attach(e core.Entity, c any) {
	if kind, ok := builtinKind(c); ok {
		w.stage(Mutation{op: opAttach, entity: e, kind: kind, value: c})
		return
	}
	t := reflect.TypeOf(c)
	w.mu.RLock()
	_, registered := w.custom[t]
	w.mu.RUnlock()
	if !registered {
		panic(fmt.Sprintf("engine: attach of unregistered component type %v", t))
	}
	w.stage(Mutation{op: opAttach, entity: e, kind: kindCustom, value: c})
}

// Detach stages removal of a built-in component kind from an entity
func (w *World) Detach(e core.Entity, kind component.Kind) {
	w.stage(Mutation{op: opDetach, entity: e, kind: kind})
}

// DetachFrom stages removal of a custom component type from an entity
func DetachFrom[T any](w *World, e core.Entity) {
	w.stage(Mutation{op: opDetachStore, entity: e, store: GetStore[T](w)})
}

// ReleaseLater stages a pool release to be finalized at the deferred
// apply phase alongside structural changes
func (w *World) ReleaseLater(fn func()) {
	if fn == nil {
		return
	}
	w.stage(Mutation{op: opRelease, fn: fn})
}

// Alive reports whether the entity has materialized and has not been
// destroyed. A stale id (recycled slot) fails the generation check
func (w *World) Alive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.aliveLocked(e)
}

func (w *World) aliveLocked(e core.Entity) bool {
	idx := e.Index()
	if idx == 0 || int(idx) >= len(w.meta) {
		return false
	}
	m := w.meta[idx]
	return m.alive && m.generation == e.Generation()
}

// reservedLocked reports whether the id is a valid attach target:
// either alive or reserved pending materialization
func (w *World) reservedLocked(e core.Entity) bool {
	idx := e.Index()
	if idx == 0 || int(idx) >= len(w.meta) {
		return false
	}
	m := w.meta[idx]
	return (m.alive || m.reserved) && m.generation == e.Generation()
}

// LiveCount returns the number of materialized entities
func (w *World) LiveCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.live
}

// PendingMutations returns the number of staged structural changes
func (w *World) PendingMutations() int {
	return w.queue.Len()
}

// Query returns the entities present in every one of the given stores.
// The result is a snapshot: it starts from the smallest store's entity
// list and filters through the rest, so later mutations do not affect
// an iteration already in flight
func (w *World) Query(stores ...QueryableStore) []core.Entity {
	if len(stores) == 0 {
		return nil
	}

	smallest := 0
	for i := 1; i < len(stores); i++ {
		if stores[i].Count() < stores[smallest].Count() {
			smallest = i
		}
	}

	candidates := stores[smallest].All()
	if len(stores) == 1 {
		return candidates
	}

	result := candidates[:0]
	for _, e := range candidates {
		keep := true
		for i, s := range stores {
			if i == smallest {
				continue
			}
			if !s.Has(e) {
				keep = false
				break
			}
		}
		if keep {
			result = append(result, e)
		}
	}
	return result
}

// Clear destroys all entities and components immediately. Only valid
// outside a tick (scene teardown)
func (w *World) Clear() {
	if p := w.Phase(); p != PhaseIdle {
		panic(fmt.Sprintf("engine: clear during %s phase", p))
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.meta = w.meta[:1]
	w.meta[0] = entityMeta{}
	w.free = w.free[:0]
	w.live = 0
	for _, s := range w.allStores {
		s.Clear()
	}
}

// stage routes a mutation: immediate apply while idle, queued during a
// tick. Structural mutation during finalize is a contract violation
func (w *World) stage(m Mutation) {
	switch w.Phase() {
	case PhaseFinalize:
		panic(fmt.Sprintf("engine: structural mutation (%s) during finalize phase", m.op))
	case PhaseIdle:
		w.applyMutation(m)
	default:
		w.queue.Enqueue(m)
	}
}

// applyMutation executes one staged mutation. Only the idle and
// deferred apply phases may perform structural changes
func (w *World) applyMutation(m Mutation) {
	if p := w.Phase(); p != PhaseIdle && p != PhaseDeferredApply {
		panic(fmt.Sprintf("engine: structural mutation (%s) applied during %s phase", m.op, p))
	}

	switch m.op {
	case opCreate:
		w.applyCreate(m.entity)
	case opDestroy:
		w.applyDestroy(m.entity)
	case opAttach:
		w.applyAttach(m.entity, m.kind, m.value)
	case opDetach:
		w.applyDetach(m.entity, m.kind)
	case opDetachStore:
		w.applyDetachStore(m.entity, m.store)
	case opRelease:
		m.fn()
	}
}

func (w *World) applyCreate(e core.Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := e.Index()
	if int(idx) >= len(w.meta) {
		return
	}
	m := &w.meta[idx]
	// A same-tick destroy may already have recycled the slot
	if m.generation != e.Generation() || !m.reserved {
		return
	}
	m.reserved = false
	m.alive = true
	w.live++
}

func (w *World) applyDestroy(e core.Entity) {
	w.mu.Lock()
	idx := e.Index()
	if int(idx) >= len(w.meta) {
		w.mu.Unlock()
		return
	}
	m := &w.meta[idx]
	if m.generation != e.Generation() || (!m.alive && !m.reserved) {
		w.mu.Unlock()
		return
	}
	wasAlive := m.alive
	m.alive = false
	m.reserved = false
	m.generation++
	w.free = append(w.free, idx)
	if wasAlive {
		w.live--
	}
	stores := w.allStores
	w.mu.Unlock()

	// External resources are dropped on the destruction path only
	if v, ok := w.Stores.Visuals.Get(e); ok && w.surface != nil {
		w.surface.Remove(v.Handle)
	}
	if l, ok := w.Stores.Links.Get(e); ok && w.body != nil {
		w.body.DestroyBody(l.Body)
	}

	for _, s := range stores {
		s.Remove(e)
	}
}

func (w *World) applyAttach(e core.Entity, kind component.Kind, value any) {
	w.mu.RLock()
	ok := w.reservedLocked(e)
	w.mu.RUnlock()
	if !ok {
		// Stale target, expected when destruction raced in-flight logic
		return
	}

	if kind == kindCustom {
		t := reflect.TypeOf(value)
		w.mu.RLock()
		s := w.custom[t]
		w.mu.RUnlock()
		s.setAny(e, value)
		return
	}

	switch kind {
	case component.KindVisual:
		v := value.(component.VisualComponent)
		w.Stores.Visuals.Set(e, v)
		if w.surface != nil {
			w.surface.Add(v.Handle)
		}
	case component.KindPhysicsLink:
		w.Stores.Links.Set(e, value.(component.PhysicsLinkComponent))
	case component.KindMovement:
		w.Stores.Movements.Set(e, value.(component.MovementComponent))
	case component.KindHealth:
		w.Stores.Healths.Set(e, value.(component.HealthComponent))
	case component.KindChase:
		w.Stores.Chases.Set(e, value.(component.ChaseComponent))
	case component.KindState:
		w.Stores.States.Set(e, value.(component.StateComponent))
	case component.KindAction:
		w.Stores.Actions.Set(e, value.(component.ActionComponent))
	case component.KindPaused:
		w.Stores.Paused.Set(e, value.(component.PausedComponent))
		w.suspend(e, true)
	}
}

func (w *World) applyDetach(e core.Entity, kind component.Kind) {
	switch kind {
	case component.KindVisual:
		w.Stores.Visuals.Remove(e)
	case component.KindPhysicsLink:
		w.Stores.Links.Remove(e)
	case component.KindMovement:
		w.Stores.Movements.Remove(e)
	case component.KindHealth:
		w.Stores.Healths.Remove(e)
	case component.KindChase:
		w.Stores.Chases.Remove(e)
	case component.KindState:
		w.Stores.States.Remove(e)
	case component.KindAction:
		w.Stores.Actions.Remove(e)
	case component.KindPaused:
		if w.Stores.Paused.Has(e) {
			w.Stores.Paused.Remove(e)
			w.suspend(e, false)
		}
	}
}

func (w *World) applyDetachStore(e core.Entity, s AnyStore) {
	if s != nil {
		s.Remove(e)
	}
}

// suspend propagates culling state to the external boundaries
func (w *World) suspend(e core.Entity, paused bool) {
	if v, ok := w.Stores.Visuals.Get(e); ok && w.surface != nil {
		w.surface.SetPaused(v.Handle, paused)
	}
	if l, ok := w.Stores.Links.Get(e); ok && w.body != nil {
		w.body.SetResting(l.Body, paused)
	}
}

// kindCustom marks attaches routed through the custom store registry
const kindCustom component.Kind = 0xFF

// builtinKind maps a component value to its built-in table
func builtinKind(c any) (component.Kind, bool) {
	switch c.(type) {
	case component.VisualComponent:
		return component.KindVisual, true
	case component.PhysicsLinkComponent:
		return component.KindPhysicsLink, true
	case component.MovementComponent:
		return component.KindMovement, true
	case component.HealthComponent:
		return component.KindHealth, true
	case component.ChaseComponent:
		return component.KindChase, true
	case component.StateComponent:
		return component.KindState, true
	case component.ActionComponent:
		return component.KindAction, true
	case component.PausedComponent:
		return component.KindPaused, true
	}
	return 0, false
}
