package engine

import (
	"sync"

	"github.com/lixenwraith/framecore/component"
	"github.com/lixenwraith/framecore/core"
)

type mutationOp uint8

const (
	opCreate mutationOp = iota
	opDestroy
	opAttach
	opDetach
	opDetachStore
	opRelease
)

func (op mutationOp) String() string {
	switch op {
	case opCreate:
		return "create"
	case opDestroy:
		return "destroy"
	case opAttach:
		return "attach"
	case opDetach:
		return "detach"
	case opDetachStore:
		return "detach_store"
	case opRelease:
		return "release"
	}
	return "unknown"
}

// Mutation is one staged structural change. Fields beyond op and
// entity are populated per operation
type Mutation struct {
	op     mutationOp
	entity core.Entity
	kind   component.Kind // opAttach, opDetach
	value  any            // opAttach payload
	store  AnyStore       // opDetachStore target
	fn     func()         // opRelease callback
}

// MutationQueue stages entity and component changes during a tick.
// Enqueue is available from any phase; the queue is drained exactly
// once per tick, at the deferred apply phase, in FIFO order.
//
// A staged mutation cannot be withdrawn; it can only be superseded by
// a later one. In particular a destroy for an id also targeted by a
// same-tick attach resolves to destruction: the attach is dropped, so
// a just-destroyed id can never be resurrected
type MutationQueue struct {
	mu      sync.Mutex
	pending []Mutation
}

// NewMutationQueue creates an empty queue
func NewMutationQueue() *MutationQueue {
	return &MutationQueue{}
}

// Enqueue stages a mutation
func (q *MutationQueue) Enqueue(m Mutation) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, m)
}

// Len returns the number of staged mutations
func (q *MutationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// drain applies all staged mutations to the world in enqueue order.
// Mutations staged while draining (for example by apply hooks) land in
// the next tick's batch
func (q *MutationQueue) drain(w *World) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	if len(batch) == 0 {
		return 0
	}

	// Destruction wins over same-tick attach for the same id
	destroyed := make(map[core.Entity]struct{})
	for _, m := range batch {
		if m.op == opDestroy {
			destroyed[m.entity] = struct{}{}
		}
	}

	applied := 0
	for _, m := range batch {
		if m.op == opAttach {
			if _, gone := destroyed[m.entity]; gone {
				continue
			}
		}
		w.applyMutation(m)
		applied++
	}
	return applied
}
