package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/framecore/parameter"
)

// Completion is work handed back to the tick thread by a background
// worker, executed at the start of the logic phase. This is the only
// legitimate way asynchronous work re-enters the core; workers never
// mutate stores directly
type Completion func(w *World)

// CompletionQueue is a lock-free MPSC ring buffer for completion
// callbacks.
//
// Thread-Safety:
//   - Push: lock-free CAS, multiple producers OK
//   - Consume: single consumer (tick thread)
//   - Published flags prevent reading partial writes
//
// Overflow: oldest callbacks overwritten when full
type CompletionQueue struct {
	fns       [parameter.CompletionQueueSize]Completion
	published [parameter.CompletionQueueSize]atomic.Bool
	head      atomic.Uint64
	tail      atomic.Uint64
}

// NewCompletionQueue creates an empty queue
func NewCompletionQueue() *CompletionQueue {
	return &CompletionQueue{}
}

// Push adds a callback using lock-free CAS with published flags.
// Safe for concurrent producers. O(1) amortized
func (q *CompletionQueue) Push(fn Completion) {
	if fn == nil {
		return
	}
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.CompletionBufferMask

			q.fns[idx] = fn
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread slots
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.CompletionQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-parameter.CompletionQueueSize)
			}
			return
		}
	}
}

// Consume returns all pending callbacks in FIFO order and advances
// head. Single-consumer design; checks published flags for safety
func (q *CompletionQueue) Consume() []Completion {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.CompletionQueueSize {
			maxAvailable = parameter.CompletionQueueSize
			currentHead = currentTail - parameter.CompletionQueueSize
		}

		result := make([]Completion, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.CompletionBufferMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.fns[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns the approximate pending callback count
func (q *CompletionQueue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.CompletionQueueSize {
		return parameter.CompletionQueueSize
	}
	return diff
}
