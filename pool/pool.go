// Package pool provides a generic acquire/release arena for items that
// are spawned and despawned every few ticks. Unlike sync.Pool it tracks
// which handles are in use, so teardown can reclaim everything and a
// double release is a harmless no-op
package pool

import (
	"errors"
	"sync"

	"github.com/lixenwraith/framecore/core"
	"github.com/lixenwraith/framecore/parameter"
)

// ErrExhausted is returned by Acquire on a capped pool with no free
// handles. Recoverable: the caller may simply skip spawning this tick
var ErrExhausted = errors.New("pool: exhausted")

// Config describes a pool.
//
// New constructs a fresh handle when none is available. Reset clears
// transient state (velocity, timers) before a released handle becomes
// acquirable again. Cap of zero means unbounded growth
type Config[T comparable] struct {
	New             func() T
	Reset           func(T)
	InitialCapacity int
	Cap             int
}

// Pool is a typed handle arena. Every live handle is in exactly one of
// available or inUse at all times
type Pool[T comparable] struct {
	mu        sync.Mutex
	cfg       Config[T]
	available []T
	inUse     map[T]struct{}
	highWater int
}

// New creates a pool and pre-warms it to the configured capacity
func New[T comparable](cfg Config[T]) (*Pool[T], error) {
	if cfg.New == nil {
		return nil, core.Configf("pool", "factory function is required")
	}
	if cfg.InitialCapacity < 0 {
		return nil, core.Configf("pool", "initial capacity %d is negative", cfg.InitialCapacity)
	}
	if cfg.Cap < 0 {
		return nil, core.Configf("pool", "cap %d is negative", cfg.Cap)
	}
	if cfg.Cap > 0 && cfg.InitialCapacity > cfg.Cap {
		return nil, core.Configf("pool", "initial capacity %d exceeds cap %d", cfg.InitialCapacity, cfg.Cap)
	}
	if cfg.InitialCapacity == 0 {
		cfg.InitialCapacity = parameter.DefaultPoolCapacity
		if cfg.Cap > 0 && cfg.InitialCapacity > cfg.Cap {
			cfg.InitialCapacity = cfg.Cap
		}
	}

	p := &Pool[T]{
		cfg:       cfg,
		available: make([]T, 0, cfg.InitialCapacity),
		inUse:     make(map[T]struct{}, cfg.InitialCapacity),
	}
	for i := 0; i < cfg.InitialCapacity; i++ {
		p.available = append(p.available, cfg.New())
	}
	return p, nil
}

// Acquire returns a free handle, constructing a new one when the pool
// is empty and uncapped. A capped pool returns ErrExhausted instead of
// growing
func (p *Pool[T]) Acquire() (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.available); n > 0 {
		h := p.available[n-1]
		p.available = p.available[:n-1]
		p.inUse[h] = struct{}{}
		if total := len(p.inUse); total > p.highWater {
			p.highWater = total
		}
		return h, nil
	}

	if p.cfg.Cap > 0 && len(p.inUse) >= p.cfg.Cap {
		var zero T
		return zero, ErrExhausted
	}

	h := p.cfg.New()
	p.inUse[h] = struct{}{}
	if total := len(p.inUse); total > p.highWater {
		p.highWater = total
	}
	return h, nil
}

// Release moves a handle back to the available set after resetting it.
// Releasing a handle that is not in use is a no-op
func (p *Pool[T]) Release(h T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.release(h)
}

func (p *Pool[T]) release(h T) {
	if _, ok := p.inUse[h]; !ok {
		return
	}
	delete(p.inUse, h)
	if p.cfg.Reset != nil {
		p.cfg.Reset(h)
	}
	p.available = append(p.available, h)
}

// ReleaseAll releases every in-use handle. Used on scene teardown
func (p *Pool[T]) ReleaseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for h := range p.inUse {
		delete(p.inUse, h)
		if p.cfg.Reset != nil {
			p.cfg.Reset(h)
		}
		p.available = append(p.available, h)
	}
}

// Available returns the number of free handles
func (p *Pool[T]) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.available)
}

// InUse returns the number of acquired handles
func (p *Pool[T]) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inUse)
}

// HighWater returns the peak simultaneous in-use count observed
func (p *Pool[T]) HighWater() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.highWater
}
