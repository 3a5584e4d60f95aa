package physics

import "sync"

// StubEngine is a scriptable Engine implementation for tests and the
// demo binary. StepFn, when set, is invoked by Step and typically
// feeds contacts into a Filter
type StubEngine struct {
	mu sync.Mutex

	// StepFn runs on every Step with the tick delta
	StepFn func(dt float64)

	resting   map[BodyHandle]bool
	destroyed []BodyHandle
	steps     int
}

// NewStubEngine creates an idle stub
func NewStubEngine() *StubEngine {
	return &StubEngine{
		resting: make(map[BodyHandle]bool),
	}
}

func (s *StubEngine) Step(dt float64) {
	s.mu.Lock()
	s.steps++
	fn := s.StepFn
	s.mu.Unlock()

	if fn != nil {
		fn(dt)
	}
}

func (s *StubEngine) SetResting(h BodyHandle, resting bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resting[h] = resting
}

func (s *StubEngine) DestroyBody(h BodyHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = append(s.destroyed, h)
}

// Steps returns the number of Step calls so far
func (s *StubEngine) Steps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

// Resting returns the recorded resting state for a handle
func (s *StubEngine) Resting(h BodyHandle) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.resting[h]
	return v, ok
}

// Destroyed returns a copy of the handles dropped so far
func (s *StubEngine) Destroyed() []BodyHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]BodyHandle, len(s.destroyed))
	copy(out, s.destroyed)
	return out
}
