package engine

import (
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/framecore/metrics"
	"github.com/lixenwraith/framecore/parameter"
	"github.com/lixenwraith/framecore/physics"
)

// Phase is one stage of the fixed frame pipeline
type Phase uint8

const (
	// PhaseIdle means no tick is running
	PhaseIdle Phase = iota
	// PhaseLogic runs AI and input-driven systems. Contact state from
	// this tick is not yet valid here
	PhaseLogic
	// PhaseActions evaluates timed action sequences
	PhaseActions
	// PhasePhysics steps the external engine; contact events are
	// buffered, not yet visible
	PhasePhysics
	// PhaseContacts dispatches every event produced by the physics step
	PhaseContacts
	// PhaseConstraints re-applies positional constraints that depend on
	// the physics result. Read-only with respect to the entity set
	PhaseConstraints
	// PhaseDeferredApply drains the mutation queue. The sole mutation
	// point for structural changes
	PhaseDeferredApply
	// PhaseFinalize updates telemetry. Structural mutation here is a
	// contract violation
	PhaseFinalize
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLogic:
		return "logic"
	case PhaseActions:
		return "actions"
	case PhasePhysics:
		return "physics"
	case PhaseContacts:
		return "contacts"
	case PhaseConstraints:
		return "constraints"
	case PhaseDeferredApply:
		return "deferred_apply"
	case PhaseFinalize:
		return "finalize"
	}
	return "unknown"
}

// System is a unit of per-tick work registered for one phase.
// Lower priority values run first within a phase
type System interface {
	Update()
	Priority() int
}

// SchedulerConfig wires the scheduler's collaborators. Physics,
// Filter, and Metrics may be nil; Logger defaults to a no-op
type SchedulerConfig struct {
	Physics  physics.Engine
	Filter   *physics.Filter[*World]
	Metrics  *metrics.FrameMetrics
	Logger   *zap.Logger
	MaxDelta float64
}

// FrameScheduler drives one tick of the fixed phase pipeline.
//
// Tick is the single entry point, called once per external frame
// signal on the tick thread. A panic escaping a logic or actions
// system aborts only the remainder of that sub-phase; the scheduler
// always reaches the deferred apply phase so previously staged
// destructions are honored, bounding leak exposure to one tick
type FrameScheduler struct {
	world       *World
	body        physics.Engine
	filter      *physics.Filter[*World]
	completions *CompletionQueue
	met         *metrics.FrameMetrics
	log         *zap.Logger

	logic       []System
	actions     []System
	constraints []System

	frame    int64
	lastTime float64
	started  bool
	maxDelta float64
}

// NewFrameScheduler creates a scheduler for the given world
func NewFrameScheduler(w *World, cfg SchedulerConfig) *FrameScheduler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	maxDelta := cfg.MaxDelta
	if maxDelta <= 0 {
		maxDelta = parameter.MaxTickDelta
	}
	w.SetLogger(log)

	return &FrameScheduler{
		world:       w,
		body:        cfg.Physics,
		filter:      cfg.Filter,
		completions: NewCompletionQueue(),
		met:         cfg.Metrics,
		log:         log,
		maxDelta:    maxDelta,
	}
}

// Completions returns the queue background workers push results into
func (s *FrameScheduler) Completions() *CompletionQueue {
	return s.completions
}

// Frame returns the number of completed ticks
func (s *FrameScheduler) Frame() int64 {
	return s.frame
}

// Register adds a system to one of the three system-bearing phases
// (logic, actions, constraints), keeping each list sorted by priority
func (s *FrameScheduler) Register(phase Phase, sys System) {
	var list *[]System
	switch phase {
	case PhaseLogic:
		list = &s.logic
	case PhaseActions:
		list = &s.actions
	case PhaseConstraints:
		list = &s.constraints
	default:
		panic(fmt.Sprintf("engine: systems cannot register for %s phase", phase))
	}

	*list = append(*list, sys)

	// Sort by priority (bubble sort, small N)
	l := *list
	for i := 0; i < len(l)-1; i++ {
		for j := 0; j < len(l)-i-1; j++ {
			if l[j].Priority() > l[j+1].Priority() {
				l[j], l[j+1] = l[j+1], l[j]
			}
		}
	}
}

// Tick runs one full pipeline pass. currentTime is caller-supplied
// monotonic seconds; the first tick sees a zero delta and later deltas
// are clamped to the configured maximum
func (s *FrameScheduler) Tick(currentTime float64) {
	dt := 0.0
	if s.started {
		dt = currentTime - s.lastTime
		if dt < 0 {
			dt = 0
		}
		if dt > s.maxDelta {
			dt = s.maxDelta
		}
	}
	s.started = true
	s.lastTime = currentTime
	s.frame++

	s.world.Resources.Time.Update(currentTime, dt, s.frame)
	wallStart := time.Now()

	s.runPhase(PhaseLogic, func() {
		for _, fn := range s.completions.Consume() {
			fn(s.world)
		}
		s.runSystems(s.logic)
	})

	s.runPhase(PhaseActions, func() {
		s.runSystems(s.actions)
	})

	s.runPhase(PhasePhysics, func() {
		if s.body != nil {
			s.body.Step(dt)
		}
	})

	dispatched := 0
	s.runPhase(PhaseContacts, func() {
		if s.filter != nil {
			dispatched = s.filter.Dispatch(s.world)
		}
	})

	s.runPhase(PhaseConstraints, func() {
		s.runSystems(s.constraints)
	})

	// Always reached, even after an aborted phase
	s.world.setPhase(PhaseDeferredApply)
	applied := s.world.queue.drain(s.world)

	s.world.setPhase(PhaseFinalize)
	s.finalize(time.Since(wallStart), dispatched, applied)

	s.world.setPhase(PhaseIdle)
}

// runPhase executes fn under the given phase with panic isolation:
// a panic aborts the remainder of this phase only and is logged
func (s *FrameScheduler) runPhase(p Phase, fn func()) {
	s.world.setPhase(p)
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("phase aborted",
				zap.String("phase", p.String()),
				zap.Int64("frame", s.frame),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	fn()
}

func (s *FrameScheduler) runSystems(list []System) {
	for _, sys := range list {
		sys.Update()
	}
}

// finalize is telemetry only
func (s *FrameScheduler) finalize(elapsed time.Duration, dispatched, applied int) {
	if s.met != nil {
		s.met.ObserveTick(elapsed)
		s.met.AddContacts(dispatched)
		s.met.AddMutations(applied)
		s.met.SetEntities(s.world.LiveCount())
	}

	if s.frame%parameter.FinalizeLogInterval == 0 {
		s.log.Debug("tick",
			zap.Int64("frame", s.frame),
			zap.Duration("elapsed", elapsed),
			zap.Int("entities", s.world.LiveCount()),
			zap.Int("contacts", dispatched),
			zap.Int("mutations", applied))
	}
}
