package component

import "github.com/lixenwraith/framecore/core"

// StepKind selects the effect applied when an action step completes
type StepKind uint8

const (
	// StepWait has no effect; it only consumes time
	StepWait StepKind = iota
	// StepSetVelocity writes Vel into the owner's movement component
	StepSetVelocity
	// StepSetState transitions the owner's state machine to State
	StepSetState
	// StepDestroy stages destruction of the owner
	StepDestroy
	// StepDetach stages removal of the component kind in Detach
	StepDetach
	// StepPause stages a Paused attach, suspending the owner
	StepPause
)

// ActionStep is one timed step of an action sequence. The step runs
// for Duration seconds of game time, then applies its effect
type ActionStep struct {
	Duration float64
	Kind     StepKind

	// Effect data, interpreted per Kind
	Vel    core.Vec2
	State  StateID
	Detach Kind
}

// ActionComponent is a scheduled sequence of timed steps, the
// data-driven replacement for closure-based scheduled callbacks.
// Steps address the owner by entity id at execution time, so a
// sequence outliving its entity simply fizzles
type ActionComponent struct {
	Steps   []ActionStep
	Index   int
	Elapsed float64
}
