package parameter

// System priorities. Lower values run first within a phase
const (
	PriorityChase    = 10
	PriorityMovement = 20
	PriorityHealth   = 30
	PriorityCull     = 90

	PriorityAction = 10

	PriorityCameraClamp = 10
)
