package parameter

// Frame Pipeline
const (
	// CompletionQueueSize is the fixed capacity of the completion ring buffer
	CompletionQueueSize = 1024

	// CompletionBufferMask is the bitmask for fast modulo operations (1024 - 1)
	CompletionBufferMask = 1023

	// MaxTickDelta caps the delta time handed to a single tick, in seconds.
	// Protects simulation stability after a long stall (debugger, suspend)
	MaxTickDelta = 0.25

	// FinalizeLogInterval is the tick period for scheduler debug telemetry
	FinalizeLogInterval = 64
)

// Pool Defaults
const (
	// DefaultPoolCapacity is the pre-warm size used when a pool config
	// does not specify an initial capacity
	DefaultPoolCapacity = 16
)
