package scene

import "github.com/google/uuid"

// VisualHandle is an opaque reference to a node owned by the external
// rendering surface. The core never interprets it beyond identity
type VisualHandle struct {
	id uuid.UUID
}

// NilVisualHandle is the zero handle
var NilVisualHandle = VisualHandle{}

// NewVisualHandle allocates a fresh handle
func NewVisualHandle() VisualHandle {
	return VisualHandle{id: uuid.New()}
}

// IsNil reports whether the handle is the zero handle
func (h VisualHandle) IsNil() bool {
	return h == NilVisualHandle
}

func (h VisualHandle) String() string {
	return h.id.String()
}

// Surface is the rendering boundary. All three operations are invoked
// only while the deferred mutation queue is being applied; the surface
// never sees structural churn mid-simulation
type Surface interface {
	// Add attaches a visual node to the scene graph
	Add(h VisualHandle)

	// Remove detaches a visual node from the scene graph
	Remove(h VisualHandle)

	// SetPaused suspends or resumes a visual node's presentation
	SetPaused(h VisualHandle, paused bool)
}
