package engine

import "github.com/lixenwraith/framecore/core"

// Resource holds singleton simulation state shared by systems,
// accessed through the world rather than passed per call
type Resource struct {
	Time   *TimeResource
	Camera *CameraResource
}

// NewResource creates the resource set with zero values
func NewResource() *Resource {
	return &Resource{
		Time:   &TimeResource{},
		Camera: &CameraResource{},
	}
}

// TimeResource is the tick clock visible to systems. Updated in-place
// by the scheduler at the start of each tick
type TimeResource struct {
	// Now is the caller-supplied monotonic time of the current tick,
	// in seconds
	Now float64

	// Delta is the time advanced by this tick, in seconds
	Delta float64

	// Frame is the current tick count
	Frame int64
}

// Update modifies the time resource in-place (zero allocation)
func (tr *TimeResource) Update(now, delta float64, frame int64) {
	tr.Now = now
	tr.Delta = delta
	tr.Frame = frame
}

// CameraResource is the viewport state read by culling and written by
// the camera constraint system after physics has settled
type CameraResource struct {
	// View is the current viewport in world units
	View core.Rect

	// Bounds limits how far the view may travel. Zero means unbounded
	Bounds core.Rect

	// Follow is the entity the view tracks, if any
	Follow core.Entity

	// Padding is the culling hysteresis margin in world units
	Padding float64
}
