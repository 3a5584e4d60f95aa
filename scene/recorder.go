package scene

import "sync"

// Recorder is a Surface implementation that records every instruction
// it receives. Used by tests and by the demo binary in place of a real
// rendering backend
type Recorder struct {
	mu      sync.Mutex
	added   []VisualHandle
	removed []VisualHandle
	paused  map[VisualHandle]bool
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{
		paused: make(map[VisualHandle]bool),
	}
}

func (r *Recorder) Add(h VisualHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, h)
}

func (r *Recorder) Remove(h VisualHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, h)
	delete(r.paused, h)
}

func (r *Recorder) SetPaused(h VisualHandle, paused bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused[h] = paused
}

// Added returns a copy of the handles added so far
func (r *Recorder) Added() []VisualHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]VisualHandle, len(r.added))
	copy(out, r.added)
	return out
}

// Removed returns a copy of the handles removed so far
func (r *Recorder) Removed() []VisualHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]VisualHandle, len(r.removed))
	copy(out, r.removed)
	return out
}

// Paused returns the recorded pause state for a handle
func (r *Recorder) Paused(h VisualHandle) (bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.paused[h]
	return v, ok
}

// LiveCount returns added minus removed
func (r *Recorder) LiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.added) - len(r.removed)
}
