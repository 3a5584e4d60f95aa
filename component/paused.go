package component

// PausedComponent marks an entity as suspended by viewport culling.
// Applying the attach pauses the visual node and puts the physics body
// to rest; the detach resumes both
type PausedComponent struct{}
