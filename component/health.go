package component

// HealthComponent tracks hit points. When Current reaches zero the
// health system stages the entity for destruction
type HealthComponent struct {
	Current int
	Max     int
}
