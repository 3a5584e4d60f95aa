package component

import "github.com/lixenwraith/framecore/core"

// ChaseComponent steers the owner toward a target entity at the given
// speed. The target is referenced by id; a destroyed target simply
// stops the chase until retargeted
type ChaseComponent struct {
	Target core.Entity
	Speed  float64
}
