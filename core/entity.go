package core

// Entity is a generation-checked entity identifier.
// The low 32 bits hold the slot index, the high 32 bits hold the
// generation of that slot at the time the entity was created.
// A lookup against a recycled slot fails the generation check and
// resolves to "absent" rather than to the new occupant.
type Entity uint64

// NilEntity is the zero entity. Slot 0 is never allocated.
const NilEntity Entity = 0

// MakeEntity packs a slot index and generation into an Entity
func MakeEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index returns the slot index of the entity
func (e Entity) Index() uint32 {
	return uint32(e)
}

// Generation returns the slot generation the entity was created with
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

// IsNil reports whether the entity is the zero entity
func (e Entity) IsNil() bool {
	return e == NilEntity
}
