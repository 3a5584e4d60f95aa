package physics

// Category identifies one of the up to 32 collision categories a scene
// may define. Valid values are produced only by CategoryRegistry
type Category uint8

// Mask is a 32-bit category set. Bit i means membership in category i
type Mask uint32

// MaskAll matches every category
const MaskAll Mask = 0xFFFFFFFF

// MaskOf builds a mask from the given categories
func MaskOf(cats ...Category) Mask {
	var m Mask
	for _, c := range cats {
		m |= 1 << c
	}
	return m
}

// Has reports whether the mask includes category c
func (m Mask) Has(c Category) bool {
	return m&(1<<c) != 0
}

// With returns the mask with category c added
func (m Mask) With(c Category) Mask {
	return m | 1<<c
}

// Without returns the mask with category c removed
func (m Mask) Without(c Category) Mask {
	return m &^ (1 << c)
}
