package tile

import (
	"encoding/binary"
	"math/rand"

	"github.com/cespare/xxhash/v2"

	"github.com/lixenwraith/framecore/core"
)

// Config describes the tile grid
type Config struct {
	Columns  int
	Rows     int
	TileSize float64

	// Automapping re-resolves the 8 immediate neighbors after every
	// edit. Re-resolution never propagates beyond one ring, bounding
	// the cost of an edit to 9 cells
	Automapping bool

	// Seed perturbs the per-cell tie-break so different maps pick
	// different variants while each map stays deterministic
	Seed uint64
}

type cell struct {
	group  *Group
	def    Definition
	filled bool
}

// Mapper is the tile grid with rule-based variant resolution
type Mapper struct {
	cfg   Config
	cells []cell
}

// NewMapper creates an empty grid
func NewMapper(cfg Config) (*Mapper, error) {
	if cfg.Columns <= 0 {
		return nil, core.Configf("tile.columns", "%d is not positive", cfg.Columns)
	}
	if cfg.Rows <= 0 {
		return nil, core.Configf("tile.rows", "%d is not positive", cfg.Rows)
	}
	if cfg.TileSize <= 0 {
		return nil, core.Configf("tile.tile_size", "%v is not positive", cfg.TileSize)
	}
	return &Mapper{
		cfg:   cfg,
		cells: make([]cell, cfg.Columns*cfg.Rows),
	}, nil
}

// Columns returns the grid width in cells
func (m *Mapper) Columns() int { return m.cfg.Columns }

// Rows returns the grid height in cells
func (m *Mapper) Rows() int { return m.cfg.Rows }

// SetTile places a group at (col, row) and resolves its variant. A nil
// group clears the cell. With automapping enabled the 8 immediate
// neighbors are re-resolved as well, since their occupancy pattern has
// changed. Out-of-range coordinates are a configuration error
func (m *Mapper) SetTile(col, row int, g *Group) error {
	if !m.inRange(col, row) {
		return core.Configf("tile", "cell (%d, %d) outside %dx%d grid", col, row, m.cfg.Columns, m.cfg.Rows)
	}

	c := &m.cells[m.index(col, row)]
	if g == nil {
		*c = cell{}
	} else {
		c.group = g
		c.filled = true
		m.resolveCell(col, row)
	}

	if m.cfg.Automapping {
		m.resolveNeighbors(col, row)
	}
	return nil
}

// ClearTile removes the tile at (col, row)
func (m *Mapper) ClearTile(col, row int) error {
	return m.SetTile(col, row, nil)
}

// TileAt returns the resolved definition at (col, row)
func (m *Mapper) TileAt(col, row int) (Definition, bool) {
	if !m.inRange(col, row) {
		return Definition{}, false
	}
	c := m.cells[m.index(col, row)]
	if !c.filled {
		return Definition{}, false
	}
	return c.def, true
}

// Filled reports whether the cell holds a tile
func (m *Mapper) Filled(col, row int) bool {
	return m.inRange(col, row) && m.cells[m.index(col, row)].filled
}

// FilledCount returns the number of occupied cells
func (m *Mapper) FilledCount() int {
	n := 0
	for _, c := range m.cells {
		if c.filled {
			n++
		}
	}
	return n
}

// CellRect returns the world-space rect of a cell, for culling and
// physics placement
func (m *Mapper) CellRect(col, row int) core.Rect {
	s := m.cfg.TileSize
	return core.Rect{X: float64(col) * s, Y: float64(row) * s, W: s, H: s}
}

// Occupancy computes the 8-neighbor occupancy pattern of a cell.
// Cells beyond the grid edge count as empty
func (m *Mapper) Occupancy(col, row int) uint8 {
	var occ uint8
	bit := uint8(1)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if m.Filled(col+dx, row+dy) {
				occ |= bit
			}
			bit <<= 1
		}
	}
	return occ
}

// resolveNeighbors re-resolves the one ring around (col, row).
// Deliberately not transitive: a neighbor's new variant never triggers
// further resolution
func (m *Mapper) resolveNeighbors(col, row int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nc, nr := col+dx, row+dy
			if m.Filled(nc, nr) {
				m.resolveCell(nc, nr)
			}
		}
	}
}

// resolveCell recomputes the variant of a filled cell from its group
// and current neighbor occupancy
func (m *Mapper) resolveCell(col, row int) {
	c := &m.cells[m.index(col, row)]
	if !c.filled || c.group == nil {
		return
	}
	def, ok := c.group.resolve(m.Occupancy(col, row), m.rngFor(col, row))
	if ok {
		c.def = def
	}
}

// rngFor derives a deterministic per-cell source for weighted
// tie-break, so re-resolving the same cell under the same occupancy
// yields the same variant
func (m *Mapper) rngFor(col, row int) *rand.Rand {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], m.cfg.Seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(col))
	binary.LittleEndian.PutUint64(buf[16:], uint64(row))
	return rand.New(rand.NewSource(int64(xxhash.Sum64(buf[:]))))
}

func (m *Mapper) inRange(col, row int) bool {
	return col >= 0 && col < m.cfg.Columns && row >= 0 && row < m.cfg.Rows
}

func (m *Mapper) index(col, row int) int {
	return row*m.cfg.Columns + col
}
