/*package particles defines the read-only surface the export code needs from a
particle container, along with an in-memory container used by the driver and
by tests. A container owns particles grouped by refinement level and, within
each level, by tile. The export code walks this structure and copies data out
of it; it never moves, drops, or re-sorts particles.
*/
package particles

// Indices of the real-valued attribute slots carried by every particle. The
// attribute vector is addressed by these constants, never by name.
const (
	Vx = iota
	Vy
	Vz
	Ax
	Ay
	Az
	NumAttrs
)

// AttrNames gives the conventional name of each attribute slot, in slot order.
// These are the component names written into checkpoint and point-cloud files.
var AttrNames = [NumAttrs]string{"vx", "vy", "vz", "ax", "ay", "az"}

// Tile is a read-only view of the particles in one spatial tile of one level.
type Tile interface {
	// Len returns the number of particles in the tile.
	Len() int
	// Pos returns the position of particle i.
	Pos(i int) [3]float64
	// Attr returns attribute slot comp of particle i.
	Attr(i, comp int) float64
}

// Container is a read-only view of a particle population. Tiles(lev) must
// yield tiles in the container's own storage order each time it is called:
// the export code imposes no ordering of its own, so a stable order here is
// what makes repeated exports byte-identical.
type Container interface {
	// FinestLevel returns the index of the finest populated level.
	FinestLevel() int
	// Tiles returns the tiles of a level owned by the calling processing
	// unit, in storage order.
	Tiles(level int) []Tile
}

// TotalCount returns the number of particles in c across all levels and tiles.
func TotalCount(c Container) int {
	n := 0
	for lev := 0; lev <= c.FinestLevel(); lev++ {
		for _, tile := range c.Tiles(lev) {
			n += tile.Len()
		}
	}
	return n
}

// SliceTile implements Tile on top of plain slices.
type SliceTile struct {
	X    [][3]float64
	Attrs [][NumAttrs]float64
}

func (t *SliceTile) Len() int              { return len(t.X) }
func (t *SliceTile) Pos(i int) [3]float64  { return t.X[i] }
func (t *SliceTile) Attr(i, comp int) float64 { return t.Attrs[i][comp] }

// Append adds one particle to the tile.
func (t *SliceTile) Append(pos [3]float64, attr [NumAttrs]float64) {
	t.X = append(t.X, pos)
	t.Attrs = append(t.Attrs, attr)
}

// SliceContainer implements Container on top of plain slices. The driver and
// the checkpoint reader build populations with it; simulations with their own
// storage implement Container directly.
type SliceContainer struct {
	levels [][]*SliceTile
}

// Type assertions
var (
	_ Tile      = &SliceTile{}
	_ Container = &SliceContainer{}
)

// NewSliceContainer creates an empty container with numLevels levels.
func NewSliceContainer(numLevels int) *SliceContainer {
	if numLevels < 1 {
		numLevels = 1
	}
	return &SliceContainer{make([][]*SliceTile, numLevels)}
}

func (c *SliceContainer) FinestLevel() int { return len(c.levels) - 1 }

func (c *SliceContainer) Tiles(level int) []Tile {
	out := make([]Tile, len(c.levels[level]))
	for i, t := range c.levels[level] {
		out[i] = t
	}
	return out
}

// AddTile appends a tile to a level and returns it.
func (c *SliceContainer) AddTile(level int) *SliceTile {
	t := &SliceTile{}
	c.levels[level] = append(c.levels[level], t)
	return t
}

// Add appends one particle to the last tile of a level, creating the tile if
// the level has none yet.
func (c *SliceContainer) Add(level int, pos [3]float64, attr [NumAttrs]float64) {
	if len(c.levels[level]) == 0 {
		c.AddTile(level)
	}
	tiles := c.levels[level]
	tiles[len(tiles)-1].Append(pos, attr)
}
