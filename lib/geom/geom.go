/*package geom describes the index-space and physical extents of the levels in
a refinement hierarchy. A hierarchy is an ordered sequence of levels, coarsest
first, each of which covers the full problem domain at its own resolution.
The types here are passive descriptions owned by the simulation driver: the
export code reads them, but never modifies them.
*/
package geom

import (
	"fmt"
)

// IntVect is a three-component index-space vector.
type IntVect [3]int

// Box is an inclusive index-space region spanning Lo to Hi along every axis.
type Box struct {
	Lo, Hi IntVect
}

// NewBox creates the box spanning lo to hi, inclusive on both ends.
func NewBox(lo, hi IntVect) Box {
	return Box{lo, hi}
}

// CubeBox creates the box spanning (0, 0, 0) to (n-1, n-1, n-1).
func CubeBox(n int) Box {
	return Box{IntVect{0, 0, 0}, IntVect{n - 1, n - 1, n - 1}}
}

// Size returns the number of cells along each axis.
func (b Box) Size() IntVect {
	return IntVect{b.Hi[0] - b.Lo[0] + 1, b.Hi[1] - b.Lo[1] + 1,
		b.Hi[2] - b.Lo[2] + 1}
}

// NumCells returns the total number of cells in the box.
func (b Box) NumCells() int {
	sz := b.Size()
	return sz[0] * sz[1] * sz[2]
}

// Refine returns the box covering the same physical region at a resolution
// which is finer by ratio along every axis.
func (b Box) Refine(ratio IntVect) Box {
	out := Box{}
	for d := 0; d < 3; d++ {
		out.Lo[d] = b.Lo[d] * ratio[d]
		out.Hi[d] = (b.Hi[d]+1)*ratio[d] - 1
	}
	return out
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d,%d)-(%d,%d,%d)", b.Lo[0], b.Lo[1], b.Lo[2],
		b.Hi[0], b.Hi[1], b.Hi[2])
}

// Geometry describes one level of the hierarchy: the physical extents of the
// problem domain and the index-space box which covers it at this level's
// resolution.
type Geometry struct {
	ProbLo, ProbHi [3]float64
	Domain         Box
}

// NewGeometry creates a Geometry with the given physical extents and domain
// box.
func NewGeometry(probLo, probHi [3]float64, domain Box) Geometry {
	return Geometry{probLo, probHi, domain}
}

// CellSize returns the physical width of one cell along each axis.
func (g Geometry) CellSize() [3]float64 {
	sz := g.Domain.Size()
	out := [3]float64{}
	for d := 0; d < 3; d++ {
		out[d] = (g.ProbHi[d] - g.ProbLo[d]) / float64(sz[d])
	}
	return out
}

// UnitRatio is the refinement ratio between every pair of adjacent levels.
// The hierarchy is always refined by a factor of two along every axis.
var UnitRatio = IntVect{2, 2, 2}

// RefRatios returns the refinement ratios relating each of numLevels levels to
// the next finer one. The returned sequence has length numLevels - 1, so a
// single-level hierarchy yields an empty sequence.
func RefRatios(numLevels int) []IntVect {
	if numLevels <= 1 {
		return []IntVect{}
	}
	out := make([]IntVect, numLevels-1)
	for i := range out {
		out[i] = UnitRatio
	}
	return out
}

// BuildHierarchy creates the geometries of a numLevels-deep hierarchy over the
// cube [probLo, probHi]^3 whose coarsest level is cells wide along every axis.
// Each finer level refines the previous one by UnitRatio.
func BuildHierarchy(probLo, probHi float64, cells, numLevels int) []Geometry {
	geoms := make([]Geometry, numLevels)
	domain := CubeBox(cells)
	lo := [3]float64{probLo, probLo, probLo}
	hi := [3]float64{probHi, probHi, probHi}
	for lev := 0; lev < numLevels; lev++ {
		geoms[lev] = NewGeometry(lo, hi, domain)
		domain = domain.Refine(UnitRatio)
	}
	return geoms
}
