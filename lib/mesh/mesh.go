/*package mesh builds the per-level field arrays which anchor a checkpoint
bundle. A field array is a collection of boxes covering a level's domain, a
mapping from those boxes to processing-unit ranks, and one scalar data block
per box. The checkpoint format requires at least one field dataset to exist,
so the export path fills these arrays with zeros: they carry the domain
decomposition, not simulation state.
*/
package mesh

import (
	"fmt"

	"github.com/pmclab/mdexport/lib/geom"
)

// BoxArray is an ordered set of boxes covering a level's domain.
type BoxArray struct {
	Boxes []geom.Box
}

// NewBoxArray creates a BoxArray containing the single box domain.
func NewBoxArray(domain geom.Box) *BoxArray {
	return &BoxArray{[]geom.Box{domain}}
}

// Chop splits every box in the array into boxes no wider than maxSize cells
// along any axis and returns the result as a new array. The original array is
// not modified. Chop panics if maxSize is not positive, since a box layout
// with non-positive widths cannot be constructed.
func (ba *BoxArray) Chop(maxSize int) *BoxArray {
	if maxSize <= 0 {
		panic(fmt.Sprintf("BoxArray.Chop() called with maxSize = %d.", maxSize))
	}

	out := &BoxArray{[]geom.Box{}}
	for _, b := range ba.Boxes {
		out.Boxes = append(out.Boxes, chopBox(b, maxSize)...)
	}
	return out
}

// chopBox splits b into sub-boxes no wider than maxSize along any axis. The
// sub-boxes are ordered x-fastest, matching the cell ordering inside each box.
func chopBox(b geom.Box, maxSize int) []geom.Box {
	edges := [3][]int{}
	for d := 0; d < 3; d++ {
		for lo := b.Lo[d]; lo <= b.Hi[d]; lo += maxSize {
			edges[d] = append(edges[d], lo)
		}
	}

	out := []geom.Box{}
	for _, kLo := range edges[2] {
		for _, jLo := range edges[1] {
			for _, iLo := range edges[0] {
				sub := geom.Box{
					Lo: geom.IntVect{iLo, jLo, kLo},
					Hi: geom.IntVect{min(iLo+maxSize-1, b.Hi[0]),
						min(jLo+maxSize-1, b.Hi[1]),
						min(kLo+maxSize-1, b.Hi[2])},
				}
				out = append(out, sub)
			}
		}
	}
	return out
}

func min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

// DistributionMapping assigns each box in a BoxArray to a processing-unit
// rank. It is computed from the box layout alone: boxes are dealt out round
// robin in array order, with no external distribution hint.
type DistributionMapping struct {
	Ranks []int
}

// NewDistributionMapping creates the mapping of ba's boxes onto nProcs ranks.
func NewDistributionMapping(ba *BoxArray, nProcs int) *DistributionMapping {
	if nProcs < 1 {
		nProcs = 1
	}
	ranks := make([]int, len(ba.Boxes))
	for i := range ranks {
		ranks[i] = i % nProcs
	}
	return &DistributionMapping{ranks}
}

// MultiFab is a single-component field array: one float64 block per box, with
// zero ghost cells. Data blocks are stored x-fastest within each box.
type MultiFab struct {
	BoxArray *BoxArray
	DistMap  *DistributionMapping
	Data     [][]float64
}

// NewMultiFab creates a MultiFab over the given box array and distribution
// mapping, with every value initialized to zero.
func NewMultiFab(ba *BoxArray, dm *DistributionMapping) *MultiFab {
	data := make([][]float64, len(ba.Boxes))
	for i, b := range ba.Boxes {
		data[i] = make([]float64, b.NumCells())
	}
	return &MultiFab{ba, dm, data}
}

// SetVal sets every value in every box to x.
func (mf *MultiFab) SetVal(x float64) {
	for i := range mf.Data {
		for j := range mf.Data[i] {
			mf.Data[i][j] = x
		}
	}
}

// NumBoxes returns the number of boxes in the array.
func (mf *MultiFab) NumBoxes() int { return len(mf.BoxArray.Boxes) }

// NewZeroField builds the placeholder field array for one level: a single box
// covering the level's full domain, assigned by a mapping derived from that
// layout, filled with zeros.
func NewZeroField(g geom.Geometry, nProcs int) *MultiFab {
	ba := NewBoxArray(g.Domain)
	dm := NewDistributionMapping(ba, nProcs)
	return NewMultiFab(ba, dm)
}
