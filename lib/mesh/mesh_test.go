package mesh

import (
	"testing"

	"github.com/pmclab/mdexport/lib/geom"
)

func TestChop(t *testing.T) {
	tests := []struct {
		domain  geom.Box
		maxSize int
		nBoxes  int
	}{
		{geom.CubeBox(4), 4, 1},
		{geom.CubeBox(4), 8, 1},
		{geom.CubeBox(4), 2, 8},
		{geom.CubeBox(5), 2, 27},
		{geom.CubeBox(1), 1, 1},
	}

	for i := range tests {
		ba := NewBoxArray(tests[i].domain).Chop(tests[i].maxSize)

		if len(ba.Boxes) != tests[i].nBoxes {
			t.Errorf("%d) Expected chopping %s with maxSize %d to give %d "+
				"boxes, got %d.", i, tests[i].domain, tests[i].maxSize,
				tests[i].nBoxes, len(ba.Boxes))
			continue
		}

		cells := 0
		for _, b := range ba.Boxes {
			sz := b.Size()
			for d := 0; d < 3; d++ {
				if sz[d] > tests[i].maxSize {
					t.Errorf("%d) Box %s is wider than maxSize %d along "+
						"axis %d.", i, b, tests[i].maxSize, d)
				}
			}
			cells += b.NumCells()
		}
		if cells != tests[i].domain.NumCells() {
			t.Errorf("%d) Chopped boxes cover %d cells, but the domain has "+
				"%d.", i, cells, tests[i].domain.NumCells())
		}
	}
}

func TestDistributionMapping(t *testing.T) {
	ba := NewBoxArray(geom.CubeBox(8)).Chop(2)
	dm := NewDistributionMapping(ba, 3)

	if len(dm.Ranks) != len(ba.Boxes) {
		t.Fatalf("Expected one rank per box, got %d ranks for %d boxes.",
			len(dm.Ranks), len(ba.Boxes))
	}
	for i, r := range dm.Ranks {
		if r != i%3 {
			t.Errorf("Box %d assigned to rank %d, expected round-robin "+
				"rank %d.", i, r, i%3)
		}
	}
}

func TestNewZeroField(t *testing.T) {
	g := geom.NewGeometry([3]float64{0, 0, 0}, [3]float64{1, 1, 1},
		geom.CubeBox(4))
	mf := NewZeroField(g, 1)

	if mf.NumBoxes() != 1 {
		t.Fatalf("Expected a single box covering the domain, got %d boxes.",
			mf.NumBoxes())
	}
	if mf.BoxArray.Boxes[0] != g.Domain {
		t.Errorf("Expected the box to equal the domain %s, got %s.",
			g.Domain, mf.BoxArray.Boxes[0])
	}
	if len(mf.Data[0]) != 64 {
		t.Fatalf("Expected 64 values for a 4^3 domain, got %d.",
			len(mf.Data[0]))
	}
	for j, x := range mf.Data[0] {
		if x != 0 {
			t.Errorf("Value %d is %g, expected every value to be zero.",
				j, x)
			break
		}
	}
}

func TestSetVal(t *testing.T) {
	g := geom.NewGeometry([3]float64{0, 0, 0}, [3]float64{1, 1, 1},
		geom.CubeBox(2))
	mf := NewZeroField(g, 1)
	mf.SetVal(2.5)

	for i := range mf.Data {
		for j := range mf.Data[i] {
			if mf.Data[i][j] != 2.5 {
				t.Fatalf("Box %d value %d is %g after SetVal(2.5).",
					i, j, mf.Data[i][j])
			}
		}
	}
}
