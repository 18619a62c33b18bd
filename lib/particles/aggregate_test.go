package particles

import (
	"testing"
)

func TestAggregateOrderAndLengths(t *testing.T) {
	cl := Aggregate(testPopulation())

	if cl.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d.", cl.Len())
	}

	seqs := [][]float64{cl.X, cl.Y, cl.Z, cl.Vx, cl.Vy, cl.Vz,
		cl.Ax, cl.Ay, cl.Az}
	for i, seq := range seqs {
		if len(seq) != 3 {
			t.Errorf("Sequence %d has length %d, expected every sequence "+
				"to have length 3.", i, len(seq))
		}
	}

	// Rows follow (level ascending, tile order, in-tile order).
	wantX := []float64{0.1, 0.4, 0.7}
	wantVx := []float64{1, 4, 7}
	wantAz := []float64{-3, -6, -9}
	for i := 0; i < 3; i++ {
		if cl.X[i] != wantX[i] {
			t.Errorf("Row %d has x = %g, expected %g.", i, cl.X[i], wantX[i])
		}
		if cl.Vx[i] != wantVx[i] {
			t.Errorf("Row %d has vx = %g, expected %g.",
				i, cl.Vx[i], wantVx[i])
		}
		if cl.Az[i] != wantAz[i] {
			t.Errorf("Row %d has az = %g, expected %g.",
				i, cl.Az[i], wantAz[i])
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	cl := Aggregate(NewSliceContainer(2))
	if cl.Len() != 0 {
		t.Errorf("Expected an empty population to aggregate to 0 rows, "+
			"got %d.", cl.Len())
	}
}

func TestAggregateMatchesTotalCount(t *testing.T) {
	c := NewSliceContainer(3)
	// Uneven tile shapes across levels.
	for lev, counts := range [][]int{{3, 1}, {}, {2}} {
		for _, n := range counts {
			tile := c.AddTile(lev)
			for i := 0; i < n; i++ {
				tile.Append([3]float64{float64(lev), float64(i), 0},
					[NumAttrs]float64{})
			}
		}
	}

	cl := Aggregate(c)
	if cl.Len() != TotalCount(c) {
		t.Errorf("Aggregate produced %d rows, but TotalCount is %d.",
			cl.Len(), TotalCount(c))
	}
	if cl.Len() != 6 {
		t.Errorf("Expected 6 rows, got %d.", cl.Len())
	}
}

func TestCloudBounds(t *testing.T) {
	cl := Aggregate(testPopulation())
	lo, hi := cl.Bounds()

	if lo != [3]float64{0.1, 0.2, 0.3} {
		t.Errorf("Expected lower bounds {0.1 0.2 0.3}, got %g.", lo)
	}
	if hi != [3]float64{0.7, 0.8, 0.9} {
		t.Errorf("Expected upper bounds {0.7 0.8 0.9}, got %g.", hi)
	}
}

func TestCloudAttr(t *testing.T) {
	cl := Aggregate(testPopulation())

	tests := []struct {
		comp int
		seq  []float64
	}{
		{Vx, cl.Vx}, {Vy, cl.Vy}, {Vz, cl.Vz},
		{Ax, cl.Ax}, {Ay, cl.Ay}, {Az, cl.Az},
	}
	for i := range tests {
		got := cl.Attr(tests[i].comp)
		if len(got) != len(tests[i].seq) {
			t.Errorf("%d) Attr(%d) has length %d, expected %d.",
				i, tests[i].comp, len(got), len(tests[i].seq))
			continue
		}
		for j := range got {
			if got[j] != tests[i].seq[j] {
				t.Errorf("%d) Attr(%d)[%d] = %g, expected %g.",
					i, tests[i].comp, j, got[j], tests[i].seq[j])
			}
		}
	}
}
