package comm

import (
	"testing"

	"github.com/pmclab/mdexport/lib/particles"
)

func TestSerial(t *testing.T) {
	cm := Serial{}

	if cm.Rank() != 0 {
		t.Errorf("Expected rank 0, got %d.", cm.Rank())
	}
	if cm.Size() != 1 {
		t.Errorf("Expected size 1, got %d.", cm.Size())
	}

	x := []float64{1, 2, 3}
	g, err := cm.GatherFloat64s(x, 0)
	if err != nil {
		t.Fatalf("GatherFloat64s failed: %s", err.Error())
	}
	if len(g) != 3 || g[0] != 1 || g[1] != 2 || g[2] != 3 {
		t.Errorf("Expected the gather of one unit to equal its input, "+
			"got %g.", g)
	}

	// The gather must be a copy, not an alias.
	g[0] = -1
	if x[0] != 1 {
		t.Errorf("GatherFloat64s aliased its input.")
	}

	n, err := cm.GatherInts([]int{5}, 0)
	if err != nil {
		t.Fatalf("GatherInts failed: %s", err.Error())
	}
	if len(n) != 1 || n[0] != 5 {
		t.Errorf("Expected GatherInts to return [5], got %d.", n)
	}
}

func TestGatherCloud(t *testing.T) {
	c := particles.NewSliceContainer(1)
	c.Add(0, [3]float64{1, 2, 3}, [particles.NumAttrs]float64{4, 5, 6, 7, 8, 9})
	c.Add(0, [3]float64{10, 20, 30},
		[particles.NumAttrs]float64{40, 50, 60, 70, 80, 90})
	cl := particles.Aggregate(c)

	global, err := GatherCloud(Serial{}, cl, 0)
	if err != nil {
		t.Fatalf("GatherCloud failed: %s", err.Error())
	}
	if global == nil {
		t.Fatal("GatherCloud returned nil on the root rank.")
	}

	if global.Len() != cl.Len() {
		t.Fatalf("Gathered cloud has %d rows, expected %d.",
			global.Len(), cl.Len())
	}
	for i := 0; i < cl.Len(); i++ {
		if global.X[i] != cl.X[i] || global.Vz[i] != cl.Vz[i] ||
			global.Az[i] != cl.Az[i] {
			t.Errorf("Row %d changed in the gather.", i)
		}
	}
}
