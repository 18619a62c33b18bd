package vtk

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pmclab/mdexport/lib/particles"
)

// scenarioCloud aggregates 2 particles on level 0 and 1 on level 1.
func scenarioCloud() *particles.Cloud {
	c := particles.NewSliceContainer(2)
	c.Add(0, [3]float64{0.1, 0.2, 0.3},
		[particles.NumAttrs]float64{1, 2, 3, -1, -2, -3})
	c.Add(0, [3]float64{0.4, 0.5, 0.6},
		[particles.NumAttrs]float64{4, 5, 6, -4, -5, -6})
	c.Add(1, [3]float64{0.7, 0.8, 0.9},
		[particles.NumAttrs]float64{7, 8, 9, -7, -8, -9})
	return particles.Aggregate(c)
}

func render(t *testing.T, cl *particles.Cloud) []string {
	buf := &bytes.Buffer{}
	if err := WritePolyData(buf, cl); err != nil {
		t.Fatalf("WritePolyData failed: %s", err.Error())
	}
	return strings.Split(buf.String(), "\n")
}

func TestPolyDataLayout(t *testing.T) {
	lines := render(t, scenarioCloud())

	assert.Equal(t, "# vtk DataFile Version 3.0", lines[0])
	assert.Equal(t, Title, lines[1])
	assert.Equal(t, "ASCII", lines[2])
	assert.Equal(t, "DATASET POLYDATA", lines[3])

	assert.Equal(t, "POINTS 3 double", lines[4])
	assert.Equal(t, "0.1 0.2 0.3", lines[5])
	assert.Equal(t, "0.4 0.5 0.6", lines[6])
	assert.Equal(t, "0.7 0.8 0.9", lines[7])
	assert.Equal(t, "", lines[8])

	assert.Equal(t, "VERTICES 3 6", lines[9])
	assert.Equal(t, "1 0", lines[10])
	assert.Equal(t, "1 1", lines[11])
	assert.Equal(t, "1 2", lines[12])
	assert.Equal(t, "", lines[13])

	assert.Equal(t, "POINT_DATA 3", lines[14])
}

func TestPolyDataScalarBlocks(t *testing.T) {
	cl := scenarioCloud()
	lines := render(t, cl)

	// Six SCALARS blocks follow POINT_DATA, each 6 lines long: two header
	// lines, one value per particle, one separating blank.
	base := 15
	for comp := 0; comp < particles.NumAttrs; comp++ {
		name := particles.AttrNames[comp]
		data := cl.Attr(comp)

		assert.Equal(t, fmt.Sprintf("SCALARS %s double 1", name),
			lines[base], "block %d header", comp)
		assert.Equal(t, "LOOKUP_TABLE default", lines[base+1])
		for i := 0; i < 3; i++ {
			assert.Equal(t, fmt.Sprintf("%g", data[i]), lines[base+2+i],
				"row %d of block %s", i, name)
		}
		assert.Equal(t, "", lines[base+5])

		base += 6
	}

	// Nothing after the last block except the final newline.
	assert.Equal(t, base+1, len(lines))
}

func TestPolyDataRowCorrespondence(t *testing.T) {
	// Row i of POINTS and row i of every SCALARS block must describe the
	// same particle.
	cl := scenarioCloud()
	lines := render(t, cl)

	for i := 0; i < cl.Len(); i++ {
		pos := fmt.Sprintf("%g %g %g", cl.X[i], cl.Y[i], cl.Z[i])
		assert.Equal(t, pos, lines[5+i])

		for comp := 0; comp < particles.NumAttrs; comp++ {
			val := fmt.Sprintf("%g", cl.Attr(comp)[i])
			assert.Equal(t, val, lines[15+6*comp+2+i])
		}
	}
}

func TestPolyDataEmptyCloud(t *testing.T) {
	// The exporter's callers skip empty clouds, but the writer itself still
	// produces a well-formed file for one.
	lines := render(t, &particles.Cloud{})

	assert.Equal(t, "POINTS 0 double", lines[4])
	assert.Equal(t, "VERTICES 0 0", lines[6])
	assert.Equal(t, "POINT_DATA 0", lines[8])
}

func TestPolyDataDeterministic(t *testing.T) {
	a, b := &bytes.Buffer{}, &bytes.Buffer{}
	cl := scenarioCloud()

	if err := WritePolyData(a, cl); err != nil {
		t.Fatalf("WritePolyData failed: %s", err.Error())
	}
	if err := WritePolyData(b, cl); err != nil {
		t.Fatalf("WritePolyData failed: %s", err.Error())
	}

	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("Two writes of the same cloud differ.")
	}
}
