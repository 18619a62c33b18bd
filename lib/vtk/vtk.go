/*package vtk serializes aggregated particle clouds as legacy-ASCII VTK
polygon-data files. The layout is fixed: a three-line format header, a POINTS
block, a VERTICES block declaring each point as its own one-point cell, and a
POINT_DATA section with one single-component double SCALARS block per
attribute slot. Row i of every block describes the same particle, so
visualization tools can join positions and attributes by line index alone.
*/
package vtk

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pmclab/mdexport/lib/particles"
)

const (
	// Title is the dataset title recorded on the second header line.
	Title = "MD particles"
)

// WritePolyData writes cl to w in legacy-ASCII polygon-data format.
func WritePolyData(w io.Writer, cl *particles.Cloud) error {
	bw := bufio.NewWriter(w)
	n := cl.Len()

	fmt.Fprintf(bw, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(bw, "%s\n", Title)
	fmt.Fprintf(bw, "ASCII\n")
	fmt.Fprintf(bw, "DATASET POLYDATA\n")

	fmt.Fprintf(bw, "POINTS %d double\n", n)
	for i := 0; i < n; i++ {
		fmt.Fprintf(bw, "%g %g %g\n", cl.X[i], cl.Y[i], cl.Z[i])
	}
	fmt.Fprintf(bw, "\n")

	// Each point is its own degenerate one-point cell, so the index list
	// holds two entries per particle: a length word and the point index.
	fmt.Fprintf(bw, "VERTICES %d %d\n", n, 2*n)
	for i := 0; i < n; i++ {
		fmt.Fprintf(bw, "1 %d\n", i)
	}
	fmt.Fprintf(bw, "\n")

	fmt.Fprintf(bw, "POINT_DATA %d\n", n)
	for comp := 0; comp < particles.NumAttrs; comp++ {
		writeScalars(bw, particles.AttrNames[comp], cl.Attr(comp))
	}

	return bw.Flush()
}

// writeScalars writes one single-component double SCALARS block.
func writeScalars(w io.Writer, name string, data []float64) {
	fmt.Fprintf(w, "SCALARS %s double 1\n", name)
	fmt.Fprintf(w, "LOOKUP_TABLE default\n")
	for i := range data {
		fmt.Fprintf(w, "%g\n", data[i])
	}
	fmt.Fprintf(w, "\n")
}
