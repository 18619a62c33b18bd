/*package plotfile writes and reads mdexport checkpoint bundles. A bundle is a
directory tree: a text Header describing the hierarchy, one Level_K/ directory
of compressed field data per refinement level, and optionally a particle
sub-tree (see particles.go). The text side is human-readable and fully
self-describing; the binary side carries a magic number, a version, and a
block-edge table so readers can navigate it without trusting anything else.
*/
package plotfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path"

	"github.com/DataDog/zstd"
	"gonum.org/v1/gonum/floats"

	"github.com/pmclab/mdexport/lib"
	"github.com/pmclab/mdexport/lib/geom"
	"github.com/pmclab/mdexport/lib/mesh"
)

const (
	// MagicNumber is an arbitrary number at the start of every binary cell
	// file, which should help identify when a reader is pointed at something
	// else by accident.
	MagicNumber = 0x6d706c74
	Version     = 1

	// FormatTag is the first line of every bundle Header.
	FormatTag = "mdexport-Plotfile-V1"

	headerName   = "Header"
	cellFileName = "Cell_D_00000"
)

var order = binary.ByteOrder(binary.LittleEndian)

// levelDir returns the name of a level's directory within the bundle.
func levelDir(lev int) string { return fmt.Sprintf("Level_%d", lev) }

// WriteMultiLevelPlotfile writes a bundle to the directory dir, creating it if
// needed and overwriting any previous bundle with the same name. One field
// array is written per level. varnames names the field's components,
// levelSteps gives the step index recorded for each level, and refRatios
// relates each level to the next finer one. The caller derives levelSteps and
// refRatios from the level count, so their lengths (len(mfs) and len(mfs)-1)
// hold by construction.
func WriteMultiLevelPlotfile(
	dir string, mfs []*mesh.MultiFab, varnames []string,
	geoms []geom.Geometry, time float64, levelSteps []int,
	refRatios []geom.IntVect,
) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("The previous bundle at %s cannot be removed: %s.",
			dir, err.Error())
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("The bundle directory %s cannot be created: %s.",
			dir, err.Error())
	}

	for lev := range mfs {
		if err := writeLevelCells(dir, lev, mfs[lev]); err != nil {
			return err
		}
	}

	return writeHeader(dir, mfs, varnames, geoms, time, levelSteps, refRatios)
}

// writeHeader writes the bundle's text Header.
func writeHeader(
	dir string, mfs []*mesh.MultiFab, varnames []string,
	geoms []geom.Geometry, time float64, levelSteps []int,
	refRatios []geom.IntVect,
) error {
	fname := path.Join(dir, headerName)
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("The bundle header %s cannot be created: %s.",
			fname, err.Error())
	}
	defer fp.Close()

	w := bufio.NewWriter(fp)

	fmt.Fprintf(w, "%s\n", FormatTag)
	fmt.Fprintf(w, "%d\n", len(varnames))
	for _, name := range varnames {
		fmt.Fprintf(w, "%s\n", name)
	}
	fmt.Fprintf(w, "3\n")
	fmt.Fprintf(w, "%g\n", time)
	fmt.Fprintf(w, "%d\n", len(mfs)-1)

	lo, hi := geoms[0].ProbLo, geoms[0].ProbHi
	fmt.Fprintf(w, "%g %g %g\n", lo[0], lo[1], lo[2])
	fmt.Fprintf(w, "%g %g %g\n", hi[0], hi[1], hi[2])
	for _, r := range refRatios {
		fmt.Fprintf(w, "%d %d %d\n", r[0], r[1], r[2])
	}

	for lev, mf := range mfs {
		d := geoms[lev].Domain
		dx := geoms[lev].CellSize()

		fmt.Fprintf(w, "%d %d %d\n", lev, mf.NumBoxes(), levelSteps[lev])
		fmt.Fprintf(w, "%d %d %d %d %d %d\n", d.Lo[0], d.Lo[1], d.Lo[2],
			d.Hi[0], d.Hi[1], d.Hi[2])
		fmt.Fprintf(w, "%g %g %g\n", dx[0], dx[1], dx[2])

		for _, b := range mf.BoxArray.Boxes {
			fmt.Fprintf(w, "%d %d %d %d %d %d\n", b.Lo[0], b.Lo[1], b.Lo[2],
				b.Hi[0], b.Hi[1], b.Hi[2])
		}
		for i := range mf.Data {
			fmt.Fprintf(w, "%g %g\n",
				floats.Min(mf.Data[i]), floats.Max(mf.Data[i]))
		}

		fmt.Fprintf(w, "%s/Cell\n", levelDir(lev))
	}

	return w.Flush()
}

// writeLevelCells writes one level's field data: a magic number, a version, a
// block-edge table, and one compressed block per box.
func writeLevelCells(dir string, lev int, mf *mesh.MultiFab) error {
	levDir := path.Join(dir, levelDir(lev))
	if err := os.MkdirAll(levDir, 0755); err != nil {
		return fmt.Errorf("The level directory %s cannot be created: %s.",
			levDir, err.Error())
	}

	fname := path.Join(levDir, cellFileName)
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("The cell file %s cannot be created: %s.",
			fname, err.Error())
	}
	defer fp.Close()

	blocks := make([][]byte, len(mf.Data))
	edges := make([]int64, len(mf.Data)+1)
	for i := range mf.Data {
		raw := lib.Float64sToBytes(mf.Data[i], order)
		blocks[i], err = zstd.CompressLevel(nil, raw, 1)
		if err != nil {
			return fmt.Errorf("Box %d of level %d cannot be compressed: %s.",
				i, lev, err.Error())
		}
		edges[i+1] = edges[i] + int64(len(blocks[i]))
	}

	if err := binary.Write(fp, order, uint32(MagicNumber)); err != nil {
		return err
	}
	if err := binary.Write(fp, order, uint32(Version)); err != nil {
		return err
	}
	if err := binary.Write(fp, order, int64(len(blocks))); err != nil {
		return err
	}
	if err := binary.Write(fp, order, edges); err != nil {
		return err
	}

	for i := range blocks {
		if _, err := fp.Write(blocks[i]); err != nil {
			return err
		}
	}

	return nil
}
