package plotfile

/* reader.go reads bundles back into memory, for restarts and for downstream
tools that want the data without reimplementing the format. */

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/DataDog/zstd"

	"github.com/pmclab/mdexport/lib"
	"github.com/pmclab/mdexport/lib/geom"
	"github.com/pmclab/mdexport/lib/mesh"
	"github.com/pmclab/mdexport/lib/particles"
)

// Header is the parsed form of a bundle's text Header.
type Header struct {
	VarNames    []string
	Time        float64
	FinestLevel int
	Geoms       []geom.Geometry
	RefRatios   []geom.IntVect
	LevelSteps  []int
	// Boxes gives each level's box layout, and MinMax the corresponding
	// per-box value summaries.
	Boxes  [][]geom.Box
	MinMax [][][2]float64
}

// lineScanner reads whitespace-separated header fields line by line, carrying
// the first error it hits so call sites stay flat.
type lineScanner struct {
	s     *bufio.Scanner
	fname string
	err   error
}

func newLineScanner(fname string, fp *os.File) *lineScanner {
	return &lineScanner{bufio.NewScanner(fp), fname, nil}
}

func (ls *lineScanner) line() string {
	if ls.err != nil {
		return ""
	}
	if !ls.s.Scan() {
		ls.err = fmt.Errorf("The header %s ends too early. It is either "+
			"truncated or not an mdexport header at all.", ls.fname)
		return ""
	}
	return ls.s.Text()
}

func (ls *lineScanner) ints(n int) []int {
	text := ls.line()
	if ls.err != nil {
		return nil
	}
	out := make([]int, n)
	args := make([]interface{}, n)
	for i := range out {
		args[i] = &out[i]
	}
	if _, err := fmt.Sscan(text, args...); err != nil {
		ls.err = fmt.Errorf("The header %s contains the line '%s' where %d "+
			"integers were expected.", ls.fname, text, n)
		return nil
	}
	return out
}

func (ls *lineScanner) floats(n int) []float64 {
	text := ls.line()
	if ls.err != nil {
		return nil
	}
	out := make([]float64, n)
	args := make([]interface{}, n)
	for i := range out {
		args[i] = &out[i]
	}
	if _, err := fmt.Sscan(text, args...); err != nil {
		ls.err = fmt.Errorf("The header %s contains the line '%s' where %d "+
			"floats were expected.", ls.fname, text, n)
		return nil
	}
	return out
}

func (ls *lineScanner) int() int {
	x := ls.ints(1)
	if ls.err != nil {
		return 0
	}
	return x[0]
}

func (ls *lineScanner) float() float64 {
	x := ls.floats(1)
	if ls.err != nil {
		return 0
	}
	return x[0]
}

// ReadHeader parses the text Header of the bundle at dir.
func ReadHeader(dir string) (*Header, error) {
	fname := path.Join(dir, headerName)
	fp, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("The bundle header %s does not exist or "+
			"cannot be accessed.", fname)
	}
	defer fp.Close()

	ls := newLineScanner(fname, fp)

	if tag := ls.line(); ls.err == nil && tag != FormatTag {
		return nil, fmt.Errorf("The file %s starts with '%s', not '%s', so "+
			"it is not an mdexport bundle header.", fname, tag, FormatTag)
	}

	hd := &Header{}

	nComp := ls.int()
	for i := 0; i < nComp && ls.err == nil; i++ {
		hd.VarNames = append(hd.VarNames, ls.line())
	}

	if dim := ls.int(); ls.err == nil && dim != 3 {
		return nil, fmt.Errorf("The bundle %s has %d-dimensional data, but "+
			"only three dimensions are supported.", dir, dim)
	}
	hd.Time = ls.float()
	hd.FinestLevel = ls.int()

	probLo := ls.floats(3)
	probHi := ls.floats(3)

	for lev := 0; lev < hd.FinestLevel && ls.err == nil; lev++ {
		r := ls.ints(3)
		if ls.err == nil {
			hd.RefRatios = append(hd.RefRatios,
				geom.IntVect{r[0], r[1], r[2]})
		}
	}

	for lev := 0; lev <= hd.FinestLevel && ls.err == nil; lev++ {
		head := ls.ints(3)
		if ls.err != nil {
			break
		}
		nBoxes := head[1]
		hd.LevelSteps = append(hd.LevelSteps, head[2])

		d := ls.ints(6)
		ls.floats(3) // cell sizes, derivable from the domain
		if ls.err != nil {
			break
		}
		domain := geom.NewBox(geom.IntVect{d[0], d[1], d[2]},
			geom.IntVect{d[3], d[4], d[5]})
		hd.Geoms = append(hd.Geoms, geom.NewGeometry(
			[3]float64{probLo[0], probLo[1], probLo[2]},
			[3]float64{probHi[0], probHi[1], probHi[2]}, domain))

		boxes := make([]geom.Box, nBoxes)
		for i := 0; i < nBoxes; i++ {
			b := ls.ints(6)
			if ls.err != nil {
				break
			}
			boxes[i] = geom.NewBox(geom.IntVect{b[0], b[1], b[2]},
				geom.IntVect{b[3], b[4], b[5]})
		}
		hd.Boxes = append(hd.Boxes, boxes)

		minMax := make([][2]float64, nBoxes)
		for i := 0; i < nBoxes; i++ {
			mm := ls.floats(2)
			if ls.err != nil {
				break
			}
			minMax[i] = [2]float64{mm[0], mm[1]}
		}
		hd.MinMax = append(hd.MinMax, minMax)

		ls.line() // relative cell path, fixed by construction
	}

	if ls.err != nil {
		return nil, ls.err
	}
	return hd, nil
}

// ReadLevel reads one level's field array back from the bundle at dir.
func (hd *Header) ReadLevel(dir string, lev int) (*mesh.MultiFab, error) {
	fname := path.Join(dir, levelDir(lev), cellFileName)
	fp, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("The cell file %s does not exist or cannot "+
			"be accessed.", fname)
	}
	defer fp.Close()

	var magic, version uint32
	if err := binary.Read(fp, order, &magic); err != nil {
		return nil, err
	}
	if magic != MagicNumber {
		return nil, fmt.Errorf("The file %s begins with %x, not the cell "+
			"file magic number %x, so it is not an mdexport cell file.",
			fname, magic, MagicNumber)
	}
	if err := binary.Read(fp, order, &version); err != nil {
		return nil, err
	}
	if version > Version {
		return nil, fmt.Errorf("The file %s was written with format version "+
			"%d, but this code only understands versions up to %d.",
			fname, version, Version)
	}

	var nBoxes int64
	if err := binary.Read(fp, order, &nBoxes); err != nil {
		return nil, err
	}
	if int(nBoxes) != len(hd.Boxes[lev]) {
		return nil, fmt.Errorf("The file %s contains %d boxes, but the "+
			"bundle header lists %d boxes for level %d.",
			fname, nBoxes, len(hd.Boxes[lev]), lev)
	}

	edges := make([]int64, nBoxes+1)
	if err := binary.Read(fp, order, edges); err != nil {
		return nil, err
	}

	ba := &mesh.BoxArray{Boxes: hd.Boxes[lev]}
	dm := mesh.NewDistributionMapping(ba, 1)
	mf := mesh.NewMultiFab(ba, dm)

	for i := range ba.Boxes {
		block := make([]byte, edges[i+1]-edges[i])
		if _, err := io.ReadFull(fp, block); err != nil {
			return nil, err
		}

		raw := make([]byte, 8*ba.Boxes[i].NumCells())
		raw, err = zstd.Decompress(raw, block)
		if err != nil {
			return nil, fmt.Errorf("Box %d of level %d in %s cannot be "+
				"decompressed: %s.", i, lev, fname, err.Error())
		}
		if len(raw) != 8*ba.Boxes[i].NumCells() {
			return nil, fmt.Errorf("Box %d of level %d in %s decompressed "+
				"to %d bytes, but the box layout requires %d.",
				i, lev, fname, len(raw), 8*ba.Boxes[i].NumCells())
		}

		mf.Data[i] = lib.BytesToFloat64s(raw, order)
	}

	return mf, nil
}

// ParticleHeader is the parsed form of a particle sub-tree's text Header.
type ParticleHeader struct {
	Version         string
	NDim, NReal     int
	RealNames       []string
	NInt, NumLevels int
	NTotal, NextID  int
	// Counts and Offsets give each level's per-tile particle counts and
	// DATA-file byte offsets.
	Counts  [][]int
	Offsets [][]int64
}

// ReadParticleHeader parses <dir>/<subdir>/Header.
func ReadParticleHeader(dir, subdir string) (*ParticleHeader, error) {
	fname := path.Join(dir, subdir, headerName)
	fp, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("The particle header %s does not exist or "+
			"cannot be accessed.", fname)
	}
	defer fp.Close()

	ls := newLineScanner(fname, fp)
	hd := &ParticleHeader{}

	hd.Version = ls.line()
	hd.NDim = ls.int()
	hd.NReal = ls.int()
	for i := 0; i < hd.NReal && ls.err == nil; i++ {
		hd.RealNames = append(hd.RealNames, ls.line())
	}
	hd.NInt = ls.int()
	hd.NumLevels = ls.int()
	hd.NTotal = ls.int()
	hd.NextID = ls.int()

	for lev := 0; lev < hd.NumLevels && ls.err == nil; lev++ {
		nTiles := ls.int()
		counts, offsets := make([]int, nTiles), make([]int64, nTiles)
		for i := 0; i < nTiles && ls.err == nil; i++ {
			row := ls.ints(3)
			if ls.err == nil {
				counts[i], offsets[i] = row[1], int64(row[2])
			}
		}
		hd.Counts = append(hd.Counts, counts)
		hd.Offsets = append(hd.Offsets, offsets)
	}

	if ls.err != nil {
		return nil, ls.err
	}
	return hd, nil
}

// ReadParticles reads a particle sub-tree back into an in-memory population,
// preserving its level and tile structure. The ancillary id/cpu trailer, if
// present, is detected from the record width and skipped.
func ReadParticles(dir, subdir string) (*particles.SliceContainer, *ParticleHeader, error) {
	hd, err := ReadParticleHeader(dir, subdir)
	if err != nil {
		return nil, nil, err
	}
	if hd.NReal != particles.NumAttrs {
		return nil, nil, fmt.Errorf("The particle sub-tree %s/%s stores %d "+
			"real components per particle, but this code expects %d.",
			dir, subdir, hd.NReal, particles.NumAttrs)
	}

	c := particles.NewSliceContainer(hd.NumLevels)

	for lev := 0; lev < hd.NumLevels; lev++ {
		fname := path.Join(dir, subdir, levelDir(lev), dataFileName)
		fp, err := os.Open(fname)
		if err != nil {
			return nil, nil, fmt.Errorf("The particle data file %s does "+
				"not exist or cannot be accessed.", fname)
		}

		err = readLevelData(fp, fname, hd, c, lev)
		fp.Close()
		if err != nil {
			return nil, nil, err
		}
	}

	return c, hd, nil
}

func readLevelData(
	fp *os.File, fname string, hd *ParticleHeader,
	c *particles.SliceContainer, lev int,
) error {
	nLevel := 0
	for _, n := range hd.Counts[lev] {
		nLevel += n
	}

	baseRec := int64(8 * (3 + hd.NReal))
	ancillary := false
	if nLevel > 0 {
		info, err := fp.Stat()
		if err != nil {
			return err
		}
		switch info.Size() {
		case baseRec * int64(nLevel):
		case (baseRec + 8) * int64(nLevel):
			ancillary = true
		default:
			return fmt.Errorf("The particle data file %s holds %d bytes, "+
				"but %d particles need either %d or %d bytes.", fname,
				info.Size(), nLevel, baseRec*int64(nLevel),
				(baseRec+8)*int64(nLevel))
		}
	}

	rec := make([]float64, 3+hd.NReal)
	trailer := [2]uint32{}
	for it := range hd.Counts[lev] {
		if _, err := fp.Seek(hd.Offsets[lev][it], 0); err != nil {
			return err
		}

		tile := c.AddTile(lev)
		for i := 0; i < hd.Counts[lev][it]; i++ {
			if err := binary.Read(fp, order, rec); err != nil {
				return err
			}
			if ancillary {
				if err := binary.Read(fp, order, &trailer); err != nil {
					return err
				}
			}

			attr := [particles.NumAttrs]float64{}
			copy(attr[:], rec[3:])
			tile.Append([3]float64{rec[0], rec[1], rec[2]}, attr)
		}
	}

	return nil
}
