package plotfile

/* particles.go writes the particle sub-tree of a checkpoint bundle. The
layout follows the structured-grid particle convention that downstream
readers expect: a text Header listing the real component names and per-level
grid tables, and one DATA file per level holding each particle's position and
real components as doubles, optionally followed by an id/cpu trailer word. */

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path"

	"github.com/pmclab/mdexport/lib/particles"
)

const (
	// ParticleVersionTag is the first line of every particle Header.
	ParticleVersionTag = "Version_Two_Dot_One_double"

	dataFileName = "DATA_00000"
)

// WriteParticles writes the population c as a sub-tree of an existing bundle
// directory: <dir>/<subdir>/Header plus one <dir>/<subdir>/Level_K/DATA_00000
// per level. The bundle directory must already exist, so this must run after
// WriteMultiLevelPlotfile has created it. realNames names the real component
// slots in slot order. If writeAncillary is set, each particle's record ends
// with an id/cpu trailer word. An empty population still produces a valid,
// empty sub-tree.
func WriteParticles(
	c particles.Container, dir, subdir string,
	writeAncillary bool, realNames []string,
) error {
	base := path.Join(dir, subdir)
	if err := os.MkdirAll(base, 0755); err != nil {
		return fmt.Errorf("The particle directory %s cannot be created: %s.",
			base, err.Error())
	}

	numLevels := c.FinestLevel() + 1

	// Per-level tables of (tile count, tile byte offset), filled in while the
	// DATA files are written and echoed into the Header afterwards.
	counts := make([][]int, numLevels)
	offsets := make([][]int64, numLevels)

	nTotal := 0
	nextID := 1
	for lev := 0; lev < numLevels; lev++ {
		var err error
		counts[lev], offsets[lev], nextID, err =
			writeLevelData(c, base, lev, writeAncillary, nextID)
		if err != nil {
			return err
		}
		for _, n := range counts[lev] {
			nTotal += n
		}
	}

	return writeParticleHeader(
		base, realNames, numLevels, nTotal, nextID, counts, offsets)
}

// writeLevelData writes one level's DATA file and returns the per-tile counts
// and byte offsets along with the next unused particle id.
func writeLevelData(
	c particles.Container, base string, lev int,
	writeAncillary bool, nextID int,
) (counts []int, offsets []int64, nextOut int, err error) {
	levDir := path.Join(base, levelDir(lev))
	if err := os.MkdirAll(levDir, 0755); err != nil {
		return nil, nil, 0, fmt.Errorf(
			"The level directory %s cannot be created: %s.",
			levDir, err.Error())
	}

	fname := path.Join(levDir, dataFileName)
	fp, err := os.Create(fname)
	if err != nil {
		return nil, nil, 0, fmt.Errorf(
			"The particle data file %s cannot be created: %s.",
			fname, err.Error())
	}
	defer fp.Close()

	w := bufio.NewWriter(fp)

	recSize := int64(8 * (3 + particles.NumAttrs))
	if writeAncillary {
		recSize += 8
	}

	tiles := c.Tiles(lev)
	counts = make([]int, len(tiles))
	offsets = make([]int64, len(tiles))

	offset := int64(0)
	rec := make([]float64, 3+particles.NumAttrs)
	for it, tile := range tiles {
		counts[it], offsets[it] = tile.Len(), offset

		for i := 0; i < tile.Len(); i++ {
			pos := tile.Pos(i)
			rec[0], rec[1], rec[2] = pos[0], pos[1], pos[2]
			for comp := 0; comp < particles.NumAttrs; comp++ {
				rec[3+comp] = tile.Attr(i, comp)
			}
			if err := binary.Write(w, order, rec); err != nil {
				return nil, nil, 0, err
			}

			if writeAncillary {
				trailer := [2]uint32{uint32(nextID), 0}
				if err := binary.Write(w, order, trailer); err != nil {
					return nil, nil, 0, err
				}
			}
			nextID++
		}

		offset += recSize * int64(tile.Len())
	}

	return counts, offsets, nextID, w.Flush()
}

// writeParticleHeader writes the particle sub-tree's text Header.
func writeParticleHeader(
	base string, realNames []string, numLevels, nTotal, nextID int,
	counts [][]int, offsets [][]int64,
) error {
	fname := path.Join(base, headerName)
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("The particle header %s cannot be created: %s.",
			fname, err.Error())
	}
	defer fp.Close()

	w := bufio.NewWriter(fp)

	fmt.Fprintf(w, "%s\n", ParticleVersionTag)
	fmt.Fprintf(w, "3\n")
	fmt.Fprintf(w, "%d\n", len(realNames))
	for _, name := range realNames {
		fmt.Fprintf(w, "%s\n", name)
	}
	fmt.Fprintf(w, "0\n")
	fmt.Fprintf(w, "%d\n", numLevels)
	fmt.Fprintf(w, "%d\n", nTotal)
	fmt.Fprintf(w, "%d\n", nextID)

	for lev := 0; lev < numLevels; lev++ {
		fmt.Fprintf(w, "%d\n", len(counts[lev]))
		for it := range counts[lev] {
			fmt.Fprintf(w, "0 %d %d\n", counts[lev][it], offsets[lev][it])
		}
	}

	return w.Flush()
}
