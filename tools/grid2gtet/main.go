/*grid2gtet converts the level-0 field of an mdexport checkpoint bundle into a
gotetra density grid, so the bundle can be fed into gotetra's render pipeline.
Usage:

  grid2gtet <bundle dir> <output file>

The field values are transcribed as-is. Since checkpoint bundles carry a
placeholder field, this is mostly useful for checking that downstream tools
agree with mdexport about the domain geometry.
*/
package main

import (
	"os"

	gtetio "github.com/phil-mansfield/gotetra/render/io"

	g_error "github.com/pmclab/mdexport/lib/error"
	"github.com/pmclab/mdexport/lib/export"
	"github.com/pmclab/mdexport/lib/plotfile"
)

func main() {
	if len(os.Args) != 3 {
		g_error.External("grid2gtet must be run as 'grid2gtet <bundle dir> " +
			"<output file>'.")
	}
	dir, outFname := os.Args[1], os.Args[2]

	hd, err := plotfile.ReadHeader(dir)
	if err != nil {
		g_error.External("%s", err.Error())
	}
	mf, err := hd.ReadLevel(dir, 0)
	if err != nil {
		g_error.External("%s", err.Error())
	}

	// Flatten the per-box blocks into one dense x-fastest grid over the
	// level-0 domain.
	domain := hd.Geoms[0].Domain
	sz := domain.Size()
	vals := make([]float32, domain.NumCells())
	for bi, b := range mf.BoxArray.Boxes {
		bSz := b.Size()
		for idx, x := range mf.Data[bi] {
			i := b.Lo[0] - domain.Lo[0] + idx%bSz[0]
			j := b.Lo[1] - domain.Lo[1] + (idx/bSz[0])%bSz[1]
			k := b.Lo[2] - domain.Lo[2] + idx/(bSz[0]*bSz[1])
			vals[i+sz[0]*(j+sz[1]*k)] = float32(x)
		}
	}

	nPart, err := particleCount(dir)
	if err != nil {
		g_error.External("%s", err.Error())
	}

	width := hd.Geoms[0].ProbHi[0] - hd.Geoms[0].ProbLo[0]
	cellWidth := hd.Geoms[0].CellSize()[0]

	cosmo := gtetio.NewCosmoInfo(70.0, 0.27, 0.73, 0.0, width)
	render := gtetio.NewRenderInfo(nPart, domain.NumCells(), 1, "X")
	loc := gtetio.NewLocationInfo(
		[3]int{domain.Lo[0], domain.Lo[1], domain.Lo[2]},
		[3]int{sz[0], sz[1], sz[2]}, cellWidth)

	fp, err := os.Create(outFname)
	if err != nil {
		g_error.External("The output file %s cannot be created: %s.",
			outFname, err.Error())
	}
	defer fp.Close()

	gtetio.WriteDensity(vals, cosmo, render, loc, fp)
}

// particleCount returns the bundle's total particle count. gotetra's render
// info wants a nonzero count, so an empty population is reported as one.
func particleCount(dir string) (int, error) {
	phd, err := plotfile.ReadParticleHeader(dir, export.ParticleSubdir)
	if err != nil {
		return 0, err
	}
	if phd.NTotal < 1 {
		return 1, nil
	}
	return phd.NTotal, nil
}
