/*package export composes the two export pipelines a simulation driver calls
after a time step: WritePlotFile persists a checkpoint bundle (placeholder
field arrays plus the full particle population), and WriteParticlesVTK writes
the calling unit's particles as a point-cloud file for visualization. The two
pipelines share no state and can run in either order or be skipped
independently.

Everything here is a pure function of (geometry, population, step): the
processing-unit layout is passed in as a comm.Comm rather than recovered from
ambient context. Failures never panic across this boundary. They are logged
as single-line notices and returned, and the driver decides whether a failed
export should abort the run.
*/
package export

import (
	"fmt"
	"os"
	"path"

	"github.com/pmclab/mdexport/lib"
	"github.com/pmclab/mdexport/lib/comm"
	"github.com/pmclab/mdexport/lib/geom"
	"github.com/pmclab/mdexport/lib/mesh"
	"github.com/pmclab/mdexport/lib/particles"
	"github.com/pmclab/mdexport/lib/plotfile"
	"github.com/pmclab/mdexport/lib/vtk"
)

const (
	// PlotPrefix and VTKPrefix tag the two output artifacts; step indices are
	// appended as StepDigits-wide zero-padded decimals.
	PlotPrefix = "plt"
	VTKPrefix  = "particles_"
	VTKSuffix  = ".vtk"
	StepDigits = 5

	// ParticleSubdir is the label of the particle sub-tree inside a bundle.
	ParticleSubdir = "particle0"

	// FieldName names the single placeholder field component. The bundle
	// format requires a field dataset to exist, so every bundle carries one
	// zero-filled component under this name.
	FieldName = "dummy"
)

// PlotFileName returns the bundle directory name for a step, e.g. "plt00007".
func PlotFileName(step int) string {
	return lib.Concatenate(PlotPrefix, step, StepDigits)
}

// VTKFileName returns the point-cloud file name for a step, e.g.
// "particles_00007.vtk".
func VTKFileName(step int) string {
	return lib.Concatenate(VTKPrefix, step, StepDigits) + VTKSuffix
}

// WritePlotFile writes the checkpoint bundle for one step into outDir: a
// zero-filled single-component field array per level, the bundle header and
// level tree, and the particle population as a particle0 sub-tree. An empty
// geometry sequence makes the whole call a no-op; that is the single early
// exit and is not an error. An existing bundle with the same step index is
// overwritten.
func WritePlotFile(
	cm comm.Comm, c particles.Container, geoms []geom.Geometry,
	outDir string, step int,
) error {
	numLevels := len(geoms)
	if numLevels == 0 {
		return nil
	}

	varnames := []string{FieldName}

	levelSteps := make([]int, numLevels)
	mfs := make([]*mesh.MultiFab, numLevels)
	for lev := 0; lev < numLevels; lev++ {
		levelSteps[lev] = step
		mfs[lev] = mesh.NewZeroField(geoms[lev], cm.Size())
	}

	dir := path.Join(outDir, PlotFileName(step))

	err := plotfile.WriteMultiLevelPlotfile(
		dir, mfs, varnames, geoms, 0.0, levelSteps, geom.RefRatios(numLevels))
	if err != nil {
		fmt.Printf("WritePlotFile: %s\n", err.Error())
		return err
	}

	// The particle sub-tree nests inside the bundle, so this has to run after
	// the bundle directory exists.
	err = plotfile.WriteParticles(
		c, dir, ParticleSubdir, true, particles.AttrNames[:])
	if err != nil {
		fmt.Printf("WritePlotFile: %s\n", err.Error())
		return err
	}

	return nil
}

// WriteParticlesVTK aggregates the calling unit's particles and writes them
// as a point-cloud file in outDir. A population with no particles skips the
// export with a notice and creates no file. The output file is opened before
// any data is formatted into it, so an open failure leaves nothing behind
// that looks like a valid export.
func WriteParticlesVTK(c particles.Container, outDir string, step int) error {
	cl := particles.Aggregate(c)
	if cl.Len() == 0 {
		fmt.Printf("WriteParticlesVTK: no particles to write.\n")
		return nil
	}

	fname := path.Join(outDir, VTKFileName(step))
	fp, err := os.Create(fname)
	if err != nil {
		fmt.Printf("WriteParticlesVTK: could not open file %s\n", fname)
		return err
	}
	defer fp.Close()

	if err := vtk.WritePolyData(fp, cl); err != nil {
		fmt.Printf("WriteParticlesVTK: could not write %s: %s\n",
			fname, err.Error())
		return err
	}

	fmt.Printf("WriteParticlesVTK: wrote %d particles to %s\n",
		cl.Len(), fname)
	return nil
}
