/*mdexport is a demo driver around the export packages in lib/. It synthesizes
a small deterministic particle population over a refinement hierarchy and
writes checkpoint bundles and point-cloud files for it, which is useful for
eyeballing output in visualization tools and for exercising the full pipeline
outside a real simulation. Real simulations call lib/export directly with
their own geometry and particle container.
*/
package main

import (
	"fmt"
	"os"

	"github.com/pmclab/mdexport/lib"
	"github.com/pmclab/mdexport/lib/comm"
	g_error "github.com/pmclab/mdexport/lib/error"
	"github.com/pmclab/mdexport/lib/export"
	"github.com/pmclab/mdexport/lib/geom"
	"github.com/pmclab/mdexport/lib/particles"
)

func main() {
	if len(os.Args) < 2 {
		g_error.External("mdexport must be run as 'mdexport <mode> " +
			"[config file]', where <mode> is 'help', 'check', or 'run'.")
	}
	mode := os.Args[1]

	switch mode {
	case "help":
		PrintHelp()
	case "check":
		Check(configArg())
	case "run":
		Run(configArg())
	default:
		g_error.External("You attempted to run mdexport in the mode '%s', "+
			"but the only valid modes are 'help', 'check', and 'run'.", mode)
	}
}

func configArg() string {
	if len(os.Args) < 3 {
		g_error.External("The '%s' mode needs a config file: 'mdexport %s " +
			"<config file>'.", os.Args[1], os.Args[1])
	}
	return os.Args[2]
}

// PrintHelp runs mdexport's "help" mode.
func PrintHelp() {
	fmt.Println(`mdexport writes checkpoint bundles and point-cloud files for
a synthetic particle-in-mesh run.

Usage:
  mdexport help
  mdexport check <config file>
  mdexport run <config file>

Example config file:

` + lib.ExampleConfigFile)
}

// Check runs mdexport's "check" mode, which tests for errors in the config
// file without writing anything.
func Check(configFile string) {
	cfg := parseAndValidate(configFile)

	info, err := os.Stat(cfg.OutputDir)
	if err != nil || !info.IsDir() {
		g_error.External("OutputDir was set to %s, but that is not an "+
			"existing directory.", cfg.OutputDir)
	}

	fmt.Println("No errors detected.")
}

// Run runs mdexport's "run" mode: a step loop over a synthetic population,
// exporting on the configured intervals.
func Run(configFile string) {
	cfg := parseAndValidate(configFile)

	geoms := geom.BuildHierarchy(0, cfg.BoxWidth, cfg.Cells, cfg.Levels)
	cm := comm.Serial{}

	for step := 0; step < cfg.Steps; step++ {
		c := buildPopulation(cfg, step)

		if cfg.PlotEvery > 0 && step%cfg.PlotEvery == 0 {
			err := export.WritePlotFile(cm, c, geoms, cfg.OutputDir, step)
			if err != nil {
				g_error.External("Step %d: the checkpoint export failed: "+
					"%s", step, err.Error())
			}
		}
		if cfg.VTKEvery > 0 && step%cfg.VTKEvery == 0 {
			err := export.WriteParticlesVTK(c, cfg.OutputDir, step)
			if err != nil {
				g_error.External("Step %d: the point-cloud export failed: "+
					"%s", step, err.Error())
			}
		}
	}
}

func parseAndValidate(configFile string) *lib.Config {
	cfg, err := lib.ParseConfigFile(configFile)
	if err != nil {
		g_error.External("%s", err.Error())
	}
	if err := cfg.Validate(); err != nil {
		g_error.External("%s", err.Error())
	}
	return cfg
}

// buildPopulation lays a LatticeWidth^3 lattice of particles over every
// level, one tile per lattice plane, with attributes that are simple
// deterministic functions of the lattice index and the step. Repeated calls
// with the same arguments build identical populations, which is what makes
// re-exported files byte-identical.
func buildPopulation(cfg *lib.Config, step int) *particles.SliceContainer {
	c := particles.NewSliceContainer(cfg.Levels)
	w := cfg.LatticeWidth
	if w == 0 {
		return c
	}

	for lev := 0; lev < cfg.Levels; lev++ {
		// Shift each level's lattice so levels don't stack exactly.
		shift := cfg.BoxWidth * float64(lev+1) / float64(2*cfg.Levels*(w+1))

		for k := 0; k < w; k++ {
			tile := c.AddTile(lev)
			for j := 0; j < w; j++ {
				for i := 0; i < w; i++ {
					spacing := cfg.BoxWidth / float64(w+1)
					pos := [3]float64{
						spacing*float64(i+1) + shift,
						spacing*float64(j+1) + shift,
						spacing*float64(k+1) + shift,
					}

					vScale := 0.1 * float64(step+1)
					attr := [particles.NumAttrs]float64{}
					attr[particles.Vx] = vScale * pos[0]
					attr[particles.Vy] = vScale * pos[1]
					attr[particles.Vz] = vScale * pos[2]
					attr[particles.Ax] = -pos[0]
					attr[particles.Ay] = -pos[1]
					attr[particles.Az] = -pos[2]

					tile.Append(pos, attr)
				}
			}
		}
	}

	return c
}
