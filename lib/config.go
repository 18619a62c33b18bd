package lib

/* config.go handles the driver's config files. The export packages themselves
take geometry, population, and step index as explicit parameters and have no
configuration surface of their own: everything here belongs to the demo driver
wrapped around them. */

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

const ExampleConfigFile = `[Run]

#######################
# Required Parameters #
#######################

# Directory which output bundles and point-cloud files will be written to.
# It must already exist.
OutputDir = path/to/output/dir

#######################
# Optional Parameters #
#######################

# Number of refinement levels in the hierarchy. Each level refines the
# previous one by a factor of two along every axis. Default is 1.
# Levels = 1

# Width of the coarsest level's domain in cells. Default is 4.
# Cells = 4

# Physical width of the domain. Default is 1.0.
# BoxWidth = 1.0

# Number of particles placed along each axis of every level's seed lattice.
# Set to 0 to run with an empty population. Default is 2.
# LatticeWidth = 2

# Number of steps to run. Default is 1.
# Steps = 1

# Write a checkpoint bundle every PlotEvery steps and a point-cloud file
# every VTKEvery steps. 0 disables that output. Defaults are 1 and 1.
# PlotEvery = 1
# VTKEvery = 1`

// Config stores the driver's configuration.
type Config struct {
	OutputDir string

	Levels       int
	Cells        int
	BoxWidth     float64
	LatticeWidth int

	Steps     int
	PlotEvery int
	VTKEvery  int
}

// configFile is the gcfg wrapper around Config: config files have a single
// [Run] section.
type configFile struct {
	Run Config
}

// defaultConfig returns a Config with every optional parameter set to its
// default.
func defaultConfig() Config {
	return Config{
		Levels: 1, Cells: 4, BoxWidth: 1.0, LatticeWidth: 2,
		Steps: 1, PlotEvery: 1, VTKEvery: 1,
	}
}

// ParseConfigFile parses the config file at fname.
func ParseConfigFile(fname string) (*Config, error) {
	cfg := configFile{defaultConfig()}
	if err := gcfg.ReadFileInto(&cfg, fname); err != nil {
		return nil, fmt.Errorf("The config file %s cannot be parsed: %s.",
			fname, err.Error())
	}
	return &cfg.Run, nil
}

// Validate checks the parsed values against the constraints the driver
// assumes. It returns the first problem it finds.
func (cfg *Config) Validate() error {
	switch {
	case cfg.OutputDir == "":
		return fmt.Errorf("OutputDir was not set. See the example config " +
			"file printed by 'mdexport help' for how to set it.")
	case cfg.Levels < 1:
		return fmt.Errorf("Levels was set to %d, but the hierarchy needs "+
			"at least one level.", cfg.Levels)
	case cfg.Cells < 1:
		return fmt.Errorf("Cells was set to %d, but the coarsest domain "+
			"needs at least one cell along each axis.", cfg.Cells)
	case cfg.BoxWidth <= 0:
		return fmt.Errorf("BoxWidth was set to %g, but the domain needs a "+
			"positive physical width.", cfg.BoxWidth)
	case cfg.LatticeWidth < 0:
		return fmt.Errorf("LatticeWidth was set to %d, but it cannot be "+
			"negative.", cfg.LatticeWidth)
	case cfg.Steps < 1:
		return fmt.Errorf("Steps was set to %d, but the driver needs at "+
			"least one step.", cfg.Steps)
	case cfg.PlotEvery < 0 || cfg.VTKEvery < 0:
		return fmt.Errorf("PlotEvery and VTKEvery cannot be negative: got "+
			"%d and %d.", cfg.PlotEvery, cfg.VTKEvery)
	}
	return nil
}
