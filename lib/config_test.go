package lib

import (
	"io/ioutil"
	"path"
	"testing"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	fname := path.Join(t.TempDir(), "config.txt")
	if err := ioutil.WriteFile(fname, []byte(text), 0644); err != nil {
		t.Fatalf("Could not write test config: %s", err.Error())
	}
	return fname
}

func TestParseConfigFileDefaults(t *testing.T) {
	fname := writeConfig(t, "[Run]\nOutputDir = out\n")

	cfg, err := ParseConfigFile(fname)
	if err != nil {
		t.Fatalf("Expected config to parse, got error '%s'.", err.Error())
	}

	if cfg.OutputDir != "out" {
		t.Errorf("Expected OutputDir = 'out', got '%s'.", cfg.OutputDir)
	}
	def := defaultConfig()
	if cfg.Levels != def.Levels || cfg.Cells != def.Cells ||
		cfg.BoxWidth != def.BoxWidth || cfg.Steps != def.Steps {
		t.Errorf("Unset parameters did not keep their defaults: got %+v.",
			*cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got '%s'.",
			err.Error())
	}
}

func TestParseConfigFileOverrides(t *testing.T) {
	fname := writeConfig(t, `[Run]
OutputDir = snaps
Levels = 2
Cells = 8
BoxWidth = 2.5
LatticeWidth = 3
Steps = 10
PlotEvery = 5
VTKEvery = 2
`)

	cfg, err := ParseConfigFile(fname)
	if err != nil {
		t.Fatalf("Expected config to parse, got error '%s'.", err.Error())
	}

	if cfg.Levels != 2 || cfg.Cells != 8 || cfg.BoxWidth != 2.5 ||
		cfg.LatticeWidth != 3 || cfg.Steps != 10 || cfg.PlotEvery != 5 ||
		cfg.VTKEvery != 2 {
		t.Errorf("Parsed values don't match the file: got %+v.", *cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		cfg   Config
		valid bool
	}{
		{Config{"out", 1, 4, 1.0, 2, 1, 1, 1}, true},
		{Config{"out", 1, 4, 1.0, 0, 1, 0, 0}, true},
		{Config{"", 1, 4, 1.0, 2, 1, 1, 1}, false},
		{Config{"out", 0, 4, 1.0, 2, 1, 1, 1}, false},
		{Config{"out", 1, 0, 1.0, 2, 1, 1, 1}, false},
		{Config{"out", 1, 4, 0.0, 2, 1, 1, 1}, false},
		{Config{"out", 1, 4, 1.0, -1, 1, 1, 1}, false},
		{Config{"out", 1, 4, 1.0, 2, 0, 1, 1}, false},
		{Config{"out", 1, 4, 1.0, 2, 1, -1, 1}, false},
	}

	for i := range tests {
		err := tests[i].cfg.Validate()
		if tests[i].valid && err != nil {
			t.Errorf("%d) Expected config %+v to validate, got '%s'.",
				i, tests[i].cfg, err.Error())
		} else if !tests[i].valid && err == nil {
			t.Errorf("%d) Expected config %+v to fail validation, but it "+
				"passed.", i, tests[i].cfg)
		}
	}
}
