package config

import (
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/shiwa/flocompile/internal/bufmap"
	"github.com/shiwa/flocompile/internal/compiler"
)

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	yml := `
board: ocra1
quick_start: true
latencies: [0, 150, 150, 20, 20, 0, 0, 0, 0, 2, 2, 2, 2, 2, 2, 0]
output:
  format: json
  path: out.json
archive:
  path: runs.db
`
	if err := afero.WriteFile(fs, "flocompile.yml", []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(fs, "flocompile.yml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Output.Baud != 115200 {
		t.Errorf("default baud not applied: %d", c.Output.Baud)
	}
	if c.Archive.Path != "runs.db" || c.Output.Path != "out.json" {
		t.Errorf("config %+v", c)
	}
	cc, err := c.Compiler()
	if err != nil {
		t.Fatal(err)
	}
	if cc.Board != bufmap.BoardOCRA1 || !cc.QuickStart || cc.Latencies[1] != 150 || cc.Latencies[14] != 2 {
		t.Errorf("compiler config %+v", cc)
	}
	if cc.InitialBuffers != [bufmap.NumBuffers]uint16{} {
		t.Errorf("initial buffers must default to zero")
	}
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := Load(fs, "missing.yml"); err == nil {
		t.Error("expected error for missing file")
	}
	_ = afero.WriteFile(fs, "bad.yml", []byte("board: [\n"), 0o644)
	if _, err := Load(fs, "bad.yml"); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Compiler(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"unknown board", func(c *Config) { c.Board = "gpa-x" }},
		{"short latencies", func(c *Config) { c.Latencies = []int64{1, 2, 3} }},
		{"long initial buffers", func(c *Config) { c.InitialBuffers = make([]uint16, 17) }},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mod(c)
			if _, err := c.Compiler(); !errors.Is(err, compiler.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}

	c := Default()
	if cc, err := c.Compiler(); err != nil || cc.Board != bufmap.BoardGPAFHDO {
		t.Errorf("default config: %+v %v", cc, err)
	}
}
