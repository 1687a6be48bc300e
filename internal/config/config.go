package config

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/shiwa/flocompile/internal/bufmap"
	"github.com/shiwa/flocompile/internal/compiler"
)

// Config — конфигурация flocompile (YAML)
type Config struct {
	// Board — плата градиентов: gpa-fhdo или ocra1
	Board      string `yaml:"board"`
	QuickStart bool   `yaml:"quick_start"`
	// InitialBuffers — начальные значения 16 буферов; пусто = нули
	InitialBuffers []uint16 `yaml:"initial_buffers"`
	// Latencies — задержка каждого из 16 буферов в тактах; пусто = нули
	Latencies []int64 `yaml:"latencies"`

	Output  OutputConfig  `yaml:"output"`
	Archive ArchiveConfig `yaml:"archive"`
}

// OutputConfig — куда и в каком виде писать поток инструкций
type OutputConfig struct {
	Format     string `yaml:"format"` // text, json
	Path       string `yaml:"path"`   // пусто или "-" = stdout
	SerialPort string `yaml:"serial_port"`
	Baud       int    `yaml:"baud"`
}

// ArchiveConfig — sqlite архив компиляций
type ArchiveConfig struct {
	Path string `yaml:"path"` // пусто = архив отключён
}

// Default возвращает конфиг по умолчанию
func Default() *Config {
	return &Config{
		Board: "gpa-fhdo",
		Output: OutputConfig{
			Format: "text",
			Baud:   115200,
		},
	}
}

// Load читает конфиг из YAML
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&c)
	return &c, nil
}

func applyDefaults(c *Config) {
	d := Default()
	if c.Board == "" {
		c.Board = d.Board
	}
	if c.Output.Format == "" {
		c.Output.Format = d.Output.Format
	}
	if c.Output.Baud == 0 {
		c.Output.Baud = d.Output.Baud
	}
}

// Compiler строит явную конфигурацию компилятора; неверные поля — ErrConfiguration
func (c *Config) Compiler() (compiler.Config, error) {
	var cc compiler.Config
	board, err := bufmap.ParseBoard(c.Board)
	if err != nil {
		return cc, err
	}
	cc.Board = board
	cc.QuickStart = c.QuickStart
	if n := len(c.InitialBuffers); n != 0 {
		if n != bufmap.NumBuffers {
			return cc, fmt.Errorf("%w: initial_buffers: got %d values, want %d", compiler.ErrConfiguration, n, bufmap.NumBuffers)
		}
		copy(cc.InitialBuffers[:], c.InitialBuffers)
	}
	if n := len(c.Latencies); n != 0 {
		if n != bufmap.NumBuffers {
			return cc, fmt.Errorf("%w: latencies: got %d values, want %d", compiler.ErrConfiguration, n, bufmap.NumBuffers)
		}
		copy(cc.Latencies[:], c.Latencies)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return cc, fmt.Errorf("%w: unknown output format %q", compiler.ErrConfiguration, c.Output.Format)
	}
	return cc, nil
}
