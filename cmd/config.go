package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/swarmpack/sim"
	"github.com/inference-sim/swarmpack/sim/pointer"
	"github.com/inference-sim/swarmpack/sim/sample"
)

// Config represents the full run configuration file.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Seed    int64                `yaml:"seed"`
	Text    string               `yaml:"text"`   // rasterized when Points is empty
	Points  string               `yaml:"points"` // CSV point file; overrides Text
	Pack    sim.PackConfig       `yaml:"pack"`
	Steer   sim.SteerConfig      `yaml:"steer"`
	Sample  sample.TextOptions   `yaml:"sample"`
	Pointer pointer.WanderConfig `yaml:"pointer"`
}

// DefaultConfig returns the reference configuration. Sample.Size is left 0,
// meaning 12 world units per character of Text.
func DefaultConfig() Config {
	opts := sample.DefaultTextOptions("")
	opts.Size = 0
	return Config{
		Seed:    42,
		Text:    "CANDY",
		Pack:    sim.DefaultPackConfig(),
		Steer:   sim.DefaultSteerConfig(),
		Sample:  opts,
		Pointer: pointer.DefaultWanderConfig(),
	}
}

// LoadConfig overlays the YAML file at path on DefaultConfig.
// Uses strict field checking: typos must cause errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// textOptions resolves the sampler options for cfg.Text.
func (c Config) textOptions() sample.TextOptions {
	opts := c.Sample
	if opts.Size == 0 {
		opts.Size = sample.DefaultTextOptions(c.Text).Size
	}
	return opts
}

// buildPoints loads the point file when set, otherwise rasterizes the text.
func buildPoints(cfg Config) ([]sim.Point2D, error) {
	if cfg.Points != "" {
		return sample.LoadFile(cfg.Points)
	}
	return sample.Text(cfg.Text, cfg.textOptions()), nil
}
