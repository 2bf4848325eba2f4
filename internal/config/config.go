package config

import (
	"fmt"
	"os"

	"github.com/san-kum/inspector/internal/driver"
	"github.com/san-kum/inspector/internal/physics"
	"github.com/san-kum/inspector/internal/props"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFunction = "trajectory"
	DefaultLogLevel = "info"
	DefaultDataDir  = ".inspector"
)

type Config struct {
	Function string     `yaml:"function"`
	Preset   string     `yaml:"preset,omitempty"`
	Template string     `yaml:"template,omitempty"`
	Autosave *bool      `yaml:"autosave,omitempty"`
	Params   Params     `yaml:"params,omitempty"`
	Plot     PlotConfig `yaml:"plot,omitempty"`
	Log      LogConfig  `yaml:"log,omitempty"`
	Data     string     `yaml:"data,omitempty"`
}

// PlotConfig overrides a function's sweep defaults. Zero fields keep the
// function's value.
type PlotConfig struct {
	Enabled    *bool  `yaml:"enabled,omitempty"`
	Variable   string `yaml:"variable,omitempty"`
	Min        *Bound `yaml:"min,omitempty"`
	Max        *Bound `yaml:"max,omitempty"`
	Samples    int    `yaml:"samples,omitempty"`
	Resolution int    `yaml:"resolution,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Function: DefaultFunction,
		Log:      LogConfig{Level: DefaultLogLevel},
		Data:     DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve merges the config over target: preset parameters first, then the
// config's own parameters, then template, autosave and plot overrides.
func (c *Config) Resolve(target physics.Target) (*props.Store, driver.Options, error) {
	params := target.Defaults()
	if c.Preset != "" {
		p := GetPreset(target.Name, c.Preset)
		if p == nil {
			return nil, driver.Options{}, fmt.Errorf("unknown preset %q for %s", c.Preset, target.Name)
		}
		p.Params.mergeInto(params)
	}
	c.Params.mergeInto(params)

	opts := driver.DefaultOptions()
	opts.Template = target.Template
	opts.Plot = target.Plot
	if c.Template != "" {
		opts.Template = c.Template
	}
	if c.Autosave != nil {
		opts.Autosave = *c.Autosave
	}

	p := c.Plot
	if p.Enabled != nil {
		opts.Plot.Enabled = *p.Enabled
	}
	if p.Variable != "" {
		opts.Plot.Variable = p.Variable
	}
	if p.Min != nil {
		opts.Plot.Min = p.Min.Driver()
	}
	if p.Max != nil {
		opts.Plot.Max = p.Max.Driver()
	}
	if p.Samples != 0 {
		opts.Plot.Samples = p.Samples
	}
	if p.Resolution != 0 {
		opts.Plot.Resolution = p.Resolution
	}
	return params, opts, nil
}

// Bound is a sweep limit written either as a number or as a parameter name.
type Bound struct {
	Ref   string
	Value float64
}

func (b *Bound) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: bound must be a number or a parameter name", node.Line)
	}
	if node.ShortTag() == "!!str" {
		b.Ref, b.Value = node.Value, 0
		return nil
	}
	b.Ref = ""
	return node.Decode(&b.Value)
}

func (b Bound) MarshalYAML() (any, error) {
	if b.Ref != "" {
		return b.Ref, nil
	}
	return b.Value, nil
}

func (b Bound) Driver() driver.Bound {
	if b.Ref != "" {
		return driver.Ref(b.Ref)
	}
	return driver.Literal(b.Value)
}
