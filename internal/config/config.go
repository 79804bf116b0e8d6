package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/physics"
	"gopkg.in/gcfg.v1"
	"gopkg.in/yaml.v3"
)

const (
	DefaultParticles   = 125
	DefaultMass        = 5e-20
	DefaultRadius      = 2e-10
	DefaultVolume      = 1e-23
	DefaultTemperature = 300.0
	DefaultDt          = 2e-9
	DefaultSteps       = 600
	DefaultSampleEvery = 10
)

type Config struct {
	Gas GasConfig `yaml:"gas"`
	Run RunConfig `yaml:"run"`
}

type GasConfig struct {
	Particles   int     `yaml:"particles"`
	Mass        float64 `yaml:"mass"`
	Radius      float64 `yaml:"radius"`
	Volume      float64 `yaml:"volume"`
	Temperature float64 `yaml:"temperature"`
	Search      string  `yaml:"search"`
	Workers     int     `yaml:"workers"`
}

type RunConfig struct {
	Dt          float64 `yaml:"dt"`
	Steps       int     `yaml:"steps"`
	Seed        int64   `yaml:"seed"`
	SampleEvery int     `yaml:"sample_every" gcfg:"sample-every"`
	Validate    bool    `yaml:"validate"`
}

func DefaultConfig() *Config {
	return &Config{
		Gas: GasConfig{
			Particles:   DefaultParticles,
			Mass:        DefaultMass,
			Radius:      DefaultRadius,
			Volume:      DefaultVolume,
			Temperature: DefaultTemperature,
			Search:      string(physics.SearchPairs),
			Workers:     1,
		},
		Run: RunConfig{
			Dt:          DefaultDt,
			Steps:       DefaultSteps,
			SampleEvery: DefaultSampleEvery,
			Validate:    true,
		},
	}
}

// Load reads a YAML file, or a git-config style file when the extension is
// .gcfg or .ini. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gcfg", ".ini":
		if err := gcfg.ReadFileInto(cfg, path); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
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

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if !(c.Run.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidTimestep, c.Run.Dt)
	}
	if c.Run.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrInvalidConfig, c.Run.Steps)
	}
	return nil
}

func (c *Config) Params() physics.Params {
	return physics.Params{
		ParticleCount: c.Gas.Particles,
		Mass:          c.Gas.Mass,
		Radius:        c.Gas.Radius,
		Volume:        c.Gas.Volume,
		Temperature:   c.Gas.Temperature,
		Search:        physics.SearchMode(c.Gas.Search),
		Workers:       c.Gas.Workers,
	}
}

func (c *Config) RunConfig() dynamo.Config {
	return dynamo.Config{
		Dt:            c.Run.Dt,
		Duration:      float64(c.Run.Steps) * c.Run.Dt,
		Seed:          c.Run.Seed,
		SampleEvery:   c.Run.SampleEvery,
		ValidateState: c.Run.Validate,
	}
}
