package main

import (
	"fmt"
	"time"

	"github.com/san-kum/gasbox/internal/config"
	"github.com/spf13/cobra"
)

func addGasFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.IntVarP(&particles, "particles", "n", def.Gas.Particles, "number of particles")
	f.Float64Var(&mass, "mass", def.Gas.Mass, "particle mass (kg)")
	f.Float64Var(&radius, "radius", def.Gas.Radius, "effective radius (m)")
	f.Float64Var(&volume, "volume", def.Gas.Volume, "chamber volume (m^3)")
	f.Float64VarP(&temperature, "temp", "T", def.Gas.Temperature, "temperature (K)")
	f.StringVar(&search, "search", def.Gas.Search, "pair search: pairs or cells")
	f.IntVar(&workers, "workers", def.Gas.Workers, "pair search workers (0 = all CPUs)")
	f.Float64Var(&dt, "dt", def.Run.Dt, "timestep (s)")
	f.IntVar(&steps, "steps", def.Run.Steps, "number of steps")
	f.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	f.IntVar(&sampleEvery, "sample-every", def.Run.SampleEvery, "record speeds every n steps")
	f.StringVar(&configFile, "config", "", "config file (yaml, or gcfg with .gcfg/.ini)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, config file and explicitly set flags, in that
// order, and returns the configuration with a name for the run.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "gas"

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.Gas.Particles = particles
	}
	if flags.Changed("mass") {
		cfg.Gas.Mass = mass
	}
	if flags.Changed("radius") {
		cfg.Gas.Radius = radius
	}
	if flags.Changed("volume") {
		cfg.Gas.Volume = volume
	}
	if flags.Changed("temp") {
		cfg.Gas.Temperature = temperature
	}
	if flags.Changed("search") {
		cfg.Gas.Search = search
	}
	if flags.Changed("workers") {
		cfg.Gas.Workers = workers
	}
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Run.Steps = steps
	}
	if flags.Changed("sample-every") {
		cfg.Run.SampleEvery = sampleEvery
	}
	if flags.Changed("seed") {
		cfg.Run.Seed = seed
	}
	if cfg.Run.Seed == 0 {
		cfg.Run.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	logger.Debug("resolved config", "name", name, "particles", cfg.Gas.Particles,
		"temperature", cfg.Gas.Temperature, "steps", cfg.Run.Steps, "seed", cfg.Run.Seed)
	return cfg, name, nil
}
