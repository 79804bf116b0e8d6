package config

import "sort"

var Presets = map[string]*Config{
	// the two-scenario reference ensemble
	"scenario27": {
		Gas: GasConfig{Particles: 27, Mass: 5e-20, Radius: 2e-10, Volume: 1e-23, Temperature: 300, Search: "pairs", Workers: 1},
		Run: RunConfig{Dt: 2e-9, Steps: 300, SampleEvery: 10, Validate: true},
	},
	"dilute": {
		Gas: GasConfig{Particles: 125, Mass: 5e-20, Radius: 2e-10, Volume: 1e-23, Temperature: 300, Search: "pairs", Workers: 1},
		Run: RunConfig{Dt: 2e-9, Steps: 1000, SampleEvery: 10, Validate: true},
	},
	"dense": {
		Gas: GasConfig{Particles: 512, Mass: 5e-20, Radius: 6e-10, Volume: 1e-23, Temperature: 300, Search: "cells", Workers: 0},
		Run: RunConfig{Dt: 4e-10, Steps: 3000, SampleEvery: 25, Validate: true},
	},
	"equilibrate": {
		Gas: GasConfig{Particles: 216, Mass: 5e-20, Radius: 5e-10, Volume: 1e-23, Temperature: 300, Search: "cells", Workers: 1},
		Run: RunConfig{Dt: 5e-10, Steps: 3000, SampleEvery: 50, Validate: true},
	},
	"hot": {
		Gas: GasConfig{Particles: 125, Mass: 5e-20, Radius: 3e-10, Volume: 1e-23, Temperature: 1200, Search: "pairs", Workers: 1},
		Run: RunConfig{Dt: 5e-10, Steps: 2000, SampleEvery: 20, Validate: true},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
