package config

import "math"

// Presets are named starting configurations for the chain. The "classic"
// preset matches the stock two-link setup; the others are common demo
// arrangements.
var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"triple": presetChain(
		BobConfig{RodLength: 100, Mass: 10, Theta: math.Pi / 2},
		BobConfig{RodLength: 80, Mass: 8, Theta: math.Pi / 2},
		BobConfig{RodLength: 60, Mass: 6, Theta: math.Pi / 2},
	),
	"gentle": presetChain(
		BobConfig{RodLength: 120, Mass: 10, Theta: 0.3},
		BobConfig{RodLength: 120, Mass: 10, Theta: 0.3},
	),
	"spinner": presetChain(
		BobConfig{RodLength: 120, Mass: 10, Theta: 0.1, Omega: 4.0},
		BobConfig{RodLength: 60, Mass: 2, Theta: 0.1, Omega: 4.0},
	),
	"single": presetChain(
		BobConfig{RodLength: 150, Mass: 12, Theta: 2.5},
	),
}

func presetChain(bobs ...BobConfig) *Config {
	cfg := DefaultConfig()
	cfg.Bobs = bobs
	return cfg
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
