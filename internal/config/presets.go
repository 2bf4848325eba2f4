package config

import "sort"

// Presets are named parameter sets per function.
var Presets = map[string]map[string]*Config{
	"trajectory": {
		"rifle": {
			Function: "trajectory",
			Params:   MustParams("velocity", 710.0, "distance", 100.0),
		},
		"pistol": {
			Function: "trajectory",
			Params:   MustParams("velocity", 350.0, "distance", 50.0),
		},
		"arrow": {
			Function: "trajectory",
			Params:   MustParams("velocity", 90.0, "distance", 70.0),
		},
	},
	"pendulum_period": {
		"seconds": {
			Function: "pendulum_period",
			Params:   MustParams("length", 0.994, "gravity", 9.80665),
		},
		"moon": {
			Function: "pendulum_period",
			Params:   MustParams("length", 1.0, "gravity", 1.625),
		},
	},
	"spring_energy": {
		"stiff": {
			Function: "spring_energy",
			Params:   MustParams("stiffness", 100.0, "damping", 0.1),
		},
		"soft": {
			Function: "spring_energy",
			Params:   MustParams("stiffness", 2.0, "damping", 1.5),
		},
	},
	"kinetic_energy": {
		"bullet": {
			Function: "kinetic_energy",
			Params:   MustParams("mass", 0.0042, "velocity", 940.0, "kilo", true),
		},
		"car": {
			Function: "kinetic_energy",
			Params:   MustParams("mass", 1500.0, "velocity", 27.8, "kilo", true),
		},
	},
}

func GetPreset(function, preset string) *Config {
	fnPresets, ok := Presets[function]
	if !ok {
		return nil
	}
	cfg, ok := fnPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(function string) []string {
	fnPresets, ok := Presets[function]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(fnPresets))
	for name := range fnPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
