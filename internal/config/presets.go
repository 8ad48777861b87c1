package config

import "math"

var Presets = map[string]*Config{
	"level": {
		Integrator: "rk4", Frame: "body", Dt: 0.01, Duration: 10.0,
		Rate: RateConfig{Profile: "constant"},
	},
	"spin": {
		Integrator: "rk4", Frame: "body", Dt: 0.01, Duration: 20.0,
		Rate: RateConfig{Profile: "constant", WZ: math.Pi / 4},
	},
	"coning": {
		Integrator: "rk4", Frame: "body", Dt: 0.005, Duration: 30.0,
		Rate: RateConfig{
			Profile:   "sine",
			WZ:        2.0,
			Amplitude: []float64{0.4, 0.4, 0},
			Freq:      0.5,
		},
	},
	"tumble": {
		Integrator: "rk4", Frame: "body", Dt: 0.002, Duration: 30.0,
		Rate: RateConfig{
			Profile: "free_body",
			WX:      0.01, WY: 3.0, WZ: 0.01,
			Inertia: []float64{1.0, 2.0, 3.0},
		},
	},
	"gimbal": {
		Integrator: "rk4", Frame: "body", Dt: 0.01, Duration: 10.0,
		Attitude: AttitudeConfig{Pitch: math.Pi/2 - 0.01},
		Rate:     RateConfig{Profile: "constant", WY: 0.2},
	},
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
