package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/attsim/attsim/internal/kinematics"
	"github.com/attsim/attsim/internal/rotation"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultFreq     = 0.5
)

type Config struct {
	Integrator string         `yaml:"integrator"`
	Frame      string         `yaml:"frame"`
	Dt         float64        `yaml:"dt"`
	Duration   float64        `yaml:"duration"`
	Attitude   AttitudeConfig `yaml:"attitude"`
	Rate       RateConfig     `yaml:"rate"`
}

// AttitudeConfig describes the initial attitude, either as 3-2-1 Euler
// angles in radians or as an explicit quaternion (w, x, y, z), which takes
// precedence when present.
type AttitudeConfig struct {
	Yaw   float64   `yaml:"yaw"`
	Pitch float64   `yaml:"pitch"`
	Roll  float64   `yaml:"roll"`
	Quat  []float64 `yaml:"quat"`
}

// RateConfig selects and parameterizes the angular-rate source.
type RateConfig struct {
	Profile   string    `yaml:"profile"` // constant, sine, free_body
	WX        float64   `yaml:"wx"`
	WY        float64   `yaml:"wy"`
	WZ        float64   `yaml:"wz"`
	Amplitude []float64 `yaml:"amplitude"` // sine: [ax, ay, az]
	Freq      float64   `yaml:"freq"`      // sine: Hz
	Inertia   []float64 `yaml:"inertia"`   // free_body: [I1, I2, I3]
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk4",
		Frame:      "body",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Rate: RateConfig{
			Profile: "constant",
			WZ:      0.5,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
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

// InitialAttitude builds the starting quaternion from the attitude section.
func (c *Config) InitialAttitude() rotation.Quat {
	if len(c.Attitude.Quat) == 4 {
		q := rotation.Quat{
			W: c.Attitude.Quat[0],
			X: c.Attitude.Quat[1],
			Y: c.Attitude.Quat[2],
			Z: c.Attitude.Quat[3],
		}
		return q.Normalized()
	}
	return rotation.FromEuler(rotation.Euler{
		Roll:  c.Attitude.Roll,
		Pitch: c.Attitude.Pitch,
		Yaw:   c.Attitude.Yaw,
	})
}

// RateSource builds the angular-rate source from the rate section.
func (c *Config) RateSource() (kinematics.RateSource, error) {
	w := rotation.Vec3{X: c.Rate.WX, Y: c.Rate.WY, Z: c.Rate.WZ}

	switch c.Rate.Profile {
	case "constant", "":
		return kinematics.NewConstantRate(w), nil
	case "sine":
		amp := vecFromSlice(c.Rate.Amplitude)
		freq := c.Rate.Freq
		if freq == 0 {
			freq = DefaultFreq
		}
		return kinematics.NewSineRate(w, amp, freq), nil
	case "free_body":
		inertia := vecFromSlice(c.Rate.Inertia)
		if inertia.X <= 0 || inertia.Y <= 0 || inertia.Z <= 0 {
			return nil, fmt.Errorf("free_body profile needs three positive inertias, got %v", c.Rate.Inertia)
		}
		return kinematics.NewFreeBody(inertia, w), nil
	default:
		return nil, fmt.Errorf("unknown rate profile: %s", c.Rate.Profile)
	}
}

func vecFromSlice(s []float64) rotation.Vec3 {
	var v rotation.Vec3
	if len(s) > 0 {
		v.X = s[0]
	}
	if len(s) > 1 {
		v.Y = s[1]
	}
	if len(s) > 2 {
		v.Z = s[2]
	}
	return v
}
