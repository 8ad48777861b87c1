package config

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/attsim/attsim/internal/kinematics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "rk4" {
		t.Errorf("expected integrator rk4, got %s", cfg.Integrator)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("tumble")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Rate.Profile != "free_body" {
		t.Errorf("expected free_body profile, got %s", cfg.Rate.Profile)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Error("expected built-in presets")
	}
}

func TestInitialAttitude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Attitude.Yaw = math.Pi / 2

	q := cfg.InitialAttitude()
	if got := q.Euler().Yaw; math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("yaw = %f, want pi/2", got)
	}

	// An explicit quaternion wins over the angles and is normalized.
	cfg.Attitude.Quat = []float64{2, 0, 0, 0}
	q = cfg.InitialAttitude()
	if q.W != 1 || q.X != 0 {
		t.Errorf("quat override = %+v, want identity", q)
	}
}

func TestRateSource(t *testing.T) {
	cfg := DefaultConfig()
	src, err := cfg.RateSource()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(*kinematics.ConstantRate); !ok {
		t.Errorf("expected ConstantRate, got %T", src)
	}

	cfg.Rate.Profile = "sine"
	cfg.Rate.Amplitude = []float64{0.1, 0.1, 0}
	if src, err = cfg.RateSource(); err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(*kinematics.SineRate); !ok {
		t.Errorf("expected SineRate, got %T", src)
	}

	cfg.Rate.Profile = "free_body"
	cfg.Rate.Inertia = []float64{1, 2, 3}
	if src, err = cfg.RateSource(); err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(*kinematics.FreeBody); !ok {
		t.Errorf("expected FreeBody, got %T", src)
	}

	cfg.Rate.Profile = "bogus"
	if _, err = cfg.RateSource(); err == nil {
		t.Error("expected error for unknown profile")
	}

	cfg.Rate.Profile = "free_body"
	cfg.Rate.Inertia = nil
	if _, err = cfg.RateSource(); err == nil {
		t.Error("expected error for missing inertias")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	cfg := GetPreset("coning")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Rate.Profile != "sine" {
		t.Errorf("profile = %s, want sine", loaded.Rate.Profile)
	}
	if loaded.Rate.Freq != 0.5 {
		t.Errorf("freq = %f, want 0.5", loaded.Rate.Freq)
	}
	if loaded.Dt != 0.005 {
		t.Errorf("dt = %f, want 0.005", loaded.Dt)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
