package kinematics

import (
	"math"

	"github.com/attsim/attsim/internal/rotation"
)

// ConstantRate supplies a fixed angular rate.
type ConstantRate struct {
	W rotation.Vec3
}

func NewConstantRate(w rotation.Vec3) *ConstantRate {
	return &ConstantRate{W: w}
}

func (c *ConstantRate) Rate(t float64) rotation.Vec3 { return c.W }

// SineRate supplies a sinusoidal rate about a mean value. The X and Y
// amplitudes are driven in quadrature, so a pure X/Y amplitude with a
// constant Z mean traces a coning motion.
type SineRate struct {
	Mean      rotation.Vec3
	Amplitude rotation.Vec3
	Freq      float64 // Hz
}

func NewSineRate(mean, amplitude rotation.Vec3, freq float64) *SineRate {
	return &SineRate{Mean: mean, Amplitude: amplitude, Freq: freq}
}

func (s *SineRate) Rate(t float64) rotation.Vec3 {
	sin, cos := math.Sincos(2 * math.Pi * s.Freq * t)
	return rotation.Vec3{
		X: s.Mean.X + s.Amplitude.X*cos,
		Y: s.Mean.Y + s.Amplitude.Y*sin,
		Z: s.Mean.Z + s.Amplitude.Z*sin,
	}
}

// FreeBody evolves the body rate of a torque-free rigid body with principal
// inertias I1, I2, I3 using Euler's equations:
//
//	dw1/dt = ((I2-I3)/I1) w2 w3
//	dw2/dt = ((I3-I1)/I2) w3 w1
//	dw3/dt = ((I1-I2)/I3) w1 w2
//
// It is stateful: the propagation loop advances it once per step through
// the [Advancer] interface. Spin about the intermediate axis of an
// asymmetric body reproduces the tumbling flip of the intermediate axis
// theorem.
type FreeBody struct {
	I1, I2, I3 float64
	w          rotation.Vec3
}

func NewFreeBody(inertia, w0 rotation.Vec3) *FreeBody {
	return &FreeBody{I1: inertia.X, I2: inertia.Y, I3: inertia.Z, w: w0}
}

func (f *FreeBody) Rate(t float64) rotation.Vec3 { return f.w }

func (f *FreeBody) derive(w rotation.Vec3) rotation.Vec3 {
	return rotation.Vec3{
		X: ((f.I2 - f.I3) / f.I1) * w.Y * w.Z,
		Y: ((f.I3 - f.I1) / f.I2) * w.Z * w.X,
		Z: ((f.I1 - f.I2) / f.I3) * w.X * w.Y,
	}
}

// Advance integrates the body rate by one RK4 step.
func (f *FreeBody) Advance(dt float64) {
	w := f.w
	k1 := f.derive(w)
	k2 := f.derive(w.Add(k1.Scale(dt * 0.5)))
	k3 := f.derive(w.Add(k2.Scale(dt * 0.5)))
	k4 := f.derive(w.Add(k3.Scale(dt)))
	f.w = w.Add(k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(dt / 6))
}

// Energy returns the rotational kinetic energy, conserved for torque-free
// motion. Useful for monitoring integration quality.
func (f *FreeBody) Energy() float64 {
	return 0.5 * (f.I1*f.w.X*f.w.X + f.I2*f.w.Y*f.w.Y + f.I3*f.w.Z*f.w.Z)
}
