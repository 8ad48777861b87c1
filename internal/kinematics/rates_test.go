package kinematics

import (
	"math"
	"testing"

	"github.com/attsim/attsim/internal/rotation"
)

func TestConstantRate(t *testing.T) {
	w := rotation.Vec3{X: 0.1, Y: -0.2, Z: 0.3}
	r := NewConstantRate(w)

	if got := r.Rate(0); got != w {
		t.Errorf("Rate(0) = %+v, want %+v", got, w)
	}
	if got := r.Rate(100); got != w {
		t.Errorf("Rate(100) = %+v, want %+v", got, w)
	}
}

func TestSineRate(t *testing.T) {
	mean := rotation.Vec3{Z: 2.0}
	amp := rotation.Vec3{X: 0.5, Y: 0.5}
	r := NewSineRate(mean, amp, 1.0)

	// At t=0 the quadrature drive puts the whole amplitude on X.
	got := r.Rate(0)
	want := rotation.Vec3{X: 0.5, Z: 2.0}
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 || math.Abs(got.Z-want.Z) > 1e-12 {
		t.Errorf("Rate(0) = %+v, want %+v", got, want)
	}

	// A quarter period later it is all on Y.
	got = r.Rate(0.25)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-0.5) > 1e-9 {
		t.Errorf("Rate(T/4) = %+v, want amplitude on Y", got)
	}
}

func TestFreeBodySymmetricSpin(t *testing.T) {
	// For a symmetric body (I1 == I2) the spin-axis rate is constant.
	fb := NewFreeBody(rotation.Vec3{X: 1, Y: 1, Z: 2}, rotation.Vec3{X: 0.3, Y: 0, Z: 5})

	for i := 0; i < 1000; i++ {
		fb.Advance(0.001)
	}

	if got := fb.Rate(0).Z; math.Abs(got-5) > 1e-9 {
		t.Errorf("symmetric body spin rate drifted to %f, want 5", got)
	}
}

func TestFreeBodyEnergyConservation(t *testing.T) {
	fb := NewFreeBody(rotation.Vec3{X: 1, Y: 2, Z: 3}, rotation.Vec3{X: 0.1, Y: 2.0, Z: 0.1})
	e0 := fb.Energy()

	for i := 0; i < 10000; i++ {
		fb.Advance(0.001)
	}

	if drift := math.Abs(fb.Energy()-e0) / e0; drift > 1e-6 {
		t.Errorf("energy drifted by %e over 10s of tumbling", drift)
	}
}

func TestFreeBodyIntermediateAxisFlip(t *testing.T) {
	// Spin about the intermediate axis of an asymmetric body is unstable:
	// a small perturbation grows until the spin axis flips sign.
	fb := NewFreeBody(rotation.Vec3{X: 1, Y: 2, Z: 3}, rotation.Vec3{X: 0.01, Y: 3.0, Z: 0.01})

	flipped := false
	for i := 0; i < 20000; i++ {
		fb.Advance(0.001)
		if fb.Rate(0).Y < -1.0 {
			flipped = true
			break
		}
	}

	if !flipped {
		t.Error("intermediate-axis spin never flipped over 20s")
	}
}
