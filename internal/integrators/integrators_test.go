package integrators

import (
	"math"
	"testing"

	"github.com/attsim/attsim/internal/kinematics"
	"github.com/attsim/attsim/internal/rotation"
)

// Spin about +z at a constant rate has the closed-form solution
// q(t) = quaternion(axis z, angle w*t).
func propagate(s kinematics.Stepper, w rotation.Vec3, dt float64, steps int) rotation.Quat {
	q := rotation.Identity()
	for i := 0; i < steps; i++ {
		q = s.Step(q, w, kinematics.Body, dt).Normalized()
	}
	return q
}

func attitudeError(q, ref rotation.Quat) float64 {
	return math.Abs(ref.Inverse().Mul(q).AxisAngle().Angle())
}

func TestRK4Accuracy(t *testing.T) {
	w := rotation.Vec3{Z: 1.5}
	dt := 0.01
	steps := 200

	q := propagate(NewRK4(), w, dt, steps)
	ref := rotation.FromAxisAngle(rotation.NewAxisAngle(rotation.Vec3{Z: 1}, w.Z*float64(steps)*dt))

	if err := attitudeError(q, ref); err > 1e-8 {
		t.Errorf("RK4 attitude error %.2e, want < 1e-8", err)
	}
}

func TestEulerAccuracy(t *testing.T) {
	w := rotation.Vec3{Z: 1.5}
	dt := 0.01
	steps := 200

	q := propagate(NewEuler(), w, dt, steps)
	ref := rotation.FromAxisAngle(rotation.NewAxisAngle(rotation.Vec3{Z: 1}, w.Z*float64(steps)*dt))

	if err := attitudeError(q, ref); err > 1e-2 {
		t.Errorf("Euler attitude error %.2e, want < 1e-2", err)
	}
}

func TestRK4BeatsEuler(t *testing.T) {
	w := rotation.Vec3{X: 0.4, Y: -0.9, Z: 1.2}
	dt := 0.02
	steps := 500

	// Reference from a much finer RK4 run.
	fine := rotation.Identity()
	rk4 := NewRK4()
	for i := 0; i < steps*20; i++ {
		fine = rk4.Step(fine, w, kinematics.Body, dt/20).Normalized()
	}

	rkErr := attitudeError(propagate(NewRK4(), w, dt, steps), fine)
	eulErr := attitudeError(propagate(NewEuler(), w, dt, steps), fine)

	if rkErr >= eulErr {
		t.Errorf("RK4 error %.2e not better than Euler error %.2e", rkErr, eulErr)
	}
}

func TestFrameMatters(t *testing.T) {
	// Starting tilted, a z rate gives different trajectories depending on
	// the frame it is expressed in.
	q0 := rotation.FromAxisAngle(rotation.NewAxisAngle(rotation.Vec3{X: 1}, math.Pi/2))
	w := rotation.Vec3{Z: 1.0}
	rk4 := NewRK4()

	body := rk4.Step(q0, w, kinematics.Body, 0.1).Normalized()
	inertial := rk4.Step(q0, w, kinematics.Inertial, 0.1).Normalized()

	if attitudeError(body, inertial) < 1e-6 {
		t.Error("body-frame and inertial-frame steps agree for tilted attitude")
	}
}

func BenchmarkStep(b *testing.B) {
	q := rotation.FromEuler(rotation.Euler{Roll: 0.1, Pitch: 0.2, Yaw: 0.3})
	w := rotation.Vec3{X: 0.5, Y: -0.2, Z: 1.0}

	b.Run("Euler", func(b *testing.B) {
		s := NewEuler()
		for i := 0; i < b.N; i++ {
			q = s.Step(q, w, kinematics.Body, 0.01).Normalized()
		}
	})
	b.Run("RK4", func(b *testing.B) {
		s := NewRK4()
		for i := 0; i < b.N; i++ {
			q = s.Step(q, w, kinematics.Body, 0.01).Normalized()
		}
	})
}
