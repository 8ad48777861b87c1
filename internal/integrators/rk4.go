package integrators

import (
	"github.com/attsim/attsim/internal/kinematics"
	"github.com/attsim/attsim/internal/rotation"
)

// RK4 is the classical fourth-order Runge-Kutta stepper. The rate is held
// constant over the step (zero-order hold), matching how a control loop
// samples its gyro.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(q rotation.Quat, w rotation.Vec3, frame kinematics.Frame, dt float64) rotation.Quat {
	k1 := kinematics.Derivative(q, w, frame)
	k2 := kinematics.Derivative(q.Add(k1.Scale(dt*0.5)), w, frame)
	k3 := kinematics.Derivative(q.Add(k2.Scale(dt*0.5)), w, frame)
	k4 := kinematics.Derivative(q.Add(k3.Scale(dt)), w, frame)

	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return q.Add(sum.Scale(dt / 6))
}
