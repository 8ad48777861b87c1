// Package integrators provides numerical steppers over quaternion state
// for attitude propagation.
package integrators

import (
	"github.com/attsim/attsim/internal/kinematics"
	"github.com/attsim/attsim/internal/rotation"
)

// Euler is the explicit first-order integrator. Cheap, but its norm drift
// per step is an order worse than RK4's.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(q rotation.Quat, w rotation.Vec3, frame kinematics.Frame, dt float64) rotation.Quat {
	dq := kinematics.Derivative(q, w, frame)
	return q.Add(dq.Scale(dt))
}
