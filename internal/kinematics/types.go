package kinematics

import (
	"fmt"

	"github.com/attsim/attsim/internal/rotation"
)

// Frame identifies the coordinate frame an angular rate is expressed in.
// The frame selects which quaternion derivative form the steppers use;
// mixing them up yields a plausible-looking but wrong trajectory.
type Frame int

const (
	// Body rates multiply on the right: dq/dt = 0.5 * q * (0, w).
	Body Frame = iota
	// Inertial rates multiply on the left: dq/dt = 0.5 * (0, w) * q.
	Inertial
)

func (f Frame) String() string {
	switch f {
	case Body:
		return "body"
	case Inertial:
		return "inertial"
	default:
		return fmt.Sprintf("Frame(%d)", int(f))
	}
}

// ParseFrame maps a config/CLI string to a Frame.
func ParseFrame(s string) (Frame, error) {
	switch s {
	case "body", "":
		return Body, nil
	case "inertial":
		return Inertial, nil
	default:
		return Body, fmt.Errorf("unknown frame: %s", s)
	}
}

// Derivative returns dq/dt for rate w expressed in the given frame.
func Derivative(q rotation.Quat, w rotation.Vec3, frame Frame) rotation.Quat {
	if frame == Inertial {
		return q.DerivativeInertial(w)
	}
	return q.DerivativeBody(w)
}

// RateSource supplies the angular rate at a given time, in rad/s.
type RateSource interface {
	Rate(t float64) rotation.Vec3
}

// Advancer is implemented by stateful rate sources that must be stepped
// alongside the attitude once per timestep.
type Advancer interface {
	Advance(dt float64)
}

// Stepper advances the attitude by one timestep under rate w, held constant
// over the step. The returned quaternion is not renormalized; drift control
// belongs to the propagation loop.
type Stepper interface {
	Step(q rotation.Quat, w rotation.Vec3, frame Frame, dt float64) rotation.Quat
}

type Config struct {
	Dt       float64
	Duration float64
	Frame    Frame
}

// Result collects the trajectory of a propagation run.
type Result struct {
	Times     []float64
	Attitudes []rotation.Quat
	Rates     []rotation.Vec3
	// NormDrift is the largest deviation of the quaternion norm from 1
	// observed before per-step renormalization.
	NormDrift float64
}
