package kinematics

import (
	"context"
	"fmt"
	"math"

	"github.com/attsim/attsim/internal/rotation"
)

// Propagator runs an attitude propagation: at each step it samples the rate
// source, advances the quaternion with the stepper, renormalizes, and
// records the trajectory.
type Propagator struct {
	stepper Stepper
	rates   RateSource
}

func New(stepper Stepper, rates RateSource) *Propagator {
	return &Propagator{stepper: stepper, rates: rates}
}

func (p *Propagator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Dt > cfg.Duration {
		return fmt.Errorf("dt %f exceeds duration %f", cfg.Dt, cfg.Duration)
	}
	return nil
}

// Run propagates from q0 for cfg.Duration. The initial attitude is
// normalized on entry; thereafter the quaternion is renormalized after
// every step, and the worst pre-normalization deviation is reported as
// NormDrift.
func (p *Propagator) Run(ctx context.Context, q0 rotation.Quat, cfg Config) (*Result, error) {
	if err := p.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:     make([]float64, 0, steps+1),
		Attitudes: make([]rotation.Quat, 0, steps+1),
		Rates:     make([]rotation.Vec3, 0, steps+1),
	}

	q := q0.Normalized()
	t := 0.0

	result.Times = append(result.Times, t)
	result.Attitudes = append(result.Attitudes, q)
	result.Rates = append(result.Rates, p.rates.Rate(t))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		w := p.rates.Rate(t)
		q = p.stepper.Step(q, w, cfg.Frame, cfg.Dt)

		if drift := math.Abs(q.Norm() - 1); drift > result.NormDrift {
			result.NormDrift = drift
		}
		q = q.Normalized()

		if adv, ok := p.rates.(Advancer); ok {
			adv.Advance(cfg.Dt)
		}
		t += cfg.Dt

		result.Times = append(result.Times, t)
		result.Attitudes = append(result.Attitudes, q)
		result.Rates = append(result.Rates, p.rates.Rate(t))
	}

	return result, nil
}
