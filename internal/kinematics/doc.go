// Package kinematics propagates an attitude quaternion under an
// angular-velocity input.
//
// The package defines the simulation primitives around the rotation core:
//
//   - [Frame]: whether a rate is expressed in the body or inertial frame
//   - [RateSource]: supplies the angular rate over time
//   - [Stepper]: numerical integrator over quaternion state
//   - [Propagator]: orchestrates a propagation run
//
// # Example
//
//	rates := kinematics.NewConstantRate(rotation.Vec3{Z: 0.5})
//	prop := kinematics.New(integrators.NewRK4(), rates)
//	result, _ := prop.Run(ctx, rotation.Identity(), cfg)
//
// Propagator instances are not safe for concurrent use.
package kinematics
