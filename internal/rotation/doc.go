// Package rotation provides 3D rigid-body rotation representations and
// conversions for attitude estimation and control code.
//
// The central type is [Quat], a Hamilton-convention rotation quaternion.
// Three companion value types encode the same rotation in other forms:
//
//   - [DCM]: 3x3 direction cosine matrix
//   - [Euler]: 3-2-1 intrinsic Tait-Bryan angles (yaw, pitch, roll)
//   - [AxisAngle]: rotation axis scaled by the rotation angle
//
// Every pair of representations that callers need is connected by a direct
// conversion (constructor function or method); there is no common base type.
//
// # Unit Norm
//
// Conversions out of a quaternion and vector rotation assume a unit
// quaternion but never enforce it. Repeated composition drifts off the unit
// sphere, so integration loops should renormalize periodically:
//
//	q = q.Mul(dq).Normalized()
//
// # Degenerate Inputs
//
// The package has no error channel. Near-zero rotations (below 1e-10 rad)
// resolve to the identity quaternion or the zero axis-angle vector, never to
// a NaN or a panic. A control loop always gets a number back.
//
// All operations are pure value transforms with no allocation and no shared
// state; they are safe to call from any number of goroutines or from hard
// real-time loops.
package rotation
