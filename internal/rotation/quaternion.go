package rotation

import "math"

// epsAngle is the threshold below which a rotation is treated as zero.
// Near this scale the axis of rotation is numerically undefined.
const epsAngle = 1e-10

// Quat is a rotation quaternion with components (W, X, Y, Z) mapping to
// (real, i, j, k).
//
// The Hamilton product convention is used: p.Mul(q) composes an intrinsic
// rotation applying q first, then p. The zero rotation is (1,0,0,0); use
// [Identity] rather than the Go zero value, which is not a valid rotation.
//
// A quaternion and its negation represent the same physical rotation; no
// canonicalization is performed, so comparisons must account for sign.
type Quat struct {
	W, X, Y, Z float64
}

// Identity returns the zero-rotation quaternion (1,0,0,0).
func Identity() Quat { return Quat{W: 1} }

// FromDCM builds the quaternion equivalent of a direction cosine matrix
// using Shepperd's method: branch on the trace or the largest diagonal
// element so the square-root pivot stays away from zero.
//
// m must be a proper orthonormal rotation matrix. There is no orthonormality
// check; a malformed input yields a garbage (but finite) quaternion rather
// than a panic.
func FromDCM(m DCM) Quat {
	var q Quat
	t := m.Trace()
	switch {
	case t > 0:
		t = math.Sqrt(1 + t)
		q.W = 0.5 * t
		t = 0.5 / t
		q.X = (m[2][1] - m[1][2]) * t
		q.Y = (m[0][2] - m[2][0]) * t
		q.Z = (m[1][0] - m[0][1]) * t
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		t = math.Sqrt(1 + m[0][0] - m[1][1] - m[2][2])
		q.X = 0.5 * t
		t = 0.5 / t
		q.W = (m[2][1] - m[1][2]) * t
		q.Y = (m[1][0] + m[0][1]) * t
		q.Z = (m[0][2] + m[2][0]) * t
	case m[1][1] > m[2][2]:
		t = math.Sqrt(1 - m[0][0] + m[1][1] - m[2][2])
		q.Y = 0.5 * t
		t = 0.5 / t
		q.W = (m[0][2] - m[2][0]) * t
		q.X = (m[1][0] + m[0][1]) * t
		q.Z = (m[2][1] + m[1][2]) * t
	default:
		t = math.Sqrt(1 - m[0][0] - m[1][1] + m[2][2])
		q.Z = 0.5 * t
		t = 0.5 / t
		q.W = (m[1][0] - m[0][1]) * t
		q.X = (m[0][2] + m[2][0]) * t
		q.Y = (m[2][1] + m[1][2]) * t
	}
	return q
}

// FromEuler builds the quaternion for a 3-2-1 intrinsic Tait-Bryan rotation
// (yaw, then pitch, then roll) from the half-angle product closed form.
//
// There is no gimbal guard: pitch of +-90 degrees produces a valid but
// non-unique quaternion, which is a property of the Euler representation.
func FromEuler(e Euler) Quat {
	cosPhi2 := math.Cos(e.Roll / 2)
	sinPhi2 := math.Sin(e.Roll / 2)
	cosTheta2 := math.Cos(e.Pitch / 2)
	sinTheta2 := math.Sin(e.Pitch / 2)
	cosPsi2 := math.Cos(e.Yaw / 2)
	sinPsi2 := math.Sin(e.Yaw / 2)
	return Quat{
		W: cosPhi2*cosTheta2*cosPsi2 + sinPhi2*sinTheta2*sinPsi2,
		X: sinPhi2*cosTheta2*cosPsi2 - cosPhi2*sinTheta2*sinPsi2,
		Y: cosPhi2*sinTheta2*cosPsi2 + sinPhi2*cosTheta2*sinPsi2,
		Z: cosPhi2*cosTheta2*sinPsi2 - sinPhi2*sinTheta2*cosPsi2,
	}
}

// FromAxisAngle builds the quaternion rotating by a.Angle() about a.Axis().
// An angle below the zero-rotation threshold yields the identity exactly,
// avoiding the vanishing-axis normalization.
func FromAxisAngle(a AxisAngle) Quat {
	angle := Vec3(a).Norm()
	if angle < epsAngle {
		return Identity()
	}
	axis := Vec3(a).Scale(1 / angle)
	s := math.Sin(angle / 2)
	return Quat{
		W: math.Cos(angle / 2),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

// Mul returns the Hamilton product p*q: the rotation applying q first,
// then p. The product is associative but not commutative.
func (p Quat) Mul(q Quat) Quat {
	return Quat{
		W: p.W*q.W - p.X*q.X - p.Y*q.Y - p.Z*q.Z,
		X: p.W*q.X + p.X*q.W + p.Y*q.Z - p.Z*q.Y,
		Y: p.W*q.Y - p.X*q.Z + p.Y*q.W + p.Z*q.X,
		Z: p.W*q.Z + p.X*q.Y - p.Y*q.X + p.Z*q.W,
	}
}

// Add returns the component-wise sum p+q. Only meaningful for derivative
// accumulation; the result is generally not a unit quaternion.
func (p Quat) Add(q Quat) Quat {
	return Quat{p.W + q.W, p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Scale returns the quaternion with every component multiplied by s.
func (q Quat) Scale(s float64) Quat {
	return Quat{q.W * s, q.X * s, q.Y * s, q.Z * s}
}

// Dot returns the 4-component dot product of p and q.
func (p Quat) Dot(q Quat) float64 {
	return p.W*q.W + p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Norm returns the Euclidean norm of the quaternion. A valid rotation has
// norm 1.
func (q Quat) Norm() float64 { return math.Sqrt(q.Dot(q)) }

// Normalized returns the quaternion scaled to unit norm. If the norm is too
// close to zero to divide by, the identity is returned.
func (q Quat) Normalized() Quat {
	n := q.Norm()
	if n < epsAngle {
		return Identity()
	}
	return q.Scale(1 / n)
}

// Inverse returns the multiplicative inverse: the conjugate divided by the
// squared norm. For a unit quaternion this equals the conjugate, but the
// division keeps the result correct for non-normalized input.
func (q Quat) Inverse() Quat {
	n := q.Dot(q)
	return Quat{q.W / n, -q.X / n, -q.Y / n, -q.Z / n}
}

// Imag returns the imaginary (vector) part of the quaternion.
func (q Quat) Imag() Vec3 { return Vec3{q.X, q.Y, q.Z} }

// DerivativeBody returns dq/dt for angular rate w expressed in the body
// frame: 0.5 * q * (0, w).
func (q Quat) DerivativeBody(w Vec3) Quat {
	return q.Mul(Quat{0, w.X, w.Y, w.Z}).Scale(0.5)
}

// DerivativeInertial returns dq/dt for angular rate w expressed in the
// reference frame: 0.5 * (0, w) * q.
//
// The two derivative forms differ only in multiplication order; using the
// variant that does not match the rate's frame silently produces a wrong
// but plausible-looking derivative.
func (q Quat) DerivativeInertial(w Vec3) Quat {
	return Quat{0, w.X, w.Y, w.Z}.Mul(q).Scale(0.5)
}

// Rotate rotates v by q: the imaginary part of q * (0, v) * q^-1.
// q must be unit-norm for the result to be a pure rotation; a non-unit q
// scales the vector as well.
func (q Quat) Rotate(v Vec3) Vec3 {
	r := q.Mul(Quat{0, v.X, v.Y, v.Z}).Mul(q.Inverse())
	return r.Imag()
}

// RotateInverse rotates v by the inverse of q: q^-1 * (0, v) * q.
func (q Quat) RotateInverse(v Vec3) Vec3 {
	r := q.Inverse().Mul(Quat{0, v.X, v.Y, v.Z}).Mul(q)
	return r.Imag()
}

// AxisAngle returns the rotation as an axis-angle vector with the angle
// wrapped into (-pi, pi]. When the imaginary part is below the
// zero-rotation threshold the axis is undefined and the zero vector is
// returned.
func (q Quat) AxisAngle() AxisAngle {
	imag := q.Imag()
	mag := imag.Norm()
	if mag < epsAngle {
		return AxisAngle{}
	}
	angle := WrapPi(2 * math.Atan2(mag, q.W))
	return AxisAngle(imag.Scale(angle / mag))
}

// DCM returns the equivalent direction cosine matrix. Assumes q is
// unit-norm; a non-unit quaternion yields a non-orthonormal matrix.
func (q Quat) DCM() DCM {
	ww := q.W * q.W
	xx := q.X * q.X
	yy := q.Y * q.Y
	zz := q.Z * q.Z
	return DCM{
		{ww + xx - yy - zz, 2 * (q.X*q.Y - q.W*q.Z), 2 * (q.W*q.Y + q.X*q.Z)},
		{2 * (q.X*q.Y + q.W*q.Z), ww - xx + yy - zz, 2 * (q.Y*q.Z - q.W*q.X)},
		{2 * (q.X*q.Z - q.W*q.Y), 2 * (q.W*q.X + q.Y*q.Z), ww - xx - yy + zz},
	}
}

// Euler returns the 3-2-1 Tait-Bryan angles of the rotation. Assumes q is
// unit-norm. Pitch is clamped to [-pi/2, pi/2]; yaw and roll are in
// (-pi, pi].
func (q Quat) Euler() Euler {
	sinTheta := 2 * (q.W*q.Y - q.Z*q.X)
	if sinTheta >= 1 {
		sinTheta = 1
	} else if sinTheta <= -1 {
		sinTheta = -1
	}
	yy := q.Y * q.Y
	return Euler{
		Roll:  math.Atan2(q.W*q.X+q.Y*q.Z, 0.5-(yy+q.X*q.X)),
		Pitch: math.Asin(sinTheta),
		Yaw:   math.Atan2(q.W*q.Z+q.X*q.Y, 0.5-(yy+q.Z*q.Z)),
	}
}

// CopyTo copies the four components in (w, x, y, z) order into a
// caller-supplied single-precision buffer, for interchange with telemetry
// or driver interfaces.
func (q Quat) CopyTo(dst *[4]float32) {
	dst[0] = float32(q.W)
	dst[1] = float32(q.X)
	dst[2] = float32(q.Y)
	dst[3] = float32(q.Z)
}
