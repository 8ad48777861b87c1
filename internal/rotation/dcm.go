package rotation

import "math"

// gimbalEps bounds how close pitch may get to +-pi/2 before the Euler
// extraction switches to its singular branch.
const gimbalEps = 1e-3

// DCM is a 3x3 direction cosine matrix. A proper rotation matrix is
// orthonormal with determinant +1; the type does not enforce this.
type DCM [3][3]float64

// IdentityDCM returns the identity rotation matrix.
func IdentityDCM() DCM {
	return DCM{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Mul returns the matrix product a*b, composing the rotation b first,
// then a.
func (a DCM) Mul(b DCM) DCM {
	var c DCM
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}
	return c
}

// MulVec applies the rotation to v.
func (a DCM) MulVec(v Vec3) Vec3 {
	return Vec3{
		a[0][0]*v.X + a[0][1]*v.Y + a[0][2]*v.Z,
		a[1][0]*v.X + a[1][1]*v.Y + a[1][2]*v.Z,
		a[2][0]*v.X + a[2][1]*v.Y + a[2][2]*v.Z,
	}
}

// Transpose returns the transposed matrix, which for a proper rotation is
// also its inverse.
func (a DCM) Transpose() DCM {
	return DCM{
		{a[0][0], a[1][0], a[2][0]},
		{a[0][1], a[1][1], a[2][1]},
		{a[0][2], a[1][2], a[2][2]},
	}
}

// Trace returns the sum of the diagonal elements.
func (a DCM) Trace() float64 {
	return a[0][0] + a[1][1] + a[2][2]
}

// Euler extracts the 3-2-1 Tait-Bryan angles from the matrix. Within
// gimbalEps of pitch +-pi/2 the yaw/roll split is degenerate; roll is set
// to zero and the whole azimuth goes into yaw.
func (a DCM) Euler() Euler {
	var e Euler
	e.Pitch = math.Asin(clamp(-a[2][0], -1, 1))
	switch {
	case math.Abs(e.Pitch-math.Pi/2) < gimbalEps:
		e.Yaw = math.Atan2(a[1][2], a[0][2])
	case math.Abs(e.Pitch+math.Pi/2) < gimbalEps:
		e.Yaw = math.Atan2(-a[1][2], -a[0][2])
	default:
		e.Roll = math.Atan2(a[2][1], a[2][2])
		e.Yaw = math.Atan2(a[1][0], a[0][0])
	}
	return e
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
