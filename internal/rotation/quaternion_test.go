package rotation

import (
	"math"
	"testing"
)

const tol = 1e-6

func quatClose(a, b Quat, tol float64) bool {
	return math.Abs(a.W-b.W) < tol &&
		math.Abs(a.X-b.X) < tol &&
		math.Abs(a.Y-b.Y) < tol &&
		math.Abs(a.Z-b.Z) < tol
}

// quatSameRotation compares up to the double-cover sign.
func quatSameRotation(a, b Quat, tol float64) bool {
	return quatClose(a, b, tol) || quatClose(a, b.Scale(-1), tol)
}

func vecClose(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) < tol &&
		math.Abs(a.Y-b.Y) < tol &&
		math.Abs(a.Z-b.Z) < tol
}

func TestIdentityComposition(t *testing.T) {
	q := FromAxisAngle(NewAxisAngle(Vec3{X: 1, Y: -2, Z: 0.5}, 1.1))
	id := Identity()

	if got := id.Mul(q); !quatClose(got, q, tol) {
		t.Errorf("identity * q = %+v, want %+v", got, q)
	}
	if got := q.Mul(id); !quatClose(got, q, tol) {
		t.Errorf("q * identity = %+v, want %+v", got, q)
	}
}

func TestInverse(t *testing.T) {
	q := FromEuler(Euler{Roll: 0.3, Pitch: -0.4, Yaw: 1.2})

	if got := q.Mul(q.Inverse()); !quatClose(got, Identity(), tol) {
		t.Errorf("q * q^-1 = %+v, want identity", got)
	}
	if got := q.Inverse().Mul(q); !quatClose(got, Identity(), tol) {
		t.Errorf("q^-1 * q = %+v, want identity", got)
	}
}

func TestInverseNonUnit(t *testing.T) {
	// The inverse must divide by the squared norm, not just conjugate.
	q := FromEuler(Euler{Roll: 0.3, Pitch: -0.4, Yaw: 1.2}).Scale(2.5)

	if got := q.Mul(q.Inverse()); !quatClose(got, Identity(), tol) {
		t.Errorf("q * q^-1 = %+v for non-unit q, want identity", got)
	}
}

func TestNonCommutativity(t *testing.T) {
	p := FromAxisAngle(NewAxisAngle(Vec3{X: 1}, math.Pi/3))
	q := FromAxisAngle(NewAxisAngle(Vec3{Z: 1}, math.Pi/4))

	if quatClose(p.Mul(q), q.Mul(p), tol) {
		t.Error("p*q == q*p for non-parallel rotations")
	}
}

func TestDerivativeFrames(t *testing.T) {
	q := FromAxisAngle(NewAxisAngle(Vec3{X: 1}, math.Pi/2))
	w := Vec3{Z: 1}

	body := q.DerivativeBody(w)
	inertial := q.DerivativeInertial(w)

	if quatClose(body, inertial, tol) {
		t.Error("body and inertial derivatives agree for non-identity attitude")
	}

	// At identity the pure-imaginary factor commutes with q.
	id := Identity()
	if got, want := id.DerivativeBody(w), id.DerivativeInertial(w); !quatClose(got, want, tol) {
		t.Errorf("derivatives at identity differ: %+v vs %+v", got, want)
	}
	if got := id.DerivativeBody(w); !quatClose(got, (Quat{Z: 0.5}), tol) {
		t.Errorf("derivative at identity = %+v, want (0,0,0,0.5)", got)
	}
}

func TestRotate(t *testing.T) {
	q := FromAxisAngle(NewAxisAngle(Vec3{Z: 1}, math.Pi/2))
	v := Vec3{X: 1}

	got := q.Rotate(v)
	if !vecClose(got, Vec3{Y: 1}, tol) {
		t.Errorf("90 deg about +z rotated (1,0,0) to %+v, want (0,1,0)", got)
	}

	back := q.RotateInverse(got)
	if !vecClose(back, v, tol) {
		t.Errorf("inverse rotation returned %+v, want %+v", back, v)
	}
}

func TestRotateMatchesDCM(t *testing.T) {
	q := FromEuler(Euler{Roll: -0.7, Pitch: 0.2, Yaw: 2.1})
	v := Vec3{X: 0.3, Y: -1.2, Z: 0.8}

	qv := q.Rotate(v)
	mv := q.DCM().MulVec(v)
	if !vecClose(qv, mv, tol) {
		t.Errorf("quaternion rotation %+v disagrees with DCM rotation %+v", qv, mv)
	}
}

func TestDoubleCover(t *testing.T) {
	q := FromEuler(Euler{Roll: 0.5, Pitch: 0.1, Yaw: -1.4})
	neg := q.Scale(-1)

	v := Vec3{X: 1, Y: 2, Z: 3}
	if !vecClose(q.Rotate(v), neg.Rotate(v), tol) {
		t.Error("q and -q rotate differently")
	}
	if got := FromDCM(q.DCM()); !quatSameRotation(got, q, tol) {
		t.Errorf("DCM round trip %+v not equal to +-q %+v", got, q)
	}
}

func TestNormalized(t *testing.T) {
	q := Quat{W: 2, X: 0, Y: 0, Z: 0}
	if got := q.Normalized(); !quatClose(got, Identity(), tol) {
		t.Errorf("Normalized = %+v, want identity", got)
	}

	// A vanishing quaternion cannot be normalized; it resolves to identity
	// instead of dividing by zero.
	if got := (Quat{}).Normalized(); !quatClose(got, Identity(), tol) {
		t.Errorf("Normalized of zero quaternion = %+v, want identity", got)
	}
}

func TestCopyTo(t *testing.T) {
	q := Quat{W: 0.5, X: -0.5, Y: 0.25, Z: 0.75}
	var dst [4]float32
	q.CopyTo(&dst)

	want := [4]float32{0.5, -0.5, 0.25, 0.75}
	if dst != want {
		t.Errorf("CopyTo = %v, want %v", dst, want)
	}
}

func TestScale(t *testing.T) {
	q := Quat{W: 1, X: 2, Y: -3, Z: 4}
	got := q.Scale(0.5)
	want := Quat{W: 0.5, X: 1, Y: -1.5, Z: 2}
	if !quatClose(got, want, tol) {
		t.Errorf("Scale = %+v, want %+v", got, want)
	}
}
