package rotation

// AxisAngle encodes a rotation as a single vector: the direction is the
// rotation axis and the norm is the rotation angle in radians. The zero
// value is the zero rotation.
type AxisAngle Vec3

// NewAxisAngle scales the unit direction of axis by angle. A zero axis
// yields the zero rotation regardless of angle.
func NewAxisAngle(axis Vec3, angle float64) AxisAngle {
	return AxisAngle(axis.Unit().Scale(angle))
}

// Vec returns the raw axis-angle vector.
func (a AxisAngle) Vec() Vec3 { return Vec3(a) }

// Angle returns the rotation angle in radians.
func (a AxisAngle) Angle() float64 { return Vec3(a).Norm() }

// Axis returns the unit rotation axis. Below the zero-rotation threshold
// the axis is undefined and the zero vector is returned.
func (a AxisAngle) Axis() Vec3 {
	n := Vec3(a).Norm()
	if n < epsAngle {
		return Vec3{}
	}
	return Vec3(a).Scale(1 / n)
}
