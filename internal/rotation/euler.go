package rotation

import "math"

// Euler holds 3-2-1 intrinsic Tait-Bryan angles in radians: yaw (psi) about
// Z, then pitch (theta) about the intermediate Y, then roll (phi) about the
// final X. The representation is singular at pitch +-pi/2 (gimbal lock).
type Euler struct {
	Roll, Pitch, Yaw float64
}

// DCM returns the rotation matrix for the 3-2-1 sequence.
func (e Euler) DCM() DCM {
	cosPhi := math.Cos(e.Roll)
	sinPhi := math.Sin(e.Roll)
	cosTheta := math.Cos(e.Pitch)
	sinTheta := math.Sin(e.Pitch)
	cosPsi := math.Cos(e.Yaw)
	sinPsi := math.Sin(e.Yaw)
	return DCM{
		{
			cosTheta * cosPsi,
			-cosPhi*sinPsi + sinPhi*sinTheta*cosPsi,
			sinPhi*sinPsi + cosPhi*sinTheta*cosPsi,
		},
		{
			cosTheta * sinPsi,
			cosPhi*cosPsi + sinPhi*sinTheta*sinPsi,
			-sinPhi*cosPsi + cosPhi*sinTheta*sinPsi,
		},
		{
			-sinTheta,
			sinPhi * cosTheta,
			cosPhi * cosTheta,
		},
	}
}

// Degrees returns the three angles converted to degrees, in (roll, pitch,
// yaw) order.
func (e Euler) Degrees() (roll, pitch, yaw float64) {
	const d = 180 / math.Pi
	return e.Roll * d, e.Pitch * d, e.Yaw * d
}
