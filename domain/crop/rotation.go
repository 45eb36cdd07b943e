package crop

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

// FromRPY composes roll, pitch and yaw (radians) as Rz(yaw)·Ry(pitch)·Rx(roll).
func FromRPY(roll, pitch, yaw float64) quat.Number {
	rx := quat.Number(r3.NewRotation(roll, axisX))
	ry := quat.Number(r3.NewRotation(pitch, axisY))
	rz := quat.Number(r3.NewRotation(yaw, axisZ))
	return quat.Mul(rz, quat.Mul(ry, rx))
}

// ToRPY decomposes q into roll, pitch and yaw under the FromRPY convention.
// Pitch is clamped to ±π/2; near that limit roll and yaw are not unique.
func ToRPY(q quat.Number) r3.Vec {
	q = normalize(q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	roll := math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))
	s := 2 * (w*y - z*x)
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	pitch := math.Asin(s)
	yaw := math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
	return r3.Vec{X: roll, Y: pitch, Z: yaw}
}

func normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}
