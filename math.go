package orbits

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	deg2rad = math.Pi / 180
	twoPi   = 2 * math.Pi
)

// normalizeAngle wraps an angle in radians into [0, 2π).
// math.Mod keeps the sign of the dividend, hence the correction.
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	// -tiny + 2π rounds to 2π exactly.
	if a >= twoPi {
		a = 0
	}
	return a
}

// Deg2rad converts degrees to radians, and enforces only positive numbers.
func Deg2rad(a float64) float64 {
	return normalizeAngle(a * deg2rad)
}

// Rad2deg converts radians to degrees, and enforces only positive numbers.
func Rad2deg(a float64) float64 {
	return normalizeAngle(a) / deg2rad
}

// Distance returns the Euclidean separation of two positions.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// vectorsEqual returns whether two vectors are equal within the absolute tolerance.
func vectorsEqual(a, b r3.Vec, tol float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) &&
		scalar.EqualWithinAbs(a.Y, b.Y, tol) &&
		scalar.EqualWithinAbs(a.Z, b.Z, tol)
}
