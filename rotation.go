package orbits

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// R3R1R3 returns the 3-1-3 Euler rotation R3(θ3)·R1(θ2)·R3(θ1).
func R3R1R3(θ1, θ2, θ3 float64) *mat.Dense {
	var r mat.Dense
	r.Product(R3(θ3), R1(θ2), R3(θ1))
	return &r
}

// R1 rotation about the 1st axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m mat.Matrix, v r3.Vec) r3.Vec {
	var rVec mat.VecDense
	rVec.MulVec(m, mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return r3.Vec{X: rVec.AtVec(0), Y: rVec.AtVec(1), Z: rVec.AtVec(2)}
}

// PQW2Helio rotates a perifocal (orbital plane) vector into the heliocentric
// ecliptic frame: first by ω, then by i, then by Ω. Angles are in radians.
func PQW2Helio(i, ω, Ω float64, v r3.Vec) r3.Vec {
	return MxV33(R3R1R3(-ω, -i, -Ω), v)
}
