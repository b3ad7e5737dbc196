package orbits

import "math"

const (
	// KeplerMaxIterations caps the Newton-Raphson iterations.
	KeplerMaxIterations = 50
	// KeplerTolerance is the convergence threshold on |ΔE| in radians.
	KeplerTolerance = 1e-6
)

// KeplerSolution is the outcome of a Kepler equation solve.
type KeplerSolution struct {
	E          float64 // eccentric anomaly in radians
	Iterations int
	Converged  bool
}

// SolveKepler finds the eccentric anomaly E such that M = E - e·sin(E) using
// Newton-Raphson from E₀ = M + e·sin(M).
// When the iteration cap is hit, the last iterate is returned with Converged
// set to false. Eccentricities outside [0, 1) are not guarded.
func SolveKepler(M, e float64) KeplerSolution {
	E := M + e*math.Sin(M)
	for i := 1; i <= KeplerMaxIterations; i++ {
		sinE, cosE := math.Sincos(E)
		ΔE := (E - e*sinE - M) / (1 - e*cosE)
		E -= ΔE
		if math.Abs(ΔE) < KeplerTolerance {
			return KeplerSolution{E: E, Iterations: i, Converged: true}
		}
	}
	return KeplerSolution{E: E, Iterations: KeplerMaxIterations}
}

// EccentricAnomaly returns the eccentric anomaly for the mean anomaly M, even
// if the solve did not converge.
func EccentricAnomaly(M, e float64) float64 {
	return SolveKepler(M, e).E
}

// TrueAnomaly returns the true anomaly from the eccentric anomaly with the
// half angle relation, which stays well conditioned near periapsis.
func TrueAnomaly(E, e float64) float64 {
	β := e / (1 + math.Sqrt(1-e*e))
	sinE, cosE := math.Sincos(E)
	return E + 2*math.Atan(β*sinE/(1-β*cosE))
}
