package orbits

import (
	"math"
	"testing"

	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestSolveKeplerResidual(t *testing.T) {
	for k := 0; k <= 19; k++ {
		e := float64(k) * 0.05
		for j := 0; j < 72; j++ {
			M := float64(j) * math.Pi / 36
			sol := SolveKepler(M, e)
			if !sol.Converged {
				t.Fatalf("e=%f M=%f did not converge", e, M)
			}
			if sol.Iterations < 1 || sol.Iterations > KeplerMaxIterations {
				t.Fatalf("e=%f M=%f: %d iterations", e, M, sol.Iterations)
			}
			if res := math.Remainder(sol.E-e*math.Sin(sol.E)-M, twoPi); math.Abs(res) > 1e-5 {
				t.Fatalf("e=%f M=%f: residual %g", e, M, res)
			}
		}
	}
}

func TestSolveKeplerCircular(t *testing.T) {
	for _, M := range []float64{0, 0.5, math.Pi, 4} {
		sol := SolveKepler(M, 0)
		if sol.E != M || sol.Iterations != 1 || !sol.Converged {
			t.Fatalf("circular orbit: M=%f got %+v", M, sol)
		}
		if ν := TrueAnomaly(sol.E, 0); ν != M {
			t.Fatalf("circular orbit: ν=%f != M=%f", ν, M)
		}
	}
}

func TestSolveKeplerNonConvergence(t *testing.T) {
	// With e = 1 and M = 0, the first Newton step is 0/0.
	sol := SolveKepler(0, 1)
	if sol.Converged {
		t.Fatal("expected no convergence")
	}
	if sol.Iterations != KeplerMaxIterations {
		t.Fatalf("expected %d iterations, got %d", KeplerMaxIterations, sol.Iterations)
	}
	if E := EccentricAnomaly(0, 1); !math.IsNaN(E) {
		t.Fatalf("EccentricAnomaly should return the last iterate, got %f", E)
	}
}

func TestSolveKeplerMeeus(t *testing.T) {
	for _, e := range []float64{0.01, 0.1, 0.3, 0.5, 0.7, 0.9} {
		for _, M := range []float64{0.1, 0.5, 1, 2, 3} {
			exp := kepler.Kepler3(e, unit.Angle(M)).Rad()
			if got := EccentricAnomaly(M, e); !scalar.EqualWithinAbs(got, exp, 1e-6) {
				t.Fatalf("e=%f M=%f: E=%f, meeus=%f", e, M, got, exp)
			}
		}
	}
}

func TestTrueAnomaly(t *testing.T) {
	for _, e := range []float64{0.01, 0.2, 0.6, 0.95} {
		for E := 0.1; E < twoPi; E += 0.3 {
			exp := normalizeAngle(2 * math.Atan(math.Sqrt((1+e)/(1-e))*math.Tan(E/2)))
			if got := normalizeAngle(TrueAnomaly(E, e)); !scalar.EqualWithinAbs(got, exp, 1e-9) {
				t.Fatalf("e=%f E=%f: ν=%f expected %f", e, E, got, exp)
			}
		}
		// Apsides are fixed points.
		if ν := TrueAnomaly(0, e); ν != 0 {
			t.Fatalf("e=%f: ν(0)=%f", e, ν)
		}
		if ν := TrueAnomaly(math.Pi, e); !scalar.EqualWithinAbs(ν, math.Pi, 1e-12) {
			t.Fatalf("e=%f: ν(π)=%f", e, ν)
		}
	}
}
