package orbits

import (
	"math"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// UnixEpochJD is the Julian day of 1970-01-01T00:00:00Z.
	UnixEpochJD = 2440587.5
	// SecondsPerDay is the number of seconds in a day.
	SecondsPerDay = 86400.0
	// DefaultSceneScale is the default number of scene units per AU.
	DefaultSceneScale = 10.0
)

// Position is the heliocentric state of a body at a given time.
type Position struct {
	R                r3.Vec // scene units
	MeanAnomaly      float64
	EccentricAnomaly float64
	TrueAnomaly      float64
	RadiusAU         float64
	Converged        bool // false if the Kepler solve hit its iteration cap
}

// UnixToJD converts seconds since the Unix epoch (UTC) to a Julian day.
func UnixToJD(seconds float64) float64 {
	return seconds/SecondsPerDay + UnixEpochJD
}

// JDToUnix converts a Julian day to seconds since the Unix epoch.
func JDToUnix(jd float64) float64 {
	return (jd - UnixEpochJD) * SecondsPerDay
}

// MeanMotion returns the mean motion in radians per day.
func MeanMotion(el Elements) float64 {
	if period, ok := el.Period(); ok {
		return twoPi / period
	}
	return twoPi / math.Pow(el.a, 1.5) / DaysPerYear
}

// MeanAnomalyAt returns the mean anomaly at the Julian day jd, in [0, 2π).
func MeanAnomalyAt(el Elements, jd float64) float64 {
	return normalizeAngle(el.m0 + MeanMotion(el)*(jd-el.epoch))
}

// PropagatorOption configures a Propagator.
type PropagatorOption func(*Propagator)

// WithSceneScale sets the number of scene units per AU.
func WithSceneScale(unitsPerAU float64) PropagatorOption {
	return func(p *Propagator) {
		p.scale = unitsPerAU
	}
}

// WithLogger sets the logger used to report non convergent solves.
func WithLogger(logger kitlog.Logger) PropagatorOption {
	return func(p *Propagator) {
		p.logger = orNop(logger)
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *Metrics) PropagatorOption {
	return func(p *Propagator) {
		p.metrics = m
	}
}

// Propagator converts element sets into heliocentric positions.
// It holds no per-call state and is safe for concurrent use.
type Propagator struct {
	scale   float64
	logger  kitlog.Logger
	metrics *Metrics
}

// NewPropagator returns a propagator using DefaultSceneScale unless configured otherwise.
func NewPropagator(opts ...PropagatorOption) *Propagator {
	p := &Propagator{scale: DefaultSceneScale, logger: kitlog.NewNopLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SceneScale returns the number of scene units per AU.
func (p *Propagator) SceneScale() float64 {
	return p.scale
}

// Propagate returns the position of the body described by el at t, in
// seconds since the Unix epoch. Nothing is cached between calls.
func (p *Propagator) Propagate(el Elements, t float64) Position {
	M := MeanAnomalyAt(el, UnixToJD(t))
	sol := SolveKepler(M, el.e)
	if !sol.Converged {
		level.Warn(p.logger).Log("subsys", "kepler", "msg", "solve did not converge", "M", M, "e", el.e, "E", sol.E, "iterations", sol.Iterations)
		p.metrics.nonConverged()
	}
	p.metrics.propagated()

	ν := TrueAnomaly(sol.E, el.e)
	r := el.a * (1 - el.e*math.Cos(sol.E))
	sinν, cosν := math.Sincos(ν)
	R := PQW2Helio(el.i, el.ω, el.Ω, r3.Vec{X: r * cosν, Y: r * sinν})
	return Position{
		R:                r3.Scale(p.scale, R),
		MeanAnomaly:      M,
		EccentricAnomaly: sol.E,
		TrueAnomaly:      ν,
		RadiusAU:         r,
		Converged:        sol.Converged,
	}
}
