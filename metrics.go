package orbits

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors of the propagation core.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	Propagations     prometheus.Counter
	KeplerNonConverg prometheus.Counter
	SearchDuration   prometheus.Histogram
	SearchEarlyExits prometheus.Counter
}

// NewMetrics registers the core collectors against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	props, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orbits_propagations_total",
		Help: "Total number of element sets propagated to a position.",
	}), "orbits_propagations_total")
	if err != nil {
		return nil, err
	}
	nonConverged, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orbits_kepler_nonconverged_total",
		Help: "Kepler solves which hit the iteration cap before converging.",
	}), "orbits_kepler_nonconverged_total")
	if err != nil {
		return nil, err
	}
	earlyExits, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orbits_closest_approach_early_exits_total",
		Help: "Closest approach scans stopped on the closeness threshold.",
	}), "orbits_closest_approach_early_exits_total")
	if err != nil {
		return nil, err
	}
	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orbits_closest_approach_seconds",
		Help:    "Wall clock duration of closest approach scans in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	}), "orbits_closest_approach_seconds")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		gatherer:         gatherer,
		Propagations:     props,
		KeplerNonConverg: nonConverged,
		SearchDuration:   duration,
		SearchEarlyExits: earlyExits,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (m *Metrics) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if m != nil && m.gatherer != nil {
		gatherer = m.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) propagated() {
	if m == nil {
		return
	}
	m.Propagations.Inc()
}

func (m *Metrics) nonConverged() {
	if m == nil {
		return
	}
	m.KeplerNonConverg.Inc()
}

func (m *Metrics) searched(seconds float64, earlyExit bool) {
	if m == nil {
		return
	}
	m.SearchDuration.Observe(seconds)
	if earlyExit {
		m.SearchEarlyExits.Inc()
	}
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
