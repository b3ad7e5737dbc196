package orbits

import (
	"context"
	"math"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gonum.org/v1/gonum/spatial/r3"
)

// Impactor holds the nominal and deflected element sets of an asteroid.
type Impactor struct {
	Name      string
	Nominal   Elements
	Deflected Elements
}

// NewImpactor returns an impactor whose deflected orbit is derived from the
// nominal one with Elements.Deflect.
func NewImpactor(name string, nominal Elements, Δe, Δω float64) Impactor {
	return Impactor{Name: name, Nominal: nominal, Deflected: nominal.Deflect(Δe, Δω)}
}

// Select returns the element set to propagate.
func (imp Impactor) Select(deflected bool) Elements {
	if deflected {
		return imp.Deflected
	}
	return imp.Nominal
}

// SearchConfig defines the closest approach scan.
type SearchConfig struct {
	Step        float64 `mapstructure:"step"`         // seconds between candidates
	Steps       int     `mapstructure:"steps"`        // candidates are start + i·Step for i in [0, Steps]
	Threshold   float64 `mapstructure:"threshold"`    // scene units, the scan stops on the first smaller separation
	CancelEvery int     `mapstructure:"cancel_every"` // context check period, in candidates
}

// DefaultSearchConfig scans 30 minute steps over about 41.7 days.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{Step: 1800, Steps: 2000, Threshold: 0.05, CancelEvery: 100}
}

// SearchResult is the outcome of a closest approach scan.
type SearchResult struct {
	Time      float64 // seconds since the Unix epoch
	Distance  float64 // scene units
	Evaluated int     // number of candidate times propagated
	EarlyExit bool    // true if Distance is below the threshold
}

// TrajectoryPoint is a plotting sample of the impactor path.
type TrajectoryPoint struct {
	Time            float64
	Position        r3.Vec
	DistanceToEarth float64
}

// Searcher finds the time of closest approach between an impactor and Earth.
type Searcher struct {
	prop   *Propagator
	cfg    SearchConfig
	logger kitlog.Logger
}

// NewSearcher returns a searcher using the provided propagator. Zero values in
// cfg are replaced by their DefaultSearchConfig counterparts.
func NewSearcher(p *Propagator, cfg SearchConfig) *Searcher {
	def := DefaultSearchConfig()
	if cfg.Step <= 0 {
		cfg.Step = def.Step
	}
	if cfg.Steps <= 0 {
		cfg.Steps = def.Steps
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.CancelEvery <= 0 {
		cfg.CancelEvery = def.CancelEvery
	}
	return &Searcher{prop: p, cfg: cfg, logger: p.logger}
}

// Config returns the effective scan configuration.
func (s *Searcher) Config() SearchConfig {
	return s.cfg
}

// ClosestApproach returns the time of closest approach after start.
// The scan returns the first candidate closer than the threshold; otherwise
// the candidate of minimum separation over the whole horizon.
func (s *Searcher) ClosestApproach(start float64, imp Impactor, earth Elements, deflected bool) float64 {
	res, _ := s.ClosestApproachContext(context.Background(), start, imp, earth, deflected)
	return res.Time
}

// ClosestApproachContext is ClosestApproach with cooperative cancellation,
// checked every CancelEvery candidates. On cancellation, the best result so
// far is returned along with the context error.
func (s *Searcher) ClosestApproachContext(ctx context.Context, start float64, imp Impactor, earth Elements, deflected bool) (SearchResult, error) {
	began := time.Now()
	el := imp.Select(deflected)
	best := SearchResult{Time: start, Distance: math.Inf(1)}
	for i := 0; i <= s.cfg.Steps; i++ {
		if i > 0 && i%s.cfg.CancelEvery == 0 {
			if err := ctx.Err(); err != nil {
				return best, err
			}
		}
		t := start + float64(i)*s.cfg.Step
		d := Distance(s.prop.Propagate(el, t).R, s.prop.Propagate(earth, t).R)
		best.Evaluated++
		if d < best.Distance {
			best.Time = t
			best.Distance = d
		}
		if d < s.cfg.Threshold {
			best.EarlyExit = true
			break
		}
	}
	s.prop.metrics.searched(time.Since(began).Seconds(), best.EarlyExit)
	level.Debug(s.logger).Log("subsys", "search", "impactor", imp.Name, "deflected", deflected, "time", best.Time, "distance", best.Distance, "evaluated", best.Evaluated, "early_exit", best.EarlyExit)
	return best, nil
}

// Trajectory samples count+1 impactor positions from start every step seconds,
// with their distance to Earth.
func (s *Searcher) Trajectory(start, step float64, count int, imp Impactor, earth Elements, deflected bool) []TrajectoryPoint {
	if count < 0 {
		return nil
	}
	el := imp.Select(deflected)
	pts := make([]TrajectoryPoint, 0, count+1)
	for i := 0; i <= count; i++ {
		t := start + float64(i)*step
		R := s.prop.Propagate(el, t).R
		pts = append(pts, TrajectoryPoint{Time: t, Position: R, DistanceToEarth: Distance(R, s.prop.Propagate(earth, t).R)})
	}
	return pts
}
