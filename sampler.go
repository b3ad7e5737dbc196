package orbits

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// SampleOrbit returns count+1 points tracing the full ellipse of el, with the
// true anomaly stepped uniformly over [0, 2π]. The last point repeats the
// first so that the loop is closed. Positions are scaled by scale (scene
// units per AU). This is the geometric ellipse and does not depend on time.
func SampleOrbit(el Elements, count int, scale float64) []r3.Vec {
	if count < 1 {
		return nil
	}
	p := el.SemiParameter()
	pts := make([]r3.Vec, count+1)
	for k := 0; k < count; k++ {
		ν := twoPi * float64(k) / float64(count)
		sinν, cosν := math.Sincos(ν)
		r := p / (1 + el.e*cosν)
		pts[k] = r3.Scale(scale, PQW2Helio(el.i, el.ω, el.Ω, r3.Vec{X: r * cosν, Y: r * sinν}))
	}
	pts[count] = pts[0]
	return pts
}

// OrbitSampler caches the last sampled ellipse and only recomputes it when the
// elements or the point count change.
type OrbitSampler struct {
	scale float64

	mu     sync.Mutex
	el     Elements
	count  int
	points []r3.Vec
}

// NewOrbitSampler returns a sampler producing points in scene units.
func NewOrbitSampler(scale float64) *OrbitSampler {
	return &OrbitSampler{scale: scale}
}

// Sample returns the ellipse points for el. The returned slice is shared with
// the cache and must not be modified.
func (s *OrbitSampler) Sample(el Elements, count int) []r3.Vec {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.points != nil && s.el == el && s.count == count {
		return s.points
	}
	s.el = el
	s.count = count
	s.points = SampleOrbit(el, count, s.scale)
	return s.points
}
