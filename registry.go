package orbits

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Fallback element ranges.
const (
	fallbackMinA, fallbackMaxA           = 1.2, 1.7
	fallbackMinE, fallbackMaxE           = 0.1, 0.4
	fallbackMaxI                         = 20.0
	fallbackMinPeriod, fallbackMaxPeriod = 300.0, 700.0
)

// ElementsProvider resolves live elements for an asteroid identifier.
type ElementsProvider interface {
	Elements(ctx context.Context, id string) (Elements, error)
}

// FallbackElements draws a plausible, arbitrary element set from src. The id is
// not used to seed anything: the output only depends on src.
func FallbackElements(id string, src rand.Source) Elements {
	uniform := func(lo, hi float64) float64 {
		return distuv.Uniform{Min: lo, Max: hi, Src: src}.Rand()
	}
	a := uniform(fallbackMinA, fallbackMaxA)
	e := uniform(fallbackMinE, fallbackMaxE)
	i := uniform(0, fallbackMaxI)
	Ω := uniform(0, 360)
	ω := uniform(0, 360)
	m0 := uniform(0, 360)
	period := uniform(fallbackMinPeriod, fallbackMaxPeriod)
	return NewElements(a, e, i, Ω, ω, m0, J2000, period)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRandSource sets the source of the fallback generator.
func WithRandSource(src rand.Source) RegistryOption {
	return func(r *Registry) {
		r.src = src
	}
}

// WithOverrides adds or replaces bodies, keyed by name.
func WithOverrides(records map[string]ElementsRecord) RegistryOption {
	return func(r *Registry) {
		for name, rec := range records {
			key := normalizeID(name)
			b := Body{Name: name, Elements: rec.Elements()}
			if existing, ok := r.bodies[key]; ok {
				b.Name, b.Designation = existing.Name, existing.Designation
			}
			if _, ok := r.planets[key]; ok {
				r.planets[key] = b
			}
			r.add(b)
		}
	}
}

// WithRegistryLogger sets the logger used to report fallbacks.
func WithRegistryLogger(logger kitlog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = orNop(logger)
	}
}

// Registry is the read-only table of known element sets. Only the fallback
// generator holds mutable state, behind a mutex.
type Registry struct {
	bodies  map[string]Body
	planets map[string]Body
	minor   map[string]Body // single word keys of non planets
	logger  kitlog.Logger

	mu  sync.Mutex
	src rand.Source
}

// NewRegistry builds a registry holding the planets and the small bodies.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		bodies:  make(map[string]Body),
		planets: make(map[string]Body),
		minor:   make(map[string]Body),
		logger:  kitlog.NewNopLogger(),
	}
	for _, b := range Planets {
		r.planets[normalizeID(b.Name)] = b
		r.add(b)
	}
	for _, b := range SmallBodies {
		r.add(b)
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.src == nil {
		r.src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process wide registry, built on first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

func (r *Registry) add(b Body) {
	name := normalizeID(b.Name)
	r.bodies[name] = b
	if b.Designation != "" {
		r.bodies[normalizeID(b.Designation)] = b
		r.bodies[normalizeID(b.Designation+" "+b.Name)] = b
	}
	if _, ok := r.planets[name]; ok {
		return
	}
	r.minor[name] = b
	if b.Designation != "" {
		r.minor[normalizeID(b.Designation)] = b
	}
}

// normalizeID lower cases, drops parentheses and collapses spaces.
func normalizeID(id string) string {
	id = strings.NewReplacer("(", " ", ")", " ").Replace(strings.ToLower(id))
	return strings.Join(strings.Fields(id), " ")
}

// Lookup returns the elements of a known body. Identifiers such as
// "101955 Bennu (1999 RQ36)" match a small body on any of their words; planets
// only match on their full name.
func (r *Registry) Lookup(id string) (Elements, bool) {
	key := normalizeID(id)
	if b, ok := r.bodies[key]; ok {
		return b.Elements, true
	}
	for _, word := range strings.Fields(key) {
		if b, ok := r.minor[word]; ok {
			return b.Elements, true
		}
	}
	return Elements{}, false
}

// Planet returns the elements of a major planet.
func (r *Registry) Planet(name string) (Elements, error) {
	b, ok := r.planets[normalizeID(name)]
	if !ok {
		return Elements{}, fmt.Errorf("undefined planet '%s'", name)
	}
	return b.Elements, nil
}

// Earth returns the elements of Earth.
func (r *Registry) Earth() Elements {
	return r.planets["earth"].Elements
}

// Names returns the sorted names of all known bodies.
func (r *Registry) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, b := range r.bodies {
		if !seen[b.Name] {
			seen[b.Name] = true
			names = append(names, b.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Fallback draws arbitrary elements from the registry random source.
func (r *Registry) Fallback(id string) Elements {
	r.mu.Lock()
	defer r.mu.Unlock()
	return FallbackElements(id, r.src)
}

// Resolve always returns some elements for id: from the provider when it
// succeeds, then from the static table, then from the fallback generator.
// The provider may be nil.
func (r *Registry) Resolve(ctx context.Context, id string, provider ElementsProvider) Elements {
	if provider != nil {
		el, err := provider.Elements(ctx, id)
		if err == nil {
			return el
		}
		level.Warn(r.logger).Log("subsys", "registry", "msg", "provider failed", "id", id, "err", err)
	}
	if el, ok := r.Lookup(id); ok {
		return el
	}
	el := r.Fallback(id)
	level.Info(r.logger).Log("subsys", "registry", "msg", "using random fallback elements", "id", id, "elements", el)
	return el
}
