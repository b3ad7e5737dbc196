package orbits

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetricsTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("second registration: %s", err)
	}
	a.Propagations.Inc()
	if v := testutil.ToFloat64(b.Propagations); v != 1 {
		t.Fatalf("collectors should be shared, got %f", v)
	}
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	NewPropagator(WithMetrics(m)).Propagate(NewRegistry().Earth(), 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "orbits_propagations_total 1") {
		t.Fatalf("unexpected exposition:\n%s", body)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.propagated()
	m.nonConverged()
	m.searched(1, true)
	if m.Handler() == nil {
		t.Fatal("expected the default handler")
	}
}
