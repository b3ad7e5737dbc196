package orbits

import (
	"math"
	"strings"
	"testing"
)

func TestClassifyRisk(t *testing.T) {
	day := 86400.0
	for _, tc := range []struct {
		days   float64
		missKm float64
		exp    RiskLevel
	}{
		{29, 2*EarthRadiusKm - 1, RiskCritical},
		{31, 2*EarthRadiusKm - 1, RiskHigh},
		{29, 2 * EarthRadiusKm, RiskHigh},
		{89, 5*EarthRadiusKm - 1, RiskHigh},
		{89, 5 * EarthRadiusKm, RiskMedium},
		{91, 100, RiskMedium},
		{364, 1e9, RiskMedium},
		{365, 100, RiskLow},
		{1000, 100, RiskLow},
		{-1, 100, RiskLow},
	} {
		info := ApproachInfo{TimeUntil: tc.days * day, IsPast: tc.days < 0}
		if got := ClassifyRisk(info, tc.missKm); got != tc.exp {
			t.Fatalf("%f days, %f km: got %s, expected %s", tc.days, tc.missKm, got, tc.exp)
		}
	}
}

func TestRiskLevelString(t *testing.T) {
	for _, r := range []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical} {
		back, err := ParseRiskLevel(r.String())
		if err != nil || back != r {
			t.Fatalf("%s: %s %v", r, back, err)
		}
	}
	if _, err := ParseRiskLevel("extreme"); err == nil {
		t.Fatal("expected an error")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on an unknown level")
		}
	}()
	_ = RiskLevel(42).String()
}

func TestFormatTimeUntil(t *testing.T) {
	const (
		minute = 60.0
		hour   = 60 * minute
		day    = 24 * hour
	)
	for _, tc := range []struct {
		seconds float64
		exp     string
	}{
		{0, "imminent"},
		{59, "imminent"},
		{-50, "just now"},
		{60, "in 1 minute"},
		{-5 * minute, "5 minutes ago"},
		{hour, "in 1 hour"},
		{2*hour + 5*minute, "in 2 hours 5 minutes"},
		{-(2*hour + 5*minute), "2 hours 5 minutes ago"},
		{3*day + 4*hour, "in 3 days 4 hours"},
		{3*day + 4*hour + 59*minute, "in 3 days 4 hours"},
		{day + 30*minute, "in 1 day"},
		{-400 * day, "400 days ago"},
	} {
		if got := FormatTimeUntil(tc.seconds); got != tc.exp {
			t.Fatalf("%f: got %q, expected %q", tc.seconds, got, tc.exp)
		}
	}
}

func TestFormatTimeUntilBounds(t *testing.T) {
	if s := FormatTimeUntil(math.NaN()); s != "unknown" {
		t.Fatalf("NaN: %q", s)
	}
	far := FormatTimeUntil(math.Inf(1))
	if far != "in 11574074074 days 1 hour" {
		t.Fatalf("+Inf: %q", far)
	}
	if s := FormatTimeUntil(1e300); s != far {
		t.Fatalf("1e300: %q", s)
	}
	past := FormatTimeUntil(math.Inf(-1))
	if !strings.HasSuffix(past, " ago") || strings.Contains(past, "-") {
		t.Fatalf("-Inf: %q", past)
	}
}
