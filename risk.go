package orbits

import (
	"fmt"
	"math"
	"strings"
)

// EarthRadiusKm is the mean Earth radius used by the risk thresholds.
const EarthRadiusKm = 6371.0

// RiskLevel classifies an approach.
type RiskLevel uint8

const (
	// RiskLow is a past, distant or far future approach.
	RiskLow RiskLevel = iota
	// RiskMedium is any approach within a year.
	RiskMedium
	// RiskHigh is within 90 days and 5 Earth radii.
	RiskHigh
	// RiskCritical is within 30 days and 2 Earth radii.
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	}
	panic("cannot stringify unknown risk level")
}

// ParseRiskLevel is the inverse of RiskLevel.String.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(s) {
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	case "critical":
		return RiskCritical, nil
	}
	return RiskLow, fmt.Errorf("unknown risk level '%s'", s)
}

// ClassifyRisk returns the risk of an approach given its miss distance in km.
// The rules are evaluated in order and the first match wins.
func ClassifyRisk(info ApproachInfo, missDistanceKm float64) RiskLevel {
	if info.IsPast {
		return RiskLow
	}
	days := info.DaysUntil()
	switch {
	case days < 30 && missDistanceKm < 2*EarthRadiusKm:
		return RiskCritical
	case days < 90 && missDistanceKm < 5*EarthRadiusKm:
		return RiskHigh
	case days < 365:
		return RiskMedium
	}
	return RiskLow
}

// maxFormattedSeconds caps FormatTimeUntil so that the minute count fits an int64.
const maxFormattedSeconds = 1e15

// FormatTimeUntil renders a signed duration in seconds, e.g. "in 3 days 4 hours"
// or "2 hours 5 minutes ago". Only the largest unit and the next one are shown.
// Durations under a minute are "imminent" or "just now".
func FormatTimeUntil(seconds float64) string {
	if math.IsNaN(seconds) {
		return "unknown"
	}
	abs := math.Min(math.Abs(seconds), maxFormattedSeconds)
	if abs < 60 {
		if seconds < 0 {
			return "just now"
		}
		return "imminent"
	}
	total := int64(abs / 60) // minutes
	days := total / (24 * 60)
	hours := (total / 60) % 24
	minutes := total % 60

	var parts []string
	switch {
	case days > 0:
		parts = append(parts, plural(days, "day"))
		if hours > 0 {
			parts = append(parts, plural(hours, "hour"))
		}
	case hours > 0:
		parts = append(parts, plural(hours, "hour"))
		if minutes > 0 {
			parts = append(parts, plural(minutes, "minute"))
		}
	default:
		parts = append(parts, plural(minutes, "minute"))
	}
	s := strings.Join(parts, " ")
	if seconds < 0 {
		return s + " ago"
	}
	return "in " + s
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
