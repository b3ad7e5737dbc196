package orbits

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// ErrInvalidApproachDate is returned when an approach date cannot be parsed.
var ErrInvalidApproachDate = errors.New("invalid approach date")

type approachKind uint8

const (
	approachUnset approachKind = iota
	approachISO
	approachUnix
)

// approachLayouts are tried in order on date strings.
var approachLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-Jan-02 15:04", // NeoWs close_approach_date_full
	"2006-01-02",
}

// ApproachTime is either a date string or a Unix timestamp in seconds.
type ApproachTime struct {
	kind approachKind
	iso  string
	unix float64
}

// ApproachISO wraps an ISO-like date string, interpreted as UTC when no offset is given.
func ApproachISO(s string) ApproachTime {
	return ApproachTime{kind: approachISO, iso: s}
}

// ApproachUnix wraps a timestamp in seconds since the Unix epoch.
func ApproachUnix(seconds float64) ApproachTime {
	return ApproachTime{kind: approachUnix, unix: seconds}
}

// Seconds resolves the approach time to seconds since the Unix epoch.
func (at ApproachTime) Seconds() (float64, error) {
	switch at.kind {
	case approachUnix:
		return at.unix, nil
	case approachISO:
		s := strings.TrimSpace(at.iso)
		for _, layout := range approachLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return float64(t.UnixNano()) / 1e9, nil
			}
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidApproachDate, at.iso)
	}
	return 0, fmt.Errorf("%w: unset", ErrInvalidApproachDate)
}

// String implements the Stringer interface.
func (at ApproachTime) String() string {
	if at.kind == approachUnix {
		return fmt.Sprintf("%.0f", at.unix)
	}
	return at.iso
}

// ApproachRecord is a close approach as reported by a data provider.
type ApproachRecord struct {
	Body                string
	Date                ApproachTime
	MissDistanceKm      float64
	RelativeVelocityKmS float64
}

// ApproachInfo is an approach seen from a reference "now".
type ApproachInfo struct {
	Timestamp float64 // seconds since the Unix epoch
	TimeUntil float64 // seconds, negative for past approaches
	IsPast    bool
	ISO       string // RFC 3339, UTC
	Display   string
	Precision string
}

// DaysUntil returns TimeUntil in days.
func (info ApproachInfo) DaysUntil() float64 {
	return info.TimeUntil / SecondsPerDay
}

// DisplayFormatter renders an approach instant for humans.
type DisplayFormatter func(t time.Time) string

// DefaultDisplayFormat is the display layout of the default formatter.
const DefaultDisplayFormat = "Jan 2, 2006 15:04 MST"

func defaultDisplay(t time.Time) string {
	return t.UTC().Format(DefaultDisplayFormat)
}

// Analyzer derives approach timing. The zero value is ready to use.
type Analyzer struct {
	Format DisplayFormatter
	Logger kitlog.Logger
}

var defaultAnalyzer Analyzer

// Analyze uses the default analyzer.
func Analyze(at ApproachTime, now float64, precision string) (ApproachInfo, error) {
	return defaultAnalyzer.Analyze(at, now, precision)
}

// Analyze normalizes an approach time against now (seconds since the Unix epoch).
func (a *Analyzer) Analyze(at ApproachTime, now float64, precision string) (ApproachInfo, error) {
	ts, err := at.Seconds()
	if err != nil {
		return ApproachInfo{}, err
	}
	sec, frac := math.Modf(ts)
	t := time.Unix(int64(sec), int64(frac*1e9)).UTC()
	format := a.Format
	if format == nil {
		format = defaultDisplay
	}
	until := ts - now
	return ApproachInfo{
		Timestamp: ts,
		TimeUntil: until,
		IsPast:    until < 0,
		ISO:       t.Format(time.RFC3339),
		Display:   format(t),
		Precision: precision,
	}, nil
}

// ApproachSummary pairs a record with its analysis and risk.
type ApproachSummary struct {
	Record ApproachRecord
	Info   ApproachInfo
	Risk   RiskLevel
}

// Summarize analyzes all records, skipping those with unparseable dates.
func (a *Analyzer) Summarize(records []ApproachRecord, now float64, precision string) []ApproachSummary {
	out := make([]ApproachSummary, 0, len(records))
	for _, rec := range records {
		info, err := a.Analyze(rec.Date, now, precision)
		if err != nil {
			level.Debug(orNop(a.Logger)).Log("subsys", "approach", "msg", "skipping record", "body", rec.Body, "err", err)
			continue
		}
		out = append(out, ApproachSummary{Record: rec, Info: info, Risk: ClassifyRisk(info, rec.MissDistanceKm)})
	}
	return out
}

// NextApproach returns the earliest future approach among records. Records
// with unparseable dates are skipped and never abort the scan.
func (a *Analyzer) NextApproach(records []ApproachRecord, now float64) (ApproachRecord, ApproachInfo, bool) {
	var (
		next  ApproachRecord
		info  ApproachInfo
		found bool
	)
	for _, s := range a.Summarize(records, now, "") {
		if s.Info.IsPast {
			continue
		}
		if !found || s.Info.Timestamp < info.Timestamp {
			next, info, found = s.Record, s.Info, true
		}
	}
	return next, info, found
}

// NextApproach uses the default analyzer.
func NextApproach(records []ApproachRecord, now float64) (ApproachRecord, ApproachInfo, bool) {
	return defaultAnalyzer.NextApproach(records, now)
}

// SummarizeApproaches uses the default analyzer.
func SummarizeApproaches(records []ApproachRecord, now float64) []ApproachSummary {
	return defaultAnalyzer.Summarize(records, now, "")
}
