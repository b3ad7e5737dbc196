package orbits

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// J2000 is the Julian day of the J2000.0 epoch.
	J2000 = 2451545.0
	// DaysPerYear is the Julian year length used by Kepler's third law here.
	DaysPerYear = 365.25
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
)

// Elements defines a heliocentric orbit via its classical orbital elements.
// Angles are stored in radians. An Elements value is never mutated once built;
// use Deflect to derive a perturbed copy.
type Elements struct {
	a, e, i, Ω, ω, m0 float64
	epoch             float64 // Julian day
	period            float64 // days, zero when absent
}

// NewElements creates an element set.
// WARNING: Angles must be in degrees not radian.
// A non positive period means the period is derived from the semi major axis.
func NewElements(a, e, i, Ω, ω, m0, epochJD, periodDays float64) Elements {
	if periodDays < 0 {
		periodDays = 0
	}
	return Elements{a: a, e: e, i: Deg2rad(i), Ω: Deg2rad(Ω), ω: Deg2rad(ω), m0: Deg2rad(m0), epoch: epochJD, period: periodDays}
}

// A returns the semi major axis in AU.
func (el Elements) A() float64 { return el.a }

// E returns the eccentricity.
func (el Elements) E() float64 { return el.e }

// I returns the inclination in radians.
func (el Elements) I() float64 { return el.i }

// ArgPeriapsis returns the argument of periapsis in radians.
func (el Elements) ArgPeriapsis() float64 { return el.ω }

// AscendingNode returns the longitude of the ascending node in radians.
func (el Elements) AscendingNode() float64 { return el.Ω }

// M0 returns the mean anomaly at epoch in radians.
func (el Elements) M0() float64 { return el.m0 }

// EpochJD returns the Julian day at which the elements are valid.
func (el Elements) EpochJD() float64 { return el.epoch }

// EpochTime returns the epoch as a UTC time.
func (el Elements) EpochTime() time.Time {
	return julian.JDToTime(el.epoch).UTC()
}

// Period returns the cached period in days, if any.
func (el Elements) Period() (float64, bool) {
	return el.period, el.period > 0
}

// PeriodDays returns the orbital period in days, falling back on Kepler's
// third law for a solar mass central body.
func (el Elements) PeriodDays() float64 {
	if el.period > 0 {
		return el.period
	}
	return DaysPerYear * math.Pow(el.a, 1.5)
}

// Perihelion returns the perihelion distance in AU.
func (el Elements) Perihelion() float64 {
	return el.a * (1 - el.e)
}

// Aphelion returns the aphelion distance in AU.
func (el Elements) Aphelion() float64 {
	return el.a * (1 + el.e)
}

// SemiParameter returns the semi latus rectum in AU.
func (el Elements) SemiParameter() float64 {
	return el.a * (1 - el.e*el.e)
}

// Deflect returns a copy of these elements with the eccentricity shifted by Δe
// and the argument of periapsis by Δω (in degrees).
func (el Elements) Deflect(Δe, Δω float64) Elements {
	deflected := el
	deflected.e += Δe
	deflected.ω = normalizeAngle(el.ω + Δω*deg2rad)
	return deflected
}

// Record returns the exported representation of these elements.
func (el Elements) Record() ElementsRecord {
	return ElementsRecord{
		SemiMajorAxisAU:       el.a,
		Eccentricity:          el.e,
		InclinationDeg:        Rad2deg(el.i),
		AscendingNodeDeg:      Rad2deg(el.Ω),
		ArgPeriapsisDeg:       Rad2deg(el.ω),
		MeanAnomalyAtEpochDeg: Rad2deg(el.m0),
		EpochJulianDay:        el.epoch,
		PeriodDays:            el.period,
	}
}

// String implements the stringer interface.
func (el Elements) String() string {
	return fmt.Sprintf("a=%.6f e=%.6f i=%.3f Ω=%.3f ω=%.3f M=%.3f epoch=%.1f", el.a, el.e, Rad2deg(el.i), Rad2deg(el.Ω), Rad2deg(el.ω), Rad2deg(el.m0), el.epoch)
}

// ElementsRecord is the serializable form of Elements, with angles in degrees.
type ElementsRecord struct {
	SemiMajorAxisAU       float64 `json:"semi_major_axis_au" mapstructure:"a"`
	Eccentricity          float64 `json:"eccentricity" mapstructure:"e"`
	InclinationDeg        float64 `json:"inclination_deg" mapstructure:"i"`
	AscendingNodeDeg      float64 `json:"ascending_node_deg" mapstructure:"node"`
	ArgPeriapsisDeg       float64 `json:"arg_periapsis_deg" mapstructure:"peri"`
	MeanAnomalyAtEpochDeg float64 `json:"mean_anomaly_deg" mapstructure:"m0"`
	EpochJulianDay        float64 `json:"epoch_jd" mapstructure:"epoch"`
	PeriodDays            float64 `json:"period_days,omitempty" mapstructure:"period"`
}

// Elements converts the record. A zero epoch defaults to J2000.
func (r ElementsRecord) Elements() Elements {
	epoch := r.EpochJulianDay
	if epoch == 0 {
		epoch = J2000
	}
	return NewElements(r.SemiMajorAxisAU, r.Eccentricity, r.InclinationDeg, r.AscendingNodeDeg, r.ArgPeriapsisDeg, r.MeanAnomalyAtEpochDeg, epoch, r.PeriodDays)
}
