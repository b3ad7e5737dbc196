// Package neows decodes near earth object records in the NASA NeoWs JSON
// layout into orbit core types. It does no network I/O.
package neows

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/planetdefense/orbits"
)

// Object is a NeoWs near earth object.
type Object struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Designation        string          `json:"designation"`
	PotentiallyHazard  bool            `json:"is_potentially_hazardous_asteroid"`
	CloseApproaches    []CloseApproach `json:"close_approach_data"`
	Orbit              *OrbitalData    `json:"orbital_data"`
	AbsoluteMagnitudeH float64         `json:"absolute_magnitude_h"`
}

// CloseApproach is one entry of close_approach_data.
type CloseApproach struct {
	Date         string `json:"close_approach_date"`
	DateFull     string `json:"close_approach_date_full"`
	EpochMillis  *int64 `json:"epoch_date_close_approach"`
	OrbitingBody string `json:"orbiting_body"`
	Velocity     struct {
		KmPerSecond string `json:"kilometers_per_second"`
	} `json:"relative_velocity"`
	Miss struct {
		Kilometers string `json:"kilometers"`
	} `json:"miss_distance"`
}

// OrbitalData is the orbital_data block. NeoWs encodes numbers as strings.
type OrbitalData struct {
	OrbitID          string `json:"orbit_id"`
	Epoch            string `json:"epoch_osculation"`
	Eccentricity     string `json:"eccentricity"`
	SemiMajorAxis    string `json:"semi_major_axis"`
	Inclination      string `json:"inclination"`
	AscendingNode    string `json:"ascending_node_longitude"`
	Period           string `json:"orbital_period"`
	PerihelionArg    string `json:"perihelion_argument"`
	MeanAnomaly      string `json:"mean_anomaly"`
	OrbitUncertainty string `json:"orbit_uncertainty"`
}

// Decode reads a single object.
func Decode(r io.Reader) (Object, error) {
	var obj Object
	if err := json.NewDecoder(r).Decode(&obj); err != nil {
		return Object{}, fmt.Errorf("neows: %w", err)
	}
	return obj, nil
}

// Record converts the orbital data. The period is optional.
func (o OrbitalData) Record() (orbits.ElementsRecord, error) {
	var rec orbits.ElementsRecord
	for _, f := range []struct {
		name string
		src  string
		dst  *float64
	}{
		{"epoch_osculation", o.Epoch, &rec.EpochJulianDay},
		{"eccentricity", o.Eccentricity, &rec.Eccentricity},
		{"semi_major_axis", o.SemiMajorAxis, &rec.SemiMajorAxisAU},
		{"inclination", o.Inclination, &rec.InclinationDeg},
		{"ascending_node_longitude", o.AscendingNode, &rec.AscendingNodeDeg},
		{"perihelion_argument", o.PerihelionArg, &rec.ArgPeriapsisDeg},
		{"mean_anomaly", o.MeanAnomaly, &rec.MeanAnomalyAtEpochDeg},
	} {
		v, err := parseFloat(f.src)
		if err != nil {
			return orbits.ElementsRecord{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}
	if o.Period != "" {
		period, err := parseFloat(o.Period)
		if err != nil {
			return orbits.ElementsRecord{}, fmt.Errorf("orbital_period: %w", err)
		}
		rec.PeriodDays = period
	}
	return rec, nil
}

// Elements converts the orbital data of the object.
func (obj Object) Elements() (orbits.Elements, error) {
	if obj.Orbit == nil {
		return orbits.Elements{}, fmt.Errorf("neows: %s: no orbital data", obj.ID)
	}
	rec, err := obj.Orbit.Record()
	if err != nil {
		return orbits.Elements{}, fmt.Errorf("neows: %s: %w", obj.ID, err)
	}
	return rec.Elements(), nil
}

// Approaches converts the close approach data. The epoch timestamp is used when
// present, otherwise the full date string. Entries with unreadable distances
// or velocities are kept with zero values; dates are validated later by the
// analyzer.
func (obj Object) Approaches() []orbits.ApproachRecord {
	out := make([]orbits.ApproachRecord, 0, len(obj.CloseApproaches))
	for _, ca := range obj.CloseApproaches {
		rec := orbits.ApproachRecord{Body: ca.OrbitingBody}
		switch {
		case ca.EpochMillis != nil:
			rec.Date = orbits.ApproachUnix(float64(*ca.EpochMillis) / 1e3)
		case ca.DateFull != "":
			rec.Date = orbits.ApproachISO(ca.DateFull)
		default:
			rec.Date = orbits.ApproachISO(ca.Date)
		}
		rec.MissDistanceKm, _ = parseFloat(ca.Miss.Kilometers)
		rec.RelativeVelocityKmS, _ = parseFloat(ca.Velocity.KmPerSecond)
		out = append(out, rec)
	}
	return out
}

// Precision returns the orbit uncertainty parameter as a precision tag.
func (obj Object) Precision() string {
	if obj.Orbit == nil || obj.Orbit.OrbitUncertainty == "" {
		return "unknown"
	}
	return "U" + obj.Orbit.OrbitUncertainty
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
