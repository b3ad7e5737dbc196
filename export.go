package orbits

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// trajectoryHeader is the first row of trajectory CSV files.
var trajectoryHeader = []string{"time_unix", "jd", "x", "y", "z", "distance_to_earth"}

// ToText returns the CSV record of this point.
func (p TrajectoryPoint) ToText() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{f(p.Time), strconv.FormatFloat(UnixToJD(p.Time), 'f', 6, 64), f(p.Position.X), f(p.Position.Y), f(p.Position.Z), f(p.DistanceToEarth)}
}

// FromText initializes from a CSV record of six items. The Julian day column
// is informative only and is not read back.
func (p *TrajectoryPoint) FromText(record []string) error {
	if len(record) != len(trajectoryHeader) {
		return fmt.Errorf("expected %d fields, got %d", len(trajectoryHeader), len(record))
	}
	var vals [6]float64
	for i, s := range record {
		if i == 1 {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("field %s: %w", trajectoryHeader[i], err)
		}
		vals[i] = v
	}
	p.Time = vals[0]
	p.Position = r3.Vec{X: vals[2], Y: vals[3], Z: vals[4]}
	p.DistanceToEarth = vals[5]
	return nil
}

// WriteTrajectoryCSV writes the points with a header row.
func WriteTrajectoryCSV(w io.Writer, points []TrajectoryPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trajectoryHeader); err != nil {
		return err
	}
	for _, p := range points {
		if err := cw.Write(p.ToText()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTrajectoryCSV parses what WriteTrajectoryCSV wrote.
func ReadTrajectoryCSV(r io.Reader) ([]TrajectoryPoint, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	if len(header) != len(trajectoryHeader) || header[0] != trajectoryHeader[0] {
		return nil, errors.New("not a trajectory file")
	}
	var points []TrajectoryPoint
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			return points, nil
		}
		if err != nil {
			return nil, err
		}
		var p TrajectoryPoint
		if err := p.FromText(record); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		points = append(points, p)
	}
}
