package orbits

import (
	"bytes"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestTrajectoryCSV(t *testing.T) {
	reg := NewRegistry()
	bennu, _ := reg.Lookup("Bennu")
	s := NewSearcher(NewPropagator(), DefaultSearchConfig())
	pts := s.Trajectory(1.7e9, 7200, 12, NewImpactor("Bennu", bennu, 0, 0), reg.Earth(), false)

	var buf bytes.Buffer
	if err := WriteTrajectoryCSV(&buf, pts); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "time_unix,jd,x,y,z,distance_to_earth\n") {
		t.Fatalf("missing header: %q", buf.String())
	}
	back, err := ReadTrajectoryCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != len(pts) {
		t.Fatalf("read %d points, wrote %d", len(back), len(pts))
	}
	for i := range pts {
		if back[i] != pts[i] {
			t.Fatalf("point %d: %+v != %+v", i, back[i], pts[i])
		}
	}
}

func TestTrajectoryPointText(t *testing.T) {
	p := TrajectoryPoint{Time: 0, Position: r3.Vec{X: 1, Y: -2, Z: 0.5}, DistanceToEarth: 3}
	rec := p.ToText()
	if rec[1] != "2440587.500000" {
		t.Fatalf("jd column %q", rec[1])
	}
	var q TrajectoryPoint
	if err := q.FromText(rec); err != nil || q != p {
		t.Fatalf("%+v %v", q, err)
	}
	if err := q.FromText(rec[:3]); err == nil {
		t.Fatal("expected an error on a short record")
	}
	rec[4] = "z"
	if err := q.FromText(rec); err == nil || !strings.Contains(err.Error(), "field z") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestReadTrajectoryCSVErrors(t *testing.T) {
	if _, err := ReadTrajectoryCSV(strings.NewReader("a,b,c,d,e,f\n")); err == nil {
		t.Fatal("expected a header error")
	}
	if _, err := ReadTrajectoryCSV(strings.NewReader("time_unix,jd,x,y,z,distance_to_earth\n1,2,3,4,5,nope\n")); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("unexpected error %v", err)
	}
	if pts, err := ReadTrajectoryCSV(strings.NewReader("time_unix,jd,x,y,z,distance_to_earth\n")); err != nil || len(pts) != 0 {
		t.Fatalf("empty file: %v %v", pts, err)
	}
}
