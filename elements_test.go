package orbits

import (
	"strings"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestNewElements(t *testing.T) {
	el := NewElements(1.5, 0.2, 10, 370, -30, 720, J2000, -5)
	if !scalar.EqualWithinAbs(el.I(), Deg2rad(10), 1e-15) {
		t.Fatalf("i=%f", el.I())
	}
	if !scalar.EqualWithinAbs(Rad2deg(el.AscendingNode()), 10, 1e-9) {
		t.Fatalf("Ω=%f", Rad2deg(el.AscendingNode()))
	}
	if !scalar.EqualWithinAbs(Rad2deg(el.ArgPeriapsis()), 330, 1e-9) {
		t.Fatalf("ω=%f", Rad2deg(el.ArgPeriapsis()))
	}
	if !scalar.EqualWithinAbs(el.M0(), 0, 1e-12) && !scalar.EqualWithinAbs(el.M0(), twoPi, 1e-12) {
		t.Fatalf("M0=%f", el.M0())
	}
	if _, ok := el.Period(); ok {
		t.Fatal("a negative period means no period")
	}
	if !scalar.EqualWithinAbs(el.Perihelion(), 1.2, 1e-12) || !scalar.EqualWithinAbs(el.Aphelion(), 1.8, 1e-12) {
		t.Fatalf("q=%f Q=%f", el.Perihelion(), el.Aphelion())
	}
	if !scalar.EqualWithinAbs(el.SemiParameter(), 1.5*0.96, 1e-12) {
		t.Fatalf("p=%f", el.SemiParameter())
	}
	if dt := el.EpochTime().Sub(time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)); dt > time.Millisecond || dt < -time.Millisecond {
		t.Fatalf("epoch %s", el.EpochTime())
	}
	if s := el.String(); !strings.HasPrefix(s, "a=1.500000 e=0.200000") {
		t.Fatalf("String: %s", s)
	}
}

func TestDeflect(t *testing.T) {
	el := NewElements(1.1, 0.2, 6, 2, 355, 100, J2000, 400)
	d := el.Deflect(0.01, 10)
	if !scalar.EqualWithinAbs(d.E(), 0.21, 1e-12) {
		t.Fatalf("e=%f", d.E())
	}
	if !scalar.EqualWithinAbs(Rad2deg(d.ArgPeriapsis()), 5, 1e-9) {
		t.Fatalf("ω=%f", Rad2deg(d.ArgPeriapsis()))
	}
	if el.E() != 0.2 || !scalar.EqualWithinAbs(Rad2deg(el.ArgPeriapsis()), 355, 1e-9) {
		t.Fatal("Deflect modified the original elements")
	}
	if d.A() != el.A() || d.I() != el.I() || d.M0() != el.M0() || d.EpochJD() != el.EpochJD() {
		t.Fatal("Deflect changed other elements")
	}
	if p, _ := d.Period(); p != 400 {
		t.Fatalf("period %f", p)
	}
}

func TestElementsRecord(t *testing.T) {
	el := NewElements(1.1, 0.2, 6, 2, 355, 100, 2460200.5, 400)
	rec := el.Record()
	if !scalar.EqualWithinAbs(rec.ArgPeriapsisDeg, 355, 1e-9) || rec.PeriodDays != 400 || rec.EpochJulianDay != 2460200.5 {
		t.Fatalf("unexpected record %+v", rec)
	}
	back := rec.Elements()
	for _, pair := range [][2]float64{
		{back.A(), el.A()}, {back.E(), el.E()}, {back.I(), el.I()},
		{back.AscendingNode(), el.AscendingNode()}, {back.ArgPeriapsis(), el.ArgPeriapsis()}, {back.M0(), el.M0()},
	} {
		if !scalar.EqualWithinAbs(pair[0], pair[1], 1e-12) {
			t.Fatalf("record round trip: %f != %f", pair[0], pair[1])
		}
	}
	if (ElementsRecord{SemiMajorAxisAU: 1}).Elements().EpochJD() != J2000 {
		t.Fatal("a zero epoch should default to J2000")
	}
}
