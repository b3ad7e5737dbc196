package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/planetdefense/orbits"
)

func TestParseTime(t *testing.T) {
	if v, err := parseTime("1700000000.5"); err != nil || v != 1700000000.5 {
		t.Fatalf("unix: %f %v", v, err)
	}
	exp := float64(time.Date(2029, time.April, 13, 0, 0, 0, 0, time.UTC).Unix())
	if v, err := parseTime("2029-04-13"); err != nil || v != exp {
		t.Fatalf("date: %f %v", v, err)
	}
	before := float64(time.Now().Unix())
	if v, err := parseTime(""); err != nil || v < before {
		t.Fatalf("now: %f %v", v, err)
	}
	if _, err := parseTime("yesterday"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestCommands(t *testing.T) {
	csv := filepath.Join(t.TempDir(), "trajectory.csv")
	for _, args := range [][]string{
		{"bodies"},
		{"position", "earth", "Bennu", "--at", "2025-01-01"},
		{"orbit", "Apophis", "--points", "16", "--json"},
		{"approach", "Bennu", "--from", "1700000000", "--csv", csv, "--csv-points", "24"},
		{"risk", filepath.Join("..", "..", "neows", "testdata", "2101955.json"), "--now", "2055-01-01"},
		{"position", "2101955", "--provider-dir", filepath.Join("..", "..", "neows", "testdata")},
	} {
		rootCmd.SetArgs(args)
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("%v: %s", args, err)
		}
	}

	f, err := os.Open(csv)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	pts, err := orbits.ReadTrajectoryCSV(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 25 {
		t.Fatalf("expected 25 trajectory points, got %d", len(pts))
	}

	rootCmd.SetArgs([]string{"risk", "missing.json"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
