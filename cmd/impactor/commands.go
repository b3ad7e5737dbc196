package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/planetdefense/orbits"
	"github.com/planetdefense/orbits/neows"
)

var bodiesCmd = &cobra.Command{
	Use:   "bodies",
	Short: "List the bodies of the built-in registry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := app.registry.Names()
		if asJSON {
			out := make(map[string]orbits.ElementsRecord, len(names))
			for _, name := range names {
				el, _ := app.registry.Lookup(name)
				out[name] = el.Record()
			}
			return printJSON(out)
		}
		w := newTable(os.Stdout)
		fmt.Fprintln(w, "NAME\ta (AU)\te\ti (deg)\tPERIOD (d)\tEPOCH")
		for _, name := range names {
			el, _ := app.registry.Lookup(name)
			fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.4f\t%.2f\t%s\n", name, el.A(), el.E(), orbits.Rad2deg(el.I()), el.PeriodDays(), el.EpochTime().Format("2006-01-02"))
		}
		return w.Flush()
	},
}

var positionAt string

type positionOutput struct {
	Body            string     `json:"body"`
	Time            float64    `json:"time_unix"`
	JulianDay       float64    `json:"jd"`
	Position        [3]float64 `json:"position"`
	RadiusAU        float64    `json:"radius_au"`
	MeanAnomalyDeg  float64    `json:"mean_anomaly_deg"`
	TrueAnomalyDeg  float64    `json:"true_anomaly_deg"`
	KeplerConverged bool       `json:"kepler_converged"`
	SceneUnitsPerAU float64    `json:"scene_units_per_au"`
}

var positionCmd = &cobra.Command{
	Use:   "position <body>...",
	Short: "Heliocentric position of bodies at a given time",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseTime(positionAt)
		if err != nil {
			return err
		}
		var out []positionOutput
		for _, id := range args {
			pos := app.prop.Propagate(app.resolve(cmd.Context(), id), t)
			out = append(out, positionOutput{
				Body:            id,
				Time:            t,
				JulianDay:       orbits.UnixToJD(t),
				Position:        [3]float64{pos.R.X, pos.R.Y, pos.R.Z},
				RadiusAU:        pos.RadiusAU,
				MeanAnomalyDeg:  orbits.Rad2deg(pos.MeanAnomaly),
				TrueAnomalyDeg:  orbits.Rad2deg(pos.TrueAnomaly),
				KeplerConverged: pos.Converged,
				SceneUnitsPerAU: app.prop.SceneScale(),
			})
		}
		if asJSON {
			return printJSON(out)
		}
		printHeader("Positions at JD %.5f (%.0f scene units per AU)", orbits.UnixToJD(t), app.prop.SceneScale())
		w := newTable(os.Stdout)
		fmt.Fprintln(w, "BODY\tX\tY\tZ\tr (AU)\tν (deg)")
		for _, o := range out {
			fmt.Fprintf(w, "%s\t%.5f\t%.5f\t%.5f\t%.5f\t%.3f\n", o.Body, o.Position[0], o.Position[1], o.Position[2], o.RadiusAU, o.TrueAnomalyDeg)
		}
		return w.Flush()
	},
}

var orbitPoints int

var orbitCmd = &cobra.Command{
	Use:   "orbit <body>",
	Short: "Sample the orbit ellipse of a body, as x,y,z rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		el := app.resolve(cmd.Context(), args[0])
		pts := orbits.SampleOrbit(el, orbitPoints, app.prop.SceneScale())
		if asJSON {
			out := make([][3]float64, len(pts))
			for i, p := range pts {
				out[i] = [3]float64{p.X, p.Y, p.Z}
			}
			return printJSON(out)
		}
		w := newTable(os.Stdout)
		fmt.Fprintln(w, "X\tY\tZ")
		for _, p := range pts {
			fmt.Fprintf(w, "%.6f\t%.6f\t%.6f\n", p.X, p.Y, p.Z)
		}
		return w.Flush()
	},
}

var (
	approachFrom      string
	approachΔe        float64
	approachΔω        float64
	approachCSV       string
	approachCSVStep   float64
	approachCSVPoints int
)

type approachOutput struct {
	Body      string  `json:"body"`
	Deflected bool    `json:"deflected"`
	Time      float64 `json:"time_unix"`
	ISO       string  `json:"iso"`
	Distance  float64 `json:"distance_scene"`
	MissKm    float64 `json:"miss_km"`
	Evaluated int     `json:"evaluated"`
	EarlyExit bool    `json:"early_exit"`
}

var approachCmd = &cobra.Command{
	Use:   "approach <body>",
	Short: "Search the closest approach to Earth of the nominal and deflected orbits",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseTime(approachFrom)
		if err != nil {
			return err
		}
		imp := orbits.NewImpactor(args[0], app.resolve(cmd.Context(), args[0]), approachΔe, approachΔω)
		earth := app.registry.Earth()
		s := orbits.NewSearcher(app.prop, app.conf.Search)

		var out []approachOutput
		for _, deflected := range []bool{false, true} {
			res, err := s.ClosestApproachContext(cmd.Context(), start, imp, earth, deflected)
			if err != nil {
				return err
			}
			out = append(out, approachOutput{
				Body:      imp.Name,
				Deflected: deflected,
				Time:      res.Time,
				ISO:       time.Unix(int64(res.Time), 0).UTC().Format(time.RFC3339),
				Distance:  res.Distance,
				MissKm:    res.Distance / app.prop.SceneScale() * orbits.AU,
				Evaluated: res.Evaluated,
				EarlyExit: res.EarlyExit,
			})
		}

		if approachCSV != "" {
			f, err := os.Create(approachCSV)
			if err != nil {
				return err
			}
			pts := s.Trajectory(start, approachCSVStep, approachCSVPoints, imp, earth, true)
			if err := orbits.WriteTrajectoryCSV(f, pts); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
		}

		if asJSON {
			return printJSON(out)
		}
		printHeader("Closest approach of %s to Earth", imp.Name)
		w := newTable(os.Stdout)
		fmt.Fprintln(w, "ORBIT\tDATE\tDISTANCE (scene)\tMISS (km)\tSTEPS\tBELOW THRESHOLD")
		for _, o := range out {
			orbit := "nominal"
			if o.Deflected {
				orbit = "deflected"
			}
			fmt.Fprintf(w, "%s\t%s\t%.5f\t%.0f\t%d\t%t\n", orbit, o.ISO, o.Distance, o.MissKm, o.Evaluated, o.EarlyExit)
		}
		return w.Flush()
	},
}

var riskNow string

type riskOutput struct {
	Date       string  `json:"date"`
	ISO        string  `json:"iso"`
	TimeUntil  string  `json:"time_until"`
	DaysUntil  float64 `json:"days_until"`
	MissKm     float64 `json:"miss_km"`
	VelocityKm float64 `json:"velocity_km_s"`
	Risk       string  `json:"risk"`
	Precision  string  `json:"precision"`
}

var riskCmd = &cobra.Command{
	Use:   "risk <neows-file.json>",
	Short: "Summarize the close approaches of a NeoWs object and classify their risk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := parseTime(riskNow)
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		obj, err := neows.Decode(f)
		f.Close()
		if err != nil {
			return err
		}

		an := orbits.Analyzer{Logger: app.logger}
		records := obj.Approaches()
		summaries := an.Summarize(records, now, obj.Precision())
		out := make([]riskOutput, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, riskOutput{
				Date:       s.Info.Display,
				ISO:        s.Info.ISO,
				TimeUntil:  orbits.FormatTimeUntil(s.Info.TimeUntil),
				DaysUntil:  s.Info.DaysUntil(),
				MissKm:     s.Record.MissDistanceKm,
				VelocityKm: s.Record.RelativeVelocityKmS,
				Risk:       s.Risk.String(),
				Precision:  s.Info.Precision,
			})
		}
		if asJSON {
			return printJSON(out)
		}

		printHeader("%s: %d close approaches (%d skipped)", obj.Name, len(summaries), len(records)-len(summaries))
		if next, info, ok := an.NextApproach(records, now); ok {
			fmt.Printf("next: %s, %s, %s\n", info.Display, orbits.FormatTimeUntil(info.TimeUntil), riskLabel(orbits.ClassifyRisk(info, next.MissDistanceKm)))
		}
		w := newTable(os.Stdout)
		fmt.Fprintln(w, "DATE\tWHEN\tMISS (km)\tVELOCITY (km/s)\tRISK")
		for i, s := range summaries {
			fmt.Fprintf(w, "%s\t%s\t%.0f\t%.3f\t%s\n", out[i].Date, out[i].TimeUntil, s.Record.MissDistanceKm, s.Record.RelativeVelocityKmS, riskLabel(s.Risk))
		}
		return w.Flush()
	},
}

func init() {
	positionCmd.Flags().StringVar(&positionAt, "at", "", "time as Unix seconds or a date, defaults to now")
	orbitCmd.Flags().IntVar(&orbitPoints, "points", 256, "number of segments of the sampled ellipse")

	approachCmd.Flags().StringVar(&approachFrom, "from", "", "search start as Unix seconds or a date, defaults to now")
	approachCmd.Flags().Float64Var(&approachΔe, "delta-e", 0.001, "eccentricity change of the deflected orbit")
	approachCmd.Flags().Float64Var(&approachΔω, "delta-w", 0.5, "argument of periapsis change of the deflected orbit, in degrees")
	approachCmd.Flags().StringVar(&approachCSV, "csv", "", "write the deflected trajectory to this CSV file")
	approachCmd.Flags().Float64Var(&approachCSVStep, "csv-step", 3600, "trajectory sampling step in seconds")
	approachCmd.Flags().IntVar(&approachCSVPoints, "csv-points", 1000, "number of trajectory steps")

	riskCmd.Flags().StringVar(&riskNow, "now", "", "reference time as Unix seconds or a date, defaults to now")
}
