package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/planetdefense/orbits"
	"github.com/planetdefense/orbits/neows"
)

// env is what every sub command needs, built once by the root command.
type env struct {
	conf     orbits.Config
	logger   kitlog.Logger
	prop     *orbits.Propagator
	registry *orbits.Registry
	provider orbits.ElementsProvider
	metrics  *orbits.Metrics
	server   *http.Server
}

var (
	cfgFile     string
	logLevel    string
	asJSON      bool
	metricsAddr string
	providerDir string

	app env
)

var rootCmd = &cobra.Command{
	Use:   "impactor",
	Short: "Impactor propagates asteroid and planet orbits and assesses close approaches.",
	Long: `Impactor is the command line front-end of the planetary defense orbit core.
Bodies are resolved from NeoWs files (--provider-dir), then the built-in registry,
then a random placeholder orbit.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		conf, err := orbits.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") || conf.LogLevel == "" {
			conf.LogLevel = logLevel
		}
		app.conf = conf
		app.logger = orbits.NewLogger(os.Stderr, conf.LogLevel)

		opts := []orbits.PropagatorOption{orbits.WithLogger(app.logger)}
		if metricsAddr != "" {
			reg := prometheus.NewRegistry()
			m, err := orbits.NewMetrics(reg)
			if err != nil {
				return err
			}
			app.metrics = m
			opts = append(opts, orbits.WithMetrics(m))
			app.server = &http.Server{Addr: metricsAddr, Handler: m.Handler(), ReadHeaderTimeout: 5 * time.Second}
			go func() {
				if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					level.Error(app.logger).Log("subsys", "metrics", "err", err)
				}
			}()
		}
		app.prop = conf.Propagator(opts...)
		app.registry = conf.Registry(orbits.WithRegistryLogger(app.logger))
		if providerDir != "" {
			app.provider = neows.FileProvider{Dir: providerDir}
		}
		level.Debug(app.logger).Log("subsys", "config", "scene_scale", conf.SceneScale, "search_step", conf.Search.Step, "search_steps", conf.Search.Steps, "threshold", conf.Search.Threshold)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app.server == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return app.server.Shutdown(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file (toml, yaml or json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of tables")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
	rootCmd.PersistentFlags().StringVar(&providerDir, "provider-dir", "", "directory of NeoWs <id>.json files")

	rootCmd.AddCommand(bodiesCmd, positionCmd, orbitCmd, approachCmd, riskCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolve returns the elements of a body id.
func (e *env) resolve(ctx context.Context, id string) orbits.Elements {
	return e.registry.Resolve(ctx, id, e.provider)
}

// parseTime reads Unix seconds or a date string; empty means now.
func parseTime(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return float64(time.Now().UnixNano()) / 1e9, nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	t, err := orbits.ApproachISO(s).Seconds()
	if err != nil {
		return 0, fmt.Errorf("time %q: %w", s, err)
	}
	return t, nil
}
