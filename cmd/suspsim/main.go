package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/suspsim/internal/config"
	"github.com/san-kum/suspsim/internal/dashboard"
	"github.com/san-kum/suspsim/internal/logging"
	"github.com/san-kum/suspsim/internal/results"
	"github.com/san-kum/suspsim/internal/suspension"
)

var (
	configFile string
	preset     string
	logLevel   string

	// eval
	speed        float64
	radius       float64
	trackWidth   float64
	rollDistance float64
	weight       float64
	frontRatio   float64
	rearRatio    float64
	asJSON       bool

	// sweep
	steps     int
	speedMin  float64
	speedMax  float64
	radiusMin float64
	radiusMax float64
	format    string

	// plot
	plotOut    string
	plotChart  string
	plotWidth  int
	plotHeight int

	// batch
	batchOut string

	// tune
	tuneParams    []string
	tuneObjective string

	force bool
	addr  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "suspsim",
		Short:         "suspension load transfer calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDashboard,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "vehicle preset")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate one configuration",
		Args:  cobra.NoArgs,
		RunE:  runEval,
	}
	evalCmd.Flags().Float64Var(&speed, "speed", suspension.DefaultSpeed, "cornering speed (m/s)")
	evalCmd.Flags().Float64Var(&radius, "radius", suspension.DefaultRadius, "turn radius (m)")
	evalCmd.Flags().Float64Var(&trackWidth, "track-width", suspension.DefaultTrackWidth, "track width (m)")
	evalCmd.Flags().Float64Var(&rollDistance, "roll-distance", suspension.DefaultRollDistance, "roll distance (m)")
	evalCmd.Flags().Float64Var(&weight, "weight", suspension.DefaultWeight, "vehicle weight (N)")
	evalCmd.Flags().Float64Var(&frontRatio, "front-ratio", suspension.DefaultFrontRatio, "front weight ratio")
	evalCmd.Flags().Float64Var(&rearRatio, "rear-ratio", suspension.DefaultRearRatio, "rear weight ratio")
	evalCmd.Flags().BoolVar(&asJSON, "json", false, "print json")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep weight shift over speed and radius",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&steps, "steps", suspension.DefaultSweepSteps, "number of samples")
	sweepCmd.Flags().Float64Var(&speedMin, "speed-min", config.DefaultSpeedMin, "lowest speed (m/s)")
	sweepCmd.Flags().Float64Var(&speedMax, "speed-max", config.DefaultSpeedMax, "highest speed (m/s)")
	sweepCmd.Flags().Float64Var(&radiusMin, "radius-min", config.DefaultRadiusMin, "lowest radius (m)")
	sweepCmd.Flags().Float64Var(&radiusMax, "radius-max", config.DefaultRadiusMax, "highest radius (m)")
	sweepCmd.Flags().StringVar(&format, "format", "table", "output format (table, csv, json)")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot weight shift, acceleration and lateral force",
		Args:  cobra.NoArgs,
		RunE:  runPlot,
	}
	plotCmd.Flags().StringVar(&plotOut, "out", "", "save the selected chart as an image (.png, .svg, .pdf)")
	plotCmd.Flags().StringVar(&plotChart, "chart", "weight-shift", "chart for --out (weight-shift, acceleration, lateral-force)")
	plotCmd.Flags().IntVar(&plotWidth, "width", 70, "ascii chart width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 12, "ascii chart height")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "evaluate every case of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&batchOut, "out", "", "write results to a csv file")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search slider values for the lowest objective",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	tuneCmd.Flags().StringSliceVar(&tuneParams, "param", []string{config.SliderTrackWidth, config.SliderRollDistance}, "sliders to search")
	tuneCmd.Flags().StringVar(&tuneObjective, "objective", "total_shift", "metric to minimize")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list vehicle presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	slidersCmd := &cobra.Command{
		Use:   "sliders",
		Short: "list adjustable parameters",
		Args:  cobra.NoArgs,
		RunE:  listSliders,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the json api and prometheus metrics",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	rootCmd.AddCommand(evalCmd, sweepCmd, plotCmd, batchCmd, tuneCmd, presetsCmd, slidersCmd, configCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads --config and applies --preset and --log-level on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if logLevel != "" {
		if _, err := config.ParseLevel(logLevel); err != nil {
			return nil, err
		}
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, component string, w io.Writer) (zerolog.Logger, func(), error) {
	log, closer, err := logging.New(cfg.Log, component, w)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	return log, func() { closer.Close() }, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// stderr would corrupt the alternate screen; log only to a configured file.
	var w io.Writer
	if cfg.Log.File == "" {
		w = io.Discard
	}
	log, done, err := newLogger(cfg, "dashboard", w)
	if err != nil {
		return err
	}
	defer done()

	return dashboard.Run(cfg, results.NewLog(cfg.Dashboard.MaxRows), log)
}
