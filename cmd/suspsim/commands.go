package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/san-kum/suspsim/internal/chart"
	"github.com/san-kum/suspsim/internal/config"
	"github.com/san-kum/suspsim/internal/optim"
	"github.com/san-kum/suspsim/internal/results"
	"github.com/san-kum/suspsim/internal/scenario"
	"github.com/san-kum/suspsim/internal/server"
	"github.com/san-kum/suspsim/internal/suspension"
)

// applyEvalFlags overlays explicitly set parameter flags on the config's
// vehicle and state. A single ratio flag sets its partner to the complement.
func applyEvalFlags(cmd *cobra.Command, cfg *config.Config) (suspension.VehicleConfiguration, suspension.DynamicState) {
	v, st := cfg.Vehicle, cfg.State
	flags := cmd.Flags()
	if flags.Changed("speed") {
		st.Speed = speed
	}
	if flags.Changed("radius") {
		st.Radius = radius
	}
	if flags.Changed("track-width") {
		v.TrackWidth = trackWidth
	}
	if flags.Changed("roll-distance") {
		v.RollDistance = rollDistance
	}
	if flags.Changed("weight") {
		v.Weight = weight
	}
	front, rear := flags.Changed("front-ratio"), flags.Changed("rear-ratio")
	switch {
	case front && rear:
		v.FrontRatio, v.RearRatio = frontRatio, rearRatio
	case front:
		s, _ := config.SliderByName(config.SliderFrontRatio)
		v, st = s.Set(v, st, frontRatio)
	case rear:
		s, _ := config.SliderByName(config.SliderRearRatio)
		v, st = s.Set(v, st, rearRatio)
	}
	return v, st
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, done, err := newLogger(cfg, "eval", nil)
	if err != nil {
		return err
	}
	defer done()

	v, st := applyEvalFlags(cmd, cfg)
	res, err := suspension.Evaluate(v, st)
	if err != nil {
		return err
	}
	log.Debug().Float64("speed", st.Speed).Float64("radius", st.Radius).Msg("evaluated")

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return printReadouts(out, res)
}

func printReadouts(out io.Writer, r suspension.DerivedMetrics) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Cornering Speed\t%.2f\tm/s\n", r.State.Speed)
	fmt.Fprintf(w, "Turn Radius\t%.2f\tm\n", r.State.Radius)
	fmt.Fprintf(w, "Centripetal Acceleration\t%.2f\tg\n", r.Acceleration)
	fmt.Fprintf(w, "Front Weight Shift\t%.2f\tN\n", r.FrontShift)
	fmt.Fprintf(w, "Rear Weight Shift\t%.2f\tN\n", r.RearShift)
	fmt.Fprintf(w, "Lateral Force\t%.2f\tN\n", r.LateralForce)
	fmt.Fprintf(w, "Longitudinal Force\t%.2f\tN\n", r.LongitudinalForce)
	fmt.Fprintf(w, "Tire Slip Angle\t%.2f\tdeg\n", r.SlipAngle)
	return w.Flush()
}

// sweepSettings returns the config's sweep with explicitly set flags applied.
func sweepSettings(cmd *cobra.Command, cfg *config.Config) config.SweepConfig {
	sw := cfg.Sweep
	flags := cmd.Flags()
	if flags.Changed("steps") {
		sw.Steps = steps
	}
	if flags.Changed("speed-min") {
		sw.Speeds.Min = speedMin
	}
	if flags.Changed("speed-max") {
		sw.Speeds.Max = speedMax
	}
	if flags.Changed("radius-min") {
		sw.Radii.Min = radiusMin
	}
	if flags.Changed("radius-max") {
		sw.Radii.Max = radiusMax
	}
	return sw
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sw := sweepSettings(cmd, cfg)
	samples, err := suspension.SweepWeightShift(cfg.Vehicle, cfg.State, sw.Speeds, sw.Radii, sw.Steps)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "table":
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SPEED\tRADIUS\tFRONT\tREAR")
		for _, s := range samples {
			fmt.Fprintf(w, "%.2f\t%.2f\t%.2f\t%.2f\n", s.Speed, s.Radius, s.FrontShift, s.RearShift)
		}
		return w.Flush()
	case "csv":
		w := csv.NewWriter(out)
		if err := w.Write([]string{"speed", "radius", "front_weight_shift", "rear_weight_shift"}); err != nil {
			return err
		}
		for _, s := range samples {
			rec := []string{
				strconv.FormatFloat(s.Speed, 'f', 6, 64),
				strconv.FormatFloat(s.Radius, 'f', 6, 64),
				strconv.FormatFloat(s.FrontShift, 'f', 6, 64),
				strconv.FormatFloat(s.RearShift, 'f', 6, 64),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(samples)
	}
	return fmt.Errorf("unknown format: %s (available: table, csv, json)", format)
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sw := cfg.Sweep
	v, st := cfg.Vehicle, cfg.State
	if err := v.Validate(); err != nil {
		return err
	}
	samples, err := suspension.SweepWeightShift(v, st, sw.Speeds, sw.Radii, sw.Steps)
	if err != nil {
		return err
	}
	accel, err := suspension.AccelerationSeries(sw.Speeds, st.Radius, v.Gravity, sw.Steps)
	if err != nil {
		return err
	}
	lateral, err := suspension.LateralForceSeries(sw.Speeds, st.Radius, v.Gravity, v.Weight, sw.Steps)
	if err != nil {
		return err
	}

	if plotOut != "" {
		var fig chart.Figure
		switch plotChart {
		case "weight-shift":
			fig = chart.WeightShiftFigure(samples)
		case "acceleration":
			fig = chart.AccelerationFigure(accel)
		case "lateral-force":
			fig = chart.LateralForceFigure(lateral)
		default:
			return fmt.Errorf("unknown chart: %s (available: weight-shift, acceleration, lateral-force)", plotChart)
		}
		if err := chart.Save(plotOut, fig, 8, 5); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", plotOut)
		return nil
	}

	opts := chart.Options{Width: plotWidth, Height: plotHeight}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, chart.WeightShift(samples, opts))
	fmt.Fprintln(out)
	fmt.Fprintln(out, chart.Acceleration(accel, opts))
	fmt.Fprintln(out)
	fmt.Fprintln(out, chart.LateralForce(lateral, opts))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, done, err := newLogger(cfg, "batch", nil)
	if err != nil {
		return err
	}
	defer done()

	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcomes, err := scenario.Run(ctx, sc, log)
	if err != nil {
		return err
	}

	rows := results.NewLog(0)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CASE\tSPEED\tRADIUS\tACCEL\tFRONT\tREAR\tLATERAL\tSLIP\tERROR")
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\t-\t-\t%v\n", o.Case, o.Err)
			continue
		}
		r := o.Metrics
		rows.Append(r)
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			o.Case, r.State.Speed, r.State.Radius, r.Acceleration, r.FrontShift, r.RearShift, r.LateralForce, r.SlipAngle)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if batchOut != "" {
		f, err := os.Create(batchOut)
		if err != nil {
			return err
		}
		if err := rows.WriteCSV(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	if n := scenario.Failed(outcomes); n > 0 {
		return fmt.Errorf("%d of %d cases failed", n, len(outcomes))
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, done, err := newLogger(cfg, "tune", nil)
	if err != nil {
		return err
	}
	defer done()

	obj, err := optim.ObjectiveByName(tuneObjective)
	if err != nil {
		return err
	}
	g, err := optim.NewGridSearch(tuneParams)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Strs("params", tuneParams).Str("objective", tuneObjective).Int("candidates", g.Size()).Msg("searching")
	res, err := g.Search(ctx, cfg.Vehicle, cfg.State, obj)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range tuneParams {
		fmt.Fprintf(w, "%s\t%.2f\n", name, res.Params[name])
	}
	fmt.Fprintf(w, "%s\t%.2f\n", tuneObjective, res.Score)
	fmt.Fprintf(w, "evaluated\t%d\n", res.Evaluated)
	if res.Rejected > 0 {
		fmt.Fprintf(w, "rejected\t%d\n", res.Rejected)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return printReadouts(out, res.Metrics)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTRACK\tWEIGHT\tFRONT\tREAR\tSPEED\tRADIUS\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.0f\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
			name, p.Vehicle.TrackWidth, p.Vehicle.Weight, p.Vehicle.FrontRatio, p.Vehicle.RearRatio,
			p.State.Speed, p.State.Radius, p.Description)
	}
	return w.Flush()
}

func listSliders(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLABEL\tMIN\tMAX\tSTEP\tDEFAULT\tUNIT")
	for _, s := range config.Sliders() {
		step := strconv.FormatFloat(s.Step, 'f', -1, 64)
		if s.Fixed() {
			step = "fixed"
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%s\t%.3f\t%s\n", s.Name, s.Label, s.Min, s.Max, step, s.Default, s.Unit)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "suspsim.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return err
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	log, done, err := newLogger(cfg, "server", nil)
	if err != nil {
		return err
	}
	defer done()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	h, err := server.New(cfg, reg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, cfg.Server.Addr, h, log)
}
