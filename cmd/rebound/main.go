package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/profile"
	"github.com/san-kum/rebound/internal/analysis"
	"github.com/san-kum/rebound/internal/automation"
	"github.com/san-kum/rebound/internal/config"
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/export"
	"github.com/san-kum/rebound/internal/gui"
	"github.com/san-kum/rebound/internal/input"
	"github.com/san-kum/rebound/internal/logging"
	"github.com/san-kum/rebound/internal/metrics"
	"github.com/san-kum/rebound/internal/render"
	"github.com/san-kum/rebound/internal/sim"
	"github.com/san-kum/rebound/internal/storage"
	"github.com/san-kum/rebound/internal/tui"
	"github.com/san-kum/rebound/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	logLevel    string
	configFile  string
	level       string
	frames      int
	snapFrames  int
	benchFrames int
	seed        int64
	script      string
	theme       string
	recordPath  string
	channels    []string
	outFile     string
	trail       bool
	params      []string
	metricName  string
	numRuns     int
	profMode    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rebound",
		Short: "box-pushing collision sandbox",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetLevel(logging.ParseLevel(logLevel))
		},
		RunE: playLevel,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rebound", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&level, "level", config.DefaultLevel, "level preset")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "seed for crate jitter")
	rootCmd.PersistentFlags().StringVar(&script, "script", "", "scenario file driving the input")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play a level in a window",
		RunE:  playLevel,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "play a level in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "classic", "colour theme: "+strings.Join(viz.ThemeNames(), ", "))
	tuiCmd.Flags().StringVar(&recordPath, "record", "recorded.yaml", "where the o key saves a recorded scenario")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a level headless and save the trace",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to step")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot trace channels",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&channels, "channel", []string{"x", "y", "speed"}, "channels: "+strings.Join(analysis.Channels, ", "))

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "motion summary and frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write the level as SVG after stepping",
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&snapFrames, "steps", 0, "frames to step before drawing")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().BoolVar(&trail, "trail", false, "draw the player path")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list level presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search over tuning constants",
		RunE:  sweepParams,
	}
	sweepCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per trial")
	sweepCmd.Flags().StringArrayVar(&params, "param", nil, "name=lo:hi:n, repeatable")
	sweepCmd.Flags().StringVar(&metricName, "metric", "residual_penetration", "metric to minimise")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the step across parallel sessions",
		RunE:  benchLevel,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 10000, "frames per session")
	benchCmd.Flags().IntVar(&numRuns, "runs", 4, "parallel sessions")
	benchCmd.Flags().StringVar(&profMode, "profile", "", "cpu or mem; writes the profile to the working directory")

	rootCmd.AddCommand(playCmd, tuiCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, snapshotCmd, presetsCmd, sweepCmd, benchCmd)

	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig builds the session config: a config file if given, else the
// level preset. Flags override file values only when set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err == nil && cmd.Flags().Changed("level") {
			var preset *config.Config
			preset, err = config.GetPreset(level)
			if err == nil {
				cfg.Name, cfg.Level = preset.Name, preset.Level
			}
		}
	} else {
		cfg, err = config.GetPreset(level)
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("script") {
		cfg.Script = script
	}
	return cfg, cfg.Validate()
}

// loadScript returns the config's scenario, or nil when it has none.
func loadScript(cfg *config.Config) (*automation.Scenario, error) {
	if cfg.Script == "" {
		return nil, nil
	}
	return automation.LoadScenario(cfg.Script)
}

// source returns a fresh input source per session; scenarios carry per-frame
// state and must not be shared.
func source(sc *automation.Scenario) input.Source {
	if sc == nil {
		return input.None
	}
	cp := *sc
	return &cp
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func playLevel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScript(cfg)
	if err != nil {
		return err
	}
	return gui.Run(gui.Options{Config: cfg, Script: sc})
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{Config: cfg, Theme: theme, RecordPath: recordPath})
}

func newSimulator(cfg *config.Config, sc *automation.Scenario) (*sim.Simulator, error) {
	store, err := cfg.NewStore()
	if err != nil {
		return nil, err
	}
	s := sim.New(store, source(sc))
	for _, m := range metrics.All() {
		s.AddMetric(m)
	}
	return s, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("frames") {
		cfg.Frames = frames
	}
	sc, err := loadScript(cfg)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg, sc)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	result, err := s.Run(ctx, sim.Config{Frames: cfg.Frames, Seed: cfg.Seed})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Name, s.Store().Params, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d  contacts: %d  corrections: %d\n", result.FramesRun, result.Started, result.Corrected)
	fmt.Println("\nmetrics:")
	for _, m := range metrics.All() {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLEVEL\tTIME\tFRAMES\tSEED\tCONTACTS\tCORRECTIONS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Level,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Seed,
			run.Started,
			run.Corrected,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("level: %s\n", meta.Level)
	fmt.Printf("samples: %d\n\n", len(trace))

	for _, ch := range channels {
		data, err := analysis.Series(trace, ch)
		if err != nil {
			return err
		}
		fmt.Println(viz.Plot(data, ch+" vs frame", 80, 10))
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	trace, err := storage.New(dataDir).LoadTrace(args[0])
	if err != nil {
		return err
	}
	sum, err := analysis.Summarize(trace, config.DefaultFPS)
	if err != nil {
		return err
	}

	fmt.Printf("frames:          %d\n", sum.Frames)
	fmt.Printf("distance:        %.4f\n", sum.Distance)
	fmt.Printf("max speed:       %.4f\n", sum.MaxSpeed)
	fmt.Printf("corrections:     %d\n", sum.Corrections)
	fmt.Printf("reversal rate:   %.4f\n", sum.ReversalRate)
	fmt.Printf("dominant x:      %.3f Hz\n", sum.DominantX)
	fmt.Printf("dominant y:      %.3f Hz\n", sum.DominantY)

	xs, err := analysis.Series(trace, "x")
	if err != nil {
		return err
	}
	spectrum := analysis.PowerSpectrum(xs)
	if len(spectrum) > 1 {
		fmt.Println()
		fmt.Println(viz.Plot(spectrum[1:min(len(spectrum), 200)], "power spectrum (x)", 80, 15))
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, trace)
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScript(cfg)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg, sc)
	if err != nil {
		return err
	}

	var trace []sim.Sample
	if snapFrames > 0 {
		result, err := s.Run(context.Background(), sim.Config{Frames: snapFrames, Seed: cfg.Seed})
		if err != nil {
			return err
		}
		trace = result.Trace
	}

	store := s.Store()
	sprites := render.Snapshot(store, store.Params.PixelsPerUnit)
	var svg string
	if trail {
		svg = export.TrajectoryToSVG(sprites, trace, store.Params.PixelsPerUnit, "#00ff00")
	} else {
		svg = export.SceneToSVG(sprites, render.Bounds(sprites))
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logging.Infof("snapshot: %d sprites written to %s", len(sprites), outFile)
	return nil
}

func countCrates(s *entity.Store) int {
	n := 0
	for _, t := range s.Types.Iter() {
		if t == entity.Crate {
			n++
		}
	}
	return n
}

func benchLevel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScript(cfg)
	if err != nil {
		return err
	}

	switch profMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q (want cpu or mem)", profMode)
	}

	build := func(idx int, seed int64) (*sim.Simulator, error) {
		c := *cfg
		c.Seed = seed
		return newSimulator(&c, sc)
	}

	ctx, cancel := signalContext()
	defer cancel()

	probe, err := build(0, cfg.Seed)
	if err != nil {
		return err
	}
	crates := countCrates(probe.Store())

	start := time.Now()
	results, err := sim.NewEnsemble(build, numRuns, cfg.Seed).Run(ctx, sim.Config{Frames: benchFrames})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	total := 0
	for _, r := range results {
		total += r.FramesRun
	}
	fmt.Printf("level: %s (%d crates)\n", cfg.Name, crates)
	fmt.Printf("sessions: %d  frames: %d\n", numRuns, total)
	fmt.Printf("elapsed: %v\n", elapsed)
	if total > 0 {
		fmt.Printf("per frame: %v\n", elapsed/time.Duration(total))
		fmt.Printf("frames/s: %.0f\n", float64(total)/elapsed.Seconds())
	}
	return nil
}
