package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/san-kum/gamesim/internal/behavior"
	"github.com/san-kum/gamesim/internal/config"
	"github.com/san-kum/gamesim/internal/experiment"
	"github.com/san-kum/gamesim/internal/export"
	"github.com/san-kum/gamesim/internal/store"
	"github.com/san-kum/gamesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	// run flags
	fps      int
	duration float64
	noSave   bool
	compare  string
	profMode string
	// plot/export flags
	entityID uint64
	outPath  string
	svgW     int
	svgH     int

	logger = zerolog.Nop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gamesim",
		Short: "fixed-step game simulation core",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(logger)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gamesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [scenario|preset]",
		Short: "run a scenario headless and save the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().IntVar(&fps, "fps", 0, "frame rate (defaults to the scenario's)")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration in seconds (defaults to the scenario's)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().StringVar(&compare, "compare", "", "comma separated frame rates to compare, e.g. 30,60,144")
	runCmd.Flags().StringVar(&profMode, "profile", "", "write a cpu or mem profile to the data directory")

	liveCmd := &cobra.Command{
		Use:   "live [scenario|preset]",
		Short: "play a scenario in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot an entity's path",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().Uint64Var(&entityID, "entity", 1, "entity id")

	exportCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout if empty)")

	svgCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw every entity track of a run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout if empty)")
	svgCmd.Flags().IntVar(&svgW, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgH, "height", 400, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios and behaviors",
		RunE:  listPresets,
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "check a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  validateScenario,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, svgCmd, presetsCmd, validateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger() error {
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return eris.Wrapf(err, "log level %q", logLevel)
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return nil
}

// loadScenario reads arg as a file when it exists and as a preset name
// otherwise.
func loadScenario(arg string) (*config.Config, error) {
	if _, err := os.Stat(arg); err == nil {
		cfg, err := config.Load(arg)
		if err != nil {
			return nil, err
		}
		if cfg.Name == "" {
			cfg.Name = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		}
		return cfg, nil
	}
	if cfg := config.GetPreset(arg); cfg != nil {
		return cfg, nil
	}
	return nil, fmt.Errorf("no scenario file or preset named %q (try: %s)", arg, strings.Join(config.ListPresets(), ", "))
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	if fps > 0 {
		cfg.FPS = fps
	}
	if duration > 0 {
		cfg.Duration = duration
	}

	exp, err := experiment.New(cfg, experiment.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	prof, err := startProfile(profMode)
	if err != nil {
		return err
	}
	if prof != nil {
		defer prof.Stop()
	}

	if compare != "" {
		return compareRates(ctx, exp, compare)
	}

	fmt.Printf("running %s at %d fps for %.1fs...\n", cfg.Name, cfg.FPS, cfg.Duration)
	start := time.Now()
	res, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	printResult(res, time.Since(start))

	if noSave {
		return nil
	}
	st := store.New(dataDir)
	runID, err := st.Save(cfg, res)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved: %s\n", runID)
	return nil
}

// startProfile returns nil when mode is empty.
func startProfile(mode string) (interface{ Stop() }, error) {
	var kind func(*profile.Profile)
	switch mode {
	case "":
		return nil, nil
	case "cpu":
		kind = profile.CPUProfile
	case "mem":
		kind = profile.MemProfileAllocs
	default:
		return nil, fmt.Errorf("unknown profile mode %q (want cpu or mem)", mode)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, eris.Wrap(err, "create data dir")
	}
	return profile.Start(kind, profile.ProfilePath(dataDir), profile.NoShutdownHook, profile.Quiet), nil
}

func printResult(res *experiment.Result, elapsed time.Duration) {
	fmt.Printf("frames: %d  ticks: %d  wall: %s\n", res.Frames, res.Steps, elapsed.Round(time.Millisecond))
	fmt.Printf("collected: %d  hits: %d\n", res.Score.Collected, res.Score.Hits)
	for _, name := range sortedMetricNames(res.Metrics) {
		fmt.Printf("  %-14s %.4f\n", name, res.Metrics[name])
	}
}

func sortedMetricNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func compareRates(ctx context.Context, exp *experiment.Experiment, list string) error {
	var rates []int
	for _, f := range strings.Split(list, ",") {
		r, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return eris.Wrapf(err, "frame rate %q", f)
		}
		rates = append(rates, r)
	}

	results, err := exp.Compare(ctx, rates)
	if err != nil {
		return err
	}

	ref := results[0].Final()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FPS\tFRAMES\tTICKS\tCOLLISIONS\tMAX DRIFT")
	for _, res := range results {
		drift := 0.0
		for id, s := range res.Final() {
			r, ok := ref[id]
			if !ok {
				continue
			}
			d := (s.X-r.X)*(s.X-r.X) + (s.Y-r.Y)*(s.Y-r.Y)
			if d > drift {
				drift = d
			}
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%.0f\t%.6f\n", res.FPS, res.Frames, res.Steps, res.Metrics["collisions"], math.Sqrt(drift))
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	return viz.RunLive(cfg, logger)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tFPS\tTICKS\tENTITIES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%d\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.FPS,
			run.Steps,
			run.Entities,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	var track *store.Track
	tracks := store.Tracks(samples)
	for i := range tracks {
		if tracks[i].Entity == entityID {
			track = &tracks[i]
			break
		}
	}
	if track == nil || len(track.X) == 0 {
		return fmt.Errorf("no samples for entity %d in %s", entityID, runID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("entity: %d (%s), samples: %d\n\n", track.Entity, track.Template, len(track.X))

	for _, axis := range []struct {
		caption string
		data    []float64
	}{
		{"x vs frame", track.X},
		{"y vs frame", track.Y},
	} {
		graph := asciigraph.Plot(axis.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(axis.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	if outPath == "" {
		return st.ExportTo(os.Stdout, args[0])
	}
	if err := st.ExportJSON(outPath, args[0]); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	samples, err := store.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	out := export.TracksToSVG(store.Tracks(samples), svgW, svgH)
	if outPath == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return eris.Wrapf(err, "write %s", outPath)
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tTEMPLATES\tSPAWNS\tRULES\tDURATION")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.0fs\n", name, len(cfg.Templates), len(cfg.Spawns), len(cfg.Collisions), cfg.Duration)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nbehaviors: %s\n", strings.Join(behavior.Names(), ", "))
	return nil
}

func validateScenario(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	for tmpl, name := range cfg.Behaviors() {
		if _, err := behavior.Lookup(name); err != nil {
			return eris.Wrapf(err, "template %s", tmpl)
		}
	}
	for i, s := range cfg.Spawns {
		if _, ok := cfg.Templates[s.Template]; !ok {
			logger.Warn().Str("template", s.Template).Int("spawn", i).Msg("spawn uses an unknown template")
		}
	}
	for _, t := range cfg.WorldTemplates() {
		for i, s := range t.Shapes {
			if s.Layer == "" || !s.Bounds.Valid() {
				logger.Warn().Str("template", t.Name).Int("collider", i).Msg("malformed collider; template will spawn without colliders")
			}
		}
	}
	fmt.Printf("%s: ok (%d templates, %d spawns, %d rules)\n", args[0], len(cfg.Templates), len(cfg.Spawns), len(cfg.Collisions))
	return nil
}
