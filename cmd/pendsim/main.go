package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/davfen/pendsim/internal/config"
	"github.com/davfen/pendsim/internal/engine"
	"github.com/davfen/pendsim/internal/export"
	"github.com/davfen/pendsim/internal/metrics"
	"github.com/davfen/pendsim/internal/store"
	"github.com/davfen/pendsim/internal/stream"
)

var (
	dataDir    string
	configFile string
	preset     string
	addr       string
	tick       time.Duration
	dt         float64
	substeps   int
	duration   float64
	logFormat  string
	svgPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pendsim",
		Short: "N-link compound pendulum engine",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pendsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named preset configuration")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log", "text", "log format (text or json)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the engine and stream snapshots over websockets",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().DurationVar(&tick, "tick", 0, "snapshot interval (overrides config)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and record it",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "simulated duration in seconds")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (overrides config)")
	runCmd.Flags().IntVar(&substeps, "substeps", 0, "integration substeps per tick (overrides config)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run's angles",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the tail bob's trajectory as SVG")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(serveCmd, runCmd, listCmd, plotCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	var handler slog.Handler
	if logFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	return slog.New(handler)
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if addr != "" {
		cfg.Addr = addr
	}
	if tick > 0 {
		cfg.TickInterval = tick
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if substeps > 0 {
		cfg.Substeps = substeps
	}

	return cfg, cfg.Validate()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger()
	world := engine.NewWorld(cfg.BuildPendulum())
	hub := stream.NewHub(log)
	sampler := engine.NewSampler(world, cfg.TickInterval, cfg.Dt, cfg.Substeps, log)
	server := stream.NewServer(world, hub, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snaps := make(chan engine.Snapshot, 8)
	go func() {
		if err := sampler.Run(ctx, snaps); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("sampler exited", "err", err)
		}
		close(snaps)
	}()
	go hub.Run(ctx, snaps)

	httpServer := &http.Server{Addr: cfg.Addr, Handler: server.Router()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
		world.Close()
	}()

	log.Info("serving", "addr", cfg.Addr, "bobs", world.NumBobs(),
		"tick", cfg.TickInterval, "dt", cfg.Dt, "substeps", cfg.Substeps)

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", duration)
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	world := engine.NewWorld(cfg.BuildPendulum())
	drift := metrics.NewEnergyDrift(cfg.Gravity)
	mean := metrics.NewMeanEnergy(cfg.Gravity)

	tickSpan := cfg.Dt * float64(cfg.Substeps)
	ticks := int(duration / tickSpan)
	snaps := make([]engine.Snapshot, 0, ticks)

	fmt.Printf("simulating %d bobs for %.2fs (dt=%.4f, substeps=%d)...\n",
		world.NumBobs(), duration, cfg.Dt, cfg.Substeps)
	start := time.Now()

	for i := 0; i < ticks; i++ {
		snap, err := world.Step(cfg.Dt, cfg.Substeps)
		if err != nil {
			return err
		}
		drift.Observe(snap)
		mean.Observe(snap)
		snaps = append(snaps, snap)
	}

	results := map[string]float64{
		drift.Name(): drift.Value(),
		mean.Name():  mean.Value(),
	}

	runID, err := st.Save(cfg.Dt, duration, cfg.Substeps, results, snaps)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", len(snaps))
	fmt.Println("\nmetrics:")
	for name, val := range results {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tBOBS\tDURATION\tDT\tSUBSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bobs,
			run.Duration,
			run.Dt,
			run.Substeps,
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
	_, states, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bobs: %d\n", meta.Bobs)
	fmt.Printf("samples: %d\n\n", len(states))

	// Columns are theta/omega/x/y per bob; plot each bob's angle.
	for bob := 0; bob < meta.Bobs; bob++ {
		col := bob * 4
		data := make([]float64, 0, len(states))
		for _, row := range states {
			if col < len(row) {
				data = append(data, row[col])
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("theta%d (rad)", bob)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgPath != "" && meta.Bobs > 0 {
		// Tail bob's x/y columns sit at the end of each row.
		colX := (meta.Bobs-1)*4 + 2
		colY := colX + 1
		xs := make([]float64, 0, len(states))
		ys := make([]float64, 0, len(states))
		for _, row := range states {
			if colY < len(row) {
				xs = append(xs, row[colX])
				ys = append(ys, row[colY])
			}
		}
		if err := export.WriteTrajectorySVG(svgPath, xs, ys, 800, 600, "#00ff00"); err != nil {
			return err
		}
		fmt.Printf("trajectory written to %s\n", svgPath)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	times, states, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	return store.ExportJSON(os.Stdout, meta, times, states)
}
