package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/Fer14/gravitybox/internal/analysis"
	"github.com/Fer14/gravitybox/internal/config"
	"github.com/Fer14/gravitybox/internal/engine"
	"github.com/Fer14/gravitybox/internal/export"
	"github.com/Fer14/gravitybox/internal/gui"
	"github.com/Fer14/gravitybox/internal/metrics"
	"github.com/Fer14/gravitybox/internal/sim"
	"github.com/Fer14/gravitybox/internal/storage"
	"github.com/Fer14/gravitybox/internal/viz"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	duration   float64
	frameRate  int
	outFile    string
	bodyIndex  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravitybox",
		Short: "gravitational sandbox: bounded 2d n-body with click-to-add",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, eng, err := buildEngine()
			if err != nil {
				return err
			}
			gui.Run(cfg, eng)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravitybox", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "trisol", "preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless simulation and store the result",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live terminal visualization",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, eng, err := buildEngine()
			if err != nil {
				return err
			}
			if frameRate > 0 {
				cfg.FrameRate = frameRate
			}
			return viz.Run(cfg, eng)
		},
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 0, "override frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body trajectories of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored run's trajectories to svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a body's horizontal motion",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index to analyze")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step throughput over body counts",
		RunE:  benchSteps,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-8s %d seed bodies\n", name, len(cfg.Bodies))
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, analyzeCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildEngine resolves preset and config file into a seeded engine. A
// config file, when given, wins over the preset.
func buildEngine() (*config.Config, *engine.Engine, error) {
	var cfg *config.Config

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	eng, err := cfg.NewEngine()
	if err != nil {
		return nil, nil, err
	}
	return cfg, eng, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	_, eng, err := buildEngine()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(eng)
	runner.AddMetric(metrics.NewEnergyDrift())
	runner.AddMetric(metrics.NewMomentumDrift())
	runner.AddMetric(metrics.NewMaxSpeed())

	fmt.Printf("running %s (%d bodies, dt=%.4f, %.1fs)...\n", preset, eng.Len(), dt, duration)
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.RunConfig{Dt: dt, Duration: duration})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(preset, dt, duration, eng.Len(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	fmt.Printf("  energy_drift (run): %.6f\n", result.EnergyDrift)

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tBODIES\tDURATION\tDT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4fs\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumBodies,
			run.Duration,
			run.Dt,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(states))

	numBodies := len(states[0]) / 4
	maxPlots := 3
	if numBodies > maxPlots {
		numBodies = maxPlots
	}

	for body := 0; body < numBodies; body++ {
		for axis, name := range []string{"x", "y"} {
			data := make([]float64, len(states))
			for i := range states {
				data[i] = states[i][body*4+axis]
			}

			graph := asciigraph.Plot(data,
				asciigraph.Height(8),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("body %d %s vs time", body, name)),
			)
			fmt.Println(graph)
			fmt.Println()
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, states, times)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := 0; i < len(states[0])/4; i++ {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	cfg := config.Default()
	svg := export.TrajectoriesToSVG(states, cfg.Width, cfg.Height)

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(outFile, []byte(svg), 0644)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data")
	}
	if bodyIndex < 0 || (bodyIndex+1)*4 > len(states[0]) {
		return fmt.Errorf("body index %d out of range", bodyIndex)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("body: %d\n\n", bodyIndex)

	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i][bodyIndex*4]
	}

	ps := analysis.PowerSpectrum(data)
	if plotData := analysis.LowFrequencyBins(ps); len(plotData) > 0 {
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (body %d x)", bodyIndex)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func benchSteps(cmd *cobra.Command, args []string) error {
	bodyCounts := []int{2, 5, 10, 25, 50}
	stepCounts := 10000

	fmt.Println("benchmarking step throughput")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range bodyCounts {
		cfg := engine.DefaultConfig()
		cfg.MaxBodies = n
		eng := engine.New(cfg)
		for i := 0; i < n; i++ {
			eng.AddAt(
				100+float64(i%10)*60,
				100+float64(i/10)*60,
			)
		}

		start := time.Now()
		for i := 0; i < stepCounts; i++ {
			if err := eng.Step(1.0 / 60); err != nil {
				return err
			}
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n",
			n, stepCounts, elapsed, float64(stepCounts)/elapsed.Seconds())
	}

	return w.Flush()
}
