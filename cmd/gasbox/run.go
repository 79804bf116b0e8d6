package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/experiment"
	"github.com/san-kum/gasbox/internal/storage"
	"github.com/san-kum/gasbox/internal/viz"
	"github.com/spf13/cobra"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if runName != "" {
		name = runName
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exp := experiment.New(name, cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	p := cfg.Params()
	logger.Info("running simulation", "particles", p.ParticleCount, "temperature", p.Temperature,
		"steps", cfg.Run.Steps, "search", p.Search, "seed", cfg.Run.Seed)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		logger.Warn("run stopped early", "err", e)
	}
	elapsed := time.Since(start)

	runID := ""
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		if runID, err = exp.Save(st, result); err != nil {
			return err
		}
		logger.Debug("stored run", "dir", dataDir, "id", runID)
	}

	fmt.Printf("completed in %v\n", elapsed)
	if runID != "" {
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("steps: %d  collisions: %d  wall hits: %d\n",
		result.StepsTaken, result.Totals.Collisions, result.Totals.WallHits)
	if result.Totals.Degenerate > 0 {
		logger.Warn("skipped coincident pairs", "count", result.Totals.Degenerate)
	}
	fmt.Println("\nmetrics:")
	return printMetrics(result.Metrics)
}

func printMetrics(m map[string]float64) error {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, m[name])
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	maxSteps := 0
	if cmd.Flags().Changed("steps") {
		maxSteps = cfg.Run.Steps
	}

	return viz.Run(viz.Options{
		Name:         name,
		Params:       cfg.Params(),
		Seed:         cfg.Run.Seed,
		Dt:           cfg.Run.Dt,
		StepsPerTick: stepsPerTick,
		MaxSteps:     maxSteps,
		Bins:         bins,
		Theme:        theme,
	})
}

// loadResult rebuilds a result from a stored run.
func loadResult(st *storage.Store, runID string) (*storage.RunMetadata, *dynamo.Result, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	speeds, times, err := st.LoadSpeeds(runID)
	if err != nil {
		return nil, nil, err
	}
	pos, err := st.LoadPositions(runID)
	if err != nil {
		return nil, nil, err
	}

	result := &dynamo.Result{
		Times:          times,
		Speeds:         speeds,
		FinalPositions: pos,
		Metrics:        meta.Metrics,
		Totals:         meta.Totals,
		StepsTaken:     meta.Steps,
	}
	if len(speeds) > 0 {
		result.FinalSpeeds = speeds[len(speeds)-1]
	}
	return meta, result, nil
}
