package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/san-kum/gasbox/internal/automation"
	"github.com/san-kum/gasbox/internal/physics"
	"github.com/san-kum/gasbox/internal/sim"
	"github.com/san-kum/gasbox/internal/storage"
	"github.com/spf13/cobra"
)

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("sweeping temperatures", "temps", temps, "particles", cfg.Gas.Particles)
	points, err := sim.Sweep(ctx, cfg.Params(), temps, cfg.RunConfig(), cfg.Run.Seed)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TARGET\tMEASURED\tPRESSURE\tP(V-b)/NkT\tMB-KS\tCOLLISIONS")
	for _, pt := range points {
		m := pt.Result.Metrics
		fmt.Fprintf(w, "%.0fK\t%.1fK\t%.4g\t%.3f\t%.3f\t%d\n",
			pt.Temperature, m["temperature"], m["pressure"], m["gas_law_ratio"], m["maxwell_ks"], pt.Result.Totals.Collisions)
	}
	return w.Flush()
}

func benchSearch(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tSEARCH\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range sizes {
		for _, mode := range []physics.SearchMode{physics.SearchPairs, physics.SearchCells} {
			p := physics.DefaultParams()
			p.ParticleCount = n
			p.Search = mode
			p.Workers = benchWorkers

			gas, err := physics.New(p, rand.New(rand.NewSource(42)))
			if err != nil {
				return fmt.Errorf("n=%d: %w", n, err)
			}

			start := time.Now()
			for i := 0; i < benchSteps; i++ {
				if err := gas.Step(p.Radius / gas.ThermalSpeed()); err != nil {
					return err
				}
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%.0f\n",
				n, mode, benchSteps, elapsed.Round(time.Microsecond), float64(benchSteps)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running scenario", "name", sc.Name, "steps", len(sc.Steps))
	results, err := automation.RunScenario(ctx, sc, st)
	for i, r := range results {
		fmt.Printf("%d. %s", i+1, r.Name)
		if r.RunID != "" {
			fmt.Printf(" (run id: %s)", r.RunID)
		}
		fmt.Println()
		if err := printMetrics(r.Result.Metrics); err != nil {
			return err
		}
	}
	return err
}

func runReplicas(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running replicas", "count", replicas, "seed", cfg.Run.Seed)
	// replicas run concurrently, each with a serial pair search
	limit := 0
	if cmd.Flags().Changed("workers") {
		limit = cfg.Gas.Workers
	}
	inner := *cfg
	inner.Gas.Workers = 1
	results, err := automation.RunReplicas(ctx, &inner, replicas, cfg.Run.Seed, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTDDEV\tN")
	for _, s := range automation.Summarize(results) {
		fmt.Fprintf(w, "%s\t%.6g\t%.3g\t%d\n", s.Metric, s.Mean, s.StdDev, s.N)
	}
	return w.Flush()
}
