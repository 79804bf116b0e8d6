package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/gasbox/internal/logging"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool
	logger  *log.Logger

	// gas and run parameters, shared by the simulation commands
	particles   int
	mass        float64
	radius      float64
	volume      float64
	temperature float64
	search      string
	workers     int
	dt          float64
	steps       int
	seed        int64
	sampleEvery int

	configFile string
	preset     string
	runName    string
	noSave     bool

	// live view
	stepsPerTick int
	theme        string
	bins         int

	// inspection
	sampleIndex int
	histBins    int
	svgPath     string
	outPath     string

	// batch
	temps        []float64
	sizes        []int
	replicas     int
	benchSteps   int
	benchWorkers int
)

// main registers the commands and executes the root command, exiting with
// status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "gasbox",
		Short:         "hard-sphere gas in a box",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(os.Stderr, verbose)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gasbox", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addGasFlags(runCmd)
	runCmd.Flags().StringVar(&runName, "name", "", "run name (defaults to the preset name or \"gas\")")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addGasFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerTick, "steps-per-tick", 2, "steps advanced per frame")
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")
	liveCmd.Flags().IntVar(&bins, "bins", 30, "histogram bins")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	histCmd := &cobra.Command{
		Use:   "hist [run_id]",
		Short: "plot a stored speed sample against Maxwell-Boltzmann",
		Args:  cobra.ExactArgs(1),
		RunE:  histRun,
	}
	histCmd.Flags().IntVar(&sampleIndex, "sample", -1, "sample index (negative counts from the end)")
	histCmd.Flags().IntVar(&histBins, "bins", 100, "histogram bins")
	histCmd.Flags().StringVar(&svgPath, "svg", "", "also write the histogram as SVG")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the same gas at several temperatures",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addGasFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&temps, "temps", []float64{100, 300, 900}, "temperatures in K")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark pair search modes",
		Args:  cobra.NoArgs,
		RunE:  benchSearch,
	}
	benchCmd.Flags().IntSliceVar(&sizes, "sizes", []int{125, 512, 1000}, "particle counts")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 50, "steps per measurement")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 0, "pair search workers (0 = all CPUs)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	replicasCmd := &cobra.Command{
		Use:   "replicas",
		Short: "run independently seeded copies and summarize their metrics",
		Args:  cobra.NoArgs,
		RunE:  runReplicas,
	}
	addGasFlags(replicasCmd)
	replicasCmd.Flags().IntVar(&replicas, "count", 8, "number of replicas")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, histCmd, exportCmd, presetsCmd, sweepCmd, benchCmd, scenarioCmd, replicasCmd)

	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = logging.New(os.Stderr, false)
		}
		logger.Error(err)
		os.Exit(1)
	}
}
