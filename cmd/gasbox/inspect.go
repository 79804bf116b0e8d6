package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gasbox/internal/analysis"
	"github.com/san-kum/gasbox/internal/config"
	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/export"
	"github.com/san-kum/gasbox/internal/storage"
	"github.com/spf13/cobra"
)

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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tN\tTEMP\tSTEPS\tDT\tSEARCH")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0fK\t%d\t%.3gs\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.ParticleCount,
			run.Params.Temperature,
			run.Steps,
			run.Dt,
			run.Params.Search,
		)
	}
	return w.Flush()
}

func histRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	speeds, times, err := st.LoadSpeeds(runID)
	if err != nil {
		return err
	}
	if len(speeds) == 0 {
		return fmt.Errorf("run %s has no speed samples", runID)
	}

	idx := sampleIndex
	if idx < 0 {
		idx += len(speeds)
	}
	if idx < 0 || idx >= len(speeds) {
		return fmt.Errorf("sample %d out of range (run has %d)", sampleIndex, len(speeds))
	}

	p := meta.Params
	vmax := 4 * analysis.MostProbableSpeed(p.Mass, p.Temperature)
	h := analysis.NewHistogram(speeds[idx], histBins, 0, vmax)
	centers := h.Centers()
	ref := make([]float64, len(centers))
	for i, v := range centers {
		ref[i] = analysis.MaxwellPDF(v, p.Mass, p.Temperature)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("sample: %d of %d (t=%.4gs)\n", idx, len(speeds), times[idx])
	fmt.Printf("ks distance: %.4f  excess kurtosis: %.3f\n\n",
		analysis.KSDistance(speeds[idx], p.Mass, p.Temperature), analysis.ExcessKurtosis(speeds[idx]))

	graph := asciigraph.PlotMany([][]float64{h.Density, ref},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Yellow),
		asciigraph.Caption(fmt.Sprintf("speed density, 0..%.3g m/s (yellow: Maxwell-Boltzmann)", vmax)),
	)
	fmt.Println(graph)

	if svgPath != "" {
		curveV, curveP := analysis.Curve(p.Mass, p.Temperature, vmax, 200)
		f, err := os.Create(svgPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteSVG(f, export.HistogramSVG(h, curveV, curveP, 800, 400)); err != nil {
			return err
		}
		logger.Info("wrote histogram", "path", svgPath)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := loadResult(st, args[0])
	if err != nil {
		return err
	}

	rc := dynamo.Config{Dt: meta.Dt, Duration: meta.Duration, Seed: meta.Seed}
	if outPath == "" {
		return storage.WriteJSON(os.Stdout, meta.Name, meta.Params, rc, result)
	}
	if err := storage.ExportJSON(outPath, meta.Name, meta.Params, rc, result); err != nil {
		return err
	}
	logger.Info("exported run", "id", meta.ID, "path", outPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tN\tRADIUS\tTEMP\tDT\tSTEPS\tSEARCH")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.3gm\t%.0fK\t%.3gs\t%d\t%s\n",
			name, p.Gas.Particles, p.Gas.Radius, p.Gas.Temperature, p.Run.Dt, p.Run.Steps, p.Gas.Search)
	}
	return w.Flush()
}
