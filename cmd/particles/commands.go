package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/dynamo"
	"github.com/san-kum/particles/internal/export"
	"github.com/san-kum/particles/internal/integrators"
	"github.com/san-kum/particles/internal/metrics"
	"github.com/san-kum/particles/internal/sim"
	"github.com/san-kum/particles/internal/viz"
	"github.com/san-kum/particles/internal/window"
)

func runWindow(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s, err := sim.New(cfg, sim.WithLogger(logger))
	if err != nil {
		return err
	}
	return window.Run(cmd.Context(), s, cfg, logger)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal is owned by the UI, so the simulation stays silent.
	factory := func() (*sim.Simulation, error) {
		c := cfg.Clone()
		c.Seed = time.Now().UnixNano()
		return sim.New(c)
	}
	if cmd.Flags().Changed("seed") {
		factory = func() (*sim.Simulation, error) { return sim.New(cfg) }
	}

	return viz.Run(cmd.Context(), factory, viz.Options{
		Dt:    float32(liveDt),
		FPS:   cfg.Viewport.FPS,
		Theme: theme,
	})
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchRuns < 1 {
		return dynamo.Invalid("runs", float64(benchRuns), dynamo.ErrParameterBounds)
	}
	if benchLen < 1 {
		return dynamo.Invalid("frames", float64(benchLen), dynamo.ErrParameterBounds)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	fmt.Printf("benchmarking %d particles (dt=%.4f, frames=%d, runs=%d, seed=%d)\n\n",
		cfg.Population.Count, benchDt, benchLen, benchRuns, cfg.Seed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tFINAL_KE\tDRIFT\tSTABILITY\tCOLLISIONS\tWALL_HITS\tMS/RUN")

	var series [][]float64
	var plotted []string
	for _, name := range names {
		c := cfg.Clone()
		c.Integrator = name

		ens := sim.NewEnsemble(c, benchRuns, c.Seed, sim.WithLogger(logger.With("integrator", name)))
		summaries, err := ens.Run(cmd.Context(), benchLen, float32(benchDt), metrics.Default)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		var finalKE, drift, stability, collisions, wallHits, elapsed float64
		for _, s := range summaries {
			if n := len(s.KineticEnergy); n > 0 {
				finalKE += s.KineticEnergy[n-1]
			}
			drift += s.Metrics["energy_drift"]
			stability += s.Metrics["stability"]
			collisions += float64(s.Collisions)
			wallHits += float64(s.WallHits)
			elapsed += float64(s.Elapsed.Microseconds()) / 1000
		}
		n := float64(len(summaries))
		fmt.Fprintf(w, "%s\t%.2f\t%.2e\t%.3f\t%.0f\t%.0f\t%.2f\n",
			name, finalKE/n, drift/n, stability/n, collisions/n, wallHits/n, elapsed/n)

		if len(summaries) > 0 && len(summaries[0].KineticEnergy) > 1 {
			series = append(series, summaries[0].KineticEnergy)
			plotted = append(plotted, name)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(series) > 0 {
		colors := []asciigraph.AnsiColor{asciigraph.Green, asciigraph.Yellow, asciigraph.Cyan, asciigraph.Red}
		fmt.Println()
		fmt.Println(asciigraph.PlotMany(series,
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.SeriesColors(colors[:min(len(series), len(colors))]...),
			asciigraph.Caption("kinetic energy, seed "+fmt.Sprint(cfg.Seed)+": "+strings.Join(plotted, ", "))))
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s, err := sim.New(cfg, sim.WithLogger(logger))
	if err != nil {
		return err
	}
	energy := metrics.NewEnergy()
	s.AddMetric(energy)

	stats, err := s.Run(cmd.Context(), snapLen, float32(snapDt), nil)
	if err != nil {
		return err
	}

	svg := export.ParticlesToSVG(s.Snapshot(nil), cfg.Viewport.Width, cfg.Viewport.Height)
	if err := os.WriteFile(snapOut, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("wrote snapshot", "file", snapOut, "frames", len(stats), "mean_energy", energy.Value())

	if energyOut != "" {
		ke := make([]float64, len(stats))
		for i, st := range stats {
			ke[i] = float64(st.KineticEnergy)
		}
		plot := export.SeriesToSVG(ke, 800, 300, "#00ff88")
		if plot == "" {
			return fmt.Errorf("need at least 2 frames for an energy plot, got %d", len(stats))
		}
		if err := os.WriteFile(energyOut, []byte(plot), 0644); err != nil {
			return err
		}
		logger.Info("wrote energy plot", "file", energyOut)
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if configOut != "" {
		return config.Save(configOut, cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
