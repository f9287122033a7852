package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/integrators"
)

var (
	configFile string
	preset     string
	seed       int64
	particles  int
	integrator string
	logLevel   string

	liveDt    float64
	theme     string
	benchRuns int
	benchDt   float64
	benchLen  int
	snapDt    float64
	snapLen   int
	snapOut   string
	energyOut string
	configOut string
)

// main registers the commands and runs the window when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:           "particles",
		Short:         "real-time 2D particle simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWindow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (default: time based)")
	pf.IntVar(&particles, "particles", config.DefaultParticles, "number of particles")
	pf.StringVar(&integrator, "integrator", integrators.Default, fmt.Sprintf("integrator %v", integrators.Names()))
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run the simulation in a native window",
		RunE:  runWindow,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&liveDt, "dt", 0, "fixed timestep (default: 1/fps)")
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	benchCmd := &cobra.Command{
		Use:   "bench [integrator...]",
		Short: "compare integrators on headless fixed-step runs",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchLen, "frames", 600, "frames per run")
	benchCmd.Flags().Float64Var(&benchDt, "dt", 1.0/60, "timestep")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 4, "seeds per integrator")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run headless and write the particle field as SVG",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapLen, "frames", 300, "frames to simulate")
	snapshotCmd.Flags().Float64Var(&snapDt, "dt", 1.0/60, "timestep")
	snapshotCmd.Flags().StringVarP(&snapOut, "out", "o", "particles.svg", "output file")
	snapshotCmd.Flags().StringVar(&energyOut, "energy-out", "", "also write the kinetic energy plot as SVG")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		RunE:  runConfig,
	}
	configCmd.Flags().StringVarP(&configOut, "out", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(windowCmd, liveCmd, benchCmd, snapshotCmd, presetsCmd, configCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: defaults, then preset,
// then config file, then flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	} else if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if flags.Changed("particles") {
		cfg.Population.Count = particles
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "particles",
	}), nil
}
