package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/san-kum/nodemesh/internal/config"
	"github.com/san-kum/nodemesh/internal/gui"
	"github.com/san-kum/nodemesh/internal/visualizer"
	"github.com/san-kum/nodemesh/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	configFile string
	preset     string
	seed       int64
	verbose    bool
	logFile    string
	runsDir    string

	logger = zap.NewNop()
)

var (
	heading = color.New(color.FgHiGreen, color.Bold)
	subtle  = color.New(color.FgHiBlack)
	warn    = color.New(color.FgYellow)
)

// interactive commands own the terminal, so they only log to --log-file.
var interactive = map[string]bool{"nodemesh": true, "live": true}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nodemesh",
		Short: "ambient 3D network visualizer",
		Long: `nodemesh animates a field of drifting nodes joined by random short links,
viewed through a camera that follows the pointer.

Run without arguments to pick a preset and start the terminal view.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = buildLogger(interactive[cmd.Name()])
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return surfaceErr(viz.RunMenu(cmd.Context(), cfg, logger))
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "config file path (yaml or toml)")
	pf.StringVarP(&preset, "preset", "p", "", "start from a preset (see `nodemesh presets`)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&runsDir, "runs-dir", "nodemesh-runs", "directory for stored runs")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the network in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return surfaceErr(viz.RunLive(cmd.Context(), cfg, logger))
		},
	}
	liveCmd.Flags().Int("fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().String("theme", config.DefaultTheme, "color theme")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "animate the network in a desktop window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return surfaceErr(gui.Run(cmd.Context(), pickSeed(cfg), logger))
		},
	}
	windowCmd.Flags().Int("fps", config.DefaultFPS, "frame rate")
	windowCmd.Flags().Int("width", 1280, "window width")
	windowCmd.Flags().Int("height", 720, "window height")

	rootCmd.AddCommand(liveCmd, windowCmd, newRunCmd(), newSurveyCmd(), newSnapshotCmd(), newPresetsCmd(), newConfigCmd(), newRunsCmd())
	return rootCmd
}

// main is the entry point for the nodemesh CLI. It exits with status 1 if
// the command fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, warn.Sprint("error: ")+err.Error())
		stop()
		os.Exit(1)
	}
}

func buildLogger(quiet bool) (*zap.Logger, error) {
	if quiet && logFile == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if logFile != "" {
		cfg.OutputPaths = []string{logFile}
		cfg.ErrorOutputPaths = []string{logFile}
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

// loadConfig resolves --preset, then --config on top of it, then any
// command flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		if configFile != "" {
			if err := config.DecodeFile(configFile, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	case configFile != "":
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.Render.FPS, _ = flags.GetInt("fps")
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Style.Theme, _ = flags.GetString("theme")
	}
	if flags.Lookup("width") != nil && flags.Changed("width") {
		cfg.Render.Width, _ = flags.GetInt("width")
	}
	if flags.Lookup("height") != nil && flags.Changed("height") {
		cfg.Render.Height, _ = flags.GetInt("height")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger.Debug("config resolved",
		zap.String("preset", cfg.Preset),
		zap.String("file", configFile),
		zap.Int64("seed", cfg.Seed),
		zap.Int("nodes", cfg.Network.Nodes))
	return cfg, nil
}

// pickSeed fills an unset seed from the clock.
func pickSeed(cfg *config.Config) *config.Config {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// surfaceErr treats a missing drawing surface as a warning: the
// visualizer never starts and the command still succeeds.
func surfaceErr(err error) error {
	if errors.Is(err, visualizer.ErrSurfaceNotFound) {
		logger.Warn("no drawing surface, visualizer not started", zap.Error(err))
		return nil
	}
	return err
}
