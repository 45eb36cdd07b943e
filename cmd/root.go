// Package cmd implements the compare-viewer command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/soocke/compare-viewer/config"
	"github.com/soocke/compare-viewer/debug"
)

// Version is the application version.
const Version = "0.1.0"

const configRelPath = "compare-viewer/config.json"

var (
	cfgPath string
	debugOn bool

	// cfg and logger are set up before any subcommand runs.
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "compare-viewer",
	Short:         "Compare two trained 3D scene pipelines and retrain from the viewer",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath == "" {
			p, err := xdg.ConfigFile(configRelPath)
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
			cfgPath = p
		}
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", cfgPath, err)
		}
		cfg = loaded
		if debugOn {
			cfg.Debug = true
		}
		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger = NewLogger(level)
		if cfg.Debug {
			debug.StartRuntimeLogger(cmd.Context(), 5*time.Second, logger)
		}
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/"+configRelPath+")")
	rootCmd.PersistentFlags().BoolVar(&debugOn, "debug", false, "Debug logging and runtime stats")
}
