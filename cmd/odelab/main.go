package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/odelab/internal/config"
	"github.com/san-kum/odelab/internal/tui"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFormat  string

	logger = slog.New(slog.DiscardHandler)
)

// main registers the commands and runs the root command; with no subcommand
// the interactive form starts.
func main() {
	rootCmd := &cobra.Command{
		Use:           "odelab",
		Short:         "numerical methods lab for y' = f(x, y)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel, logFormat)
			if err != nil {
				return err
			}
			logger = l
			slog.SetDefault(l)
			return nil
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(
		newSolveCmd(),
		newErrorsCmd(),
		newSweepCmd(),
		newRunCmd(),
		newListCmd(),
		newShowCmd(),
		newExportCmd(),
		newSVGCmd(),
		newPresetsCmd(),
		newEquationsCmd(),
		&cobra.Command{
			Use:   "tui",
			Short: "interactive form",
			RunE:  runTUI,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q (text, json)", format)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Normalize()
	return tui.Run(cfg, logger)
}
