package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/debate-server/internal/app"
	"github.com/vovakirdan/debate-server/internal/config"
	"github.com/vovakirdan/debate-server/internal/log"
	"github.com/vovakirdan/debate-server/internal/topics"
)

type rootOptions struct {
	configPath string
	addr       string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "debate-server",
		Short:         "Anonymous one-on-one debate rooms over WebSocket",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config file (default: ./config.yaml)")
	flags.StringVar(&opts.addr, "addr", "", "HTTP listen address")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the debate server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "topics",
			Short: "Print the built-in debate topics",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				for i, topic := range topics.Default().All() {
					fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, topic)
				}
			},
		},
	)

	return root
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	bootLogger := log.New(config.Default().LogLevel, config.Default().LogFormat)

	cfg, path, err := config.Load(bootLogger, opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	var overrides config.Config
	if flags.Changed("addr") {
		overrides.Addr = opts.addr
	}
	if flags.Changed("log-level") {
		overrides.LogLevel = opts.logLevel
	}
	cfg.UpdateFrom(overrides)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info().Str("config", path).Str("addr", cfg.Addr).Msg("starting debate server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(&cfg, logger).Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
