package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boardrelay/internal/app"
	"github.com/vovakirdan/boardrelay/internal/config"
	"github.com/vovakirdan/boardrelay/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		port       int
		logLevel   string
		staticDir  string
	)

	root := &cobra.Command{
		Use:           "boardrelay",
		Short:         "Two-player chess room relay over WebSocket",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := config.Load(nil, configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("static-dir") {
				cfg.StaticDir = staticDir
			}

			logger := log.New(cfg.LogLevel)
			if path != "" {
				logger.Info().Str("path", path).Msg("config loaded")
			}

			application, err := app.New(&cfg, logger)
			if err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info().Str("addr", cfg.ListenAddr()).Msg("starting boardrelay")
			if err := application.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("server exited with error")
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	flags := root.Flags()
	flags.StringVar(&configPath, "config", "", "path to config.yaml (default: $BOARDRELAY_CONFIG or ./config.yaml)")
	flags.IntVar(&port, "port", 0, "HTTP listen port")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&staticDir, "static-dir", "", "directory of client files to serve")

	root.AddCommand(newConfigCmd())
	root.SetContext(context.Background())
	return root
}

func newConfigCmd() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "config.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})
	return cfgCmd
}
