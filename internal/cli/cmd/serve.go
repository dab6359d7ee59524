package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reklai/harpoon-telescope/internal/cli"
	"github.com/reklai/harpoon-telescope/internal/infrastructure/config"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the daemon the browser extension connects to",
	Long: `Start the harpoon daemon.

The extension connects to ws://<listen_addr>/bridge. The same address also
serves /healthz and, when metrics are enabled, /metrics.

The config file is watched: timings and retry delays apply to the next
operation after a save. Changing the listen address needs a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "override bridge.listen_addr")
}

func runServe(_ *cobra.Command, _ []string) error {
	mgr, err := config.NewManager()
	if err != nil {
		return fmt.Errorf("create config manager: %w", err)
	}
	if serveAddr != "" {
		mgr.Override("bridge.listen_addr", serveAddr)
	}
	if err := mgr.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger, logCleanup, err := cli.DaemonLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logCleanup()
	defer logging.RecoverAndLog(logger)

	if created := mgr.CreatedConfigFile(); created != "" {
		logger.Info().Str("path", created).Msg("wrote default configuration")
	}
	if err := mgr.Watch(logger); err != nil {
		logger.Warn().Err(err).Msg("config watching disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithContext(ctx, logger)

	daemon, err := cli.NewDaemon(ctx, mgr)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := daemon.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("shutdown incomplete")
		}
	}()

	logger.Info().Str("addr", cfg.Bridge.ListenAddr).Str("config", mgr.GetConfigFile()).Msg("harpoon daemon starting")
	if err := daemon.Run(ctx); err != nil {
		return err
	}
	logger.Info().Msg("harpoon daemon stopped")
	return nil
}
