package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/hustlebust/internal/logging"
	"github.com/evcraddock/hustlebust/internal/web"
)

const startupPingTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long:  "Start an HTTP server for the listings web UI.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (default from HB_ADDR, 0.0.0.0:4000)")

	return cmd
}

func runServe(ctx context.Context, addr string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	logging.Setup(cfg.Dev)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, cfg.StoreURL)
	if err != nil {
		return err
	}
	defer closeRepository(repo)

	// An unreachable store is not fatal; requests fail individually until it comes back.
	pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
	if err := repo.Ping(pingCtx); err != nil {
		slog.Error("store unreachable, serving anyway", "error", err)
	} else {
		slog.Info("connected to store")
	}
	cancel()

	srv, err := web.NewServer(repo, web.Options{PublicDir: cfg.PublicDir})
	if err != nil {
		return err
	}

	return srv.ListenAndServe(ctx, cfg.Addr, cfg.HTTP)
}
