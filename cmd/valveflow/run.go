package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/valveflow/config"
	"github.com/katalvlaran/valveflow/restart"
	"github.com/katalvlaran/valveflow/status"
)

const shutdownTimeout = 5 * time.Second

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [input]",
		Short: "Repeat randomized searches and keep the best result",
		Long: `run restarts the search with reshuffled tunnel orders until a stop
condition holds: --restarts, --patience, --timeout, --target, or Ctrl-C.
With --redis-addr the high-water mark is shared by every process using the
same key.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := settings(cmd, args)
			if err != nil {
				return err
			}
			progress, _ := cmd.Flags().GetBool("progress")

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runLoop(ctx, cmd, cfg, progress)
		},
	}
	addSearchFlags(cmd.Flags())
	fs := cmd.Flags()
	fs.Int("workers", 0, "parallel restart loops (default 1)")
	fs.Int("restarts", 0, "stop after this many searches, 0 for no cap")
	fs.Int("patience", 0, "stop after this many searches without improvement")
	fs.Duration("timeout", 0, "stop after this much wall-clock time")
	fs.Int("target", 0, "stop once the best flow reaches this value")
	fs.String("redis-addr", "", "share the high-water mark through Redis at host:port")
	fs.String("redis-key", "", "high-water key suffix (default \"default\")")
	fs.String("status-addr", "", "serve /healthz, /highwater and /metrics on this address")
	fs.Bool("progress", false, "print every improvement as it happens")

	return cmd
}

func runLoop(ctx context.Context, cmd *cobra.Command, cfg *config.Config, progress bool) error {
	logger := newLogger(cfg, cmd.ErrOrStderr())

	g, err := loadGraph(cfg, cmd.InOrStdin())
	if err != nil {
		return err
	}
	rc, err := cfg.Restart()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	opts := []restart.Option{
		restart.WithLogger(logger),
		restart.WithMetrics(restart.NewMetrics(reg)),
	}

	var hw restart.HighWater = restart.NewMemoryHighWater()
	if cfg.Redis.Addr != "" {
		rhw := restart.NewRedisHighWater(cfg.Redis.Addr, cfg.Redis.Password(), cfg.Redis.DB,
			restart.WithKey(cfg.Redis.Key))
		defer rhw.Close()
		hw = rhw
		logger.Info("sharing high-water mark", "redis", cfg.Redis.Addr, "key", rhw.Key())
	}
	opts = append(opts, restart.WithHighWater(hw))

	out := cmd.OutOrStdout()
	if progress {
		opts = append(opts, restart.WithObserver(func(r restart.Report) {
			if r.Improved {
				fmt.Fprintf(out, "restart %d: %d\n", r.Restart, r.HighWater)
			}
		}))
	}

	drv, err := restart.New(g, rc, opts...)
	if err != nil {
		return err
	}

	if cfg.Status.Addr != "" {
		info := status.Info{Agents: cfg.Agents, Minutes: cfg.Minutes, Entry: g.EntryID()}
		srv := &http.Server{
			Addr:              cfg.Status.Addr,
			Handler:           status.NewHandler(hw, info, reg, logger),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go serveStatus(srv, logger)
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer scancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	sum, err := drv.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "flow: %d\n", sum.HighWater)
	if len(sum.Path) > 0 {
		fmt.Fprintf(out, "path: %s\n", sum.Path)
	}
	fmt.Fprintf(out, "restarts: %d\n", sum.Restarts)
	fmt.Fprintf(out, "stopped: %s after %s\n", sum.Reason, sum.Elapsed.Round(time.Millisecond))

	return nil
}

func serveStatus(srv *http.Server, logger *slog.Logger) {
	logger.Info("status server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("status server failed", "error", err)
	}
}
