package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/wirelab/internal/action"
	"github.com/gyaneshwarpardhi/wirelab/internal/action/wiring"
	"github.com/gyaneshwarpardhi/wirelab/internal/api"
	"github.com/gyaneshwarpardhi/wirelab/internal/config"
	"github.com/gyaneshwarpardhi/wirelab/internal/engine"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", getEnv("WIRELAB_ADDR", ":8080"), "HTTP listen address")
	return cmd
}

func serve(opts *rootOptions, addr string) error {
	// ── Load config and build the catalog ────────────────────────────────────
	loader, cat, err := loadCatalog(opts.configPath)
	if err != nil {
		slog.Error("failed to load level catalog", "path", opts.configPath, "err", err)
		return err
	}
	cfg := loader.Config()
	slog.Info("level catalog loaded", "levels", cat.Len(), "version", cfg.Version)

	// ── Action registry ───────────────────────────────────────────────────────
	reg := action.NewRegistry()
	wiring.RegisterAll(reg)

	// ── Engine ────────────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := engine.New(ctx, cat, reg, cfg.Engine)

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	loader.OnChange(func(newCfg *config.LabConfig) {
		newCat, err := eng.ApplyConfig(newCfg)
		if err != nil {
			slog.Warn("hot-reload skipped: catalog invalid", "err", err)
			return
		}
		slog.Info("level catalog hot-reloaded", "levels", newCat.Len())
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.New(eng, loader),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr, "shards", cfg.Engine.Shards)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errC:
		slog.Error("server error", "err", err)
		eng.Shutdown()
		return err
	}
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	eng.Shutdown()
	slog.Info("goodbye", "sessions_dropped", eng.SessionCount())
	return nil
}
