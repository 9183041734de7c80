package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/config"
	"github.com/meikuraledutech/flow/stores"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := stores.Open(ctx, cfg.Store, logger)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer closeStore()

	srv := newServer(
		flow.NewSnapshots(store,
			flow.WithSnapshotKey(cfg.SnapshotKey),
			flow.WithSnapshotLogger(logger.Named("snapshots")),
		),
		flow.NewThemes(store, cfg.ThemeKey),
		logger,
	)
	app := newApp(srv)
	go srv.sweepSessions(ctx, time.Minute)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("store", cfg.Store.Driver))
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
}
