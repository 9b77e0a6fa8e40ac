package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/diewo77/ezpay-app/internal/config"
	"github.com/diewo77/ezpay-app/internal/db"
	"github.com/diewo77/ezpay-app/internal/server"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	dbConn, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("database connection error", "error", err.Error())
	}
	if err := db.Migrate(dbConn); err != nil {
		sugar.Fatalw("migration error", "error", err.Error())
	}
	if *migrateOnlyFlag {
		sugar.Infow("migrations completed; exiting as requested")
		return
	}
	if err := db.SeedCardsIfEmpty(dbConn); err != nil {
		sugar.Fatalw("card seeding error", "error", err.Error())
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(dbConn, logger, cfg.Development()),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sugar.Infow("starting server", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sugar.Infow("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("server error", "error", err.Error())
	}
	sugar.Infow("server stopped")
}
