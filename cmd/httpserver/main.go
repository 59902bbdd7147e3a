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

	"mflix/httpserver"
	"mflix/mongodb"
	"mflix/movie"
	"mflix/pkg/config"
	"mflix/pkg/sentry"

	sentrygo "github.com/getsentry/sentry-go"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mongodb.NewConnection(ctx, mongodb.Options{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.MongoTimeout(),
	})
	if err != nil {
		sentry.Fatal(err)
		slog.Error("Cannot open mongodb connection", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongodb.Disconnect(context.Background(), db); err != nil {
			slog.Error("Cannot close mongodb connection", "error", err)
		}
	}()

	server := httpserver.Default(cfg)
	server.Addr = fmt.Sprintf(":%d", cfg.Port)
	server.MovieService = movie.NewUsecase(mongodb.NewMovieRepository(db, cfg.Mongo.SearchIndex))

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server started!", "addr", server.Addr, "database", cfg.Mongo.Database)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped with error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
		slog.Info("server stopped")
	}
}
