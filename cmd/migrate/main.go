package main

import (
	"context"
	"log/slog"
	"os"

	"mflix/mongodb"
	"mflix/pkg/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := mongodb.NewConnection(ctx, mongodb.Options{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.MongoTimeout(),
	})
	if err != nil {
		logger.Error("cannot connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer func() { _ = mongodb.Disconnect(ctx, db) }()

	created, err := mongodb.EnsureIndexes(ctx, db)
	if err != nil {
		logger.Error("cannot create indexes", "error", err)
		os.Exit(1)
	}

	logger.Info("ensured indexes", "total", len(created), "indexes", created)
}
