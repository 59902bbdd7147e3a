package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	MoviesCollection   = "movies"
	CommentsCollection = "comments"
)

type Options struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// NewConnection connects to the deployment described by opts, verifies it
// with a ping and returns the configured database.
func NewConnection(ctx context.Context, opts Options) (*mongo.Database, error) {
	uri := strings.TrimSpace(opts.URI)
	if uri == "" {
		return nil, errors.New("mongodb: uri is required")
	}
	if strings.TrimSpace(opts.Database) == "" {
		return nil, errors.New("mongodb: database name is required")
	}

	clientOpts := options.Client().ApplyURI(uri)
	if opts.Timeout > 0 {
		clientOpts.SetTimeout(opts.Timeout)
		clientOpts.SetServerSelectionTimeout(opts.Timeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	return client.Database(opts.Database), nil
}

// Disconnect closes the client owning db.
func Disconnect(ctx context.Context, db *mongo.Database) error {
	return db.Client().Disconnect(ctx)
}
