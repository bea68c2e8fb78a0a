// Package store owns the document database connection and hands out
// per-entity collections. Every collection is created with a case- and
// accent-insensitive collation so lookups like usernames match regardless
// of casing.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
	"github.com/jeffandersoncharriot/ByteBoard/internal/logger"
)

var collation = options.Collation{Locale: "en", Strength: 1}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to the database and pings it. Callers must Close the store
// on shutdown.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	if uri == "" {
		return nil, errs.InvalidInput("database url must be specified")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.Database("could not connect to the database: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, errs.Database("could not reach the database: %v", err)
	}

	logger.Info("connected to database", map[string]any{"db": dbName})

	return &Store{client: client, db: client.Database(dbName)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Collection returns the named collection, creating it with the shared
// collation if it does not exist yet.
func (s *Store) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	existing, err := s.db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return nil, errs.Database("could not list collections: %v", err)
	}

	if len(existing) == 0 {
		opts := options.CreateCollection().SetCollation(&collation)
		if err := s.db.CreateCollection(ctx, name, opts); err != nil {
			return nil, errs.Database("could not create the %q collection: %v", name, err)
		}
		logger.Info("created collection", map[string]any{"name": name})
	}

	return s.db.Collection(name), nil
}

// Reset drops the named collection. Used by seeding and dev setups only.
func (s *Store) Reset(ctx context.Context, name string) error {
	if err := s.db.Collection(name).Drop(ctx); err != nil {
		return errs.Database("could not drop the %q collection: %v", name, err)
	}
	return nil
}
