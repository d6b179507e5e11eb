// Package docstore is the document store shared by the services.
//
// Documents are Go structs tagged for both bson and json with the same field names;
// the id field is tagged `bson:"_id,omitempty" json:"id"` and is assigned by the store.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"food-delivery/internal/xpkg/config"
	"food-delivery/internal/xpkg/logger"
)

var ErrNotFound = errors.New("document not found")

// Filter is a set of top-level equality matches. An empty filter matches every document.
type Filter map[string]any

// Fields is a partial document applied by UpdateFields.
type Fields map[string]any

type Collection interface {
	// InsertOne stores doc and returns the id assigned to it.
	InsertOne(ctx context.Context, doc any) (string, error)
	// FindOne decodes the document with the given id into out.
	// Unknown and malformed ids both yield ErrNotFound.
	FindOne(ctx context.Context, id string, out any) error
	// FindMany decodes every matching document, in insertion order, into out (a pointer to a slice).
	FindMany(ctx context.Context, filter Filter, out any) error
	// UpdateFields sets fields on one document atomically.
	UpdateFields(ctx context.Context, id string, fields Fields) error
	DeleteOne(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, filter Filter) (int64, error)
}

type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open connects the configured driver. Collections are created up front where the driver needs it.
func Open(ctx context.Context, cfg config.Store, log logger.Logger, collections ...string) (Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return OpenMongo(ctx, cfg.Mongo, log)
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.Postgres.ConnString(), collections...)
	case config.DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
