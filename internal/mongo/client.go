// Package mongo builds the MongoDB client used by the listing store.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabase is used when the connection URI names no database.
const DefaultDatabase = "hustleBust"

const connectTimeout = 10 * time.Second

// Connect creates a client for uri and returns it with the database name
// taken from the URI path. The driver connects lazily, so an unreachable
// server is not reported here; use Ping for that.
func Connect(ctx context.Context, uri string) (*mongo.Client, string, error) {
	dbName, err := DatabaseName(uri)
	if err != nil {
		return nil, "", err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, "", fmt.Errorf("connecting to mongodb: %w", err)
	}

	return client, dbName, nil
}

// DatabaseName returns the database named in a MongoDB URI,
// or DefaultDatabase when the URI has none.
func DatabaseName(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("parsing mongodb uri: %w", err)
	}
	if cs.Database == "" {
		return DefaultDatabase, nil
	}
	return cs.Database, nil
}
