package database

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabase is used when neither MONGO_DB nor the URI path names one.
const DefaultDatabase = "devconnect"

// Connect opens the process-wide MongoDB pool and pings it. The caller owns
// the returned client and must Disconnect it on shutdown.
func Connect(ctx context.Context, mongoURI, dbName string) (*mongo.Client, *mongo.Database, error) {
	// Use longer timeout for Atlas connections
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	slog.Info("Attempting to connect to MongoDB...")
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	if dbName == "" {
		dbName = DatabaseName(mongoURI)
	}

	slog.Info("✅ Connected to MongoDB", "database", dbName)
	return client, client.Database(dbName), nil
}

// DatabaseName extracts the database from a connection string such as
// mongodb://host:27017/devconnect?retryWrites=true.
func DatabaseName(mongoURI string) string {
	cs, err := connstring.Parse(mongoURI)
	if err != nil || cs.Database == "" {
		return DefaultDatabase
	}
	return cs.Database
}

func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
