package db

import (
	"context"
	"time"

	"safeplate/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps the MongoDB client and the collections the services use.
type Store struct {
	Client           *mongo.Client
	RecipeCollection *mongo.Collection
}

// Connect dials MongoDB, pings it, and resolves collection handles.
func Connect(ctx context.Context, cfg config.Config) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(serverAPI)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(pingCtx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Database("admin").RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, err
	}

	database := client.Database(cfg.MongoDB)
	return &Store{
		Client:           client,
		RecipeCollection: database.Collection("recipes"),
	}, nil
}

// Disconnect closes the underlying client.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
