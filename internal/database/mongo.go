// internal/database/mongo.go
package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/javajoker/realestate-backend/internal/config"
)

// ConnectMongo connects to the configured deployment and verifies it with a
// ping before returning the database handle.
func ConnectMongo(ctx context.Context, cfg config.MongoConfig, log *logrus.Logger) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetConnectTimeout(cfg.Timeout()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	log.WithField("database", cfg.Database).Info("Mongo connection established")
	return client, client.Database(cfg.Database), nil
}

func DisconnectMongo(ctx context.Context, client *mongo.Client, log *logrus.Logger) {
	if err := client.Disconnect(ctx); err != nil {
		log.WithError(err).Error("Error closing mongo connection")
		return
	}
	log.Info("Mongo connection closed")
}
