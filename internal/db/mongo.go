package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/motorfleet/cars-backend/internal/config"
	"github.com/motorfleet/cars-backend/internal/pkg/logger"
)

// MongoService owns the single process-wide client; every repo shares the
// database handle it exposes.
type MongoService struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logger.Logger
}

func NewMongoService(ctx context.Context, cfg *config.Config, log *logger.Logger) (*MongoService, error) {
	serviceLog := log.With("service", "MongoService")

	serviceLog.Info("Connecting to MongoDB...", "database", cfg.MongoDB)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		serviceLog.Error("Failed to connect to MongoDB", "error", err)
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		serviceLog.Error("Failed to ping MongoDB", "error", err)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	serviceLog.Info("Connected to MongoDB")

	return &MongoService{
		client: client,
		db:     client.Database(cfg.MongoDB),
		log:    serviceLog,
	}, nil
}

func (s *MongoService) Database() *mongo.Database {
	return s.db
}

func (s *MongoService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
