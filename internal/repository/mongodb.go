// Package repository stores tenant pricing config versions and request/audit
// logs in MongoDB.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	pricingConfigsCollection = "pricing_configs"
	logsCollection           = "logs"
	logsTTLIndex             = "logs_ttl"
	pingTimeout              = 2 * time.Second
)

// MongoConfig sizes the client's connection pool and timeouts.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	// Compression negotiates zstd, snappy or zlib with the server.
	Compression bool
}

// DefaultMongoConfig returns the production pool settings.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            5,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		Compression:            true,
	}
}

func (cfg MongoConfig) clientOptions(uri string) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(uri).
		SetRegistry(NewRegistry()).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if cfg.Compression {
		opts.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}
	return opts
}

// MongoDB is a connected client and the service's collections.
type MongoDB struct {
	Client         *mongo.Client
	Database       *mongo.Database
	PricingConfigs *mongo.Collection
	Logs           *mongo.Collection
}

// NewMongoDB connects with DefaultMongoConfig.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings and ensures the collection indexes.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, cfg.clientOptions(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:         client,
		Database:       db,
		PricingConfigs: db.Collection(pricingConfigsCollection),
		Logs:           db.Collection(logsCollection),
	}
	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb indexes: %w", err)
	}
	return m, nil
}

func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	// Versions are unique per tenant, and at most one is active.
	_, err := m.PricingConfigs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenant", Value: 1}, {Key: "version", Value: -1}},
			Options: options.Index().SetUnique(true).SetName("tenant_version"),
		},
		{
			Keys: bson.D{{Key: "tenant", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("tenant_active").
				SetPartialFilterExpression(bson.M{"active": true}),
		},
	})
	if err != nil {
		return err
	}

	// The TTL index on timestamp belongs to SetLogsTTL.
	_, err = m.Logs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "request_id", Value: 1}}, Options: options.Index().SetName("request_id")},
		{
			Keys:    bson.D{{Key: "tenant", Value: 1}, {Key: "action_type", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("tenant_action_time"),
		},
	})
	return err
}

// SetLogsTTL expires log entries ttlDays after their timestamp, replacing any
// previous retention.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttlDays int) error {
	if ttlDays <= 0 {
		return fmt.Errorf("logs ttl must be positive, got %d days", ttlDays)
	}

	if _, err := m.Logs.Indexes().DropOne(ctx, logsTTLIndex); err != nil && !isMissing(err) {
		return err
	}
	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().
			SetName(logsTTLIndex).
			SetExpireAfterSeconds(int32(ttlDays * 24 * 60 * 60)),
	})
	return err
}

// isMissing reports a drop of an index or collection that does not exist.
func isMissing(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && (cmdErr.Name == "IndexNotFound" || cmdErr.Name == "NamespaceNotFound")
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the primary.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
