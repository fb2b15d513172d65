package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"slapflip-backend/internal/common/config"
	"slapflip-backend/internal/common/logger"
)

const (
	CollectionUsers        = "users"
	CollectionWhitelist    = "whitelist"
	CollectionTwitterAuth  = "twitter_auth"
	CollectionChatMessages = "chat_messages"
)

// Client owns the process-wide connection pool. It is opened once in main
// and handed to every repository.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(cfg.Mongo.ConnectTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info().
		Str("database", cfg.Mongo.Database).
		Msg("MongoDB client initialized")

	return &Client{client: client, db: client.Database(cfg.Mongo.Database)}, nil
}

func (c *Client) Database() *mongo.Database {
	return c.db
}

func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the indexes every collection relies on. The unique
// address indexes back the atomic upserts; the TTL index reaps abandoned
// twitter auth sessions.
func (c *Client) EnsureIndexes(ctx context.Context, sessionTTL time.Duration) error {
	// expireAfterSeconds=0 would reap sessions on the next TTL pass
	if sessionTTL < time.Second {
		return fmt.Errorf("session ttl must be at least 1s, got %s", sessionTTL)
	}

	specs := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "address", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionWhitelist: {
			{Keys: bson.D{{Key: "address", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "twitterUsername", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		CollectionTwitterAuth: {
			{Keys: bson.D{{Key: "address", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "state", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "createdAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(int32(sessionTTL.Seconds()))},
		},
		CollectionChatMessages: {
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		},
	}

	for name, models := range specs {
		if _, err := c.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
