package cache

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default database and collection of a MongoCache.
const (
	DefaultMongoDatabase   = "carousel"
	DefaultMongoCollection = "cache"
)

// mongoEntry is the stored document. MongoDB's TTL monitor removes expired
// documents in the background; Get also checks ExpiresAt because the monitor
// only runs about once a minute.
type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// MongoCache stores entries as documents in one MongoDB collection.
type MongoCache struct {
	client *mongo.Client
	coll   *mongo.Collection
	prefix string
}

// NewMongoCache connects to the MongoDB deployment at uri, checks the
// connection with retry and backoff, and ensures the TTL index exists.
// Keys are stored under prefix in [DefaultMongoDatabase].[DefaultMongoCollection].
func NewMongoCache(ctx context.Context, uri, prefix string) (*MongoCache, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	err = RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return Retryable(fmt.Errorf("%w: %v", ErrUnavailable, err))
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	c := NewMongoCacheFromClient(client, DefaultMongoDatabase, DefaultMongoCollection, prefix)
	if err := c.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return c, nil
}

// NewMongoCacheFromClient wraps an existing client.
func NewMongoCacheFromClient(client *mongo.Client, database, collection, prefix string) *MongoCache {
	return &MongoCache{
		client: client,
		coll:   client.Database(database).Collection(collection),
		prefix: prefix,
	}
}

func (c *MongoCache) ensureIndexes(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("create ttl index: %w", err)
	}
	return nil
}

// Get retrieves a value from MongoDB.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": c.prefix + key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if e.ExpiresAt != nil && time.Now().After(*e.ExpiresAt) {
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set upserts a value. A positive ttl sets the document's expiry.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := mongoEntry{Key: c.prefix + key, Data: data}
	if ttl > 0 {
		exp := time.Now().Add(ttl).UTC()
		e.ExpiresAt = &exp
	}
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": e.Key}, e, options.Replace().SetUpsert(true))
	return err
}

// Delete removes a value from MongoDB.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"_id": c.prefix + key})
	return err
}

// Clear deletes every document under the cache prefix.
func (c *MongoCache) Clear(ctx context.Context) error {
	filter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(c.prefix)}}
	_, err := c.coll.DeleteMany(ctx, filter)
	return err
}

// Close disconnects the client.
func (c *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

var (
	_ Cache   = (*MongoCache)(nil)
	_ Clearer = (*MongoCache)(nil)
)
