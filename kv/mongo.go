package kv

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"time"

	"cafe-gandom/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo keeps one document per slot: {_id: key, value: string, updated_at: date}.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoSlot struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func NewMongo(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	var clientOptions *options.ClientOptions
	if cfg.User == "" && cfg.Password == "" {
		clientOptions = options.Client().ApplyURI(cfg.URI)
	} else {
		clientOptions = options.Client().ApplyURI(cfg.URI).
			SetAuth(options.Credential{
				AuthSource: cfg.Database,
				Username:   cfg.User,
				Password:   cfg.Password,
			}).
			SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	log.Printf("mongodb connected: db=%s collection=%s", cfg.Database, cfg.Collection)

	return &Mongo{client: client, coll: client.Database(cfg.Database).Collection(cfg.Collection)}, nil
}

func (m *Mongo) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	if m.coll == nil {
		return "", false, ErrClosed
	}
	var slot mongoSlot
	err := m.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find %s: %w", key, err)
	}
	return slot.Value, true, nil
}

func (m *Mongo) Set(ctx context.Context, key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if m.coll == nil {
		return ErrClosed
	}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "value", Value: value},
			{Key: "updated_at", Value: time.Now().UTC()},
		}},
	}
	_, err := m.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: key}}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (m *Mongo) Close() error {
	if m.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := m.client.Disconnect(ctx)
	m.client, m.coll = nil, nil
	return err
}
