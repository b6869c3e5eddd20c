// Package mongo implementa el CredentialStore sobre MongoDB.
// Cada registro es un documento con _id = user id decimal y value = JSON.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dropDatabas3/hellokey/internal/domain"
	"github.com/dropDatabas3/hellokey/internal/store"
)

const (
	defaultDatabase   = "hellokey"
	defaultCollection = "client_credentials"
)

func init() {
	store.RegisterAdapter(&mongoAdapter{})
}

type mongoAdapter struct{}

func (a *mongoAdapter) Name() string { return "mongo" }

func (a *mongoAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.CredentialStore, error) {
	if cfg.MongoURI == "" {
		return nil, errors.New("mongo: uri is required")
	}
	opts := options.Client().ApplyURI(cfg.MongoURI).SetConnectTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	dbName := cfg.MongoDatabase
	if dbName == "" {
		dbName = defaultDatabase
	}
	collName := cfg.Prefix
	if collName == "" {
		collName = defaultCollection
	}
	return &Store{client: client, coll: client.Database(dbName).Collection(collName)}, nil
}

// Store es el CredentialStore respaldado por Mongo.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ store.CredentialStore = (*Store)(nil)

type document struct {
	ID        string    `bson:"_id"`
	Value     string    `bson:"value"`
	CreatedAt time.Time `bson:"created_at"`
}

func (s *Store) Get(ctx context.Context, userID string) (*domain.ClientCredentials, error) {
	var doc document
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: find: %w", err)
	}
	return store.Decode([]byte(doc.Value))
}

func (s *Store) Put(ctx context.Context, userID string, creds domain.ClientCredentials) error {
	b, err := store.Encode(creds)
	if err != nil {
		return err
	}
	_, err = s.coll.InsertOne(ctx, document{ID: userID, Value: string(b), CreatedAt: time.Now().UTC()})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("mongo: insert: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
