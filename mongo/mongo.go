// Package mongo stores flow slots as documents in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meikuraledutech/flow"
)

// Default database and collection names.
const (
	DefaultDatabase   = "flow"
	DefaultCollection = "slots"
)

type slotDoc struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store implements flow.Store over one collection; the slot key is the document _id.
type Store struct {
	coll *mongo.Collection
}

// New wraps an existing collection.
func New(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// Open connects to uri and returns a Store on database/collection along with
// the client, which the caller must Disconnect.
func Open(ctx context.Context, uri, database, collection string) (*Store, *mongo.Client, error) {
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return New(client.Database(database).Collection(collection)), client, nil
}

// Get returns nil, nil if no document has the key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var doc slotDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: get %s: %w", key, err)
	}
	return doc.Value, nil
}

// Put replaces the document, inserting it if missing.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	doc := slotDoc{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo: put %s: %w", key, err)
	}
	return nil
}

// Delete removes the document. No error if it doesn't exist.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo: delete %s: %w", key, err)
	}
	return nil
}

var _ flow.Store = (*Store)(nil)
