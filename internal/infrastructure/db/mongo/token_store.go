package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

const stateCollection = "client_state"

// TokenStore keeps the bearer token in one document of the client_state
// collection, keyed by _id.
type TokenStore struct {
	coll *mongo.Collection
	key  string
}

func NewTokenStore(db *mongo.Database, key string) *TokenStore {
	return &TokenStore{coll: db.Collection(stateCollection), key: key}
}

type tokenDocument struct {
	Key       string `bson:"_id"`
	Value     string `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (s *TokenStore) Load(ctx context.Context) (string, error) {
	var doc tokenDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": s.key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("find token: %w", err)
	}
	if doc.Value == "" {
		return "", domain.ErrTokenNotFound
	}
	return doc.Value, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	doc := tokenDocument{Key: s.key, Value: token, UpdatedAt: time.Now().UTC().Unix()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *TokenStore) Delete(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.key}); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Ping reports whether the database answers a ping command.
func (s *TokenStore) Ping(ctx context.Context) error {
	return s.coll.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
