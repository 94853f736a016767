package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/auth-service/internal/core/domain"
)

const usersCollection = "users"

type mongoUser struct {
	Username     string   `bson:"username"`
	PasswordHash string   `bson:"password_hash"`
	Roles        []string `bson:"roles"`
	Enabled      bool     `bson:"enabled"`
}

// LoadUsers reads the full users collection. It is called exactly once at
// startup to populate the immutable in-memory store; the service never
// queries the collection again.
func LoadUsers(ctx context.Context, db *mongo.Database) ([]domain.User, error) {
	cur, err := db.Collection(usersCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		if mu.Username == "" || mu.PasswordHash == "" {
			return nil, fmt.Errorf("users collection: document missing username or password_hash")
		}
		if mu.Enabled && len(mu.Roles) == 0 {
			return nil, fmt.Errorf("users collection: enabled user %q has no roles", mu.Username)
		}
		users = append(users, domain.User{
			Username:     mu.Username,
			PasswordHash: mu.PasswordHash,
			Roles:        mu.Roles,
			Enabled:      mu.Enabled,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
