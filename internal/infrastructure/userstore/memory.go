// Package userstore provides the immutable in-memory user set the core
// authenticates against. The set is built once at startup, from a seed file
// or a one-shot MongoDB load, and never changes afterwards.
package userstore

import (
	"context"
	"sort"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// Memory is a read-only username → user mapping. Because nothing mutates it
// after construction, lookups need no locking and are safe from any number
// of goroutines.
type Memory struct {
	users map[string]domain.User
}

// NewMemory builds the store from a slice of users. Later duplicates of a
// username override earlier ones.
func NewMemory(users []domain.User) *Memory {
	m := make(map[string]domain.User, len(users))
	for _, u := range users {
		m[u.Username] = u
	}
	return &Memory{users: m}
}

// FindByUsername returns a copy of the named user, if present.
func (s *Memory) FindByUsername(_ context.Context, username string) (*domain.User, bool) {
	u, ok := s.users[username]
	if !ok {
		return nil, false
	}
	clone := u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone, true
}

// All returns every user, sorted by username for deterministic listings.
func (s *Memory) All(_ context.Context) []domain.User {
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// Len reports how many users were loaded.
func (s *Memory) Len() int {
	return len(s.users)
}
