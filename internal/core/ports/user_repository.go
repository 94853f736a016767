package ports

import (
	"context"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// UserRepository is the read-only user-lookup capability the core consumes.
// Implementations are expected to be immutable after construction and safe
// for concurrent use.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, bool)
	All(ctx context.Context) []domain.User
}
