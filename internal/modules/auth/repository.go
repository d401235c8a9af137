package auth

import (
	"context"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/google/uuid"
)

// UserUpdate is a partial update of a user row; fields left as Keep are untouched.
type UserUpdate struct {
	Username     core.Update[string]
	Email        core.Update[string]
	PasswordHash core.Update[string]
}

// UserRepository persists users. Missing rows are reported as core.ErrNotFound,
// username/email collisions as core.ErrConflict.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	Create(ctx context.Context, user domain.User) error
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (domain.User, error)
	Search(ctx context.Context, username string, opts core.QueryOptions) ([]domain.User, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token domain.RefreshToken) error
	FindByToken(ctx context.Context, token string) (domain.RefreshToken, error)
	// DeleteByToken reports whether a row was deleted, which is what makes
	// a token single use when two callers race on it.
	DeleteByToken(ctx context.Context, token string) (bool, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
