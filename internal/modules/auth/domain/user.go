package domain

import (
	"fmt"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = fmt.Errorf("user not found: %w", core.ErrNotFound)
	ErrUserAlreadyExists = fmt.Errorf("username or email is already taken: %w", core.ErrConflict)
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func NewUser(username string, email string, passwordHash string, now time.Time) User {
	return User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
