package inmem

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth"
	"github.com/eskrenkovic/table-scheduler/internal/modules/auth/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/google/uuid"
)

var _ auth.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]domain.User)}
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}

	return domain.User{}, notFound("user")
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, notFound("user")
	}

	return u, nil
}

func (r *UserRepository) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(user); err != nil {
		return err
	}

	r.users[user.ID] = user
	return nil
}

func (r *UserRepository) Update(_ context.Context, id uuid.UUID, update auth.UserUpdate) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, notFound("user")
	}

	update.Username.Apply(&u.Username)
	update.Email.Apply(&u.Email)
	update.PasswordHash.Apply(&u.PasswordHash)
	u.UpdatedAt = time.Now().UTC()

	if err := r.checkUnique(u); err != nil {
		return domain.User{}, err
	}

	r.users[id] = u
	return u, nil
}

func (r *UserRepository) Search(_ context.Context, username string, opts core.QueryOptions) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found []domain.User
	for _, u := range r.users {
		if strings.HasPrefix(strings.ToLower(u.Username), strings.ToLower(username)) {
			found = append(found, u)
		}
	}

	return page(found, func(u domain.User) time.Time { return u.CreatedAt }, opts), nil
}

func (r *UserRepository) checkUnique(user domain.User) error {
	for _, u := range r.users {
		if u.ID == user.ID {
			continue
		}

		if u.Username == user.Username {
			return conflict("user_username_uq")
		}

		if u.Email == user.Email {
			return conflict("user_email_uq")
		}
	}

	return nil
}

var _ auth.RefreshTokenRepository = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]domain.RefreshToken
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{tokens: make(map[string]domain.RefreshToken)}
}

func (r *RefreshTokenRepository) Create(_ context.Context, token domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token.Token]; ok {
		return conflict("refresh_token_token_uq")
	}

	for _, t := range r.tokens {
		if t.UserID == token.UserID {
			return conflict("refresh_token_user_id_uq")
		}
	}

	r.tokens[token.Token] = token
	return nil
}

func (r *RefreshTokenRepository) FindByToken(_ context.Context, token string) (domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[token]
	if !ok {
		return domain.RefreshToken{}, notFound("refresh token")
	}

	return t, nil
}

func (r *RefreshTokenRepository) DeleteByToken(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token]; !ok {
		return false, nil
	}

	delete(r.tokens, token)
	return true, nil
}

func (r *RefreshTokenRepository) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, token)
		}
	}

	return nil
}

// Count is the number of stored tokens.
func (r *RefreshTokenRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.tokens)
}
