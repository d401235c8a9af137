package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RefreshTokenStoreOption func(*RefreshTokenStore)

func WithRefreshTokenClock(now func() time.Time) RefreshTokenStoreOption {
	return func(s *RefreshTokenStore) {
		if now != nil {
			s.now = now
		}
	}
}

// RefreshTokenStore keeps at most one active refresh token per user and
// consumes tokens on use.
//
// Issue deletes then inserts, which is check-then-act: two concurrent Issue
// calls for a user can interleave. The unique index on refresh_token.user_id
// rejects the second insert, and Issue then revokes the winner's token and
// retries once so the most recent login keeps the active token.
type RefreshTokenStore struct {
	tokens RefreshTokenRepository
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewRefreshTokenStore(
	tokens RefreshTokenRepository,
	ttl time.Duration,
	logger *zap.Logger,
	opts ...RefreshTokenStoreOption,
) *RefreshTokenStore {
	s := &RefreshTokenStore{
		tokens: tokens,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *RefreshTokenStore) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := s.replace(ctx, userID)
	if errors.Is(err, core.ErrConflict) {
		s.logger.Debug("refresh token issued concurrently, retrying", zap.Stringer("user_id", userID))
		token, err = s.replace(ctx, userID)
	}

	if errors.Is(err, core.ErrConflict) {
		return "", errConcurrentIssue
	}

	return token, err
}

var errConcurrentIssue = fmt.Errorf("refresh token issued concurrently: %w", core.ErrConflict)

func (s *RefreshTokenStore) replace(ctx context.Context, userID uuid.UUID) (string, error) {
	if err := s.tokens.DeleteByUser(ctx, userID); err != nil {
		return "", fmt.Errorf("failed to revoke previous refresh tokens: %w", err)
	}

	token, err := domain.NewRefreshToken(userID, s.now().UTC(), s.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.tokens.Create(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return token.Token, nil
}

// Rotate consumes oldToken and issues its replacement. Unknown, expired and
// already consumed tokens all fail with core.ErrInvalidCredentials.
func (s *RefreshTokenStore) Rotate(ctx context.Context, oldToken string) (string, uuid.UUID, error) {
	stored, err := s.tokens.FindByToken(ctx, oldToken)
	switch {
	case errors.Is(err, core.ErrNotFound):
		s.logger.Debug("refresh token rejected", zap.String("reason", "not found"))
		return "", uuid.Nil, core.ErrInvalidCredentials
	case err != nil:
		return "", uuid.Nil, fmt.Errorf("failed to load refresh token: %w", err)
	}

	if stored.Expired(s.now()) {
		if _, err := s.tokens.DeleteByToken(ctx, oldToken); err != nil {
			return "", uuid.Nil, fmt.Errorf("failed to delete expired refresh token: %w", err)
		}

		s.logger.Debug("refresh token rejected", zap.String("reason", "expired"), zap.Stringer("user_id", stored.UserID))
		return "", uuid.Nil, core.ErrInvalidCredentials
	}

	deleted, err := s.tokens.DeleteByToken(ctx, oldToken)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}

	if !deleted {
		s.logger.Debug("refresh token rejected", zap.String("reason", "consumed concurrently"), zap.Stringer("user_id", stored.UserID))
		return "", uuid.Nil, core.ErrInvalidCredentials
	}

	newToken, err := s.Issue(ctx, stored.UserID)
	if err != nil {
		return "", uuid.Nil, err
	}

	return newToken, stored.UserID, nil
}

func (s *RefreshTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.tokens.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}
