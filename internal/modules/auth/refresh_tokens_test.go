package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth"
	"github.com/eskrenkovic/table-scheduler/internal/modules/auth/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/tests/inmem"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func Test_RefreshTokenStore_Rotate_Rejects_Expired_Token(t *testing.T) {
	// Arrange
	ctx := context.Background()
	now := time.Now()
	clock := func() time.Time { return now }

	tokens := inmem.NewRefreshTokenRepository()
	store := auth.NewRefreshTokenStore(tokens, time.Hour, zap.NewNop(), auth.WithRefreshTokenClock(clock))

	token, err := store.Issue(ctx, uuid.New())
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)

	// Act
	_, _, err = store.Rotate(ctx, token)

	// Assert
	require.ErrorIs(t, err, core.ErrInvalidCredentials)
	require.Equal(t, 0, tokens.Count())
}

func Test_RefreshTokenStore_Rotate_Rejects_Unknown_Token(t *testing.T) {
	// Arrange
	store := auth.NewRefreshTokenStore(inmem.NewRefreshTokenRepository(), time.Hour, zap.NewNop())

	// Act
	_, _, err := store.Rotate(context.Background(), "never-issued")

	// Assert
	require.ErrorIs(t, err, core.ErrInvalidCredentials)
}

func Test_RefreshTokenStore_Rotate_Returns_Owner_Of_Token(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := auth.NewRefreshTokenStore(inmem.NewRefreshTokenRepository(), time.Hour, zap.NewNop())
	userID := uuid.New()

	token, err := store.Issue(ctx, userID)
	require.NoError(t, err)

	// Act
	rotated, owner, err := store.Rotate(ctx, token)

	// Assert
	require.NoError(t, err)
	require.Equal(t, userID, owner)
	require.NotEqual(t, token, rotated)
}

func Test_RefreshTokenStore_Concurrent_Rotations_Have_One_Winner(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := auth.NewRefreshTokenStore(inmem.NewRefreshTokenRepository(), time.Hour, zap.NewNop())

	token, err := store.Issue(ctx, uuid.New())
	require.NoError(t, err)

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	wg.Add(attempts)

	// Act
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = store.Rotate(ctx, token)
		}(i)
	}
	wg.Wait()

	// Assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	require.Equal(t, 1, succeeded)
}

// racingRefreshTokens stores a competing token for the same user right
// before the first Create calls through, the way a parallel login would.
type racingRefreshTokens struct {
	*inmem.RefreshTokenRepository
	races int
}

func (r *racingRefreshTokens) Create(ctx context.Context, token domain.RefreshToken) error {
	if r.races > 0 {
		r.races--

		competing, err := domain.NewRefreshToken(token.UserID, time.Now().UTC(), time.Hour)
		if err != nil {
			return err
		}

		if err := r.RefreshTokenRepository.Create(ctx, competing); err != nil {
			return err
		}
	}

	return r.RefreshTokenRepository.Create(ctx, token)
}

func Test_RefreshTokenStore_Issue_Retries_After_Concurrent_Issue(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tokens := &racingRefreshTokens{RefreshTokenRepository: inmem.NewRefreshTokenRepository(), races: 1}
	store := auth.NewRefreshTokenStore(tokens, time.Hour, zap.NewNop())

	// Act
	token, err := store.Issue(ctx, uuid.New())

	// Assert
	require.NoError(t, err)
	require.Equal(t, 1, tokens.Count())

	_, err = tokens.FindByToken(ctx, token)
	require.NoError(t, err)
}

func Test_RefreshTokenStore_Issue_Conflict_Does_Not_Name_Index(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tokens := &racingRefreshTokens{RefreshTokenRepository: inmem.NewRefreshTokenRepository(), races: 2}
	store := auth.NewRefreshTokenStore(tokens, time.Hour, zap.NewNop())

	// Act
	_, err := store.Issue(ctx, uuid.New())

	// Assert
	require.ErrorIs(t, err, core.ErrConflict)
	require.NotContains(t, err.Error(), "refresh_token_user_id_uq")
}
