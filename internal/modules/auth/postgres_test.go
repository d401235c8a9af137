//go:build integration

package auth_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth"
	"github.com/eskrenkovic/table-scheduler/internal/modules/auth/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/tests"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixture *tests.PostgresFixture

func TestMain(m *testing.M) {
	ctx := context.Background()

	f, err := tests.NewPostgresFixture(ctx, "../../../db/migrations")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fixture = f

	code := m.Run()

	if err := fixture.Stop(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	os.Exit(code)
}

func Test_PostgresUserRepository_Create_Fails_With_Conflict_On_Duplicate_Username(t *testing.T) {
	// Arrange
	ctx := context.Background()
	users := auth.NewPostgresUserRepository(fixture.DB)

	now := time.Now().UTC()
	require.NoError(t, users.Create(ctx, domain.NewUser("gandalf", "gandalf@example.com", "hash", now)))

	// Act
	err := users.Create(ctx, domain.NewUser("gandalf", "mithrandir@example.com", "hash", now))

	// Assert
	require.ErrorIs(t, err, core.ErrConflict)
}

func Test_PostgresUserRepository_Search_Matches_Username_Prefix(t *testing.T) {
	// Arrange
	ctx := context.Background()
	users := auth.NewPostgresUserRepository(fixture.DB)

	now := time.Now().UTC()
	require.NoError(t, users.Create(ctx, domain.NewUser("frodo_b", "frodo@example.com", "hash", now)))
	require.NoError(t, users.Create(ctx, domain.NewUser("frodoXb", "frodox@example.com", "hash", now)))

	// Act
	found, err := users.Search(ctx, "frodo_", core.DefaultQueryOptions())

	// Assert
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "frodo_b", found[0].Username)
}

func Test_RefreshTokenStore_On_Postgres_Rotates_Once(t *testing.T) {
	// Arrange
	ctx := context.Background()
	users := auth.NewPostgresUserRepository(fixture.DB)

	user := domain.NewUser("samwise", "samwise@example.com", "hash", time.Now().UTC())
	require.NoError(t, users.Create(ctx, user))

	store := auth.NewRefreshTokenStore(auth.NewPostgresRefreshTokenRepository(fixture.DB), time.Hour, zap.NewNop())

	token, err := store.Issue(ctx, user.ID)
	require.NoError(t, err)

	// Act
	rotated, owner, err := store.Rotate(ctx, token)
	require.NoError(t, err)

	_, _, replayErr := store.Rotate(ctx, token)

	// Assert
	require.Equal(t, user.ID, owner)
	require.NotEqual(t, token, rotated)
	require.ErrorIs(t, replayErr, core.ErrInvalidCredentials)
}
