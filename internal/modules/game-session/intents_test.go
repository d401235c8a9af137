package gamesession_test

import (
	"context"
	"testing"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_IntentWorkflow_Set_Creates_Unsure_Intent_By_Default(t *testing.T) {
	// Arrange
	f := newSessionFixture(t)
	session := f.createSession(t)
	playerID := uuid.New()

	// Act
	intent, err := f.intentWF.Set(context.Background(), playerID, session.ID, "")

	// Assert
	require.NoError(t, err)
	require.Equal(t, domain.IntentStatusUnsure, intent.IntentStatus)
	require.Equal(t, playerID, intent.UserID)
}

func Test_IntentWorkflow_Set_Updates_Existing_Intent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newSessionFixture(t)
	session := f.createSession(t)
	playerID := uuid.New()

	first, err := f.intentWF.Set(ctx, playerID, session.ID, domain.IntentStatusUnsure)
	require.NoError(t, err)

	// Act
	second, err := f.intentWF.Set(ctx, playerID, session.ID, domain.IntentStatusConfirmed)

	// Assert
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, domain.IntentStatusConfirmed, second.IntentStatus)

	intents, err := f.intentWF.SessionIntents(ctx, session.ID, core.DefaultQueryOptions())
	require.NoError(t, err)
	require.Len(t, intents, 1)
}

func Test_IntentWorkflow_Set_Fails_When_Session_Is_Missing(t *testing.T) {
	// Arrange
	f := newSessionFixture(t)

	// Act
	_, err := f.intentWF.Set(context.Background(), uuid.New(), uuid.New(), domain.IntentStatusConfirmed)

	// Assert
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func Test_IntentWorkflow_Delete_Only_Touches_Own_Intent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newSessionFixture(t)
	session := f.createSession(t)
	playerID := uuid.New()

	_, err := f.intentWF.Set(ctx, playerID, session.ID, domain.IntentStatusDeclined)
	require.NoError(t, err)

	// Act
	otherErr := f.intentWF.Delete(ctx, uuid.New(), session.ID)
	ownErr := f.intentWF.Delete(ctx, playerID, session.ID)

	// Assert
	require.ErrorIs(t, otherErr, domain.ErrSessionIntentNotFound)
	require.NoError(t, ownErr)

	_, err = f.intents.FindByUserAndSession(ctx, playerID, session.ID)
	require.ErrorIs(t, err, core.ErrNotFound)
}
