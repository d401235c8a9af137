package gamesession_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	gamesession "github.com/eskrenkovic/table-scheduler/internal/modules/game-session"
	"github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/tests/inmem"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// interleavingSessions runs beforeUpdate between the lifecycle's read of a
// session and its conditional write.
type interleavingSessions struct {
	*inmem.SessionRepository
	beforeUpdate func(ctx context.Context, id uuid.UUID)
}

func (r interleavingSessions) Update(
	ctx context.Context,
	id uuid.UUID,
	expected domain.SessionStatus,
	update domain.SessionUpdate,
) (domain.Session, error) {
	r.beforeUpdate(ctx, id)
	return r.SessionRepository.Update(ctx, id, expected, update)
}

func Test_Lifecycle_Update_Fails_With_Conflict_When_Status_Changed_Concurrently(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newSessionFixture(t)
	session := f.createSession(t)

	sessions := interleavingSessions{
		SessionRepository: f.sessions,
		beforeUpdate: func(ctx context.Context, id uuid.UUID) {
			_, err := f.sessions.Update(ctx, id, domain.SessionStatusScheduled, domain.SessionUpdate{
				Status: core.Change(domain.SessionStatusCancelled),
			})
			require.NoError(t, err)
		},
	}
	lifecycle := gamesession.NewLifecycle(f.tables, sessions)

	// Act
	_, err := lifecycle.Update(ctx, f.gmID, session.ID, domain.SessionUpdate{
		Status: core.Change(domain.SessionStatusInProgress),
	})

	// Assert
	require.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	require.Equal(t, http.StatusConflict, core.StatusCode(err))

	stored, err := f.sessions.FindByID(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, domain.SessionStatusCancelled, stored.Status)
}

func Test_Lifecycle_Update_Fails_With_Not_Found_When_Session_Deleted_Concurrently(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newSessionFixture(t)
	session := f.createSession(t)

	sessions := interleavingSessions{
		SessionRepository: f.sessions,
		beforeUpdate: func(ctx context.Context, id uuid.UUID) {
			require.NoError(t, f.sessions.Delete(ctx, id))
		},
	}
	lifecycle := gamesession.NewLifecycle(f.tables, sessions)

	// Act
	_, err := lifecycle.Update(ctx, f.gmID, session.ID, domain.SessionUpdate{
		Title: core.Change("The Haunting, part two"),
	})

	// Assert
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	require.Equal(t, http.StatusNotFound, core.StatusCode(err))
}

// lateIntents misses the first lookup and lets a competing Set store its
// intent before the caller gets to insert.
type lateIntents struct {
	*inmem.SessionIntentRepository
	competing *domain.SessionIntent
}

func (r *lateIntents) FindByUserAndSession(
	ctx context.Context,
	userID uuid.UUID,
	sessionID uuid.UUID,
) (domain.SessionIntent, error) {
	if r.competing != nil {
		competing := *r.competing
		r.competing = nil

		if err := r.SessionIntentRepository.Create(ctx, competing); err != nil {
			return domain.SessionIntent{}, err
		}

		return domain.SessionIntent{}, fmt.Errorf("session intent: %w", core.ErrNotFound)
	}

	return r.SessionIntentRepository.FindByUserAndSession(ctx, userID, sessionID)
}

func Test_IntentWorkflow_Set_Updates_Intent_Created_Concurrently(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newSessionFixture(t)
	session := f.createSession(t)
	playerID := uuid.New()

	competing := domain.CreateSessionIntent(playerID, session.ID, domain.IntentStatusUnsure, time.Now().UTC())
	intents := &lateIntents{SessionIntentRepository: f.intents, competing: &competing}
	workflow := gamesession.NewIntentWorkflow(f.sessions, intents)

	// Act
	intent, err := workflow.Set(ctx, playerID, session.ID, domain.IntentStatusConfirmed)

	// Assert
	require.NoError(t, err)
	require.Equal(t, competing.ID, intent.ID)
	require.Equal(t, domain.IntentStatusConfirmed, intent.IntentStatus)

	stored, err := f.intents.FindBySessionID(ctx, session.ID, core.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, domain.IntentStatusConfirmed, stored[0].IntentStatus)
}
