package gamesession

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"

	"github.com/google/uuid"
)

// IntentWorkflow records what a user expects to do about a session. Users
// only ever act on their own intent.
type IntentWorkflow struct {
	sessions SessionRepository
	intents  SessionIntentRepository
	now      func() time.Time
}

func NewIntentWorkflow(sessions SessionRepository, intents SessionIntentRepository) *IntentWorkflow {
	return &IntentWorkflow{
		sessions: sessions,
		intents:  intents,
		now:      time.Now,
	}
}

// Set creates the actor's intent for the session or changes its status. An
// empty status creates the intent as unsure and leaves an existing one as is.
func (w *IntentWorkflow) Set(
	ctx context.Context,
	actorID uuid.UUID,
	sessionID uuid.UUID,
	status domain.IntentStatus,
) (domain.SessionIntent, error) {
	if _, err := LoadSession(ctx, w.sessions, sessionID); err != nil {
		return domain.SessionIntent{}, err
	}

	existing, err := w.intents.FindByUserAndSession(ctx, actorID, sessionID)
	switch {
	case err == nil:
		return w.change(ctx, existing, status)
	case !errors.Is(err, core.ErrNotFound):
		return domain.SessionIntent{}, fmt.Errorf("failed to load session intent: %w", err)
	}

	intent := domain.CreateSessionIntent(actorID, sessionID, status, w.now().UTC())

	err = w.intents.Create(ctx, intent)
	switch {
	case errors.Is(err, core.ErrConflict):
		// A concurrent Set created it first.
		existing, err := w.intents.FindByUserAndSession(ctx, actorID, sessionID)
		if err != nil {
			return domain.SessionIntent{}, fmt.Errorf("failed to load session intent: %w", err)
		}
		return w.change(ctx, existing, status)
	case errors.Is(err, core.ErrNotFound):
		return domain.SessionIntent{}, domain.ErrSessionNotFound
	case err != nil:
		return domain.SessionIntent{}, fmt.Errorf("failed to store session intent: %w", err)
	}

	return intent, nil
}

func (w *IntentWorkflow) change(
	ctx context.Context,
	intent domain.SessionIntent,
	status domain.IntentStatus,
) (domain.SessionIntent, error) {
	if status == "" || status == intent.IntentStatus {
		return intent, nil
	}

	intent.IntentStatus = status
	intent.UpdatedAt = w.now().UTC()

	if err := w.intents.Update(ctx, intent); err != nil {
		return domain.SessionIntent{}, fmt.Errorf("failed to update session intent: %w", err)
	}

	return intent, nil
}

// Delete withdraws the actor's intent for the session, with its checkin.
func (w *IntentWorkflow) Delete(ctx context.Context, actorID uuid.UUID, sessionID uuid.UUID) error {
	intent, err := w.intents.FindByUserAndSession(ctx, actorID, sessionID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return domain.ErrSessionIntentNotFound
	case err != nil:
		return fmt.Errorf("failed to load session intent: %w", err)
	}

	if err := w.intents.Delete(ctx, intent.ID); err != nil {
		return fmt.Errorf("failed to delete session intent: %w", err)
	}

	return nil
}

func (w *IntentWorkflow) SessionIntents(
	ctx context.Context,
	sessionID uuid.UUID,
	opts core.QueryOptions,
) ([]domain.SessionIntent, error) {
	if _, err := LoadSession(ctx, w.sessions, sessionID); err != nil {
		return nil, err
	}

	intents, err := w.intents.FindBySessionID(ctx, sessionID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load session intents: %w", err)
	}

	return intents, nil
}
