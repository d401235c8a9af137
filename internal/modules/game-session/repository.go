package gamesession

import (
	"context"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"

	"github.com/google/uuid"
)

type SessionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Session, error)
	Create(ctx context.Context, session domain.Session) error
	// Update applies update if the stored session is still in status expected.
	// It reports core.ErrNotFound when no row matched.
	Update(ctx context.Context, id uuid.UUID, expected domain.SessionStatus, update domain.SessionUpdate) (domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByTableID(ctx context.Context, tableID uuid.UUID, opts core.QueryOptions) ([]domain.Session, error)
}

// SessionIntentRepository stores at most one intent per (user, session); a
// second insert for the pair fails with core.ErrConflict.
type SessionIntentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.SessionIntent, error)
	FindByUserAndSession(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) (domain.SessionIntent, error)
	FindBySessionID(ctx context.Context, sessionID uuid.UUID, opts core.QueryOptions) ([]domain.SessionIntent, error)
	Create(ctx context.Context, intent domain.SessionIntent) error
	Update(ctx context.Context, intent domain.SessionIntent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SessionCheckinRepository stores at most one checkin per intent. Creating a
// checkin for a missing intent fails with core.ErrNotFound.
type SessionCheckinRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.SessionCheckin, error)
	FindBySessionIntentID(ctx context.Context, intentID uuid.UUID) (domain.SessionCheckin, error)
	// FindByAttendance lists the checkins recorded on the intents of userID.
	FindByAttendance(ctx context.Context, userID uuid.UUID, attendance bool, opts core.QueryOptions) ([]domain.SessionCheckin, error)
	Create(ctx context.Context, checkin domain.SessionCheckin) error
	Update(ctx context.Context, id uuid.UUID, update domain.SessionCheckinUpdate) (domain.SessionCheckin, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
