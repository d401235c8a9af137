package gamesession

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/authz"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table"
	tabledomain "github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"

	"github.com/google/uuid"
)

// Lifecycle schedules sessions and moves them through their statuses. Every
// mutation reloads the owning table and checks the actor against its game
// master; ownership is never cached.
type Lifecycle struct {
	tables   table.TableRepository
	sessions SessionRepository
	now      func() time.Time
}

func NewLifecycle(tables table.TableRepository, sessions SessionRepository) *Lifecycle {
	return &Lifecycle{
		tables:   tables,
		sessions: sessions,
		now:      time.Now,
	}
}

func (l *Lifecycle) Create(ctx context.Context, actorID uuid.UUID, newSession domain.NewSession) (domain.Session, error) {
	t, err := table.LoadTable(ctx, l.tables, newSession.TableID)
	if err != nil {
		return domain.Session{}, err
	}

	if !authz.IsTableOwner(t, actorID) {
		return domain.Session{}, tabledomain.ErrUserNotTableGameMaster
	}

	session := domain.CreateSession(newSession, l.now().UTC())

	err = l.sessions.Create(ctx, session)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return domain.Session{}, tabledomain.ErrTableNotFound
	case err != nil:
		return domain.Session{}, fmt.Errorf("failed to store session: %w", err)
	}

	return session, nil
}

func (l *Lifecycle) Update(
	ctx context.Context,
	actorID uuid.UUID,
	sessionID uuid.UUID,
	update domain.SessionUpdate,
) (domain.Session, error) {
	session, err := l.authorize(ctx, actorID, sessionID)
	if err != nil {
		return domain.Session{}, err
	}

	if err := session.CheckTransition(update); err != nil {
		return domain.Session{}, err
	}

	updated, err := l.sessions.Update(ctx, session.ID, session.Status, update)
	if err == nil {
		return updated, nil
	}

	if !errors.Is(err, core.ErrNotFound) {
		return domain.Session{}, fmt.Errorf("failed to update session: %w", err)
	}

	// Nothing matched: the session is gone or its status moved underneath us.
	if _, err := l.loadSession(ctx, sessionID); err != nil {
		return domain.Session{}, err
	}

	return domain.Session{}, domain.ErrInvalidStatusTransition
}

func (l *Lifecycle) Delete(ctx context.Context, actorID uuid.UUID, sessionID uuid.UUID) error {
	session, err := l.authorize(ctx, actorID, sessionID)
	if err != nil {
		return err
	}

	if err := l.sessions.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (l *Lifecycle) Session(ctx context.Context, sessionID uuid.UUID) (domain.Session, error) {
	return l.loadSession(ctx, sessionID)
}

func (l *Lifecycle) TableSessions(ctx context.Context, tableID uuid.UUID, opts core.QueryOptions) ([]domain.Session, error) {
	if _, err := table.LoadTable(ctx, l.tables, tableID); err != nil {
		return nil, err
	}

	sessions, err := l.sessions.FindByTableID(ctx, tableID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	return sessions, nil
}

func (l *Lifecycle) authorize(ctx context.Context, actorID uuid.UUID, sessionID uuid.UUID) (domain.Session, error) {
	session, err := l.loadSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}

	t, err := table.LoadTable(ctx, l.tables, session.TableID)
	if err != nil {
		return domain.Session{}, err
	}

	if !authz.CanMutateSession(session, t, actorID) {
		return domain.Session{}, tabledomain.ErrUserNotTableGameMaster
	}

	return session, nil
}

func (l *Lifecycle) loadSession(ctx context.Context, sessionID uuid.UUID) (domain.Session, error) {
	return LoadSession(ctx, l.sessions, sessionID)
}

func LoadSession(ctx context.Context, sessions SessionRepository, sessionID uuid.UUID) (domain.Session, error) {
	session, err := sessions.FindByID(ctx, sessionID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return domain.Session{}, domain.ErrSessionNotFound
	case err != nil:
		return domain.Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	return session, nil
}
