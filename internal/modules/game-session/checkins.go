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

	"github.com/google/uuid"
)

type NewCheckin struct {
	SessionIntentID uuid.UUID
	Attendance      bool
	Notes           *string
}

// CheckinWorkflow records actual attendance against an intent. The attendee
// and the game master of the session's table may manage the checkin.
type CheckinWorkflow struct {
	tables   table.TableRepository
	sessions SessionRepository
	intents  SessionIntentRepository
	checkins SessionCheckinRepository
	now      func() time.Time
}

func NewCheckinWorkflow(
	tables table.TableRepository,
	sessions SessionRepository,
	intents SessionIntentRepository,
	checkins SessionCheckinRepository,
) *CheckinWorkflow {
	return &CheckinWorkflow{
		tables:   tables,
		sessions: sessions,
		intents:  intents,
		checkins: checkins,
		now:      time.Now,
	}
}

func (w *CheckinWorkflow) Create(ctx context.Context, actorID uuid.UUID, newCheckin NewCheckin) (domain.SessionCheckin, error) {
	intent, err := w.authorize(ctx, actorID, newCheckin.SessionIntentID)
	if err != nil {
		return domain.SessionCheckin{}, err
	}

	_, err = w.checkins.FindBySessionIntentID(ctx, intent.ID)
	switch {
	case err == nil:
		return domain.SessionCheckin{}, domain.ErrDuplicateCheckin
	case !errors.Is(err, core.ErrNotFound):
		return domain.SessionCheckin{}, fmt.Errorf("failed to load session checkin: %w", err)
	}

	checkin := domain.CreateSessionCheckin(intent.ID, newCheckin.Attendance, newCheckin.Notes, w.now().UTC())

	err = w.checkins.Create(ctx, checkin)
	switch {
	case errors.Is(err, core.ErrConflict):
		return domain.SessionCheckin{}, domain.ErrDuplicateCheckin
	case errors.Is(err, core.ErrNotFound):
		return domain.SessionCheckin{}, domain.ErrSessionIntentNotFound
	case err != nil:
		return domain.SessionCheckin{}, fmt.Errorf("failed to store session checkin: %w", err)
	}

	return checkin, nil
}

func (w *CheckinWorkflow) Update(
	ctx context.Context,
	actorID uuid.UUID,
	checkinID uuid.UUID,
	update domain.SessionCheckinUpdate,
) (domain.SessionCheckin, error) {
	checkin, err := w.loadCheckin(ctx, checkinID)
	if err != nil {
		return domain.SessionCheckin{}, err
	}

	if _, err := w.authorize(ctx, actorID, checkin.SessionIntentID); err != nil {
		return domain.SessionCheckin{}, err
	}

	updated, err := w.checkins.Update(ctx, checkin.ID, update)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return domain.SessionCheckin{}, domain.ErrSessionCheckinNotFound
	case err != nil:
		return domain.SessionCheckin{}, fmt.Errorf("failed to update session checkin: %w", err)
	}

	return updated, nil
}

func (w *CheckinWorkflow) Delete(ctx context.Context, actorID uuid.UUID, checkinID uuid.UUID) error {
	checkin, err := w.loadCheckin(ctx, checkinID)
	if err != nil {
		return err
	}

	if _, err := w.authorize(ctx, actorID, checkin.SessionIntentID); err != nil {
		return err
	}

	if err := w.checkins.Delete(ctx, checkin.ID); err != nil {
		return fmt.Errorf("failed to delete session checkin: %w", err)
	}

	return nil
}

// ByAttendance lists the actor's own checkins with the given attendance.
func (w *CheckinWorkflow) ByAttendance(
	ctx context.Context,
	actorID uuid.UUID,
	attendance bool,
	opts core.QueryOptions,
) ([]domain.SessionCheckin, error) {
	checkins, err := w.checkins.FindByAttendance(ctx, actorID, attendance, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load session checkins: %w", err)
	}

	return checkins, nil
}

// authorize walks intent -> session -> table and checks the actor against
// both the attendee and the game master.
func (w *CheckinWorkflow) authorize(ctx context.Context, actorID uuid.UUID, intentID uuid.UUID) (domain.SessionIntent, error) {
	intent, err := w.intents.FindByID(ctx, intentID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return domain.SessionIntent{}, domain.ErrSessionIntentNotFound
	case err != nil:
		return domain.SessionIntent{}, fmt.Errorf("failed to load session intent: %w", err)
	}

	session, err := LoadSession(ctx, w.sessions, intent.SessionID)
	if err != nil {
		return domain.SessionIntent{}, err
	}

	t, err := table.LoadTable(ctx, w.tables, session.TableID)
	if err != nil {
		return domain.SessionIntent{}, err
	}

	if !authz.CanManageCheckin(intent, t, actorID) {
		return domain.SessionIntent{}, domain.ErrCheckinForbidden
	}

	return intent, nil
}

func (w *CheckinWorkflow) loadCheckin(ctx context.Context, checkinID uuid.UUID) (domain.SessionCheckin, error) {
	checkin, err := w.checkins.FindByID(ctx, checkinID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return domain.SessionCheckin{}, domain.ErrSessionCheckinNotFound
	case err != nil:
		return domain.SessionCheckin{}, fmt.Errorf("failed to load session checkin: %w", err)
	}

	return checkin, nil
}
