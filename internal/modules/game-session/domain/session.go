package domain

import (
	"fmt"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound         = fmt.Errorf("session not found: %w", core.ErrNotFound)
	ErrInvalidStatusTransition = fmt.Errorf("invalid session status transition: %w", core.ErrConflict)
)

type SessionStatus string

const (
	SessionStatusScheduled  SessionStatus = "scheduled"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusCancelled  SessionStatus = "cancelled"
)

var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionStatusScheduled:  {SessionStatusInProgress, SessionStatusCancelled},
	SessionStatusInProgress: {SessionStatusCompleted, SessionStatusCancelled},
	SessionStatusCompleted:  nil,
	SessionStatusCancelled:  nil,
}

func (s SessionStatus) Valid() bool {
	_, ok := sessionTransitions[s]
	return ok
}

func (s SessionStatus) Terminal() bool {
	return s.Valid() && len(sessionTransitions[s]) == 0
}

// CanTransitionTo reports whether to is reachable from s in one step.
// Staying in the same status is always allowed.
func (s SessionStatus) CanTransitionTo(to SessionStatus) bool {
	if s == to {
		return to.Valid()
	}

	for _, next := range sessionTransitions[s] {
		if next == to {
			return true
		}
	}

	return false
}

type Session struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	TableID      uuid.UUID     `db:"table_id" json:"table_id"`
	Title        string        `db:"title" json:"title"`
	Description  string        `db:"description" json:"description"`
	ScheduledFor *time.Time    `db:"scheduled_for" json:"scheduled_for,omitempty"`
	Status       SessionStatus `db:"status" json:"status"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

type NewSession struct {
	TableID      uuid.UUID
	Title        string
	Description  string
	ScheduledFor *time.Time
	Status       SessionStatus
}

func CreateSession(s NewSession, now time.Time) Session {
	status := s.Status
	if status == "" {
		status = SessionStatusScheduled
	}

	return Session{
		ID:           uuid.New(),
		TableID:      s.TableID,
		Title:        s.Title,
		Description:  s.Description,
		ScheduledFor: s.ScheduledFor,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

type SessionUpdate struct {
	Title        core.Update[string]
	Description  core.Update[string]
	ScheduledFor core.Update[*time.Time]
	Status       core.Update[SessionStatus]
}

// CheckTransition validates the status change carried by update, if any.
func (s Session) CheckTransition(update SessionUpdate) error {
	to, ok := update.Status.Value()
	if !ok {
		return nil
	}

	if !s.Status.CanTransitionTo(to) {
		return fmt.Errorf("%s -> %s: %w", s.Status, to, ErrInvalidStatusTransition)
	}

	return nil
}

