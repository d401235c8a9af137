package domain

import (
	"fmt"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/google/uuid"
)

var (
	ErrSessionIntentNotFound = fmt.Errorf("session intent not found: %w", core.ErrNotFound)
	ErrNotIntentOwner        = fmt.Errorf("intent belongs to another user: %w", core.ErrForbidden)
)

type IntentStatus string

const (
	IntentStatusUnsure    IntentStatus = "unsure"
	IntentStatusConfirmed IntentStatus = "confirmed"
	IntentStatusDeclined  IntentStatus = "declined"
)

func (s IntentStatus) Valid() bool {
	switch s {
	case IntentStatusUnsure, IntentStatusConfirmed, IntentStatusDeclined:
		return true
	default:
		return false
	}
}

// SessionIntent is unique per (user, session).
type SessionIntent struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	UserID       uuid.UUID    `db:"user_id" json:"user_id"`
	SessionID    uuid.UUID    `db:"session_id" json:"session_id"`
	IntentStatus IntentStatus `db:"intent_status" json:"intent_status"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

func CreateSessionIntent(userID uuid.UUID, sessionID uuid.UUID, status IntentStatus, now time.Time) SessionIntent {
	if status == "" {
		status = IntentStatusUnsure
	}

	return SessionIntent{
		ID:           uuid.New(),
		UserID:       userID,
		SessionID:    sessionID,
		IntentStatus: status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

type SessionCheckin struct {
	ID              uuid.UUID `db:"id" json:"id"`
	SessionIntentID uuid.UUID `db:"session_intent_id" json:"session_intent_id"`
	Attendance      bool      `db:"attendance" json:"attendance"`
	Notes           *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

var (
	ErrSessionCheckinNotFound = fmt.Errorf("session checkin not found: %w", core.ErrNotFound)
	ErrDuplicateCheckin       = fmt.Errorf("intent already has a checkin: %w", core.ErrConflict)
	ErrCheckinForbidden       = fmt.Errorf("only the attendee or the game master may manage a checkin: %w", core.ErrForbidden)
)

func CreateSessionCheckin(intentID uuid.UUID, attendance bool, notes *string, now time.Time) SessionCheckin {
	return SessionCheckin{
		ID:              uuid.New(),
		SessionIntentID: intentID,
		Attendance:      attendance,
		Notes:           notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

type SessionCheckinUpdate struct {
	Attendance core.Update[bool]
	Notes      core.Update[*string]
}
