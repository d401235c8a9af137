package domain

import (
	"fmt"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/google/uuid"
)

var (
	ErrTableRequestNotFound    = fmt.Errorf("table request not found: %w", core.ErrNotFound)
	ErrDuplicateTableRequest   = fmt.Errorf("a pending request for this table already exists: %w", core.ErrConflict)
	ErrRequestAlreadyProcessed = fmt.Errorf("table request was already processed: %w", core.ErrConflict)
	ErrNotRequester            = fmt.Errorf("only the requester may cancel a table request: %w", core.ErrForbidden)
)

type TableRequestStatus string

const (
	TableRequestStatusPending  TableRequestStatus = "pending"
	TableRequestStatusApproved TableRequestStatus = "approved"
	TableRequestStatusRejected TableRequestStatus = "rejected"
)

// TableRequest moves from pending to approved or rejected, both terminal.
type TableRequest struct {
	ID        uuid.UUID          `db:"id" json:"id"`
	UserID    uuid.UUID          `db:"user_id" json:"user_id"`
	TableID   uuid.UUID          `db:"table_id" json:"table_id"`
	Message   *string            `db:"message" json:"message,omitempty"`
	Status    TableRequestStatus `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

func CreateTableRequest(userID uuid.UUID, tableID uuid.UUID, message *string, now time.Time) TableRequest {
	return TableRequest{
		ID:        uuid.New(),
		UserID:    userID,
		TableID:   tableID,
		Message:   message,
		Status:    TableRequestStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r TableRequest) Pending() bool {
	return r.Status == TableRequestStatusPending
}

func (r *TableRequest) Approve(now time.Time) error {
	return r.transition(TableRequestStatusApproved, now)
}

func (r *TableRequest) Reject(now time.Time) error {
	return r.transition(TableRequestStatusRejected, now)
}

func (r *TableRequest) transition(to TableRequestStatus, now time.Time) error {
	if !r.Pending() {
		return ErrRequestAlreadyProcessed
	}

	r.Status = to
	r.UpdatedAt = now

	return nil
}

// HasPendingRequest reports whether any of requests is still pending.
func HasPendingRequest(requests []TableRequest) bool {
	for _, r := range requests {
		if r.Pending() {
			return true
		}
	}
	return false
}
