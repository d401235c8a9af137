package table

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/authz"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"

	"github.com/google/uuid"
)

type RequestWorkflowOption func(*RequestWorkflow)

func WithRequestWorkflowClock(now func() time.Time) RequestWorkflowOption {
	return func(w *RequestWorkflow) {
		if now != nil {
			w.now = now
		}
	}
}

func WithNotifier(notifier Notifier) RequestWorkflowOption {
	return func(w *RequestWorkflow) {
		if notifier != nil {
			w.notifier = notifier
		}
	}
}

// RequestWorkflow drives join requests from pending to approved or rejected.
//
// The duplicate check in Create is check-then-act and two concurrent creates
// can both pass it. The partial unique index over pending (user_id, table_id)
// rows decides the race; the loser gets ErrDuplicateTableRequest as well.
type RequestWorkflow struct {
	tables   TableRepository
	requests TableRequestRepository
	notifier Notifier
	now      func() time.Time
}

func NewRequestWorkflow(
	tables TableRepository,
	requests TableRequestRepository,
	opts ...RequestWorkflowOption,
) *RequestWorkflow {
	w := &RequestWorkflow{
		tables:   tables,
		requests: requests,
		notifier: NopNotifier{},
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *RequestWorkflow) Create(
	ctx context.Context,
	userID uuid.UUID,
	tableID uuid.UUID,
	message *string,
) (domain.TableRequest, error) {
	if _, err := w.loadTable(ctx, tableID); err != nil {
		return domain.TableRequest{}, err
	}

	existing, err := w.requests.FindByUserAndTable(ctx, userID, tableID)
	if err != nil {
		return domain.TableRequest{}, fmt.Errorf("failed to load existing table requests: %w", err)
	}

	if domain.HasPendingRequest(existing) {
		return domain.TableRequest{}, domain.ErrDuplicateTableRequest
	}

	request := domain.CreateTableRequest(userID, tableID, message, w.now().UTC())

	err = w.requests.Create(ctx, request)
	switch {
	case errors.Is(err, core.ErrConflict):
		return domain.TableRequest{}, domain.ErrDuplicateTableRequest
	case errors.Is(err, core.ErrNotFound):
		// The table was deleted between the lookup and the insert.
		return domain.TableRequest{}, domain.ErrTableNotFound
	case err != nil:
		return domain.TableRequest{}, fmt.Errorf("failed to store table request: %w", err)
	}

	return request, nil
}

func (w *RequestWorkflow) Approve(ctx context.Context, requestID uuid.UUID, actorID uuid.UUID) (domain.TableRequest, error) {
	return w.process(ctx, requestID, actorID, func(r *domain.TableRequest, now time.Time) error {
		return r.Approve(now)
	})
}

func (w *RequestWorkflow) Reject(ctx context.Context, requestID uuid.UUID, actorID uuid.UUID) (domain.TableRequest, error) {
	return w.process(ctx, requestID, actorID, func(r *domain.TableRequest, now time.Time) error {
		return r.Reject(now)
	})
}

func (w *RequestWorkflow) process(
	ctx context.Context,
	requestID uuid.UUID,
	actorID uuid.UUID,
	transition func(*domain.TableRequest, time.Time) error,
) (domain.TableRequest, error) {
	request, err := w.loadRequest(ctx, requestID)
	if err != nil {
		return domain.TableRequest{}, err
	}

	table, err := w.loadTable(ctx, request.TableID)
	if err != nil {
		return domain.TableRequest{}, err
	}

	if !authz.CanApproveRequest(table, actorID) {
		return domain.TableRequest{}, domain.ErrUserNotTableGameMaster
	}

	if err := transition(&request, w.now().UTC()); err != nil {
		return domain.TableRequest{}, err
	}

	// Guarded on the stored status so a concurrent approve/reject/cancel
	// cannot be overwritten.
	updated, err := w.requests.Update(ctx, request, domain.TableRequestStatusPending)
	if err != nil {
		return domain.TableRequest{}, fmt.Errorf("failed to store table request: %w", err)
	}

	if !updated {
		return domain.TableRequest{}, domain.ErrRequestAlreadyProcessed
	}

	NotifyRequestProcessed(ctx, w.notifier, request, table)

	return request, nil
}

// Cancel withdraws a pending request. Only the requester may cancel.
func (w *RequestWorkflow) Cancel(ctx context.Context, requestID uuid.UUID, actorID uuid.UUID) error {
	request, err := w.loadRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if !authz.CanCancelRequest(request, actorID) {
		return domain.ErrNotRequester
	}

	if !request.Pending() {
		return domain.ErrRequestAlreadyProcessed
	}

	deleted, err := w.requests.Delete(ctx, request.ID, domain.TableRequestStatusPending)
	if err != nil {
		return fmt.Errorf("failed to delete table request: %w", err)
	}

	if !deleted {
		return domain.ErrRequestAlreadyProcessed
	}

	return nil
}

// TableRequests lists the requests of a table to its game master.
func (w *RequestWorkflow) TableRequests(
	ctx context.Context,
	tableID uuid.UUID,
	actorID uuid.UUID,
	opts core.QueryOptions,
) ([]domain.TableRequest, error) {
	table, err := w.loadTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	if !authz.IsTableOwner(table, actorID) {
		return nil, domain.ErrUserNotTableGameMaster
	}

	requests, err := w.requests.FindByTableID(ctx, table.ID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load table requests: %w", err)
	}

	return requests, nil
}

func (w *RequestWorkflow) loadTable(ctx context.Context, tableID uuid.UUID) (domain.Table, error) {
	return LoadTable(ctx, w.tables, tableID)
}

func (w *RequestWorkflow) loadRequest(ctx context.Context, requestID uuid.UUID) (domain.TableRequest, error) {
	request, err := w.requests.FindByID(ctx, requestID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return domain.TableRequest{}, domain.ErrTableRequestNotFound
	case err != nil:
		return domain.TableRequest{}, fmt.Errorf("failed to load table request: %w", err)
	}

	return request, nil
}

// LoadTable maps a missing table onto domain.ErrTableNotFound.
func LoadTable(ctx context.Context, tables TableRepository, tableID uuid.UUID) (domain.Table, error) {
	table, err := tables.FindByID(ctx, tableID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return domain.Table{}, domain.ErrTableNotFound
	case err != nil:
		return domain.Table{}, fmt.Errorf("failed to load table: %w", err)
	}

	return table, nil
}
