package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"

	"github.com/google/uuid"
)

var _ table.TableRepository = (*TableRepository)(nil)

type TableRepository struct {
	mu     sync.Mutex
	tables map[uuid.UUID]domain.Table
}

func NewTableRepository() *TableRepository {
	return &TableRepository{tables: make(map[uuid.UUID]domain.Table)}
}

func (r *TableRepository) FindByID(_ context.Context, id uuid.UUID) (domain.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables[id]
	if !ok {
		return domain.Table{}, notFound("table")
	}

	return t, nil
}

func (r *TableRepository) Create(_ context.Context, t domain.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tables[t.ID]; ok {
		return conflict("game_table_pkey")
	}

	r.tables[t.ID] = t
	return nil
}

func (r *TableRepository) Update(_ context.Context, id uuid.UUID, update domain.TableUpdate) (domain.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables[id]
	if !ok {
		return domain.Table{}, notFound("table")
	}

	update.Title.Apply(&t.Title)
	update.Description.Apply(&t.Description)
	update.PlayerSlots.Apply(&t.PlayerSlots)
	update.GameSystemID.Apply(&t.GameSystemID)
	update.Status.Apply(&t.Status)
	t.UpdatedAt = time.Now().UTC()

	r.tables[id] = t
	return t, nil
}

func (r *TableRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tables, id)
	return nil
}

func (r *TableRepository) FindByUserID(_ context.Context, userID uuid.UUID, opts core.QueryOptions) ([]domain.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found []domain.Table
	for _, t := range r.tables {
		if t.GMID == userID {
			found = append(found, t)
		}
	}

	return page(found, func(t domain.Table) time.Time { return t.CreatedAt }, opts), nil
}

var _ table.TableRequestRepository = (*TableRequestRepository)(nil)

type TableRequestRepository struct {
	mu       sync.Mutex
	requests map[uuid.UUID]domain.TableRequest
}

func NewTableRequestRepository() *TableRequestRepository {
	return &TableRequestRepository{requests: make(map[uuid.UUID]domain.TableRequest)}
}

func (r *TableRequestRepository) Create(_ context.Context, request domain.TableRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if request.Pending() {
		for _, existing := range r.requests {
			if existing.Pending() && existing.UserID == request.UserID && existing.TableID == request.TableID {
				return conflict("table_request_pending_uq")
			}
		}
	}

	r.requests[request.ID] = request
	return nil
}

func (r *TableRequestRepository) FindByID(_ context.Context, id uuid.UUID) (domain.TableRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[id]
	if !ok {
		return domain.TableRequest{}, notFound("table request")
	}

	return request, nil
}

func (r *TableRequestRepository) FindByUserAndTable(
	_ context.Context,
	userID uuid.UUID,
	tableID uuid.UUID,
) ([]domain.TableRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found []domain.TableRequest
	for _, request := range r.requests {
		if request.UserID == userID && request.TableID == tableID {
			found = append(found, request)
		}
	}

	return found, nil
}

func (r *TableRequestRepository) FindByTableID(
	_ context.Context,
	tableID uuid.UUID,
	opts core.QueryOptions,
) ([]domain.TableRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found []domain.TableRequest
	for _, request := range r.requests {
		if request.TableID == tableID {
			found = append(found, request)
		}
	}

	return page(found, func(req domain.TableRequest) time.Time { return req.CreatedAt }, opts), nil
}

func (r *TableRequestRepository) Update(
	_ context.Context,
	request domain.TableRequest,
	expected domain.TableRequestStatus,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[request.ID]
	if !ok || stored.Status != expected {
		return false, nil
	}

	r.requests[request.ID] = request
	return true, nil
}

func (r *TableRequestRepository) Delete(_ context.Context, id uuid.UUID, expected domain.TableRequestStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[id]
	if !ok || stored.Status != expected {
		return false, nil
	}

	delete(r.requests, id)
	return true, nil
}
