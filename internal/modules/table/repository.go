package table

import (
	"context"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"

	"github.com/google/uuid"
)

type TableRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Table, error)
	Create(ctx context.Context, table domain.Table) error
	Update(ctx context.Context, id uuid.UUID, update domain.TableUpdate) (domain.Table, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// FindByUserID lists the tables the user runs as game master.
	FindByUserID(ctx context.Context, userID uuid.UUID, opts core.QueryOptions) ([]domain.Table, error)
}

// TableRequestRepository persists join requests. The store carries a unique
// index over (user_id, table_id) for pending rows, so a second pending
// request fails with core.ErrConflict even when two creates race.
type TableRequestRepository interface {
	Create(ctx context.Context, request domain.TableRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.TableRequest, error)
	FindByUserAndTable(ctx context.Context, userID uuid.UUID, tableID uuid.UUID) ([]domain.TableRequest, error)
	FindByTableID(ctx context.Context, tableID uuid.UUID, opts core.QueryOptions) ([]domain.TableRequest, error)
	// Update stores request if the stored row is still in status expected and
	// reports whether it was.
	Update(ctx context.Context, request domain.TableRequest, expected domain.TableRequestStatus) (bool, error)
	// Delete removes the request if it is in status expected.
	Delete(ctx context.Context, id uuid.UUID, expected domain.TableRequestStatus) (bool, error)
}
