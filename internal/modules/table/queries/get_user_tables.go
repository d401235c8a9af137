package queries

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"

	"github.com/eskrenkovic/mediator-go"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type GetUserTablesQuery struct {
	UserID  uuid.UUID
	Options core.QueryOptions
}

func (q GetUserTablesQuery) Validate() error {
	return validation.ValidateStruct(
		&q,
		validation.Field(&q.UserID, core.NotNilUUID),
		validation.Field(&q.Options),
	)
}

func HandleGetUserTables(w http.ResponseWriter, r *http.Request) {
	opts, err := core.QueryOptionsFromRequest(r)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	query := GetUserTablesQuery{
		UserID:  core.Session(r.Context()).UserID,
		Options: opts,
	}

	response, err := mediator.Send[GetUserTablesQuery, []domain.Table](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetUserTablesQueryHandler struct {
	tables table.TableRepository
}

func NewGetUserTablesQueryHandler(tables table.TableRepository) *GetUserTablesQueryHandler {
	return &GetUserTablesQueryHandler{tables}
}

func (h *GetUserTablesQueryHandler) Handle(ctx context.Context, request GetUserTablesQuery) ([]domain.Table, error) {
	return h.tables.FindByUserID(ctx, request.UserID, request.Options)
}
