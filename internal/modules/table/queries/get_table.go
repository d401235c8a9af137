package queries

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type GetTableQuery struct {
	TableID uuid.UUID
}

func (q GetTableQuery) Validate() error {
	return validation.ValidateStruct(
		&q,
		validation.Field(&q.TableID, core.NotNilUUID),
	)
}

func HandleGetTable(w http.ResponseWriter, r *http.Request) {
	tableID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "table id")
	if !ok {
		return
	}

	response, err := mediator.Send[GetTableQuery, domain.Table](r.Context(), GetTableQuery{TableID: tableID})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetTableQueryHandler struct {
	tables table.TableRepository
}

func NewGetTableQueryHandler(tables table.TableRepository) *GetTableQueryHandler {
	return &GetTableQueryHandler{tables}
}

func (h *GetTableQueryHandler) Handle(ctx context.Context, request GetTableQuery) (domain.Table, error) {
	return table.LoadTable(ctx, h.tables, request.TableID)
}
