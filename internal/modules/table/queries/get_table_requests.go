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

type GetTableRequestsQuery struct {
	ActorID uuid.UUID
	TableID uuid.UUID
	Options core.QueryOptions
}

func (q GetTableRequestsQuery) Validate() error {
	return validation.ValidateStruct(
		&q,
		validation.Field(&q.ActorID, core.NotNilUUID),
		validation.Field(&q.TableID, core.NotNilUUID),
		validation.Field(&q.Options),
	)
}

func HandleGetTableRequests(w http.ResponseWriter, r *http.Request) {
	tableID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "table id")
	if !ok {
		return
	}

	opts, err := core.QueryOptionsFromRequest(r)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	query := GetTableRequestsQuery{
		ActorID: core.Session(r.Context()).UserID,
		TableID: tableID,
		Options: opts,
	}

	response, err := mediator.Send[GetTableRequestsQuery, []domain.TableRequest](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetTableRequestsQueryHandler struct {
	workflow *table.RequestWorkflow
}

func NewGetTableRequestsQueryHandler(workflow *table.RequestWorkflow) *GetTableRequestsQueryHandler {
	return &GetTableRequestsQueryHandler{workflow}
}

func (h *GetTableRequestsQueryHandler) Handle(
	ctx context.Context,
	request GetTableRequestsQuery,
) ([]domain.TableRequest, error) {
	return h.workflow.TableRequests(ctx, request.TableID, request.ActorID, request.Options)
}
