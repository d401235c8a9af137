package queries

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	gamesession "github.com/eskrenkovic/table-scheduler/internal/modules/game-session"
	"github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type GetTableSessionsQuery struct {
	TableID uuid.UUID
	Options core.QueryOptions
}

func (q GetTableSessionsQuery) Validate() error {
	return validation.ValidateStruct(
		&q,
		validation.Field(&q.TableID, core.NotNilUUID),
		validation.Field(&q.Options),
	)
}

func HandleGetTableSessions(w http.ResponseWriter, r *http.Request) {
	tableID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "table id")
	if !ok {
		return
	}

	opts, err := core.QueryOptionsFromRequest(r)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	query := GetTableSessionsQuery{TableID: tableID, Options: opts}

	response, err := mediator.Send[GetTableSessionsQuery, []domain.Session](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetTableSessionsQueryHandler struct {
	lifecycle *gamesession.Lifecycle
}

func NewGetTableSessionsQueryHandler(lifecycle *gamesession.Lifecycle) *GetTableSessionsQueryHandler {
	return &GetTableSessionsQueryHandler{lifecycle}
}

func (h *GetTableSessionsQueryHandler) Handle(ctx context.Context, request GetTableSessionsQuery) ([]domain.Session, error) {
	return h.lifecycle.TableSessions(ctx, request.TableID, request.Options)
}
