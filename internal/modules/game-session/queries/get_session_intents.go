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

type GetSessionIntentsQuery struct {
	SessionID uuid.UUID
	Options   core.QueryOptions
}

func (q GetSessionIntentsQuery) Validate() error {
	return validation.ValidateStruct(
		&q,
		validation.Field(&q.SessionID, core.NotNilUUID),
		validation.Field(&q.Options),
	)
}

func HandleGetSessionIntents(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "session id")
	if !ok {
		return
	}

	opts, err := core.QueryOptionsFromRequest(r)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	query := GetSessionIntentsQuery{SessionID: sessionID, Options: opts}

	response, err := mediator.Send[GetSessionIntentsQuery, []domain.SessionIntent](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetSessionIntentsQueryHandler struct {
	intents *gamesession.IntentWorkflow
}

func NewGetSessionIntentsQueryHandler(intents *gamesession.IntentWorkflow) *GetSessionIntentsQueryHandler {
	return &GetSessionIntentsQueryHandler{intents}
}

func (h *GetSessionIntentsQueryHandler) Handle(
	ctx context.Context,
	request GetSessionIntentsQuery,
) ([]domain.SessionIntent, error) {
	return h.intents.SessionIntents(ctx, request.SessionID, request.Options)
}
