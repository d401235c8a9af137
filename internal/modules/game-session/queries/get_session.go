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

type GetSessionQuery struct {
	SessionID uuid.UUID
}

func (q GetSessionQuery) Validate() error {
	return validation.ValidateStruct(
		&q,
		validation.Field(&q.SessionID, core.NotNilUUID),
	)
}

func HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "session id")
	if !ok {
		return
	}

	response, err := mediator.Send[GetSessionQuery, domain.Session](r.Context(), GetSessionQuery{SessionID: sessionID})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetSessionQueryHandler struct {
	lifecycle *gamesession.Lifecycle
}

func NewGetSessionQueryHandler(lifecycle *gamesession.Lifecycle) *GetSessionQueryHandler {
	return &GetSessionQueryHandler{lifecycle}
}

func (h *GetSessionQueryHandler) Handle(ctx context.Context, request GetSessionQuery) (domain.Session, error) {
	return h.lifecycle.Session(ctx, request.SessionID)
}
