package commands

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	gamesession "github.com/eskrenkovic/table-scheduler/internal/modules/game-session"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type DeleteSessionCommand struct {
	ActorID   uuid.UUID
	SessionID uuid.UUID
}

func (c DeleteSessionCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.ActorID, core.NotNilUUID),
		validation.Field(&c.SessionID, core.NotNilUUID),
	)
}

func HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "session id")
	if !ok {
		return
	}

	command := DeleteSessionCommand{
		ActorID:   core.Session(r.Context()).UserID,
		SessionID: sessionID,
	}

	if _, err := mediator.Send[DeleteSessionCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteNoContent(w, r)
}

type DeleteSessionCommandHandler struct {
	lifecycle *gamesession.Lifecycle
}

func NewDeleteSessionCommandHandler(lifecycle *gamesession.Lifecycle) *DeleteSessionCommandHandler {
	return &DeleteSessionCommandHandler{lifecycle}
}

func (h *DeleteSessionCommandHandler) Handle(ctx context.Context, request DeleteSessionCommand) (core.Unit, error) {
	return core.Unit{}, h.lifecycle.Delete(ctx, request.ActorID, request.SessionID)
}
