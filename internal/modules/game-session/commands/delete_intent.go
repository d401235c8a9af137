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

type DeleteIntentCommand struct {
	ActorID   uuid.UUID
	SessionID uuid.UUID
}

func (c DeleteIntentCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.ActorID, core.NotNilUUID),
		validation.Field(&c.SessionID, core.NotNilUUID),
	)
}

func HandleDeleteIntent(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "session id")
	if !ok {
		return
	}

	command := DeleteIntentCommand{
		ActorID:   core.Session(r.Context()).UserID,
		SessionID: sessionID,
	}

	if _, err := mediator.Send[DeleteIntentCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteNoContent(w, r)
}

type DeleteIntentCommandHandler struct {
	intents *gamesession.IntentWorkflow
}

func NewDeleteIntentCommandHandler(intents *gamesession.IntentWorkflow) *DeleteIntentCommandHandler {
	return &DeleteIntentCommandHandler{intents}
}

func (h *DeleteIntentCommandHandler) Handle(ctx context.Context, request DeleteIntentCommand) (core.Unit, error) {
	return core.Unit{}, h.intents.Delete(ctx, request.ActorID, request.SessionID)
}
