package commands

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

type SetIntentCommand struct {
	ActorID      uuid.UUID           `json:"-"`
	SessionID    uuid.UUID           `json:"-"`
	IntentStatus domain.IntentStatus `json:"intent_status"`
}

func (c SetIntentCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.ActorID, core.NotNilUUID),
		validation.Field(&c.SessionID, core.NotNilUUID),
		validation.Field(&c.IntentStatus, core.ValidEnum),
	)
}

func HandleSetIntent(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "session id")
	if !ok {
		return
	}

	command, err := core.RequestBody[SetIntentCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.ActorID = core.Session(r.Context()).UserID
	command.SessionID = sessionID

	response, err := mediator.Send[SetIntentCommand, domain.SessionIntent](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type SetIntentCommandHandler struct {
	intents *gamesession.IntentWorkflow
}

func NewSetIntentCommandHandler(intents *gamesession.IntentWorkflow) *SetIntentCommandHandler {
	return &SetIntentCommandHandler{intents}
}

func (h *SetIntentCommandHandler) Handle(ctx context.Context, request SetIntentCommand) (domain.SessionIntent, error) {
	return h.intents.Set(ctx, request.ActorID, request.SessionID, request.IntentStatus)
}
