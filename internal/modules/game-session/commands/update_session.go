package commands

import (
	"context"
	"net/http"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	gamesession "github.com/eskrenkovic/table-scheduler/internal/modules/game-session"
	"github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type UpdateSessionCommand struct {
	ActorID      uuid.UUID                         `json:"-"`
	SessionID    uuid.UUID                         `json:"-"`
	Title        core.Update[string]               `json:"title"`
	Description  core.Update[string]               `json:"description"`
	ScheduledFor core.Update[*time.Time]           `json:"scheduled_for"`
	Status       core.Update[domain.SessionStatus] `json:"status"`
}

func (c UpdateSessionCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.ActorID, core.NotNilUUID),
		validation.Field(&c.SessionID, core.NotNilUUID),
		validation.Field(&c.Title, core.WhenSet[string](validation.Required, validation.Length(1, maxTitleLength), core.SingleLine)),
		validation.Field(&c.Status, core.WhenSet[domain.SessionStatus](validation.Required, core.ValidEnum)),
	)
}

func HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "session id")
	if !ok {
		return
	}

	command, err := core.RequestBody[UpdateSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.ActorID = core.Session(r.Context()).UserID
	command.SessionID = sessionID

	response, err := mediator.Send[UpdateSessionCommand, domain.Session](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type UpdateSessionCommandHandler struct {
	lifecycle *gamesession.Lifecycle
}

func NewUpdateSessionCommandHandler(lifecycle *gamesession.Lifecycle) *UpdateSessionCommandHandler {
	return &UpdateSessionCommandHandler{lifecycle}
}

func (h *UpdateSessionCommandHandler) Handle(ctx context.Context, request UpdateSessionCommand) (domain.Session, error) {
	return h.lifecycle.Update(ctx, request.ActorID, request.SessionID, domain.SessionUpdate{
		Title:        request.Title,
		Description:  request.Description,
		ScheduledFor: request.ScheduledFor,
		Status:       request.Status,
	})
}
