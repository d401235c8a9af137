package commands

import (
	"context"
	"net/http"
	"path"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	gamesession "github.com/eskrenkovic/table-scheduler/internal/modules/game-session"
	"github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

const maxTitleLength = 200

type CreateSessionCommand struct {
	ActorID      uuid.UUID            `json:"-"`
	TableID      uuid.UUID            `json:"-"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	ScheduledFor *time.Time           `json:"scheduled_for"`
	Status       domain.SessionStatus `json:"status"`
}

func (c CreateSessionCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.ActorID, core.NotNilUUID),
		validation.Field(&c.TableID, core.NotNilUUID),
		validation.Field(&c.Title, validation.Required, validation.Length(1, maxTitleLength), core.SingleLine),
		validation.Field(&c.Status, core.ValidEnum),
	)
}

type CreateSessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
}

func HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	tableID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "table id")
	if !ok {
		return
	}

	command, err := core.RequestBody[CreateSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.ActorID = core.Session(r.Context()).UserID
	command.TableID = tableID

	response, err := mediator.Send[CreateSessionCommand, CreateSessionResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join("/sessions", response.SessionID.String())
	core.WriteCreated(w, r, location, response)
}

type CreateSessionCommandHandler struct {
	lifecycle *gamesession.Lifecycle
}

func NewCreateSessionCommandHandler(lifecycle *gamesession.Lifecycle) *CreateSessionCommandHandler {
	return &CreateSessionCommandHandler{lifecycle}
}

func (h *CreateSessionCommandHandler) Handle(
	ctx context.Context,
	request CreateSessionCommand,
) (CreateSessionResponse, error) {
	session, err := h.lifecycle.Create(ctx, request.ActorID, domain.NewSession{
		TableID:      request.TableID,
		Title:        request.Title,
		Description:  request.Description,
		ScheduledFor: request.ScheduledFor,
		Status:       request.Status,
	})
	if err != nil {
		return CreateSessionResponse{}, err
	}

	return CreateSessionResponse{SessionID: session.ID}, nil
}
