package commands

import (
	"context"
	"net/http"
	"path"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	gamesession "github.com/eskrenkovic/table-scheduler/internal/modules/game-session"
	"github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

const maxNotesLength = 2000

type CreateCheckinCommand struct {
	ActorID         uuid.UUID `json:"-"`
	SessionIntentID uuid.UUID `json:"-"`
	Attendance      bool      `json:"attendance"`
	Notes           *string   `json:"notes"`
}

func (c CreateCheckinCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.ActorID, core.NotNilUUID),
		validation.Field(&c.SessionIntentID, core.NotNilUUID),
		validation.Field(&c.Notes, validation.Length(0, maxNotesLength)),
	)
}

type CreateCheckinResponse struct {
	CheckinID uuid.UUID `json:"checkin_id"`
}

func HandleCreateCheckin(w http.ResponseWriter, r *http.Request) {
	intentID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "session intent id")
	if !ok {
		return
	}

	command, err := core.RequestBody[CreateCheckinCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.ActorID = core.Session(r.Context()).UserID
	command.SessionIntentID = intentID

	response, err := mediator.Send[CreateCheckinCommand, CreateCheckinResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join("/checkins", response.CheckinID.String())
	core.WriteCreated(w, r, location, response)
}

type CreateCheckinCommandHandler struct {
	checkins *gamesession.CheckinWorkflow
}

func NewCreateCheckinCommandHandler(checkins *gamesession.CheckinWorkflow) *CreateCheckinCommandHandler {
	return &CreateCheckinCommandHandler{checkins}
}

func (h *CreateCheckinCommandHandler) Handle(ctx context.Context, request CreateCheckinCommand) (CreateCheckinResponse, error) {
	checkin, err := h.checkins.Create(ctx, request.ActorID, gamesession.NewCheckin{
		SessionIntentID: request.SessionIntentID,
		Attendance:      request.Attendance,
		Notes:           request.Notes,
	})
	if err != nil {
		return CreateCheckinResponse{}, err
	}

	return CreateCheckinResponse{CheckinID: checkin.ID}, nil
}

type UpdateCheckinCommand struct {
	ActorID    uuid.UUID            `json:"-"`
	CheckinID  uuid.UUID            `json:"-"`
	Attendance core.Update[bool]    `json:"attendance"`
	Notes      core.Update[*string] `json:"notes"`
}

func (c UpdateCheckinCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.ActorID, core.NotNilUUID),
		validation.Field(&c.CheckinID, core.NotNilUUID),
		validation.Field(&c.Notes, core.WhenSet[*string](validation.Length(0, maxNotesLength))),
	)
}

func HandleUpdateCheckin(w http.ResponseWriter, r *http.Request) {
	checkinID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "checkin id")
	if !ok {
		return
	}

	command, err := core.RequestBody[UpdateCheckinCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.ActorID = core.Session(r.Context()).UserID
	command.CheckinID = checkinID

	response, err := mediator.Send[UpdateCheckinCommand, domain.SessionCheckin](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type UpdateCheckinCommandHandler struct {
	checkins *gamesession.CheckinWorkflow
}

func NewUpdateCheckinCommandHandler(checkins *gamesession.CheckinWorkflow) *UpdateCheckinCommandHandler {
	return &UpdateCheckinCommandHandler{checkins}
}

func (h *UpdateCheckinCommandHandler) Handle(ctx context.Context, request UpdateCheckinCommand) (domain.SessionCheckin, error) {
	return h.checkins.Update(ctx, request.ActorID, request.CheckinID, domain.SessionCheckinUpdate{
		Attendance: request.Attendance,
		Notes:      request.Notes,
	})
}

type DeleteCheckinCommand struct {
	ActorID   uuid.UUID
	CheckinID uuid.UUID
}

func (c DeleteCheckinCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.ActorID, core.NotNilUUID),
		validation.Field(&c.CheckinID, core.NotNilUUID),
	)
}

func HandleDeleteCheckin(w http.ResponseWriter, r *http.Request) {
	checkinID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "checkin id")
	if !ok {
		return
	}

	command := DeleteCheckinCommand{
		ActorID:   core.Session(r.Context()).UserID,
		CheckinID: checkinID,
	}

	if _, err := mediator.Send[DeleteCheckinCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteNoContent(w, r)
}

type DeleteCheckinCommandHandler struct {
	checkins *gamesession.CheckinWorkflow
}

func NewDeleteCheckinCommandHandler(checkins *gamesession.CheckinWorkflow) *DeleteCheckinCommandHandler {
	return &DeleteCheckinCommandHandler{checkins}
}

func (h *DeleteCheckinCommandHandler) Handle(ctx context.Context, request DeleteCheckinCommand) (core.Unit, error) {
	return core.Unit{}, h.checkins.Delete(ctx, request.ActorID, request.CheckinID)
}
