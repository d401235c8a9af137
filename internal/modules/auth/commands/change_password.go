package commands

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type ChangePasswordCommand struct {
	UserID          uuid.UUID `json:"-"`
	CurrentPassword string    `json:"current_password"`
	NewPassword     string    `json:"new_password"`
}

func (c ChangePasswordCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.UserID, core.NotNilUUID),
		validation.Field(&c.CurrentPassword, validation.Required),
		validation.Field(&c.NewPassword, passwordRules...),
	)
}

func HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[ChangePasswordCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.UserID = core.Session(r.Context()).UserID

	if _, err := mediator.Send[ChangePasswordCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteNoContent(w, r)
}

type ChangePasswordCommandHandler struct {
	authenticator *auth.Authenticator
}

func NewChangePasswordCommandHandler(authenticator *auth.Authenticator) *ChangePasswordCommandHandler {
	return &ChangePasswordCommandHandler{authenticator}
}

func (h *ChangePasswordCommandHandler) Handle(ctx context.Context, request ChangePasswordCommand) (core.Unit, error) {
	err := h.authenticator.UpdatePassword(ctx, request.UserID, request.CurrentPassword, request.NewPassword)
	return core.Unit{}, err
}
