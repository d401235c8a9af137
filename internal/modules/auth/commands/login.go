package commands

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	validation "github.com/go-ozzo/ozzo-validation"
)

type LoginCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c LoginCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.Email, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

func HandleLogin(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[LoginCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[LoginCommand, auth.TokenPair](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response, core.WithHeader("Cache-Control", "no-store"))
}

type LoginCommandHandler struct {
	authenticator *auth.Authenticator
}

func NewLoginCommandHandler(authenticator *auth.Authenticator) *LoginCommandHandler {
	return &LoginCommandHandler{authenticator}
}

func (h *LoginCommandHandler) Handle(ctx context.Context, request LoginCommand) (auth.TokenPair, error) {
	return h.authenticator.Login(ctx, request.Email, request.Password)
}
