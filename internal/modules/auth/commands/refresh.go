package commands

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	validation "github.com/go-ozzo/ozzo-validation"
)

type RefreshCommand struct {
	RefreshToken string `json:"refresh_token"`
}

func (c RefreshCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.RefreshToken, validation.Required),
	)
}

func HandleRefresh(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[RefreshCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[RefreshCommand, auth.TokenPair](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response, core.WithHeader("Cache-Control", "no-store"))
}

type RefreshCommandHandler struct {
	authenticator *auth.Authenticator
}

func NewRefreshCommandHandler(authenticator *auth.Authenticator) *RefreshCommandHandler {
	return &RefreshCommandHandler{authenticator}
}

func (h *RefreshCommandHandler) Handle(ctx context.Context, request RefreshCommand) (auth.TokenPair, error) {
	return h.authenticator.Refresh(ctx, request.RefreshToken)
}
