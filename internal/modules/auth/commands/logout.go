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

type LogoutCommand struct {
	UserID uuid.UUID
}

func (c LogoutCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.UserID, core.NotNilUUID),
	)
}

// HandleLogout revokes refresh tokens only; the caller's access token stays
// valid until it expires.
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	command := LogoutCommand{UserID: core.Session(r.Context()).UserID}

	if _, err := mediator.Send[LogoutCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteNoContent(w, r)
}

type LogoutCommandHandler struct {
	authenticator *auth.Authenticator
}

func NewLogoutCommandHandler(authenticator *auth.Authenticator) *LogoutCommandHandler {
	return &LogoutCommandHandler{authenticator}
}

func (h *LogoutCommandHandler) Handle(ctx context.Context, request LogoutCommand) (core.Unit, error) {
	return core.Unit{}, h.authenticator.Logout(ctx, request.UserID)
}
