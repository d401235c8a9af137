package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth"
	"github.com/eskrenkovic/table-scheduler/internal/modules/auth/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

type UpdateUserCommand struct {
	UserID   uuid.UUID           `json:"-"`
	Username core.Update[string] `json:"username"`
	Email    core.Update[string] `json:"email"`
}

func (c UpdateUserCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.UserID, core.NotNilUUID),
		validation.Field(&c.Username, core.WhenSet[string](validation.Required, validation.Length(3, 50), is.PrintableASCII)),
		validation.Field(&c.Email, core.WhenSet[string](validation.Required, is.Email)),
	)
}

func HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[UpdateUserCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.UserID = core.Session(r.Context()).UserID

	response, err := mediator.Send[UpdateUserCommand, domain.User](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type UpdateUserCommandHandler struct {
	users auth.UserRepository
}

func NewUpdateUserCommandHandler(users auth.UserRepository) *UpdateUserCommandHandler {
	return &UpdateUserCommandHandler{users}
}

func (h *UpdateUserCommandHandler) Handle(ctx context.Context, request UpdateUserCommand) (domain.User, error) {
	update := auth.UserUpdate{
		Username: request.Username,
		Email:    request.Email,
	}

	user, err := h.users.Update(ctx, request.UserID, update)
	switch {
	case errors.Is(err, core.ErrConflict):
		return domain.User{}, domain.ErrUserAlreadyExists
	case errors.Is(err, core.ErrNotFound):
		return domain.User{}, domain.ErrUserNotFound
	case err != nil:
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
