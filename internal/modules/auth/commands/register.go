package commands

import (
	"context"
	"errors"
	"net/http"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

const minPasswordLength = 8

// bcrypt refuses anything past 72 bytes.
const maxPasswordBytes = 72

var passwordRules = []validation.Rule{
	validation.Required,
	validation.Length(minPasswordLength, 0),
	validation.By(func(value interface{}) error {
		if password, _ := value.(string); len(password) > maxPasswordBytes {
			return errors.New("must be no more than 72 bytes long")
		}
		return nil
	}),
}

type RegisterCommand struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c RegisterCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.Username, validation.Required, validation.Length(3, 50), is.PrintableASCII),
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, passwordRules...),
	)
}

type RegisterResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

func HandleRegistration(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[RegisterCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[RegisterCommand, RegisterResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteCreated(w, r, "/users/me", response)
}

type RegisterCommandHandler struct {
	authenticator *auth.Authenticator
}

func NewRegisterCommandHandler(authenticator *auth.Authenticator) *RegisterCommandHandler {
	return &RegisterCommandHandler{authenticator}
}

func (h *RegisterCommandHandler) Handle(ctx context.Context, request RegisterCommand) (RegisterResponse, error) {
	user, err := h.authenticator.Register(ctx, auth.NewUser{
		Username: request.Username,
		Email:    request.Email,
		Password: request.Password,
	})
	if err != nil {
		return RegisterResponse{}, err
	}

	return RegisterResponse{UserID: user.ID}, nil
}
