package queries

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
	"github.com/google/uuid"
)

type GetCurrentUserQuery struct {
	UserID uuid.UUID
}

func (q GetCurrentUserQuery) Validate() error {
	return validation.ValidateStruct(
		&q,
		validation.Field(&q.UserID, core.NotNilUUID),
	)
}

func HandleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	query := GetCurrentUserQuery{UserID: core.Session(r.Context()).UserID}

	response, err := mediator.Send[GetCurrentUserQuery, domain.User](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetCurrentUserQueryHandler struct {
	users auth.UserRepository
}

func NewGetCurrentUserQueryHandler(users auth.UserRepository) *GetCurrentUserQueryHandler {
	return &GetCurrentUserQueryHandler{users}
}

func (h *GetCurrentUserQueryHandler) Handle(ctx context.Context, request GetCurrentUserQuery) (domain.User, error) {
	user, err := h.users.FindByID(ctx, request.UserID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return domain.User{}, domain.ErrUserNotFound
	case err != nil:
		return domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	return user, nil
}
