package queries

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth"
	"github.com/eskrenkovic/table-scheduler/internal/modules/auth/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	validation "github.com/go-ozzo/ozzo-validation"
)

// UserSummary is what one user may see of another.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type SearchUsersQuery struct {
	Username string
	Options  core.QueryOptions
}

func (q SearchUsersQuery) Validate() error {
	return validation.ValidateStruct(
		&q,
		validation.Field(&q.Username, validation.Length(0, 50)),
		validation.Field(&q.Options),
	)
}

func HandleSearchUsers(w http.ResponseWriter, r *http.Request) {
	opts, err := core.QueryOptionsFromRequest(r)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	query := SearchUsersQuery{
		Username: r.URL.Query().Get("username"),
		Options:  opts,
	}

	response, err := mediator.Send[SearchUsersQuery, []UserSummary](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type SearchUsersQueryHandler struct {
	users auth.UserRepository
}

func NewSearchUsersQueryHandler(users auth.UserRepository) *SearchUsersQueryHandler {
	return &SearchUsersQueryHandler{users}
}

func (h *SearchUsersQueryHandler) Handle(ctx context.Context, request SearchUsersQuery) ([]UserSummary, error) {
	users, err := h.users.Search(ctx, request.Username, request.Options)
	if err != nil {
		return nil, err
	}

	return core.Map(users, func(u domain.User) UserSummary {
		return UserSummary{ID: u.ID.String(), Username: u.Username}
	}), nil
}
