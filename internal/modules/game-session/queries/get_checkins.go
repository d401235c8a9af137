package queries

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	gamesession "github.com/eskrenkovic/table-scheduler/internal/modules/game-session"
	"github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type GetCheckinsQuery struct {
	UserID     uuid.UUID
	Attendance bool
	Options    core.QueryOptions
}

func (q GetCheckinsQuery) Validate() error {
	return validation.ValidateStruct(
		&q,
		validation.Field(&q.UserID, core.NotNilUUID),
		validation.Field(&q.Options),
	)
}

func HandleGetCheckins(w http.ResponseWriter, r *http.Request) {
	attendance := true
	if raw := r.URL.Query().Get("attendance"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			core.WriteCommandError(w, r, fmt.Errorf("invalid format for query param 'attendance': %w", core.ErrInvalidInput))
			return
		}
		attendance = parsed
	}

	opts, err := core.QueryOptionsFromRequest(r)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	query := GetCheckinsQuery{
		UserID:     core.Session(r.Context()).UserID,
		Attendance: attendance,
		Options:    opts,
	}

	response, err := mediator.Send[GetCheckinsQuery, []domain.SessionCheckin](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetCheckinsQueryHandler struct {
	checkins *gamesession.CheckinWorkflow
}

func NewGetCheckinsQueryHandler(checkins *gamesession.CheckinWorkflow) *GetCheckinsQueryHandler {
	return &GetCheckinsQueryHandler{checkins}
}

func (h *GetCheckinsQueryHandler) Handle(ctx context.Context, request GetCheckinsQuery) ([]domain.SessionCheckin, error) {
	return h.checkins.ByAttendance(ctx, request.UserID, request.Attendance, request.Options)
}
