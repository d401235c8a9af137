package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/eskrenkovic/table-scheduler/internal/modules/authz"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type UpdateTableCommand struct {
	ActorID      uuid.UUID                       `json:"-"`
	TableID      uuid.UUID                       `json:"-"`
	Title        core.Update[string]             `json:"title"`
	Description  core.Update[string]             `json:"description"`
	PlayerSlots  core.Update[int]                `json:"player_slots"`
	GameSystemID core.Update[uuid.UUID]          `json:"game_system_id"`
	Status       core.Update[domain.TableStatus] `json:"status"`
}

func (c UpdateTableCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.ActorID, core.NotNilUUID),
		validation.Field(&c.TableID, core.NotNilUUID),
		validation.Field(&c.Title, core.WhenSet[string](validation.Required, validation.Length(1, maxTitleLength), core.SingleLine)),
		validation.Field(&c.Description, core.WhenSet[string](validation.Length(0, maxDescriptionLength))),
		validation.Field(&c.PlayerSlots, core.WhenSet[int](validation.Required, validation.Min(1))),
		validation.Field(&c.GameSystemID, core.WhenSet[uuid.UUID](core.NotNilUUID)),
		validation.Field(&c.Status, core.WhenSet[domain.TableStatus](validation.Required, core.ValidEnum)),
	)
}

func HandleUpdateTable(w http.ResponseWriter, r *http.Request) {
	tableID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "table id")
	if !ok {
		return
	}

	command, err := core.RequestBody[UpdateTableCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.ActorID = core.Session(r.Context()).UserID
	command.TableID = tableID

	response, err := mediator.Send[UpdateTableCommand, domain.Table](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type UpdateTableCommandHandler struct {
	tables table.TableRepository
}

func NewUpdateTableCommandHandler(tables table.TableRepository) *UpdateTableCommandHandler {
	return &UpdateTableCommandHandler{tables}
}

func (h *UpdateTableCommandHandler) Handle(ctx context.Context, request UpdateTableCommand) (domain.Table, error) {
	t, err := table.LoadTable(ctx, h.tables, request.TableID)
	if err != nil {
		return domain.Table{}, err
	}

	if !authz.IsTableOwner(t, request.ActorID) {
		return domain.Table{}, domain.ErrUserNotTableGameMaster
	}

	update := domain.TableUpdate{
		Title:        request.Title,
		Description:  request.Description,
		PlayerSlots:  request.PlayerSlots,
		GameSystemID: request.GameSystemID,
		Status:       request.Status,
	}

	updated, err := h.tables.Update(ctx, t.ID, update)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return domain.Table{}, domain.ErrTableNotFound
	case err != nil:
		return domain.Table{}, fmt.Errorf("failed to update table: %w", err)
	}

	return updated, nil
}
