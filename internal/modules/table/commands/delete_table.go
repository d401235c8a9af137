package commands

import (
	"context"
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

type DeleteTableCommand struct {
	ActorID uuid.UUID
	TableID uuid.UUID
}

func (c DeleteTableCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.ActorID, core.NotNilUUID),
		validation.Field(&c.TableID, core.NotNilUUID),
	)
}

func HandleDeleteTable(w http.ResponseWriter, r *http.Request) {
	tableID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "table id")
	if !ok {
		return
	}

	command := DeleteTableCommand{
		ActorID: core.Session(r.Context()).UserID,
		TableID: tableID,
	}

	if _, err := mediator.Send[DeleteTableCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteNoContent(w, r)
}

type DeleteTableCommandHandler struct {
	tables table.TableRepository
}

func NewDeleteTableCommandHandler(tables table.TableRepository) *DeleteTableCommandHandler {
	return &DeleteTableCommandHandler{tables}
}

// Handle removes the table together with its requests and sessions.
func (h *DeleteTableCommandHandler) Handle(ctx context.Context, request DeleteTableCommand) (core.Unit, error) {
	t, err := table.LoadTable(ctx, h.tables, request.TableID)
	if err != nil {
		return core.Unit{}, err
	}

	if !authz.IsTableOwner(t, request.ActorID) {
		return core.Unit{}, domain.ErrUserNotTableGameMaster
	}

	if err := h.tables.Delete(ctx, t.ID); err != nil {
		return core.Unit{}, fmt.Errorf("failed to delete table: %w", err)
	}

	return core.Unit{}, nil
}
