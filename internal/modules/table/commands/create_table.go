package commands

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"

	"github.com/eskrenkovic/mediator-go"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 4000
)

type CreateTableCommand struct {
	ActorID      uuid.UUID `json:"-"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PlayerSlots  int       `json:"player_slots"`
	GameSystemID uuid.UUID `json:"game_system_id"`
}

func (c CreateTableCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.ActorID, core.NotNilUUID),
		validation.Field(&c.Title, validation.Required, validation.Length(1, maxTitleLength), core.SingleLine),
		validation.Field(&c.Description, validation.Length(0, maxDescriptionLength)),
		validation.Field(&c.PlayerSlots, validation.Required, validation.Min(1)),
		validation.Field(&c.GameSystemID, core.NotNilUUID),
	)
}

type CreateTableResponse struct {
	TableID uuid.UUID `json:"table_id"`
}

func HandleCreateTable(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[CreateTableCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.ActorID = core.Session(r.Context()).UserID

	response, err := mediator.Send[CreateTableCommand, CreateTableResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join("/tables", response.TableID.String())
	core.WriteCreated(w, r, location, response)
}

type CreateTableCommandHandler struct {
	tables table.TableRepository
}

func NewCreateTableCommandHandler(tables table.TableRepository) *CreateTableCommandHandler {
	return &CreateTableCommandHandler{tables}
}

func (h *CreateTableCommandHandler) Handle(ctx context.Context, request CreateTableCommand) (CreateTableResponse, error) {
	t := domain.CreateTable(domain.NewTable{
		GMID:         request.ActorID,
		Title:        request.Title,
		Description:  request.Description,
		PlayerSlots:  request.PlayerSlots,
		GameSystemID: request.GameSystemID,
	}, time.Now().UTC())

	if err := h.tables.Create(ctx, t); err != nil {
		return CreateTableResponse{}, fmt.Errorf("failed to store table: %w", err)
	}

	return CreateTableResponse{TableID: t.ID}, nil
}
