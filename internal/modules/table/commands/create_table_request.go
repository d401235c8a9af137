package commands

import (
	"context"
	"net/http"
	"path"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type CreateTableRequestCommand struct {
	ActorID uuid.UUID `json:"-"`
	TableID uuid.UUID `json:"-"`
	Message *string   `json:"message"`
}

func (c CreateTableRequestCommand) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.ActorID, core.NotNilUUID),
		validation.Field(&c.TableID, core.NotNilUUID),
		validation.Field(&c.Message, validation.NilOrNotEmpty, validation.Length(0, 2000)),
	)
}

type CreateTableRequestResponse struct {
	TableRequestID uuid.UUID `json:"table_request_id"`
}

func HandleCreateTableRequest(w http.ResponseWriter, r *http.Request) {
	tableID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "table id")
	if !ok {
		return
	}

	command, err := core.RequestBody[CreateTableRequestCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.ActorID = core.Session(r.Context()).UserID
	command.TableID = tableID

	response, err := mediator.Send[CreateTableRequestCommand, CreateTableRequestResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join("/table-requests", response.TableRequestID.String())
	core.WriteCreated(w, r, location, response)
}

type CreateTableRequestCommandHandler struct {
	workflow *table.RequestWorkflow
}

func NewCreateTableRequestCommandHandler(workflow *table.RequestWorkflow) *CreateTableRequestCommandHandler {
	return &CreateTableRequestCommandHandler{workflow}
}

func (h *CreateTableRequestCommandHandler) Handle(
	ctx context.Context,
	request CreateTableRequestCommand,
) (CreateTableRequestResponse, error) {
	created, err := h.workflow.Create(ctx, request.ActorID, request.TableID, request.Message)
	if err != nil {
		return CreateTableRequestResponse{}, err
	}

	return CreateTableRequestResponse{TableRequestID: created.ID}, nil
}
