package commands

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type CancelTableRequestCommand struct {
	ActorID        uuid.UUID
	TableRequestID uuid.UUID
}

func (c CancelTableRequestCommand) Validate() error {
	return validateRequestAction(c.ActorID, c.TableRequestID)
}

func HandleCancelTableRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "table request id")
	if !ok {
		return
	}

	command := CancelTableRequestCommand{
		ActorID:        core.Session(r.Context()).UserID,
		TableRequestID: requestID,
	}

	if _, err := mediator.Send[CancelTableRequestCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteNoContent(w, r)
}

type CancelTableRequestCommandHandler struct {
	workflow *table.RequestWorkflow
}

func NewCancelTableRequestCommandHandler(workflow *table.RequestWorkflow) *CancelTableRequestCommandHandler {
	return &CancelTableRequestCommandHandler{workflow}
}

func (h *CancelTableRequestCommandHandler) Handle(ctx context.Context, request CancelTableRequestCommand) (core.Unit, error) {
	return core.Unit{}, h.workflow.Cancel(ctx, request.TableRequestID, request.ActorID)
}
