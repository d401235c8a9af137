package commands

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type ApproveTableRequestCommand struct {
	ActorID        uuid.UUID
	TableRequestID uuid.UUID
}

func (c ApproveTableRequestCommand) Validate() error {
	return validateRequestAction(c.ActorID, c.TableRequestID)
}

type RejectTableRequestCommand struct {
	ActorID        uuid.UUID
	TableRequestID uuid.UUID
}

func (c RejectTableRequestCommand) Validate() error {
	return validateRequestAction(c.ActorID, c.TableRequestID)
}

func validateRequestAction(actorID uuid.UUID, requestID uuid.UUID) error {
	return validation.Errors{
		"actor_id":         validation.Validate(actorID, core.NotNilUUID),
		"table_request_id": validation.Validate(requestID, core.NotNilUUID),
	}.Filter()
}

func HandleApproveTableRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "table request id")
	if !ok {
		return
	}

	command := ApproveTableRequestCommand{
		ActorID:        core.Session(r.Context()).UserID,
		TableRequestID: requestID,
	}

	response, err := mediator.Send[ApproveTableRequestCommand, domain.TableRequest](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func HandleRejectTableRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := core.URLParamUUID(w, r, chi.URLParam(r, "id"), "table request id")
	if !ok {
		return
	}

	command := RejectTableRequestCommand{
		ActorID:        core.Session(r.Context()).UserID,
		TableRequestID: requestID,
	}

	response, err := mediator.Send[RejectTableRequestCommand, domain.TableRequest](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type ApproveTableRequestCommandHandler struct {
	workflow *table.RequestWorkflow
}

func NewApproveTableRequestCommandHandler(workflow *table.RequestWorkflow) *ApproveTableRequestCommandHandler {
	return &ApproveTableRequestCommandHandler{workflow}
}

func (h *ApproveTableRequestCommandHandler) Handle(
	ctx context.Context,
	request ApproveTableRequestCommand,
) (domain.TableRequest, error) {
	return h.workflow.Approve(ctx, request.TableRequestID, request.ActorID)
}

type RejectTableRequestCommandHandler struct {
	workflow *table.RequestWorkflow
}

func NewRejectTableRequestCommandHandler(workflow *table.RequestWorkflow) *RejectTableRequestCommandHandler {
	return &RejectTableRequestCommandHandler{workflow}
}

func (h *RejectTableRequestCommandHandler) Handle(
	ctx context.Context,
	request RejectTableRequestCommand,
) (domain.TableRequest, error) {
	return h.workflow.Reject(ctx, request.TableRequestID, request.ActorID)
}
