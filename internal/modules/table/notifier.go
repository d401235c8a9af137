package table

import (
	"context"
	"fmt"

	authdomain "github.com/eskrenkovic/table-scheduler/internal/modules/auth/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier tells a requester that the game master processed their request.
type Notifier interface {
	RequestProcessed(ctx context.Context, request domain.TableRequest, table domain.Table) error
}

type NopNotifier struct{}

func (NopNotifier) RequestProcessed(context.Context, domain.TableRequest, domain.Table) error {
	return nil
}

type RecipientFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (authdomain.User, error)
}

var _ Notifier = (*EmailNotifier)(nil)

type EmailNotifier struct {
	sender     core.EmailSender
	recipients RecipientFinder
	from       string
}

func NewEmailNotifier(sender core.EmailSender, recipients RecipientFinder, from string) *EmailNotifier {
	return &EmailNotifier{
		sender:     sender,
		recipients: recipients,
		from:       from,
	}
}

func (n *EmailNotifier) RequestProcessed(ctx context.Context, request domain.TableRequest, table domain.Table) error {
	user, err := n.recipients.FindByID(ctx, request.UserID)
	if err != nil {
		return err
	}

	message := core.MailMessage{
		Subject: fmt.Sprintf("Your request to join %s", table.Title),
		From:    n.from,
		To:      []string{user.Email},
		BodyString: fmt.Sprintf(
			"Hi %s,\n\nyour request to join the table '%s' was %s.\n",
			user.Username,
			table.Title,
			request.Status,
		),
	}

	return n.sender.Send(message)
}

// NotifyRequestProcessed never fails the caller; a lost notification is only logged.
func NotifyRequestProcessed(ctx context.Context, notifier Notifier, request domain.TableRequest, table domain.Table) {
	if notifier == nil {
		return
	}

	if err := notifier.RequestProcessed(ctx, request, table); err != nil {
		core.LogError(
			ctx,
			"failed to notify requester",
			zap.Stringer("table_request_id", request.ID),
			zap.Error(err),
		)
	}
}
