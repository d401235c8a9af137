// Package authz answers whether an actor may act on an entity. Every
// function is a pure predicate over entities the caller already loaded;
// loading them (and reporting a missing anchor as not found) is the caller's job.
package authz

import (
	sessiondomain "github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"
	tabledomain "github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"

	"github.com/google/uuid"
)

func IsTableOwner(table tabledomain.Table, actorID uuid.UUID) bool {
	return actorID != uuid.Nil && table.GMID == actorID
}

// CanMutateSession requires table to be the session's own table.
func CanMutateSession(session sessiondomain.Session, table tabledomain.Table, actorID uuid.UUID) bool {
	return session.TableID == table.ID && IsTableOwner(table, actorID)
}

func CanApproveRequest(table tabledomain.Table, actorID uuid.UUID) bool {
	return IsTableOwner(table, actorID)
}

func CanCancelRequest(request tabledomain.TableRequest, actorID uuid.UUID) bool {
	return actorID != uuid.Nil && request.UserID == actorID
}

func CanMutateIntent(intent sessiondomain.SessionIntent, actorID uuid.UUID) bool {
	return actorID != uuid.Nil && intent.UserID == actorID
}

// CanManageCheckin lets the attendee record their own attendance and the
// game master record it for anyone at their table.
func CanManageCheckin(intent sessiondomain.SessionIntent, table tabledomain.Table, actorID uuid.UUID) bool {
	return CanMutateIntent(intent, actorID) || IsTableOwner(table, actorID)
}
