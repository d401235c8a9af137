package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ContextKey string

const SessionContextKey ContextKey = "session"

// ContextSession is the verified identity of the caller. It carries no roles:
// authorization is always derived from the current state of the entities.
type ContextSession struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

func (s ContextSession) Authenticated() bool {
	return s.UserID != uuid.Nil
}

func WithSession(ctx context.Context, session ContextSession) context.Context {
	return context.WithValue(ctx, SessionContextKey, session)
}

func Session(ctx context.Context) ContextSession {
	session, ok := ctx.Value(SessionContextKey).(ContextSession)
	if !ok {
		return ContextSession{}
	}

	return session
}
