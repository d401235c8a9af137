package gamesession_test

import (
	"context"
	"testing"
	"time"

	gamesession "github.com/eskrenkovic/table-scheduler/internal/modules/game-session"
	"github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"
	tabledomain "github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/tests/inmem"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	tables    *inmem.TableRepository
	sessions  *inmem.SessionRepository
	intents   *inmem.SessionIntentRepository
	checkins  *inmem.SessionCheckinRepository
	lifecycle *gamesession.Lifecycle
	intentWF  *gamesession.IntentWorkflow
	checkinWF *gamesession.CheckinWorkflow
	gmID      uuid.UUID
	table     tabledomain.Table
}

func newSessionFixture(t *testing.T) sessionFixture {
	t.Helper()

	tables := inmem.NewTableRepository()
	sessions := inmem.NewSessionRepository()
	intents := inmem.NewSessionIntentRepository()
	checkins := inmem.NewSessionCheckinRepository(intents)

	gmID := uuid.New()
	tbl := tabledomain.CreateTable(tabledomain.NewTable{
		GMID:         gmID,
		Title:        "Call of Cthulhu",
		PlayerSlots:  4,
		GameSystemID: uuid.New(),
	}, time.Now().UTC())
	require.NoError(t, tables.Create(context.Background(), tbl))

	return sessionFixture{
		tables:    tables,
		sessions:  sessions,
		intents:   intents,
		checkins:  checkins,
		lifecycle: gamesession.NewLifecycle(tables, sessions),
		intentWF:  gamesession.NewIntentWorkflow(sessions, intents),
		checkinWF: gamesession.NewCheckinWorkflow(tables, sessions, intents, checkins),
		gmID:      gmID,
		table:     tbl,
	}
}

func (f sessionFixture) createSession(t *testing.T) domain.Session {
	t.Helper()

	session, err := f.lifecycle.Create(context.Background(), f.gmID, domain.NewSession{
		TableID: f.table.ID,
		Title:   "The Haunting",
	})
	require.NoError(t, err)

	return session
}
