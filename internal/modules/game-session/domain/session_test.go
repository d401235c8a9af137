package domain

import (
	"testing"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_SessionStatus_Transitions(t *testing.T) {
	cases := []struct {
		from    SessionStatus
		to      SessionStatus
		allowed bool
	}{
		{SessionStatusScheduled, SessionStatusInProgress, true},
		{SessionStatusScheduled, SessionStatusCancelled, true},
		{SessionStatusScheduled, SessionStatusCompleted, false},
		{SessionStatusInProgress, SessionStatusCompleted, true},
		{SessionStatusInProgress, SessionStatusCancelled, true},
		{SessionStatusInProgress, SessionStatusScheduled, false},
		{SessionStatusCompleted, SessionStatusCancelled, false},
		{SessionStatusCompleted, SessionStatusInProgress, false},
		{SessionStatusCancelled, SessionStatusScheduled, false},
		{SessionStatusCancelled, SessionStatusCancelled, true},
		{SessionStatusScheduled, SessionStatus("postponed"), false},
	}

	for _, c := range cases {
		t.Run(string(c.from)+"->"+string(c.to), func(t *testing.T) {
			require.Equal(t, c.allowed, c.from.CanTransitionTo(c.to))
		})
	}
}

func Test_SessionStatus_Terminal(t *testing.T) {
	require.True(t, SessionStatusCompleted.Terminal())
	require.True(t, SessionStatusCancelled.Terminal())
	require.False(t, SessionStatusScheduled.Terminal())
	require.False(t, SessionStatusInProgress.Terminal())
}

func Test_CreateSession_Defaults_To_Scheduled(t *testing.T) {
	// Act
	session := CreateSession(NewSession{TableID: uuid.New(), Title: "one shot"}, time.Now())

	// Assert
	require.Equal(t, SessionStatusScheduled, session.Status)
	require.NotEqual(t, uuid.Nil, session.ID)
}

func Test_Session_CheckTransition_Rejects_Leaving_Terminal_State(t *testing.T) {
	// Arrange
	session := CreateSession(NewSession{TableID: uuid.New(), Status: SessionStatusCompleted}, time.Now())

	// Act
	err := session.CheckTransition(SessionUpdate{Status: core.Change(SessionStatusScheduled)})

	// Assert
	require.ErrorIs(t, err, ErrInvalidStatusTransition)
	require.ErrorIs(t, err, core.ErrConflict)
}

func Test_Session_CheckTransition_Allows_Update_Without_Status(t *testing.T) {
	// Arrange
	session := CreateSession(NewSession{TableID: uuid.New(), Status: SessionStatusCancelled}, time.Now())

	// Act
	err := session.CheckTransition(SessionUpdate{Title: core.Change("renamed")})

	// Assert
	require.NoError(t, err)
}

func Test_CreateSessionIntent_Defaults_To_Unsure(t *testing.T) {
	intent := CreateSessionIntent(uuid.New(), uuid.New(), "", time.Now())
	require.Equal(t, IntentStatusUnsure, intent.IntentStatus)
}
