package authz

import (
	"testing"
	"time"

	sessiondomain "github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"
	tabledomain "github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_IsTableOwner(t *testing.T) {
	// Arrange
	gm := uuid.New()
	table := tabledomain.CreateTable(tabledomain.NewTable{GMID: gm, Title: "west marches", PlayerSlots: 4}, time.Now())

	// Act & Assert
	require.True(t, IsTableOwner(table, gm))
	require.False(t, IsTableOwner(table, uuid.New()))
	require.False(t, IsTableOwner(tabledomain.Table{}, uuid.Nil))
}

func Test_CanMutateSession_Requires_Owner_Of_Sessions_Table(t *testing.T) {
	// Arrange
	gm := uuid.New()
	table := tabledomain.CreateTable(tabledomain.NewTable{GMID: gm}, time.Now())
	otherTable := tabledomain.CreateTable(tabledomain.NewTable{GMID: gm}, time.Now())
	session := sessiondomain.CreateSession(sessiondomain.NewSession{TableID: table.ID}, time.Now())

	// Act & Assert
	require.True(t, CanMutateSession(session, table, gm))
	require.False(t, CanMutateSession(session, table, uuid.New()))
	require.False(t, CanMutateSession(session, otherTable, gm))
}

func Test_CanApproveRequest_Only_For_Game_Master(t *testing.T) {
	// Arrange
	gm := uuid.New()
	table := tabledomain.CreateTable(tabledomain.NewTable{GMID: gm}, time.Now())

	// Act & Assert
	require.True(t, CanApproveRequest(table, gm))
	require.False(t, CanApproveRequest(table, uuid.New()))
}

func Test_CanCancelRequest_Only_For_Requester(t *testing.T) {
	// Arrange
	requester := uuid.New()
	request := tabledomain.CreateTableRequest(requester, uuid.New(), nil, time.Now())

	// Act & Assert
	require.True(t, CanCancelRequest(request, requester))
	require.False(t, CanCancelRequest(request, uuid.New()))
}

func Test_CanManageCheckin_For_Attendee_And_Game_Master(t *testing.T) {
	// Arrange
	gm := uuid.New()
	player := uuid.New()
	table := tabledomain.CreateTable(tabledomain.NewTable{GMID: gm}, time.Now())
	intent := sessiondomain.CreateSessionIntent(player, uuid.New(), sessiondomain.IntentStatusConfirmed, time.Now())

	// Act & Assert
	require.True(t, CanManageCheckin(intent, table, player))
	require.True(t, CanManageCheckin(intent, table, gm))
	require.False(t, CanManageCheckin(intent, table, uuid.New()))
}
