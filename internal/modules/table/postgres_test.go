//go:build integration

package table_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth"
	authdomain "github.com/eskrenkovic/table-scheduler/internal/modules/auth/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/tests"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var fixture *tests.PostgresFixture

func TestMain(m *testing.M) {
	ctx := context.Background()

	f, err := tests.NewPostgresFixture(ctx, "../../../db/migrations")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fixture = f

	code := m.Run()

	if err := fixture.Stop(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	os.Exit(code)
}

func createUser(t *testing.T, ctx context.Context) authdomain.User {
	t.Helper()

	name := uuid.NewString()[:8]
	user := authdomain.NewUser(name, name+"@example.com", "hash", time.Now().UTC())
	require.NoError(t, auth.NewPostgresUserRepository(fixture.DB).Create(ctx, user))

	return user
}

func createTable(t *testing.T, ctx context.Context, gmID uuid.UUID) domain.Table {
	t.Helper()

	tbl := domain.CreateTable(domain.NewTable{
		GMID:         gmID,
		Title:        "Curse of Strahd",
		PlayerSlots:  4,
		GameSystemID: uuid.New(),
	}, time.Now().UTC())
	require.NoError(t, table.NewPostgresTableRepository(fixture.DB).Create(ctx, tbl))

	return tbl
}

func Test_PostgresTableRequestRepository_Rejects_Second_Pending_Request(t *testing.T) {
	// Arrange
	ctx := context.Background()
	gm := createUser(t, ctx)
	player := createUser(t, ctx)
	tbl := createTable(t, ctx, gm.ID)

	requests := table.NewPostgresTableRequestRepository(fixture.DB)
	require.NoError(t, requests.Create(ctx, domain.CreateTableRequest(player.ID, tbl.ID, nil, time.Now().UTC())))

	// Act
	err := requests.Create(ctx, domain.CreateTableRequest(player.ID, tbl.ID, nil, time.Now().UTC()))

	// Assert
	require.ErrorIs(t, err, core.ErrConflict)
}

func Test_PostgresTableRequestRepository_Create_Fails_With_Not_Found_For_Unknown_Table(t *testing.T) {
	// Arrange
	ctx := context.Background()
	player := createUser(t, ctx)

	requests := table.NewPostgresTableRequestRepository(fixture.DB)

	// Act
	err := requests.Create(ctx, domain.CreateTableRequest(player.ID, uuid.New(), nil, time.Now().UTC()))

	// Assert
	require.ErrorIs(t, err, core.ErrNotFound)
}

func Test_PostgresTableRequestRepository_Update_Only_Applies_To_Expected_Status(t *testing.T) {
	// Arrange
	ctx := context.Background()
	gm := createUser(t, ctx)
	player := createUser(t, ctx)
	tbl := createTable(t, ctx, gm.ID)

	requests := table.NewPostgresTableRequestRepository(fixture.DB)
	request := domain.CreateTableRequest(player.ID, tbl.ID, nil, time.Now().UTC())
	require.NoError(t, requests.Create(ctx, request))

	approved := request
	require.NoError(t, approved.Approve(time.Now().UTC()))

	// Act
	first, err := requests.Update(ctx, approved, domain.TableRequestStatusPending)
	require.NoError(t, err)

	second, err := requests.Update(ctx, approved, domain.TableRequestStatusPending)
	require.NoError(t, err)

	// Assert
	require.True(t, first)
	require.False(t, second)

	stored, err := requests.FindByID(ctx, request.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TableRequestStatusApproved, stored.Status)
}

func Test_RequestWorkflow_On_Postgres_Allows_New_Request_After_Rejection(t *testing.T) {
	// Arrange
	ctx := context.Background()
	gm := createUser(t, ctx)
	player := createUser(t, ctx)
	tbl := createTable(t, ctx, gm.ID)

	workflow := table.NewRequestWorkflow(
		table.NewPostgresTableRepository(fixture.DB),
		table.NewPostgresTableRequestRepository(fixture.DB),
	)

	request, err := workflow.Create(ctx, player.ID, tbl.ID, nil)
	require.NoError(t, err)

	_, err = workflow.Reject(ctx, request.ID, gm.ID)
	require.NoError(t, err)

	// Act
	second, err := workflow.Create(ctx, player.ID, tbl.ID, nil)

	// Assert
	require.NoError(t, err)
	require.Equal(t, domain.TableRequestStatusPending, second.Status)

	listed, err := workflow.TableRequests(ctx, tbl.ID, gm.ID, core.DefaultQueryOptions())
	require.NoError(t, err)
	require.Len(t, listed, 2)
}

func Test_PostgresTableRepository_Delete_Cascades_To_Requests(t *testing.T) {
	// Arrange
	ctx := context.Background()
	gm := createUser(t, ctx)
	player := createUser(t, ctx)
	tbl := createTable(t, ctx, gm.ID)

	tables := table.NewPostgresTableRepository(fixture.DB)
	requests := table.NewPostgresTableRequestRepository(fixture.DB)

	request := domain.CreateTableRequest(player.ID, tbl.ID, nil, time.Now().UTC())
	require.NoError(t, requests.Create(ctx, request))

	// Act
	err := tables.Delete(ctx, tbl.ID)

	// Assert
	require.NoError(t, err)

	_, err = requests.FindByID(ctx, request.ID)
	require.ErrorIs(t, err, core.ErrNotFound)
}
