package core

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func Test_DBError_Maps_Unique_Violation_To_Conflict_Without_Constraint_Name(t *testing.T) {
	// Arrange
	driverErr := &pq.Error{Code: pqUniqueViolation, Constraint: "refresh_token_user_id_uq"}

	// Act
	err := DBError(driverErr, "failed to create refresh token")

	// Assert
	require.ErrorIs(t, err, ErrConflict)
	require.NotContains(t, err.Error(), "refresh_token_user_id_uq")

	body, marshalErr := CommandErrorFrom(err).MarshalJSON()
	require.NoError(t, marshalErr)
	require.NotContains(t, string(body), "refresh_token_user_id_uq")
	require.Contains(t, string(body), `"status":409`)
}

func Test_DBError_Maps_Foreign_Key_Violation_To_Not_Found(t *testing.T) {
	// Arrange
	driverErr := &pq.Error{Code: pqForeignKeyViolation, Constraint: "session_table_id_fkey"}

	// Act
	err := DBError(driverErr, "failed to create session")

	// Assert
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, http.StatusNotFound, StatusCode(err))
	require.NotContains(t, err.Error(), "session_table_id_fkey")
}

func Test_DBError_Maps_No_Rows_To_Not_Found(t *testing.T) {
	require.ErrorIs(t, DBError(sql.ErrNoRows, "failed to load table"), ErrNotFound)
	require.NoError(t, DBError(nil, "failed to load table"))
}
