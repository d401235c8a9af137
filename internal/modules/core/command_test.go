package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_StatusCode_Maps_Wrapped_Sentinels(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("login: %w", ErrInvalidCredentials): http.StatusUnauthorized,
		fmt.Errorf("jwt: %w", ErrInvalidToken):         http.StatusUnauthorized,
		fmt.Errorf("table: %w", ErrForbidden):          http.StatusForbidden,
		fmt.Errorf("table: %w", ErrNotFound):           http.StatusNotFound,
		fmt.Errorf("request: %w", ErrConflict):         http.StatusConflict,
		fmt.Errorf("limit: %w", ErrInvalidInput):       http.StatusBadRequest,
		errors.New("connection reset"):                 http.StatusInternalServerError,
	}

	for err, expected := range cases {
		// Act
		actual := StatusCode(err)

		// Assert
		require.Equal(t, expected, actual, err.Error())
	}
}

func Test_CommandErrorFrom_Keeps_Sentinel_Reachable(t *testing.T) {
	// Arrange
	err := fmt.Errorf("approve: %w", ErrConflict)

	// Act
	commandErr := CommandErrorFrom(err)

	// Assert
	require.Equal(t, http.StatusConflict, commandErr.StatusCode)
	require.ErrorIs(t, commandErr, ErrConflict)
}

func Test_CommandError_MarshalJSON_Hides_Payload_Of_Server_Errors(t *testing.T) {
	// Arrange
	commandErr := NewCommandError(http.StatusInternalServerError, errors.New(`pq: relation "auth.user" does not exist`))

	// Act
	body, err := json.Marshal(commandErr)

	// Assert
	require.NoError(t, err)
	require.NotContains(t, string(body), "auth.user")
	require.JSONEq(t, `{"status":500,"error":"Internal Server Error"}`, string(body))
}

func Test_CommandError_MarshalJSON_Exposes_Client_Error_Message(t *testing.T) {
	// Arrange
	commandErr := NewCommandError(http.StatusConflict, ErrConflict, WithReason("request already processed"))

	// Act
	body, err := json.Marshal(commandErr)

	// Assert
	require.NoError(t, err)
	require.JSONEq(t, `{"status":409,"error":"conflict","reason":"request already processed"}`, string(body))
}

func Test_QueryOptionsFromRequest_Applies_Defaults_And_Rejects_Out_Of_Range(t *testing.T) {
	// Arrange
	defaults, _ := http.NewRequest(http.MethodGet, "/tables/x/sessions", nil)
	tooLarge, _ := http.NewRequest(http.MethodGet, "/tables/x/sessions?limit=1000", nil)

	// Act
	opts, err := QueryOptionsFromRequest(defaults)
	_, tooLargeErr := QueryOptionsFromRequest(tooLarge)

	// Assert
	require.NoError(t, err)
	require.Equal(t, DefaultQueryOptions(), opts)
	require.ErrorIs(t, tooLargeErr, ErrInvalidInput)
}
