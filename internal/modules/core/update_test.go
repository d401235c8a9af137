package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type profilePatch struct {
	Username Update[string]  `json:"username"`
	Notes    Update[*string] `json:"notes"`
}

func Test_Update_Stays_Keep_When_Field_Is_Absent(t *testing.T) {
	// Arrange
	var patch profilePatch

	// Act
	err := json.Unmarshal([]byte(`{"username":"alice"}`), &patch)

	// Assert
	require.NoError(t, err)

	username, ok := patch.Username.Value()
	require.True(t, ok)
	require.Equal(t, "alice", username)
	require.False(t, patch.Notes.IsSet())
}

func Test_Update_Becomes_Change_To_Nil_When_Field_Is_Null(t *testing.T) {
	// Arrange
	var patch profilePatch

	// Act
	err := json.Unmarshal([]byte(`{"notes":null}`), &patch)

	// Assert
	require.NoError(t, err)

	notes, ok := patch.Notes.Value()
	require.True(t, ok)
	require.Nil(t, notes)
}

func Test_Update_Apply_Only_Writes_Set_Fields(t *testing.T) {
	// Arrange
	target := "before"

	// Act
	Keep[string]().Apply(&target)
	kept := target
	Change("after").Apply(&target)

	// Assert
	require.Equal(t, "before", kept)
	require.Equal(t, "after", target)
}
