package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_GetDurationOrDefault_Returns_Default_When_Key_Missing(t *testing.T) {
	// Act
	val, err := GetDurationOrDefault("TABLE_SCHEDULER_TEST_MISSING", 5*time.Minute)

	// Assert
	require.NoError(t, err)
	require.Equal(t, 5*time.Minute, val)
}

func Test_GetDurationOrDefault_Parses_Value(t *testing.T) {
	// Arrange
	t.Setenv("TABLE_SCHEDULER_TEST_DURATION", "90s")

	// Act
	val, err := GetDurationOrDefault("TABLE_SCHEDULER_TEST_DURATION", time.Minute)

	// Assert
	require.NoError(t, err)
	require.Equal(t, 90*time.Second, val)
}

func Test_GetIntOrDefault_Returns_ConversionFailed_When_Value_Not_Int(t *testing.T) {
	// Arrange
	t.Setenv("TABLE_SCHEDULER_TEST_INT", "four")

	// Act
	_, err := GetIntOrDefault("TABLE_SCHEDULER_TEST_INT", 4)

	// Assert
	require.ErrorIs(t, err, ErrConversionFailed)
}

func Test_MustGetString_Panics_When_Key_Missing(t *testing.T) {
	require.Panics(t, func() {
		MustGetString("TABLE_SCHEDULER_TEST_MISSING")
	})
}
