package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_TableRequest_Approve_Moves_Pending_To_Approved(t *testing.T) {
	// Arrange
	now := time.Now()
	request := CreateTableRequest(uuid.New(), uuid.New(), nil, now)

	// Act
	err := request.Approve(now.Add(time.Minute))

	// Assert
	require.NoError(t, err)
	require.Equal(t, TableRequestStatusApproved, request.Status)
	require.Equal(t, now.Add(time.Minute), request.UpdatedAt)
}

func Test_TableRequest_Terminal_States_Do_Not_Transition(t *testing.T) {
	transitions := map[string]func(*TableRequest, time.Time) error{
		"approve": (*TableRequest).Approve,
		"reject":  (*TableRequest).Reject,
	}

	for _, terminal := range []TableRequestStatus{TableRequestStatusApproved, TableRequestStatusRejected} {
		for name, transition := range transitions {
			t.Run(string(terminal)+"/"+name, func(t *testing.T) {
				// Arrange
				request := CreateTableRequest(uuid.New(), uuid.New(), nil, time.Now())
				request.Status = terminal

				// Act
				err := transition(&request, time.Now())

				// Assert
				require.ErrorIs(t, err, ErrRequestAlreadyProcessed)
				require.Equal(t, terminal, request.Status)
			})
		}
	}
}

func Test_HasPendingRequest_Ignores_Processed_Requests(t *testing.T) {
	// Arrange
	approved := CreateTableRequest(uuid.New(), uuid.New(), nil, time.Now())
	approved.Status = TableRequestStatusApproved

	rejected := approved
	rejected.Status = TableRequestStatusRejected

	pending := CreateTableRequest(uuid.New(), uuid.New(), nil, time.Now())

	// Act & Assert
	require.False(t, HasPendingRequest(nil))
	require.False(t, HasPendingRequest([]TableRequest{approved, rejected}))
	require.True(t, HasPendingRequest([]TableRequest{approved, pending}))
}
