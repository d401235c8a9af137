package core

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	CorrelationIDHeader                = "Correlation-Id"
	CorrelationIDContextKey contextKey = "correlation_id"
)

func CorrelationIDHTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		correlationID := r.Header.Get(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		w.Header().Set(CorrelationIDHeader, correlationID)

		ctx = context.WithValue(ctx, CorrelationIDContextKey, correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(CorrelationIDContextKey).(string)
	return id
}

// URLParamUUID parses a path parameter, writing a 400 when it is not a uuid.
func URLParamUUID(w http.ResponseWriter, r *http.Request, value string, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		WriteBadRequest(w, r, NewCommandError(http.StatusBadRequest, ErrInvalidInput, WithReason("invalid "+name)))
		return uuid.Nil, false
	}

	return id, true
}
