package auth

import (
	"net/http"
	"strings"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
)

const bearerPrefix = "bearer "

type Identifier interface {
	Identify(token string) (core.ContextSession, error)
}

func AuthenticationMiddleware(identifier Identifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
				core.WriteUnauthorized(w, r, core.ErrInvalidToken)
				return
			}

			session, err := identifier.Identify(strings.TrimSpace(header[len(bearerPrefix):]))
			if err != nil {
				core.WriteUnauthorized(w, r, core.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(core.WithSession(r.Context(), session)))
		})
	}
}
