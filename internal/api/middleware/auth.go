package middleware

import (
	"errors"
	"net/http"
	"slices"

	"go.uber.org/zap"

	"github.com/scoreline/score-sync/internal/auth"
)

// RequireAuth verifies the bearer token and stores the caller's claims on
// the request context. When roles is non-empty the token's role claim must
// be one of them.
func RequireAuth(v *auth.Verifier, logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				if !errors.Is(err, auth.ErrExpiredToken) {
					logger.Debug("rejected bearer token",
						zap.Error(err),
						zap.String("correlation_id", GetCorrelationID(r.Context())),
					)
				}
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
				writeError(w, http.StatusForbidden, "insufficient role")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
