package middleware

import (
	"context"
	"net/http"
	"strings"

	"dearmind-backend/internal/handler/common"
	"dearmind-backend/internal/identity"

	"github.com/rs/zerolog/hlog"
)

type Authenticator interface {
	VerifyIDToken(ctx context.Context, idToken string) (identity.Identity, error)
}

// Auth rejects requests without a valid bearer token and stores the caller's
// identity on the request context.
func Auth(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				common.RespondError(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				common.RespondError(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			id, err := authenticator.VerifyIDToken(r.Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("token verification failed")
				common.RespondError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), id)))
		})
	}
}

// GetUserID extracts the authenticated uid from context.
func GetUserID(ctx context.Context) string {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return ""
	}
	return id.UID
}
