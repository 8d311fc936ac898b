package middleware

import (
	"context"
	"net/http"

	"artifactvault/pkg/logger"
	"artifactvault/pkg/respond"
	"artifactvault/pkg/token"
)

type contextKey string

const ClaimKey contextKey = "identityClaim"

// ClaimFrom returns the identity claim attached by AuthMiddleware.
func ClaimFrom(ctx context.Context) (token.IdentityClaim, bool) {
	claim, ok := ctx.Value(ClaimKey).(token.IdentityClaim)
	return claim, ok
}

// AuthMiddleware guards a handler with the cookie-carried session token.
// The browser sends the token in an http-only cookie named "token"; there is
// no header fallback because the cookie is the only issuance channel.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "unauthorized: no token provided")
			return
		}

		claim, err := token.Verify(cookie.Value)
		if err != nil {
			logger.Sugar.Infof("Rejected token: %v", err)
			respond.Error(w, http.StatusUnauthorized, "unauthorized: invalid or expired token")
			return
		}

		// Add the decoded identity to context for the next handler
		ctx := context.WithValue(r.Context(), ClaimKey, claim)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
