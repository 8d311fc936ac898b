package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"artifactvault/pkg/logger"
	"artifactvault/pkg/respond"
	"artifactvault/pkg/token"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func isProduction() bool {
	return os.Getenv("APP_ENV") == "production"
}

// sessionCookie builds the token cookie. In production the frontend is
// served from another origin, so the cookie must be Secure + SameSite=None;
// locally Lax keeps plain-http development working.
func sessionCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     "token",
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if isProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

// Login issues a session token for the posted identity and sets it as the
// http-only "token" cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var claim token.IdentityClaim
	if err := json.NewDecoder(r.Body).Decode(&claim); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	signed, err := token.Issue(claim)
	if errors.Is(err, token.ErrMissingEmail) {
		respond.Error(w, http.StatusBadRequest, "email is required")
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to issue token: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.SetCookie(w, sessionCookie(signed, int(token.TTL.Seconds())))
	respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout clears the client-side cookie. Tokens already issued stay valid
// until they expire; there is no server-side revocation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, sessionCookie("", -1))
	respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DebugCheckToken decodes the current token cookie and echoes the claim.
func (h *AuthHandler) DebugCheckToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("token")
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "unauthorized: no token provided")
		return
	}
	claim, err := token.Verify(cookie.Value)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "unauthorized: invalid or expired token")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "claim": claim})
}
