package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"rakta/internal/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// AuthLogin issues a session token for the configured admin account.
func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password required")
		return
	}
	if a.AdminEmail == "" || a.AdminPassword == "" {
		a.error(w, http.StatusServiceUnavailable, "not_configured", "admin account not configured")
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(a.AdminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(a.AdminPassword)) == 1
	if !emailOK || !passOK {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}

	token, err := middleware.SignJWT(a.JWTSecret, middleware.TokenClaims{
		Sub:      "admin",
		Email:    a.AdminEmail,
		Exp:      time.Now().Add(24 * time.Hour).Unix(),
		Issuer:   "rakta-api",
		Audience: "rakta-admin",
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}

	a.json(w, http.StatusOK, loginResponse{Token: token, Email: a.AdminEmail})
}
