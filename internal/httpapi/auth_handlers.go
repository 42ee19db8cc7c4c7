package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"villorya.app/internal/auth"
	"villorya.app/internal/obs"
	"villorya.app/internal/store"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the shape the console persists: a success flag, the opaque
// bearer token and the user profile, all in one document.
type loginResponse struct {
	Success   bool          `json:"success"`
	Token     string        `json:"token"`
	User      auth.Identity `json:"user"`
	ExpiresAt time.Time     `json:"expires_at"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := a.store.Users(r.Context()).FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			obs.ObserveLogin("rejected")
			writeError(w, r, http.StatusUnauthorized, "invalid credentials")
			return
		}
		obs.ObserveLogin("error")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if user.Status != "active" {
		obs.ObserveLogin("rejected")
		writeError(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		obs.ObserveLogin("rejected")
		writeError(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, expiresAt, err := a.tokens.Generate(user.Identity())
	if err != nil {
		obs.ObserveLogin("error")
		writeError(w, r, http.StatusInternalServerError, "token generation failed")
		return
	}

	obs.ObserveLogin("success")
	writeJSON(w, http.StatusOK, loginResponse{
		Success:   true,
		Token:     token,
		User:      user.Identity(),
		ExpiresAt: expiresAt,
	})
}
