package handlers

import (
	"log/slog"
	"net/http"

	"talkpress/internal/middleware"
	"talkpress/internal/store"
	"talkpress/internal/token"
)

// Auth groups the authentication HTTP handlers. It exchanges credentials
// for bearer tokens; credential storage on the client side is out of
// scope here.
type Auth struct {
	tokens    *token.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(tokens *token.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		tokens:    tokens,
		userStore: userStore,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  userBrief `json:"user"`
}

type userBrief struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Avatar      *string `json:"avatar,omitempty"`
	Slug        *string `json:"slug,omitempty"`
}

// Login exchanges email and password for a bearer token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body.")
		return
	}

	user, err := a.userStore.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	// Same response for unknown email and wrong password.
	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	tok, err := a.tokens.Issue(r.Context(), &token.Principal{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Avatar:      user.AvatarURL,
	})
	if err != nil {
		slog.Error("token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: tok,
		User: userBrief{
			ID:          user.ID.String(),
			DisplayName: user.DisplayName,
			Avatar:      user.AvatarURL,
			Slug:        user.ProfileSlug,
		},
	})
}

// Logout revokes the presented bearer token. Requires authentication.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	tok := middleware.BearerFromCtx(r.Context())
	if err := a.tokens.Revoke(r.Context(), tok); err != nil {
		slog.Error("token revoke failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
