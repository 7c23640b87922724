package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/merchspace/storefront/pkg/httputil"
	"github.com/merchspace/storefront/pkg/validator"

	"github.com/merchspace/storefront/internal/auth"
)

// AuthHandler handles registration, login, logout, and the current-user
// endpoint.
type AuthHandler struct {
	service *auth.Service
	codec   *auth.CookieCodec
	logger  *slog.Logger
}

// NewAuthHandler creates an auth HTTP handler.
func NewAuthHandler(svc *auth.Service, codec *auth.CookieCodec, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, codec: codec, logger: logger}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var creds auth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validator.Validate(creds); err != nil {
		httputil.WriteValidationError(w, err, "")
		return
	}

	user, sess, err := h.service.Register(r.Context(), creds)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.codec.SetCookie(w, sess.ID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var creds auth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validator.Validate(creds); err != nil {
		httputil.WriteValidationError(w, err, "")
		return
	}

	user, sess, err := h.service.Login(r.Context(), creds)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.codec.SetCookie(w, sess.ID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := auth.SessionIDFromContext(r.Context())
	if err := h.service.Logout(r.Context(), sessionID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.codec.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// CurrentUser handles GET /api/user
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.WriteMessage(w, http.StatusUnauthorized, "Not logged in")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}
