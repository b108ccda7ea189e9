package storefront

import (
	"log/slog"
	"net/http"

	"github.com/nordvik/wardrobe/internal/domain"
	"github.com/nordvik/wardrobe/internal/handler"
	"github.com/nordvik/wardrobe/internal/identity"
	"github.com/nordvik/wardrobe/internal/session"
	"github.com/nordvik/wardrobe/internal/telemetry"
)

// AuthHandler handles storefront sign-in and sign-out.
type AuthHandler struct {
	sessions *session.Manager
	provider identity.Provider
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger
	secure   bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(sessions *session.Manager, provider identity.Provider, metrics *telemetry.BusinessMetrics, logger *slog.Logger, secure bool) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		provider: provider,
		metrics:  metrics,
		logger:   logger,
		secure:   secure,
	}
}

// Login handles POST /auth/login. A provider rejection leaves the session's
// user unchanged.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, err := h.provider.SignIn(r.Context(), req.Email, req.Name)
	if err != nil {
		h.metrics.SignInFailed.Inc()
		h.logger.Warn("sign-in failed", "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	sessionID := GetSessionIDFromCookie(r)
	s, id, err := h.sessions.GetOrCreate(r.Context(), sessionID)
	if err != nil {
		handler.ErrorResponse(w, r, domain.Internal(err, "auth.login", "failed to create session"))
		return
	}
	if id != sessionID {
		SetSessionCookie(w, id, h.secure)
	}

	s.SignIn(r.Context(), *user)
	h.metrics.SignIns.Inc()

	handler.JSON(w, http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

// Logout handles POST /auth/logout. The cart survives sign-out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := GetSessionIDFromCookie(r)

	if s, ok := h.sessions.Get(r.Context(), sessionID); ok {
		s.SignOut(r.Context())
		h.metrics.SignOuts.Inc()
	}

	handler.JSON(w, http.StatusOK, map[string]interface{}{
		"user": nil,
	})
}
