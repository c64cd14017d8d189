package http

import (
	"errors"
	"net/http"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/service"
	"github.com/foodiehq/foodie/pkg/httpx"
	"github.com/foodiehq/foodie/pkg/slogx"
)

// AuthHandler exchanges an email/password form for a bearer credential. One
// handler instance per scope; the route decides which partition the
// credentials are checked against.
type AuthHandler struct {
	SessionService *service.SessionService
	Scope          domain.Scope
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Malformed form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		// Same body as a wrong password; missing fields reveal nothing.
		writeUnauthorized(w)
		return
	}

	session, err := h.SessionService.Authenticate(ctx, h.Scope, username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeUnauthorized(w)
			return
		}
		log.Error("authentication failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Unable to process request")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(session.ExpiresIn.Seconds()),
	})
}
