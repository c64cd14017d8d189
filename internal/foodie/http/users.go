package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/foodiehq/foodie/internal/foodie/service"
	"github.com/foodiehq/foodie/pkg/httpx"
	"github.com/foodiehq/foodie/pkg/slogx"
)

// RegisterHandler signs up a new end user.
type RegisterHandler struct {
	AccountService *service.AccountService
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid JSON body")
		return
	}

	user, err := h.AccountService.Register(ctx, service.Registration{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRegistration):
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_request", "A valid email address is required")
		case errors.Is(err, service.ErrWeakPassword):
			httpx.WriteError(w, http.StatusUnprocessableEntity,
				"weak_password", "Password must contain at least 6 non-whitespace characters")
		case errors.Is(err, service.ErrDuplicateEmail):
			httpx.WriteError(w, http.StatusConflict,
				"conflict", "Email already registered")
		default:
			log.Error("failed to register user", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError,
				"server_error", "Unable to process request")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
	})
}
