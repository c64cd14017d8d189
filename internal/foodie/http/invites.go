package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/service"
	"github.com/foodiehq/foodie/pkg/httpx"
	"github.com/foodiehq/foodie/pkg/idx"
	"github.com/foodiehq/foodie/pkg/slogx"
)

type mintResponse struct {
	InviteToken string    `json:"invite_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type inviteDetailsResponse struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	OrgType string `json:"org_type"`
	Name    string `json:"name"`
}

type memberResponse struct {
	ID          string `json:"id"`
	OrgID       string `json:"org_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// AdminInviteMintHandler lets a platform admin mint an org-admin invite for
// any organization, identified by the {id} path segment.
type AdminInviteMintHandler struct {
	InviteService *service.InviteService
	OrgType       domain.OrgType
}

func (h *AdminInviteMintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orgID, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound,
			"not_found", "Organization not found")
		return
	}

	mintInvite(w, r, h.InviteService, domain.AdminInviteKind(h.OrgType), orgID)
}

// OrgInviteMintHandler lets an org admin mint a staff invite for their own
// organization. The org is taken from the acting principal, never from the
// request.
type OrgInviteMintHandler struct {
	InviteService *service.InviteService
	OrgType       domain.OrgType
}

func (h *OrgInviteMintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok || principal.OrgID.IsZero() {
		writeUnauthorized(w)
		return
	}

	mintInvite(w, r, h.InviteService, domain.StaffInviteKind(h.OrgType), principal.OrgID)
}

func mintInvite(w http.ResponseWriter, r *http.Request, svc *service.InviteService, kind domain.InviteKind, orgID idx.ID) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email := r.URL.Query().Get("email")
	if email == "" {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "email is required")
		return
	}

	minted, err := svc.Mint(ctx, kind, orgID, email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMintRequest):
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_request", "Invalid invite request")
		case errors.Is(err, service.ErrOrgNotFound):
			httpx.WriteError(w, http.StatusNotFound,
				"not_found", "Organization not found")
		case errors.Is(err, service.ErrDuplicateMember):
			httpx.WriteError(w, http.StatusConflict,
				"conflict", "Email already belongs to this organization")
		default:
			log.Error("failed to mint invite", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError,
				"server_error", "Unable to process request")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mintResponse{
		InviteToken: minted.Token,
		ExpiresAt:   minted.ExpiresAt,
	})
}

// InviteDetailsHandler previews what accepting an invitation token would
// grant, without consuming it.
type InviteDetailsHandler struct {
	InviteService *service.InviteService
}

func (h *InviteDetailsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	details, err := h.InviteService.Inspect(ctx, r.URL.Query().Get("token"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInvite) {
			writeInvalidInvite(w)
			return
		}
		log.Error("failed to inspect invite", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Unable to process request")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, inviteDetailsResponse{
		Email:   details.Email,
		Role:    string(details.Role),
		OrgType: string(details.OrgType),
		Name:    details.OrgName,
	})
}

// InviteAcceptHandler redeems an invitation token, creating the org member it
// describes.
type InviteAcceptHandler struct {
	InviteService *service.InviteService
}

type acceptRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

func (h *InviteAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req acceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid JSON body")
		return
	}

	member, err := h.InviteService.Redeem(ctx, r.URL.Query().Get("token"), service.Profile{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInvite):
			writeInvalidInvite(w)
		case errors.Is(err, service.ErrWeakPassword):
			httpx.WriteError(w, http.StatusUnprocessableEntity,
				"weak_password", "Password must contain at least 6 non-whitespace characters")
		default:
			log.Error("failed to redeem invite", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError,
				"server_error", "Unable to process request")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, memberResponse{
		ID:          member.ID.String(),
		OrgID:       member.OrgID.String(),
		Email:       member.Email,
		Role:        string(member.Role),
		FirstName:   member.FirstName,
		LastName:    member.LastName,
		PhoneNumber: member.PhoneNumber,
	})
}

// writeInvalidInvite is the one body every invalid-invite path shares,
// whatever actually failed.
func writeInvalidInvite(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest,
		"invalid_invite", "Invite is invalid or expired")
}
