package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/service"
	"github.com/foodiehq/foodie/pkg/httpx"
	"github.com/foodiehq/foodie/pkg/slogx"
)

type orgResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Kind    string `json:"kind,omitempty"`
}

type openHoursResponse struct {
	Day      string `json:"day"`
	OpenFrom string `json:"open_from"`
	OpenTo   string `json:"open_to"`
	Closed   bool   `json:"closed"`
}

type vendorResponse struct {
	orgResponse
	OpenHours []openHoursResponse `json:"open_hours"`
}

func toOrgResponse(o domain.Org) orgResponse {
	return orgResponse{
		ID:      o.ID.String(),
		Name:    o.Name,
		Address: o.Address,
		Kind:    string(o.Kind),
	}
}

func toOpenHoursResponses(hours []domain.OpenHours) []openHoursResponse {
	out := make([]openHoursResponse, 0, len(hours))
	for _, oh := range hours {
		out = append(out, openHoursResponse{
			Day:      string(oh.Day),
			OpenFrom: oh.OpenFrom,
			OpenTo:   oh.OpenTo,
			Closed:   oh.Closed,
		})
	}
	return out
}

// CreateVendorHandler registers a new vendor organization.
type CreateVendorHandler struct {
	PartnerService *service.PartnerService
}

type createVendorRequest struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Address string `json:"address"`
}

func (h *CreateVendorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req createVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid JSON body")
		return
	}

	org, err := h.PartnerService.CreateVendor(ctx, req.Name, domain.VendorKind(req.Kind), req.Address)
	if err != nil {
		writePartnerError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toOrgResponse(org))
}

// CreateCourierHandler registers a new courier organization.
type CreateCourierHandler struct {
	PartnerService *service.PartnerService
}

type createCourierRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (h *CreateCourierHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req createCourierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid JSON body")
		return
	}

	org, err := h.PartnerService.CreateCourier(ctx, req.Name, req.Address)
	if err != nil {
		writePartnerError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toOrgResponse(org))
}

func writePartnerError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPartner):
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid partner request")
	case errors.Is(err, service.ErrDuplicateOrg):
		httpx.WriteError(w, http.StatusConflict,
			"conflict", "Organization name already taken")
	default:
		log.Error("failed to create organization", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Unable to process request")
	}
}

// ListVendorsHandler returns every vendor with its weekly schedule.
type ListVendorsHandler struct {
	PartnerService *service.PartnerService
}

func (h *ListVendorsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	listings, err := h.PartnerService.ListVendors(ctx)
	if err != nil {
		log.Error("failed to list vendors", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Unable to process request")
		return
	}

	out := make([]vendorResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, vendorResponse{
			orgResponse: toOrgResponse(l.Org),
			OpenHours:   toOpenHoursResponses(l.Hours),
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// ListCouriersHandler returns every courier organization.
type ListCouriersHandler struct {
	PartnerService *service.PartnerService
}

func (h *ListCouriersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	orgs, err := h.PartnerService.ListCouriers(ctx)
	if err != nil {
		log.Error("failed to list couriers", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Unable to process request")
		return
	}

	out := make([]orgResponse, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, toOrgResponse(o))
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
