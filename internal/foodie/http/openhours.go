package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/service"
	"github.com/foodiehq/foodie/internal/foodie/store"
	"github.com/foodiehq/foodie/pkg/httpx"
	"github.com/foodiehq/foodie/pkg/slogx"
)

// UpdateOpenHoursHandler updates one day of the acting vendor admin's
// schedule and returns the resulting week.
type UpdateOpenHoursHandler struct {
	PartnerService *service.PartnerService
}

type openHoursPatchRequest struct {
	OpenFrom *string `json:"open_from"`
	OpenTo   *string `json:"open_to"`
	Closed   *bool   `json:"closed"`
}

func (h *UpdateOpenHoursHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := PrincipalFromContext(ctx)
	if !ok || principal.OrgID.IsZero() {
		writeUnauthorized(w)
		return
	}

	day, ok := domain.ParseWeekday(r.PathValue("day"))
	if !ok {
		httpx.WriteError(w, http.StatusUnprocessableEntity,
			"invalid_day", "Day must be a lowercase weekday name")
		return
	}

	var req openHoursPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid JSON body")
		return
	}

	week, err := h.PartnerService.UpdateOpenHours(ctx, principal.OrgID, day, service.OpenHoursPatch{
		OpenFrom: req.OpenFrom,
		OpenTo:   req.OpenTo,
		Closed:   req.Closed,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidHours):
			httpx.WriteError(w, http.StatusUnprocessableEntity,
				"invalid_hours", "open_from must be before open_to")
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound,
				"not_found", "No schedule entry for this day")
		default:
			log.Error("failed to update open hours", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError,
				"server_error", "Unable to process request")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOpenHoursResponses(week))
}
