package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightpath-agency/brightpath/internal/domain"
	"github.com/brightpath-agency/brightpath/internal/service"
	"github.com/brightpath-agency/brightpath/pkg/httpx"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

// StatusHandler handles pipeline status changes.
type StatusHandler struct {
	LifecycleService *service.LifecycleService
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// HandleChangeStatus handles PATCH /v1/clients/{id}/status
//
//	@Summary		Change Client Status
//	@Description	Moves a client through the recruitment pipeline. Spelling is forgiving: case, underscores, and hyphens are normalized. Setting the current status again is a no-op.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int					true	"Client ID"
//	@Param			request	body		ChangeStatusRequest	true	"New status"
//	@Success		200		{object}	ClientResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		401		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		403		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		404		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, detail"
//	@Router			/v1/clients/{id}/status [patch].
func (h *StatusHandler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "client id must be a positive integer")
		return
	}

	var req ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON in request body")
		return
	}

	c, err := h.LifecycleService.ChangeStatus(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownStatus):
			httpx.WriteError(w, http.StatusBadRequest, "unknown_status", "unknown status value")
		case errors.Is(err, service.ErrClientNotFound):
			httpx.WriteError(w, http.StatusNotFound, "client_not_found", "client not found")
		default:
			log.Error("failed to change client status", "error", err, "client_id", id)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to change status")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toClientResponse(c))
}
