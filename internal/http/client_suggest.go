package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightpath-agency/brightpath/internal/service"
	"github.com/brightpath-agency/brightpath/pkg/httpx"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

// SuggestHandler handles suggesting a client to a company.
type SuggestHandler struct {
	LifecycleService *service.LifecycleService
}

type SuggestRequest struct {
	CompanyID int64 `json:"companyId"`
}

type SuggestResponse struct {
	Assignment AssignmentResponse `json:"assignment"`
	Client     ClientResponse     `json:"client"`
}

// HandleSuggest handles POST /v1/clients/{id}/suggest
//
//	@Summary		Suggest Client to Company
//	@Description	Atomically records a suggestion. A pending or in-progress client advances to suggested in the same transaction; suggesting the same pair twice is a conflict. The company is emailed asynchronously with a scoped share link.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int				true	"Client ID"
//	@Param			request	body		SuggestRequest	true	"Target company"
//	@Success		201		{object}	SuggestResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		401		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		403		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		404		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		409		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, detail"
//	@Router			/v1/clients/{id}/suggest [post].
func (h *SuggestHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := httpx.AuthUserFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	clientID, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "client id must be a positive integer")
		return
	}

	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON in request body")
		return
	}
	if req.CompanyID <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "companyId must be a positive integer")
		return
	}

	assignment, client, err := h.LifecycleService.Suggest(ctx, clientID, req.CompanyID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReferrerNotFound):
			httpx.WriteError(w, http.StatusForbidden, "forbidden", "acting user not found")
		case errors.Is(err, service.ErrClientNotFound):
			httpx.WriteError(w, http.StatusNotFound, "client_not_found", "client not found")
		case errors.Is(err, service.ErrCompanyNotFound):
			httpx.WriteError(w, http.StatusNotFound, "company_not_found", "company not found")
		case errors.Is(err, service.ErrAlreadySuggested):
			httpx.WriteError(w, http.StatusConflict, "already_suggested", "client has already been suggested to this company")
		default:
			log.Error("failed to suggest client", "error", err,
				"client_id", clientID, "company_id", req.CompanyID)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to suggest client")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, SuggestResponse{
		Assignment: toAssignmentResponse(assignment),
		Client:     toClientResponse(client),
	})
}
