package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightpath-agency/brightpath/internal/service"
	"github.com/brightpath-agency/brightpath/pkg/httpx"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

// ClientsHandler handles candidate profile CRUD.
type ClientsHandler struct {
	ClientService *service.ClientService
}

type CreateClientRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	Location      string `json:"location,omitempty"`
	Skills        string `json:"skills,omitempty"`
	PreferredRole string `json:"preferredRole,omitempty"`
	Education     string `json:"education,omitempty"`
	LinkedinURL   string `json:"linkedinUrl,omitempty"`
	Experience    string `json:"experience,omitempty"`
}

type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// HandleCreate handles POST /v1/clients
//
//	@Summary		Create Client Profile
//	@Description	Registers the acting account's candidate profile. Each account owns at most one profile.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateClientRequest	true	"Client intake form"
//	@Success		201		{object}	ClientResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		401		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		409		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, detail"
//	@Router			/v1/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := httpx.AuthUserFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON in request body")
		return
	}

	c, err := h.ClientService.CreateClient(ctx, user.ID, service.CreateClientInput{
		FullName:      req.FullName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Location:      req.Location,
		Skills:        req.Skills,
		PreferredRole: req.PreferredRole,
		Education:     req.Education,
		LinkedinURL:   req.LinkedinURL,
		Experience:    req.Experience,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClientInput):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "full name is required")
		case errors.Is(err, service.ErrClientExists):
			httpx.WriteError(w, http.StatusConflict, "client_exists", "this account already has a client profile")
		default:
			log.Error("failed to create client", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to create client")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toClientResponse(c))
}

// HandleGet handles GET /v1/clients/{id}
//
//	@Summary		Get Client
//	@Description	Returns a single client profile by id.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Client ID"
//	@Success		200	{object}	ClientResponse
//	@Failure		400	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		404	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, detail"
//	@Router			/v1/clients/{id} [get].
func (h *ClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "client id must be a positive integer")
		return
	}

	c, err := h.ClientService.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "client_not_found", "client not found")
			return
		}
		log.Error("failed to fetch client", "error", err, "client_id", id)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to fetch client")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toClientResponse(c))
}

// HandleList handles GET /v1/clients
//
//	@Summary		List Clients
//	@Description	Returns all client profiles, newest first.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	ListClientsResponse
//	@Failure		401	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		403	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, detail"
//	@Router			/v1/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	clients, err := h.ClientService.ListClients(ctx)
	if err != nil {
		log.Error("failed to list clients", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to list clients")
		return
	}

	out := make([]ClientResponse, len(clients))
	for i, c := range clients {
		out[i] = toClientResponse(c)
	}
	httpx.WriteJSON(w, http.StatusOK, ListClientsResponse{Clients: out})
}

// HandleDelete handles DELETE /v1/clients/{id}
//
//	@Summary		Delete Client
//	@Description	Removes a client profile. Assignments and CV records cascade, which also revokes outstanding share links.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Client ID"
//	@Success		204	"Client deleted"
//	@Failure		400	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		403	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		404	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, detail"
//	@Router			/v1/clients/{id} [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "client id must be a positive integer")
		return
	}

	if err := h.ClientService.DeleteClient(ctx, id); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "client_not_found", "client not found")
			return
		}
		log.Error("failed to delete client", "error", err, "client_id", id)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to delete client")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
