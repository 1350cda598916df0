package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightpath-agency/brightpath/internal/service"
	"github.com/brightpath-agency/brightpath/pkg/httpx"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

// CompaniesHandler handles hiring-organization CRUD.
type CompaniesHandler struct {
	CompanyService *service.CompanyService
}

type CreateCompanyRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	PhoneNumber   string   `json:"phoneNumber,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	WorkforceSize string   `json:"workforceSize,omitempty"`
	Location      string   `json:"location,omitempty"`
	Roles         []string `json:"roles,omitempty"`
	Specification string   `json:"specification,omitempty"`
}

type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// HandleCreate handles POST /v1/companies
//
//	@Summary		Create Company
//	@Description	Registers a hiring organization that clients can be suggested to.
//	@Tags			Companies
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateCompanyRequest	true	"Company details"
//	@Success		201		{object}	CompanyResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		401		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		403		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, detail"
//	@Router			/v1/companies [post].
func (h *CompaniesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON in request body")
		return
	}

	c, err := h.CompanyService.CreateCompany(ctx, service.CreateCompanyInput{
		Name:          req.Name,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Industry:      req.Industry,
		WorkforceSize: req.WorkforceSize,
		Location:      req.Location,
		Roles:         req.Roles,
		Specification: req.Specification,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCompanyInput) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "company name is required")
			return
		}
		log.Error("failed to create company", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to create company")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toCompanyResponse(c))
}

// HandleGet handles GET /v1/companies/{id}
//
//	@Summary		Get Company
//	@Description	Returns a single company by id.
//	@Tags			Companies
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Company ID"
//	@Success		200	{object}	CompanyResponse
//	@Failure		400	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		404	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, detail"
//	@Router			/v1/companies/{id} [get].
func (h *CompaniesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "company id must be a positive integer")
		return
	}

	c, err := h.CompanyService.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "company_not_found", "company not found")
			return
		}
		log.Error("failed to fetch company", "error", err, "company_id", id)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to fetch company")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCompanyResponse(c))
}

// HandleList handles GET /v1/companies
//
//	@Summary		List Companies
//	@Description	Returns all registered companies.
//	@Tags			Companies
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	ListCompaniesResponse
//	@Failure		401	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, detail"
//	@Router			/v1/companies [get].
func (h *CompaniesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	companies, err := h.CompanyService.ListCompanies(ctx)
	if err != nil {
		log.Error("failed to list companies", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to list companies")
		return
	}

	out := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		out[i] = toCompanyResponse(c)
	}
	httpx.WriteJSON(w, http.StatusOK, ListCompaniesResponse{Companies: out})
}
