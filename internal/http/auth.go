package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightpath-agency/brightpath/internal/service"
	"github.com/brightpath-agency/brightpath/pkg/httpx"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

// AuthHandler handles account registration and login.
type AuthHandler struct {
	AuthService *service.AuthService
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type RegisterResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	User        RegisterResponse `json:"user"`
}

// HandleRegister handles POST /v1/auth/register
//
//	@Summary		Register Account
//	@Description	Creates a user account. Role defaults to "user"; recruiter and admin accounts are provisioned by operators.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Registration request"
//	@Success		201		{object}	RegisterResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		409		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, detail"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON in request body")
		return
	}

	u, err := h.AuthService.Register(ctx, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRegistration):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email and a password of at least 8 characters are required")
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteError(w, http.StatusConflict, "email_taken", "email is already registered")
		default:
			log.Error("failed to register user", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to register")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, RegisterResponse{ID: u.ID, Email: u.Email, Role: u.Role})
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Login
//	@Description	Verifies credentials and returns a bearer access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Login request"
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		401		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, detail"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON in request body")
		return
	}

	raw, u, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		log.Error("failed to log in user", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to log in")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		AccessToken: raw,
		TokenType:   "Bearer",
		User:        RegisterResponse{ID: u.ID, Email: u.Email, Role: u.Role},
	})
}
