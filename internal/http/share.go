package http

import (
	"errors"
	"net/http"

	"github.com/brightpath-agency/brightpath/internal/service"
	"github.com/brightpath-agency/brightpath/pkg/httpx"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

// ShareHandler serves the token-guarded public read of a client profile.
// No session is involved; the token in the query string is the entire
// authorization.
type ShareHandler struct {
	ShareService *service.ShareService
}

// HandleView handles GET /share/clients/{id}
//
//	@Summary		Shared Client View
//	@Description	Returns a redacted client profile for the holder of a valid share credential. The credential expires on its own and is revoked early by deleting the assignment it references.
//	@Tags			Share
//	@Produce		json
//	@Param			id		path		int		true	"Client ID"
//	@Param			token	query		string	true	"Share credential"
//	@Success		200		{object}	service.ShareView
//	@Failure		400		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		401		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		403		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		404		{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, detail"
//	@Router			/share/clients/{id} [get].
func (h *ShareHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "client id must be a positive integer")
		return
	}

	raw := r.URL.Query().Get("token")
	if raw == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing_token", "a share token is required")
		return
	}

	view, err := h.ShareService.View(ctx, id, raw)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShareTokenInvalid):
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "share token is invalid or expired")
		case errors.Is(err, service.ErrShareScopeMismatch):
			httpx.WriteError(w, http.StatusForbidden, "forbidden", "share token is not valid for this client")
		case errors.Is(err, service.ErrShareTokenWrongType):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_token_type", "token is not a share credential")
		case errors.Is(err, service.ErrShareAssignmentGone), errors.Is(err, service.ErrClientNotFound):
			httpx.WriteError(w, http.StatusNotFound, "not_found", "this share link is no longer available")
		default:
			log.Error("failed to serve share view", "error", err, "client_id", id)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to load shared profile")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, view)
}
