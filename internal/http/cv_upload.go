package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/brightpath-agency/brightpath/internal/service"
	"github.com/brightpath-agency/brightpath/pkg/httpx"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

// CVUploadHandler handles resume uploads to object storage.
type CVUploadHandler struct {
	ClientService *service.ClientService
}

type CVUploadResponse struct {
	ID         int64  `json:"id"`
	ClientID   int64  `json:"clientId"`
	FilePath   string `json:"filePath"`
	MimeType   string `json:"mimeType"`
	SizeBytes  int64  `json:"sizeBytes"`
	UploadedAt string `json:"uploadedAt"`
}

// HandleUpload handles PUT /v1/clients/{id}/cv
//
//	@Summary		Upload CV
//	@Description	Stores the raw request body as the client's resume. The previous CV stays in storage; the client record points at the newest upload.
//	@Tags			Clients
//	@Accept			octet-stream
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Client ID"
//	@Success		201	{object}	CVUploadResponse
//	@Failure		400	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		404	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, detail"
//	@Failure		503	{object}	httpx.ErrorResponse	"error, detail"
//	@Router			/v1/clients/{id}/cv [put].
func (h *CVUploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "client id must be a positive integer")
		return
	}

	rec, err := h.ClientService.UploadCV(ctx, id, r.Body, r.Header.Get("Content-Type"), r.ContentLength)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBlobStorageDisabled):
			httpx.WriteError(w, http.StatusServiceUnavailable, "storage_unavailable", "object storage is not configured")
		case errors.Is(err, service.ErrInvalidCVUpload):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_upload", "a non-empty body of at most 10 MiB with a Content-Length is required")
		case errors.Is(err, service.ErrClientNotFound):
			httpx.WriteError(w, http.StatusNotFound, "client_not_found", "client not found")
		default:
			log.Error("failed to upload cv", "error", err, "client_id", id)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to upload cv")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, CVUploadResponse{
		ID:         rec.ID,
		ClientID:   rec.ClientID,
		FilePath:   rec.FilePath,
		MimeType:   rec.MimeType,
		SizeBytes:  rec.SizeBytes,
		UploadedAt: rec.UploadedAt.Format(time.RFC3339),
	})
}
