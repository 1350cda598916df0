package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/brightpath-agency/brightpath/internal/blob"
	"github.com/brightpath-agency/brightpath/internal/domain"
	"github.com/brightpath-agency/brightpath/internal/store"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

var (
	ErrClientExists        = errors.New("account already has a client profile")
	ErrInvalidClientInput  = errors.New("invalid client profile")
	ErrInvalidCVUpload     = errors.New("invalid cv upload")
	ErrBlobStorageDisabled = errors.New("object storage is not configured")
)

// maxCVSizeBytes caps resume uploads.
const maxCVSizeBytes = 10 << 20 // 10 MiB

// Uploader stores a CV object. Satisfied by *blob.S3Store.
type Uploader interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
}

// ClientService owns candidate profile CRUD and CV uploads. Status is not
// touched here after creation; that belongs to the LifecycleService.
type ClientService struct {
	Store    store.Store
	Uploader Uploader // nil when object storage is not configured
}

// CreateClientInput carries the intake form fields.
type CreateClientInput struct {
	FullName      string
	Email         string
	PhoneNumber   string
	Location      string
	Skills        string
	PreferredRole string
	Education     string
	LinkedinURL   string
	Experience    string
}

// CreateClient registers the acting account's candidate profile. Each
// account owns at most one; a second attempt is a conflict.
func (s *ClientService) CreateClient(ctx context.Context, userID int64, in CreateClientInput) (domain.Client, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(in.FullName) == "" {
		return domain.Client{}, ErrInvalidClientInput
	}

	c := domain.Client{
		UserID:        userID,
		FullName:      strings.TrimSpace(in.FullName),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		PhoneNumber:   in.PhoneNumber,
		Location:      in.Location,
		Skills:        in.Skills,
		PreferredRole: in.PreferredRole,
		Education:     in.Education,
		LinkedinURL:   in.LinkedinURL,
		Experience:    in.Experience,
		Status:        domain.StatusPending,
	}

	id, err := s.Store.Clients().CreateClient(ctx, c)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Client{}, ErrClientExists
		}
		log.Error("failed to create client", slog.Any("error", err))
		return domain.Client{}, err
	}

	created, err := s.Store.Clients().GetClientByID(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	log.Info("client profile created",
		slog.Int64("client_id", created.ID),
		slog.Int64("user_id", userID))
	return created, nil
}

func (s *ClientService) GetClient(ctx context.Context, clientID int64) (domain.Client, error) {
	c, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrClientNotFound
		}
		return domain.Client{}, err
	}
	return c, nil
}

func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx)
}

// DeleteClient removes a client administratively. Dependent assignments and
// CV rows cascade at the storage layer, which also revokes any outstanding
// share links for those assignments.
func (s *ClientService) DeleteClient(ctx context.Context, clientID int64) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Clients().DeleteClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		}
		log.Error("failed to delete client", slog.Any("error", err))
		return err
	}

	log.Info("client deleted", slog.Int64("client_id", clientID))
	return nil
}

// UploadCV streams a resume to object storage, records its metadata row and
// points the client's cv_file_path at the new key, keeping the invariant
// that the path always names the most recent artifact.
func (s *ClientService) UploadCV(ctx context.Context, clientID int64, body io.Reader, contentType string, size int64) (domain.CVFile, error) {
	log := slogx.FromContext(ctx)

	if s.Uploader == nil {
		return domain.CVFile{}, ErrBlobStorageDisabled
	}
	if size <= 0 || size > maxCVSizeBytes {
		return domain.CVFile{}, ErrInvalidCVUpload
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := s.Store.Clients().GetClientByID(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.CVFile{}, ErrClientNotFound
		}
		return domain.CVFile{}, err
	}

	key := blob.NewStorageKey(clientID)
	if err := s.Uploader.Put(ctx, key, body, contentType, size); err != nil {
		log.Error("cv upload to object storage failed",
			slog.Int64("client_id", clientID),
			slog.Any("error", err))
		return domain.CVFile{}, err
	}

	// The object is stored; record it and repoint the client atomically.
	var rec domain.CVFile
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.CVFiles().CreateCVFile(ctx, domain.CVFile{
			ClientID:  clientID,
			FilePath:  key,
			MimeType:  contentType,
			SizeBytes: size,
		}); err != nil {
			return err
		}
		if err := tx.Clients().UpdateClientCVPath(ctx, clientID, key); err != nil {
			return err
		}
		var err error
		rec, err = tx.CVFiles().GetLatestCVFileForClient(ctx, clientID)
		return err
	})
	if err != nil {
		log.Error("cv metadata transaction failed",
			slog.Int64("client_id", clientID),
			slog.Any("error", err))
		return domain.CVFile{}, err
	}

	log.Info("cv uploaded",
		slog.Int64("client_id", clientID),
		slog.String("key", key),
		slog.Int64("size_bytes", size))
	return rec, nil
}
