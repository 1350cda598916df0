package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/brightpath-agency/brightpath/internal/blob"
	"github.com/brightpath-agency/brightpath/internal/domain"
	"github.com/brightpath-agency/brightpath/internal/store"
	"github.com/brightpath-agency/brightpath/internal/token"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

var (
	ErrShareTokenInvalid   = errors.New("share link is invalid or expired")
	ErrShareTokenWrongType = errors.New("credential is not a client share token")
	ErrShareScopeMismatch  = errors.New("credential does not match the requested resource")
	ErrShareAssignmentGone = errors.New("assignment no longer exists")
)

// SharedClient is the redacted projection returned to external companies.
// Internal linkage fields (owning account, CV storage key) are withheld.
type SharedClient struct {
	ID            int64         `json:"id"`
	FullName      string        `json:"fullName"`
	Email         string        `json:"email"`
	PhoneNumber   string        `json:"phoneNumber"`
	Location      string        `json:"location"`
	Skills        string        `json:"skills"`
	PreferredRole string        `json:"preferredRole"`
	Education     string        `json:"education"`
	LinkedinURL   string        `json:"linkedinUrl"`
	Experience    string        `json:"experience"`
	Status        domain.Status `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type SharedAssignment struct {
	ID         int64         `json:"id"`
	Status     domain.Status `json:"status"`
	AssignedAt time.Time     `json:"assignedAt"`
}

// ShareView is the full share-read response.
type ShareView struct {
	Client         SharedClient     `json:"client"`
	Assignment     SharedAssignment `json:"assignment"`
	CV             blob.Link        `json:"cv"`
	TokenExpiresAt time.Time        `json:"tokenExpiresAt"`
}

// ShareService validates inbound share credentials against the live
// assignment record. The token is the entire authorization: no session or
// account is involved, so every check fails closed.
type ShareService struct {
	Store    store.Store
	Codec    *token.Codec
	Resolver *blob.Resolver
}

// View authorizes and builds the shared read of a client profile.
//
// The credential must verify, must be scoped to the requested client, must
// carry the client-share discriminator, and must reference an assignment
// that still exists; deleting the assignment revokes outstanding links
// before they expire. A company claim, when present, must match the
// assignment.
func (s *ShareService) View(ctx context.Context, clientID int64, rawToken string) (ShareView, error) {
	log := slogx.FromContext(ctx)

	// 1. Signature and expiry. Pure check, no database involved.
	claims, err := s.Codec.Verify(rawToken)
	if err != nil {
		log.Warn("share read with invalid token", slog.Int64("client_id", clientID))
		return ShareView{}, ErrShareTokenInvalid
	}

	// 2. The credential authorizes exactly one client.
	if claims.ClientID != clientID {
		log.Warn("share token scoped to different client",
			slog.Int64("path_client_id", clientID),
			slog.Int64("token_client_id", claims.ClientID))
		return ShareView{}, ErrShareScopeMismatch
	}

	// 3. Type discriminator, if present, must match.
	if claims.Type != "" && claims.Type != token.TypeClientShare {
		return ShareView{}, ErrShareTokenWrongType
	}

	// 4. The assignment row must still exist for this client.
	assignment, err := s.Store.Assignments().GetAssignmentForClient(ctx, claims.AssignmentID, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("share read against revoked assignment",
				slog.Int64("client_id", clientID),
				slog.Int64("assignment_id", claims.AssignmentID))
			return ShareView{}, ErrShareAssignmentGone
		}
		log.Error("failed to fetch assignment", slog.Any("error", err))
		return ShareView{}, err
	}

	// 5. A company claim binds the credential to that company's assignment.
	if claims.CompanyID != 0 && claims.CompanyID != assignment.CompanyID {
		log.Warn("share token scoped to different company",
			slog.Int64("assignment_company_id", assignment.CompanyID),
			slog.Int64("token_company_id", claims.CompanyID))
		return ShareView{}, ErrShareScopeMismatch
	}

	// 6. Load and project the client.
	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ShareView{}, ErrClientNotFound
		}
		log.Error("failed to fetch client", slog.Any("error", err))
		return ShareView{}, err
	}

	var cv blob.Link
	if client.CVFilePath != "" {
		cv, err = s.Resolver.Resolve(ctx, client.CVFilePath)
		if err != nil {
			// The profile is still viewable without the CV link.
			log.Error("failed to resolve cv for share view",
				slog.Int64("client_id", clientID),
				slog.Any("error", err))
			cv = blob.Link{}
		}
	}

	return ShareView{
		Client: SharedClient{
			ID:            client.ID,
			FullName:      client.FullName,
			Email:         client.Email,
			PhoneNumber:   client.PhoneNumber,
			Location:      client.Location,
			Skills:        client.Skills,
			PreferredRole: client.PreferredRole,
			Education:     client.Education,
			LinkedinURL:   client.LinkedinURL,
			Experience:    client.Experience,
			Status:        client.Status,
			CreatedAt:     client.CreatedAt,
		},
		Assignment: SharedAssignment{
			ID:         assignment.ID,
			Status:     assignment.Status,
			AssignedAt: assignment.AssignedAt,
		},
		CV:             cv,
		TokenExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
