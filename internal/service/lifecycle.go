package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/brightpath-agency/brightpath/internal/domain"
	"github.com/brightpath-agency/brightpath/internal/notify"
	"github.com/brightpath-agency/brightpath/internal/store"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrReferrerNotFound = errors.New("referring user not found")
	ErrAlreadySuggested = errors.New("client already suggested to this company")
)

// LifecycleService owns the client status state machine and the suggestion
// workflow. It is the single writer of a client's status; notifications are
// dispatched detached after the transaction commits and never affect it.
type LifecycleService struct {
	Store    store.Store
	Notifier *notify.Notifier
}

// ChangeStatus moves a client to a new pipeline status.
//
// Setting the current status again is a no-op: no row update, no
// notification, success returned. Anything else is updated and re-read in a
// single transaction, then the client is emailed about the move.
func (s *LifecycleService) ChangeStatus(ctx context.Context, clientID int64, rawStatus string) (domain.Client, error) {
	log := slogx.FromContext(ctx)

	// 1. Canonicalize and validate the requested status.
	newStatus, err := domain.CanonicalStatus(rawStatus)
	if err != nil {
		log.Warn("status change rejected, unknown status",
			slog.Int64("client_id", clientID),
			slog.String("status", rawStatus))
		return domain.Client{}, err
	}

	// 2. Resolve the client row.
	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrClientNotFound
		}
		log.Error("failed to fetch client", slog.Any("error", err))
		return domain.Client{}, err
	}

	// 3. Idempotence: same canonical status means nothing to do.
	oldStatus := client.Status
	if oldStatus == newStatus {
		log.Debug("status unchanged, no-op",
			slog.Int64("client_id", clientID),
			slog.String("status", string(newStatus)))
		return client, nil
	}

	// 4. Update and re-read within one transaction.
	var updated domain.Client
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clients().UpdateClientStatus(ctx, clientID, newStatus); err != nil {
			return err
		}
		updated, err = tx.Clients().GetClientByID(ctx, clientID)
		return err
	})
	if err != nil {
		log.Error("status change transaction failed",
			slog.Int64("client_id", clientID),
			slog.Any("error", err))
		return domain.Client{}, err
	}

	log.Info("client status changed",
		slog.Int64("client_id", clientID),
		slog.String("old_status", string(oldStatus)),
		slog.String("new_status", string(newStatus)))

	// 5. Notify the client, detached; a delivery failure is logged by the
	// dispatcher and can no longer roll anything back.
	s.Notifier.Dispatch(ctx, "status-changed", func(ctx context.Context) error {
		return s.Notifier.StatusChanged(ctx, updated, oldStatus, newStatus)
	})

	return updated, nil
}

// Suggest atomically records that a recruiter suggested a client to a
// company. A pending or in-progress client advances to suggested in the same
// transaction; a duplicate (client, company) pair is a conflict, never an
// overwrite.
func (s *LifecycleService) Suggest(ctx context.Context, clientID, companyID, referrerID int64) (domain.Assignment, domain.Client, error) {
	log := slogx.FromContext(ctx)

	// 1. The referring user must exist.
	if _, err := s.Store.Users().GetUserByID(ctx, referrerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("suggestion by unknown user", slog.Int64("user_id", referrerID))
			return domain.Assignment{}, domain.Client{}, ErrReferrerNotFound
		}
		log.Error("failed to fetch referring user", slog.Any("error", err))
		return domain.Assignment{}, domain.Client{}, err
	}

	// 2. Client and company must both exist.
	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Assignment{}, domain.Client{}, ErrClientNotFound
		}
		log.Error("failed to fetch client", slog.Any("error", err))
		return domain.Assignment{}, domain.Client{}, err
	}
	company, err := s.Store.Companies().GetCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Assignment{}, domain.Client{}, ErrCompanyNotFound
		}
		log.Error("failed to fetch company", slog.Any("error", err))
		return domain.Assignment{}, domain.Client{}, err
	}

	// 3. One atomic unit: duplicate check, optional status advance,
	// assignment insert. The UNIQUE(client_id, company_id) constraint backs
	// the pre-check so a concurrent duplicate loses fast.
	var assignment domain.Assignment
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Assignments().GetAssignmentByPair(ctx, clientID, companyID)
		if err == nil {
			return ErrAlreadySuggested
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if client.Status == domain.StatusPending || client.Status == domain.StatusInProgress {
			if err := tx.Clients().UpdateClientStatus(ctx, clientID, domain.StatusSuggested); err != nil {
				return err
			}
			client, err = tx.Clients().GetClientByID(ctx, clientID)
			if err != nil {
				return err
			}
		}

		id, err := tx.Assignments().CreateAssignment(ctx, domain.Assignment{
			ClientID:   clientID,
			CompanyID:  companyID,
			AssignedBy: referrerID,
			Status:     domain.StatusSuggested,
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadySuggested
			}
			return err
		}

		assignment, err = tx.Assignments().GetAssignmentForClient(ctx, id, clientID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrAlreadySuggested) {
			log.Warn("duplicate suggestion rejected",
				slog.Int64("client_id", clientID),
				slog.Int64("company_id", companyID))
			return domain.Assignment{}, domain.Client{}, err
		}
		log.Error("suggestion transaction failed",
			slog.Int64("client_id", clientID),
			slog.Int64("company_id", companyID),
			slog.Any("error", err))
		return domain.Assignment{}, domain.Client{}, err
	}

	log.Info("client suggested to company",
		slog.Int64("client_id", clientID),
		slog.Int64("company_id", companyID),
		slog.Int64("assignment_id", assignment.ID),
		slog.Int64("assigned_by", referrerID))

	// 4. Notify the company, detached: resolve the CV link, mint a share
	// credential scoped to this assignment, send the mail. The committed
	// transaction is already out of reach of any failure here.
	s.Notifier.Dispatch(ctx, "candidate-suggested", func(ctx context.Context) error {
		return s.Notifier.CandidateSuggested(ctx, client, company, assignment)
	})

	return assignment, client, nil
}
