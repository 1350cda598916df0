// Package notify formats and sends transactional email for lifecycle
// events. Delivery is best-effort: failures are logged by the dispatcher and
// never reach the caller of the primary operation.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/brightpath-agency/brightpath/internal/blob"
	"github.com/brightpath-agency/brightpath/internal/domain"
	"github.com/brightpath-agency/brightpath/internal/mail"
	"github.com/brightpath-agency/brightpath/internal/token"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

// dispatchTimeout bounds a single detached notification, covering the mail
// transport and any signed-URL call it needs.
const dispatchTimeout = 30 * time.Second

// Transport delivers a rendered message. Satisfied by *mail.Mailer; tests
// substitute a recording fake.
type Transport interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Notifier struct {
	Transport  Transport
	Resolver   *blob.Resolver
	Codec      *token.Codec
	AppBaseURL string
}

// StatusChanged emails the client about a pipeline move. Clients without an
// email address are skipped silently.
func (n *Notifier) StatusChanged(ctx context.Context, client domain.Client, oldStatus, newStatus domain.Status) error {
	log := slogx.FromContext(ctx)

	if client.Email == "" {
		log.Debug("status change notification skipped, client has no email",
			slog.Int64("client_id", client.ID))
		return nil
	}

	msg := StatusChangedMessage(client, oldStatus, newStatus)
	if err := n.Transport.Send(ctx, msg); err != nil {
		return fmt.Errorf("send status-changed mail: %w", err)
	}

	log.Debug("status change notification sent",
		slog.Int64("client_id", client.ID),
		slog.String("new_status", string(newStatus)))
	return nil
}

// CandidateSuggested emails the company a details table plus a CV link and a
// scoped share link. The two link lookups fail independently: a broken CV
// resolution or token mint downgrades the mail rather than suppressing it.
func (n *Notifier) CandidateSuggested(ctx context.Context, client domain.Client, company domain.Company, assignment domain.Assignment) error {
	log := slogx.FromContext(ctx)

	if company.Email == "" {
		log.Debug("suggestion notification skipped, company has no email",
			slog.Int64("company_id", company.ID))
		return nil
	}

	var cvURL string
	if client.CVFilePath != "" {
		link, err := n.Resolver.Resolve(ctx, client.CVFilePath)
		if err != nil {
			log.Error("failed to resolve cv link for suggestion mail",
				slog.Int64("client_id", client.ID),
				slog.Any("error", err))
		} else if link.Exists {
			cvURL = link.URL
		}
	}

	var shareURL string
	raw, err := n.Codec.Mint(client.ID, company.ID, assignment.ID, 0)
	if err != nil {
		log.Error("failed to mint share credential for suggestion mail",
			slog.Int64("client_id", client.ID),
			slog.Int64("assignment_id", assignment.ID),
			slog.Any("error", err))
	} else {
		shareURL = n.ShareURL(client.ID, raw)
	}

	msg := SuggestedMessage(client, company, cvURL, shareURL)
	if err := n.Transport.Send(ctx, msg); err != nil {
		return fmt.Errorf("send candidate-suggested mail: %w", err)
	}

	log.Debug("suggestion notification sent",
		slog.Int64("client_id", client.ID),
		slog.Int64("company_id", company.ID))
	return nil
}

// ShareURL builds the external share link for a minted credential.
func (n *Notifier) ShareURL(clientID int64, rawToken string) string {
	return fmt.Sprintf("%s/share/clients/%d?token=%s",
		n.AppBaseURL, clientID, url.QueryEscape(rawToken))
}

// Dispatch runs fn detached from the request that triggered it. The HTTP
// response has already been written; fn's result is observed only for
// logging. A panic inside fn is recovered and logged so a notification bug
// cannot take down the serving goroutine.
func (n *Notifier) Dispatch(ctx context.Context, event string, fn func(ctx context.Context) error) {
	// Detach from the request's cancellation but keep its logger.
	ctx = slogx.WithContext(context.WithoutCancel(ctx), slogx.FromContext(ctx))

	go func() {
		log := slogx.FromContext(ctx)

		defer func() {
			if r := recover(); r != nil {
				log.Error("notification dispatch panicked",
					slog.String("event", event),
					slog.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			log.Error("notification dispatch failed",
				slog.String("event", event),
				slog.Any("error", err))
		}
	}()
}
