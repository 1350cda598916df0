package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brightpath-agency/brightpath/internal/blob"
	"github.com/brightpath-agency/brightpath/internal/domain"
	"github.com/brightpath-agency/brightpath/internal/mail"
	"github.com/brightpath-agency/brightpath/internal/token"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (r *recordingTransport) Send(_ context.Context, msg mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingTransport) messages() []mail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mail.Message(nil), r.sent...)
}

func newTestNotifier(transport Transport) *Notifier {
	return &Notifier{
		Transport:  transport,
		Resolver:   blob.NewResolver("", "", nil, 0),
		Codec:      token.NewCodec([]byte("notify-test-secret"), time.Hour),
		AppBaseURL: "https://app.test",
	}
}

func TestStatusChangedSkipsClientsWithoutEmail(t *testing.T) {
	tr := &recordingTransport{}
	n := newTestNotifier(tr)

	err := n.StatusChanged(context.Background(),
		domain.Client{ID: 1, FullName: "No Mail"},
		domain.StatusPending, domain.StatusInProgress)
	require.NoError(t, err)
	require.Empty(t, tr.messages())
}

func TestCandidateSuggestedDegradesGracefully(t *testing.T) {
	ctx := context.Background()

	client := domain.Client{ID: 5, FullName: "Grace Hopper", Email: "grace@example.com"}
	company := domain.Company{ID: 2, Name: "Acme", Email: "talent@example.com"}
	assignment := domain.Assignment{ID: 11, ClientID: 5, CompanyID: 2}

	t.Run("mail carries the share link", func(t *testing.T) {
		tr := &recordingTransport{}
		n := newTestNotifier(tr)

		require.NoError(t, n.CandidateSuggested(ctx, client, company, assignment))
		require.Len(t, tr.messages(), 1)
		require.Contains(t, tr.messages()[0].Text, "https://app.test/share/clients/5?token=")
	})

	t.Run("unresolvable cv still sends the mail", func(t *testing.T) {
		tr := &recordingTransport{}
		n := newTestNotifier(tr)

		withCV := client
		withCV.CVFilePath = "cv/5/2026/08/missing"
		// No bucket is configured, so the resolver reports no link.
		require.NoError(t, n.CandidateSuggested(ctx, withCV, company, assignment))
		require.Len(t, tr.messages(), 1)
		require.NotContains(t, tr.messages()[0].Text, "CV:")
	})

	t.Run("transport failure surfaces to the dispatcher", func(t *testing.T) {
		tr := &recordingTransport{err: errors.New("smtp down")}
		n := newTestNotifier(tr)

		err := n.CandidateSuggested(ctx, client, company, assignment)
		require.ErrorContains(t, err, "smtp down")
	})

	t.Run("missing company email skips silently", func(t *testing.T) {
		tr := &recordingTransport{}
		n := newTestNotifier(tr)

		noMail := company
		noMail.Email = ""
		require.NoError(t, n.CandidateSuggested(ctx, client, noMail, assignment))
		require.Empty(t, tr.messages())
	})
}

func TestDispatch(t *testing.T) {
	t.Run("runs detached from a cancelled request context", func(t *testing.T) {
		n := newTestNotifier(&recordingTransport{})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		done := make(chan error, 1)
		n.Dispatch(ctx, "test-event", func(ctx context.Context) error {
			done <- ctx.Err()
			return nil
		})

		select {
		case err := <-done:
			require.NoError(t, err, "dispatch context must outlive the request")
		case <-time.After(time.Second):
			t.Fatal("dispatched fn never ran")
		}
	})

	t.Run("recovers a panicking notification", func(t *testing.T) {
		n := newTestNotifier(&recordingTransport{})

		ran := make(chan struct{})
		n.Dispatch(context.Background(), "boom", func(ctx context.Context) error {
			close(ran)
			panic("notification bug")
		})

		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatal("dispatched fn never ran")
		}
		// Give the deferred recover a moment; a process crash fails the test
		// run on its own.
		time.Sleep(20 * time.Millisecond)
	})
}
