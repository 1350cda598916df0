package service

import (
	"context"
	"testing"
	"time"

	"github.com/brightpath-agency/brightpath/internal/domain"
	"github.com/brightpath-agency/brightpath/internal/token"
	"github.com/stretchr/testify/require"
)

// suggested seeds a recruiter, client, company and a committed suggestion,
// returning the ids a share credential is scoped to.
func suggested(t *testing.T, f *fixture) (clientID, companyID, assignmentID int64) {
	t.Helper()
	ctx := context.Background()

	recruiterID := f.seedUser(t, "rec@example.com")
	clientID = f.seedClient(t, f.seedUser(t, "cand@example.com"), domain.StatusPending)
	companyID = f.seedCompany(t, "Acme")

	assignment, _, err := f.lifecycle.Suggest(ctx, clientID, companyID, recruiterID)
	require.NoError(t, err)
	return clientID, companyID, assignment.ID
}

func TestShareView(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token returns the redacted view", func(t *testing.T) {
		f := newFixture(t)
		clientID, companyID, assignmentID := suggested(t, f)

		raw, err := f.codec.Mint(clientID, companyID, assignmentID, 0)
		require.NoError(t, err)

		view, err := f.share.View(ctx, clientID, raw)
		require.NoError(t, err)
		require.Equal(t, clientID, view.Client.ID)
		require.Equal(t, "Grace Hopper", view.Client.FullName)
		require.Equal(t, domain.StatusSuggested, view.Client.Status)
		require.Equal(t, assignmentID, view.Assignment.ID)
		require.False(t, view.CV.Exists, "client has no cv on file")
		require.WithinDuration(t, time.Now().Add(time.Hour), view.TokenExpiresAt, time.Minute)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		f := newFixture(t)
		clientID, _, _ := suggested(t, f)

		_, err := f.share.View(ctx, clientID, "not-a-jwt")
		require.ErrorIs(t, err, ErrShareTokenInvalid)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		f := newFixture(t)
		clientID, companyID, assignmentID := suggested(t, f)

		raw, err := f.codec.Mint(clientID, companyID, assignmentID, -time.Minute)
		require.NoError(t, err)

		_, err = f.share.View(ctx, clientID, raw)
		require.ErrorIs(t, err, ErrShareTokenInvalid)
	})

	t.Run("token for another client is forbidden", func(t *testing.T) {
		f := newFixture(t)
		clientID, companyID, assignmentID := suggested(t, f)

		raw, err := f.codec.Mint(clientID, companyID, assignmentID, 0)
		require.NoError(t, err)

		_, err = f.share.View(ctx, clientID+1, raw)
		require.ErrorIs(t, err, ErrShareScopeMismatch)
	})

	t.Run("token signed with a different secret is unauthorized", func(t *testing.T) {
		f := newFixture(t)
		clientID, companyID, assignmentID := suggested(t, f)

		other := token.NewCodec([]byte("some-other-secret"), time.Hour)
		raw, err := other.Mint(clientID, companyID, assignmentID, 0)
		require.NoError(t, err)

		_, err = f.share.View(ctx, clientID, raw)
		require.ErrorIs(t, err, ErrShareTokenInvalid)
	})

	t.Run("deleting the assignment revokes the link", func(t *testing.T) {
		f := newFixture(t)
		clientID, companyID, assignmentID := suggested(t, f)

		raw, err := f.codec.Mint(clientID, companyID, assignmentID, 0)
		require.NoError(t, err)

		// Removing the client cascades to the assignment row.
		require.NoError(t, f.store.Clients().DeleteClient(ctx, clientID))

		_, err = f.share.View(ctx, clientID, raw)
		require.ErrorIs(t, err, ErrShareAssignmentGone)
	})

	t.Run("company claim must match the assignment", func(t *testing.T) {
		f := newFixture(t)
		clientID, _, assignmentID := suggested(t, f)

		raw, err := f.codec.Mint(clientID, 9999, assignmentID, 0)
		require.NoError(t, err)

		_, err = f.share.View(ctx, clientID, raw)
		require.ErrorIs(t, err, ErrShareScopeMismatch)
	})
}
