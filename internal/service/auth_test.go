package service

import (
	"context"
	"testing"
	"time"

	"github.com/brightpath-agency/brightpath/internal/domain"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *fixture) {
	t.Helper()
	f := newFixture(t)
	return &AuthService{
		Store:  f.store,
		Secret: []byte("test-auth-secret"),
		Issuer: "brightpath-test",
	}, f
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes email and defaults role", func(t *testing.T) {
		svc, _ := newAuthService(t)

		u, err := svc.Register(ctx, "  Jane@Example.COM ", "hunter2hunter2", "")
		require.NoError(t, err)
		require.Equal(t, "jane@example.com", u.Email)
		require.Equal(t, domain.RoleUser, u.Role)
		require.NotZero(t, u.ID)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc, _ := newAuthService(t)

		cases := []struct {
			name, email, password, role string
		}{
			{"empty email", "", "hunter2hunter2", ""},
			{"no at sign", "jane.example.com", "hunter2hunter2", ""},
			{"short password", "jane@example.com", "short", ""},
			{"unknown role", "jane@example.com", "hunter2hunter2", "superuser"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Register(ctx, tc.email, tc.password, tc.role)
				require.ErrorIs(t, err, ErrInvalidRegistration)
			})
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(ctx, "dup@example.com", "hunter2hunter2", "")
		require.NoError(t, err)
		_, err = svc.Register(ctx, "DUP@example.com", "hunter2hunter2", "")
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLoginAndVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		svc, _ := newAuthService(t)

		u, err := svc.Register(ctx, "rec@example.com", "hunter2hunter2", domain.RoleRecruiter)
		require.NoError(t, err)

		raw, loggedIn, err := svc.Login(ctx, "rec@example.com", "hunter2hunter2")
		require.NoError(t, err)
		require.Equal(t, u.ID, loggedIn.ID)

		au, err := svc.VerifyAccessToken(raw)
		require.NoError(t, err)
		require.Equal(t, u.ID, au.ID)
		require.Equal(t, "rec@example.com", au.Email)
		require.Equal(t, domain.RoleRecruiter, au.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(ctx, "u@example.com", "hunter2hunter2", "")
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, "u@example.com", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, _, err := svc.Login(ctx, "ghost@example.com", "hunter2hunter2")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		svc, _ := newAuthService(t)
		svc.AccessTTL = -time.Minute

		_, err := svc.Register(ctx, "u@example.com", "hunter2hunter2", "")
		require.NoError(t, err)

		raw, _, err := svc.Login(ctx, "u@example.com", "hunter2hunter2")
		require.NoError(t, err)

		_, err = svc.VerifyAccessToken(raw)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("tampered token rejected", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(ctx, "u@example.com", "hunter2hunter2", "")
		require.NoError(t, err)

		raw, _, err := svc.Login(ctx, "u@example.com", "hunter2hunter2")
		require.NoError(t, err)

		other := &AuthService{Store: svc.Store, Secret: []byte("different-secret")}
		_, err = other.VerifyAccessToken(raw)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
