package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

// AuthUser is the acting user supplied by the upstream auth layer on every
// state-changing call.
type AuthUser struct {
	ID    int64
	Email string
	Role  string
}

// TokenVerifier validates a bearer access token and returns the user it was
// issued to.
type TokenVerifier interface {
	VerifyAccessToken(raw string) (AuthUser, error)
}

type ctxKey string

const ctxKeyAuthUser ctxKey = "auth_user"

// AuthnMiddleware verifies the bearer token and injects the acting user
// into the request context.
func AuthnMiddleware(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			user, err := v.VerifyAccessToken(raw)
			if err != nil {
				log.Warn("access token verification failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = context.WithValue(ctx, ctxKeyAuthUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose acting user holds none of the given
// roles. Must run after AuthnMiddleware.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := AuthUserFromContext(r.Context())
			if !ok {
				writeBearerError(w, "authentication required")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteError(w, http.StatusForbidden, "forbidden", "insufficient role")
		})
	}
}

// AuthUserFromContext returns the acting user injected by AuthnMiddleware.
func AuthUserFromContext(ctx context.Context) (AuthUser, bool) {
	u, ok := ctx.Value(ctxKeyAuthUser).(AuthUser)
	return u, ok
}

// ContextWithAuthUser injects an acting user directly; handler tests use it
// to bypass the middleware.
func ContextWithAuthUser(ctx context.Context, u AuthUser) context.Context {
	return context.WithValue(ctx, ctxKeyAuthUser, u)
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
