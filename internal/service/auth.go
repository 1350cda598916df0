package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/brightpath-agency/brightpath/internal/domain"
	"github.com/brightpath-agency/brightpath/internal/store"
	"github.com/brightpath-agency/brightpath/pkg/cryptox"
	"github.com/brightpath-agency/brightpath/pkg/httpx"
	"github.com/brightpath-agency/brightpath/pkg/slogx"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidRegistration = errors.New("invalid registration request")
)

// DefaultAccessTokenTTL bounds login sessions.
const DefaultAccessTokenTTL = 24 * time.Hour

// AuthService issues and verifies the access tokens that supply the acting
// user on every state-changing call.
type AuthService struct {
	Store     store.Store
	Secret    []byte // auth token secret, distinct from the share token secret
	Issuer    string
	AccessTTL time.Duration
}

type accessClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register creates an account. Role defaults to "user"; recruiter and admin
// accounts are provisioned the same way by an operator.
func (s *AuthService) Register(ctx context.Context, email, password, role string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || len(password) < 8 {
		return domain.User{}, ErrInvalidRegistration
	}

	switch role {
	case "":
		role = domain.RoleUser
	case domain.RoleUser, domain.RoleRecruiter, domain.RoleAdmin:
	default:
		return domain.User{}, ErrInvalidRegistration
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	u := domain.User{Email: email, PasswordHash: hash, Role: role}
	id, err := s.Store.Users().CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}
	u.ID = id

	log.Info("user registered",
		slog.Int64("user_id", u.ID),
		slog.String("role", u.Role))
	return u, nil
}

// Login verifies credentials and mints an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return "", domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		log.Warn("login attempt with wrong password", slog.Int64("user_id", u.ID))
		return "", domain.User{}, ErrInvalidCredentials
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    s.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email: u.Email,
		Role:  u.Role,
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		log.Error("failed to sign access token", slog.Any("error", err))
		return "", domain.User{}, err
	}

	log.Debug("user logged in", slog.Int64("user_id", u.ID))
	return raw, u, nil
}

// VerifyAccessToken implements httpx.TokenVerifier for the bearer
// middleware.
func (s *AuthService) VerifyAccessToken(raw string) (httpx.AuthUser, error) {
	claims := &accessClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return httpx.AuthUser{}, ErrInvalidCredentials
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return httpx.AuthUser{}, ErrInvalidCredentials
	}

	return httpx.AuthUser{ID: id, Email: claims.Email, Role: claims.Role}, nil
}
