// Package token mints and verifies the signed, self-contained credentials
// that authorize external companies to view a single shared client profile.
// Verification is a pure function of the token and the secret; it never
// touches the database.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TypeClientShare is the discriminator carried by share credentials.
const TypeClientShare = "client-share"

// DefaultTTL bounds the lifetime of a share credential unless the caller
// overrides it at mint time.
const DefaultTTL = time.Hour

var (
	ErrInvalidToken = errors.New("token: invalid or expired")
	ErrWrongType    = errors.New("token: wrong credential type")
)

// ShareClaims is the minimum claim set needed to authorize a single read:
// the client being shared, and optionally the company and assignment the
// share was issued for.
type ShareClaims struct {
	jwt.RegisteredClaims

	Type         string `json:"typ,omitempty"`
	ClientID     int64  `json:"client_id"`
	CompanyID    int64  `json:"company_id,omitempty"`
	AssignmentID int64  `json:"assignment_id,omitempty"`
}

// Codec signs and verifies share credentials with a dedicated server-held
// secret. The secret is required configuration; share credentials never
// share key material with the auth token secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret []byte, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: secret, ttl: ttl}
}

// Mint produces a signed share credential. A non-zero ttl overrides the
// codec default.
func (c *Codec) Mint(clientID, companyID, assignmentID int64, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = c.ttl
	}

	claims := ShareClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Type:         TypeClientShare,
		ClientID:     clientID,
		CompanyID:    companyID,
		AssignmentID: assignmentID,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Verify validates signature and expiry and returns the claim set. Missing,
// malformed, unsigned or expired tokens all come back as ErrInvalidToken.
func (c *Codec) Verify(raw string) (ShareClaims, error) {
	if raw == "" {
		return ShareClaims{}, ErrInvalidToken
	}

	claims := &ShareClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return ShareClaims{}, ErrInvalidToken
	}

	return *claims, nil
}
