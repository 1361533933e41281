// Package jwtx issues and verifies HS256 access tokens. The token subject
// carries the user's numeric id and a username claim rides alongside it so
// handlers can log who acted without a store lookup.
package jwtx

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrNoSecret     = errors.New("jwtx: signing secret is empty")
)

// Claims are the claims embedded in every access token.
type Claims struct {
	Username string `json:"username,omitempty"`

	jwt.RegisteredClaims
}

// UserID parses the subject claim into the user's numeric id.
func (c Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// Verifier validates a raw token string and returns its claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// Signer signs and verifies tokens with a shared HMAC secret.
type Signer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Sign mints a token for the given user.
func (s *Signer) Sign(userID int64, username string) (string, error) {
	if len(s.Secret) == 0 {
		return "", ErrNoSecret
	}

	now := time.Now().UTC()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.Secret)
}

// Verify parses and validates a raw token string. Expiry and not-before are
// checked by the parser; the signing method is pinned to HS256.
func (s *Signer) Verify(raw string) (Claims, error) {
	if len(s.Secret) == 0 {
		return Claims{}, ErrNoSecret
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if s.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.Issuer))
	}

	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, opts...)
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
