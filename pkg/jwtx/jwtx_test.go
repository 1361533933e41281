package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestSigner() *Signer {
	return &Signer{
		Secret: []byte("test-secret-0123456789"),
		Issuer: "taskhub-test",
		TTL:    time.Minute,
	}
}

func TestSignAndVerify(t *testing.T) {
	s := newTestSigner()

	raw, err := s.Sign(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := s.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "taskhub-test", claims.Issuer)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	s := newTestSigner()
	raw, err := s.Sign(1, "alice")
	require.NoError(t, err)

	other := newTestSigner()
	other.Secret = []byte("a-different-secret")

	_, err = other.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	s := newTestSigner()
	s.TTL = -time.Minute

	raw, err := s.Sign(1, "alice")
	require.NoError(t, err)

	_, err = s.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	s := newTestSigner()
	raw, err := s.Sign(1, "alice")
	require.NoError(t, err)

	other := newTestSigner()
	other.Issuer = "someone-else"

	_, err = other.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	s := newTestSigner()

	_, err := s.Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignRequiresSecret(t *testing.T) {
	s := &Signer{TTL: time.Minute}

	_, err := s.Sign(1, "alice")
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestUserIDRejectsNonNumericSubject(t *testing.T) {
	c := Claims{}
	c.Subject = "alice"

	_, err := c.UserID()
	require.ErrorIs(t, err, ErrInvalidToken)
}
