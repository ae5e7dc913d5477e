package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_RoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	ok, err := h.VerifyPassword("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.VerifyPassword("wrong-pass", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_SaltPerCall(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	a, err := h.HashPassword("same-secret")
	require.NoError(t, err)
	b, err := h.HashPassword("same-secret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHasher_MalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	ok, err := h.VerifyPassword("secret1", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestNewHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(99).cost)
	assert.Equal(t, 12, NewHasher(12).cost)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	ti := NewTokenIssuer("super-secret", time.Hour)

	tok, err := ti.IssueToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	uid, err := ti.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)
}

func TestTokenIssuer_Expired(t *testing.T) {
	ti := NewTokenIssuer("super-secret", time.Minute)
	ti.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tok, err := ti.IssueToken(1)
	require.NoError(t, err)

	_, err = NewTokenIssuer("super-secret", time.Minute).ParseToken(tok)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	tok, err := NewTokenIssuer("a", time.Hour).IssueToken(1)
	require.NoError(t, err)

	_, err = NewTokenIssuer("b", time.Hour).ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
