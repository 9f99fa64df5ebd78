package auth

import (
	"testing"
	"time"

	"cardhub/internal/shared/identity"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerRoundTrip(t *testing.T) {
	signer, err := NewSigner("test-secret-value", "cardhub", time.Hour)
	require.NoError(t, err)

	token, err := signer.Issue(identity.Claim{UserID: "user-1", IsAdmin: true})
	require.NoError(t, err)

	claim, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claim.UserID)
	assert.True(t, claim.IsAdmin)
	assert.False(t, claim.IsBusiness)
}

func TestSignerRejectsExpiredToken(t *testing.T) {
	signer, err := NewSigner("test-secret-value", "cardhub", time.Minute)
	require.NoError(t, err)

	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return issuedAt }
	token, err := signer.Issue(identity.Claim{UserID: "user-1"})
	require.NoError(t, err)

	signer.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignerRejectsForeignSecret(t *testing.T) {
	issuer, err := NewSigner("secret-a", "cardhub", time.Hour)
	require.NoError(t, err)
	verifier, err := NewSigner("secret-b", "cardhub", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(identity.Claim{UserID: "user-1"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignerRejectsUnsignedToken(t *testing.T) {
	signer, err := NewSigner("test-secret-value", "cardhub", time.Hour)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "attacker",
			Issuer:    "cardhub",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = signer.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignerRejectsMalformedToken(t *testing.T) {
	signer, err := NewSigner("test-secret-value", "", time.Hour)
	require.NoError(t, err)

	_, err = signer.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSignerRequiresSecret(t *testing.T) {
	_, err := NewSigner("  ", "cardhub", time.Hour)
	assert.ErrorIs(t, err, ErrSignerUnavailable)
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	token, ok = BearerToken("bearer xyz")
	assert.True(t, ok)
	assert.Equal(t, "xyz", token)

	_, ok = BearerToken("Basic abc")
	assert.False(t, ok)

	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}
