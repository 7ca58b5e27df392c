package jwtx

import (
	"testing"
	"time"

	"github.com/ironbark/buildmat/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

const testIssuer = "buildmat-test"

func newTestManager(t *testing.T) *KeyManager {
	t.Helper()
	km, err := NewEphemeralKeyManager(KeyManagerOptions{Issuer: testIssuer, NumKeys: 1})
	require.NoError(t, err)
	return km
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	km := newTestManager(t)

	claims := NewSessionClaims("a@x.com", "Alice", "user", time.Hour, testIssuer, time.Now().UTC())
	token, err := km.GetSigner().Sign(claims)
	require.NoError(t, err)

	got, err := km.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", got.Email)
	require.Equal(t, "a@x.com", got.Subject)
	require.Equal(t, "Alice", got.FullName)
	require.Equal(t, "user", got.Role)
	require.Equal(t, testIssuer, got.Issuer)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	km := newTestManager(t)

	issued := time.Now().UTC().Add(-2 * time.Hour)
	claims := NewSessionClaims("a@x.com", "Alice", "user", time.Hour, testIssuer, issued)
	token, err := km.GetSigner().Sign(claims)
	require.NoError(t, err)

	_, err = km.Verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	km := newTestManager(t)
	other := newTestManager(t)

	claims := NewSessionClaims("a@x.com", "Alice", "user", time.Hour, testIssuer, time.Now().UTC())
	token, err := other.GetSigner().Sign(claims)
	require.NoError(t, err)

	// Signed by a key the verifier has never seen.
	_, err = km.Verifier.Verify(token)
	require.ErrorIs(t, err, ErrUnknownKID)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	km := newTestManager(t)

	claims := NewSessionClaims("a@x.com", "Alice", "user", time.Hour, testIssuer, time.Now().UTC())
	token, err := km.GetSigner().Sign(claims)
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"
	_, err = km.Verifier.Verify(tampered)
	require.Error(t, err)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	km := newTestManager(t)

	claims := NewSessionClaims("a@x.com", "Alice", "user", time.Hour, "someone-else", time.Now().UTC())
	token, err := km.GetSigner().Sign(claims)
	require.NoError(t, err)

	_, err = km.Verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	km := newTestManager(t)

	_, err := km.Verifier.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestSignerFromGeneratedPEM(t *testing.T) {
	pemBytes, err := cryptox.GenerateEd25519PEM()
	require.NoError(t, err)

	s, err := NewSignerEdDSA("kid-1", pemBytes)
	require.NoError(t, err)
	require.NoError(t, s.Validate())
	require.Equal(t, "EdDSA", s.Alg())
	require.Equal(t, "kid-1", s.KID())
}
