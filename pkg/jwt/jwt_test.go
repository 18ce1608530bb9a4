package jwt_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guardkit/pkg/jwt"
)

func testService(t *testing.T) *jwt.Service {
	t.Helper()
	svc, err := jwt.New([]byte("test-signing-key-at-least-32-bytes!"))
	require.NoError(t, err)
	return svc
}

func TestNew_EmptyKey(t *testing.T) {
	_, err := jwt.New(nil)
	assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)
}

func TestGenerateParse_RoundTrip(t *testing.T) {
	svc := testService(t)

	token, err := svc.Generate(jwt.AccessClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   "7a9c4d9e-0000-0000-0000-000000000001",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
		Username: "alice",
	})
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	var claims jwt.AccessClaims
	require.NoError(t, svc.Parse(token, &claims))
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "7a9c4d9e-0000-0000-0000-000000000001", claims.Subject)
}

func TestParse_TamperedSignature(t *testing.T) {
	svc := testService(t)
	token, err := svc.Generate(jwt.StandardClaims{Subject: "u"})
	require.NoError(t, err)

	var claims jwt.StandardClaims
	err = svc.Parse(token+"x", &claims)
	assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
}

func TestParse_WrongKey(t *testing.T) {
	svc := testService(t)
	token, err := svc.Generate(jwt.StandardClaims{Subject: "u"})
	require.NoError(t, err)

	other, err := jwt.New([]byte("another-signing-key-32-bytes-long!!"))
	require.NoError(t, err)

	var claims jwt.StandardClaims
	assert.ErrorIs(t, other.Parse(token, &claims), jwt.ErrInvalidSignature)
}

func TestParse_Expired(t *testing.T) {
	svc := testService(t)
	token, err := svc.Generate(jwt.StandardClaims{
		Subject:   "u",
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	})
	require.NoError(t, err)

	var claims jwt.StandardClaims
	assert.ErrorIs(t, svc.Parse(token, &claims), jwt.ErrExpiredToken)
}

func TestParse_NotYetValid(t *testing.T) {
	svc := testService(t)
	token, err := svc.Generate(jwt.StandardClaims{
		Subject:   "u",
		NotBefore: time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	var claims jwt.StandardClaims
	assert.ErrorIs(t, svc.Parse(token, &claims), jwt.ErrInvalidToken)
}

func TestParse_Malformed(t *testing.T) {
	svc := testService(t)

	var claims jwt.StandardClaims
	assert.ErrorIs(t, svc.Parse("not-a-token", &claims), jwt.ErrInvalidToken)
	assert.ErrorIs(t, svc.Parse("a.b", &claims), jwt.ErrInvalidToken)
}

func TestVerifier(t *testing.T) {
	svc := testService(t)
	userID := uuid.New()

	token, err := svc.Generate(jwt.AccessClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   userID.String(),
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
		Username: "alice",
	})
	require.NoError(t, err)

	identity, err := svc.Verifier()(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "alice", identity.Username)
}

func TestVerifier_NonUUIDSubject(t *testing.T) {
	svc := testService(t)

	token, err := svc.Generate(jwt.AccessClaims{
		StandardClaims: jwt.StandardClaims{Subject: "not-a-uuid"},
	})
	require.NoError(t, err)

	_, err = svc.Verifier()(context.Background(), token)
	assert.ErrorIs(t, err, jwt.ErrInvalidClaims)
}
