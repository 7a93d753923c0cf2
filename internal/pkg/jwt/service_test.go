package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedService(secret string, expiresIn time.Duration, at time.Time) *HMACService {
	s := NewHMACService(secret, expiresIn)
	s.now = func() time.Time { return at }
	return s
}

func TestAccessTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := fixedService("test-secret", 15*time.Minute, now)

	tok, err := s.GenerateAccessToken(4211, "Mika")
	require.NoError(t, err)

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err)
	require.Equal(t, int64(4211), claims.ExternalID)
	require.Equal(t, "Mika", claims.Name)
	require.Equal(t, "4211", claims.Subject)
}

func TestExpiredTokenRejected(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := fixedService("test-secret", 15*time.Minute, issued)

	tok, err := s.GenerateAccessToken(4211, "")
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = s.ValidateToken(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestWrongSecretRejected(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := fixedService("test-secret", 15*time.Minute, now)

	tok, err := s.GenerateAccessToken(4211, "")
	require.NoError(t, err)

	other := fixedService("other-secret", 15*time.Minute, now)
	_, err = other.ValidateToken(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenWithoutExternalIDRejected(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := fixedService("test-secret", 15*time.Minute, now)

	tok, err := s.GenerateAccessToken(0, "")
	require.NoError(t, err)

	_, err = s.ValidateToken(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
