package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 0).WithClock(fixedClock(issuedAt))

	token, exp, err := tm.Issue("user_abc123")
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(7*24*time.Hour), exp)

	userID, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user_abc123", userID)
}

func TestTokenManager_ValidUntilSevenDays(t *testing.T) {
	issuer := NewTokenManager("secret", 0).WithClock(fixedClock(issuedAt))
	token, _, err := issuer.Issue("user_abc123")
	require.NoError(t, err)

	almost := issuer.WithClock(fixedClock(issuedAt.Add(7*24*time.Hour - time.Second)))
	userID, err := almost.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user_abc123", userID)

	expired := issuer.WithClock(fixedClock(issuedAt.Add(7*24*time.Hour + time.Second)))
	_, err = expired.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsForgeries(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	valid, _, err := tm.Issue("user_abc123")
	require.NoError(t, err)

	otherKey, _, err := NewTokenManager("other-secret", 0).Issue("user_abc123")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user_abc123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user_abc123",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user_abc123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tamperedPayload, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user_victim",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	spliced := strings.Join([]string{parts[0], strings.Split(tamperedPayload, ".")[1], parts[2]}, ".")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"wrong key", otherKey},
		{"alg none", unsigned},
		{"alg hs512", hs512},
		{"missing exp", noExpiry},
		{"missing sub", noSubject},
		{"spliced payload", spliced},
		{"truncated signature", valid[:len(valid)-4]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := tm.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, userID)
		})
	}
}

func TestTokenManager_TokensDifferPerIssue(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	first, _, err := tm.Issue("user_abc123")
	require.NoError(t, err)

	later := tm.WithClock(fixedClock(time.Now().Add(2 * time.Second)))
	second, _, err := later.Issue("user_abc123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	for _, token := range []string{first, second} {
		userID, err := tm.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user_abc123", userID)
	}
}
