package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/photoshare/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = types.User{ID: "u-1", Username: "alice", Email: "a@x.com", Role: types.RoleCreator}

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService("super-secret", ttl)
	require.NoError(t, err)
	return svc
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, time.Hour)
	tok, err := svc.Issue(alice)
	require.NoError(t, err)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.ID)
	assert.Equal(t, alice.Email, claims.Email)
	assert.Equal(t, alice.Role, claims.Role)
	assert.Equal(t, alice.ID, claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestIssueIsDeterministicForSameClock(t *testing.T) {
	t.Parallel()

	fixed := time.Unix(1_700_000_000, 0)
	svc := newTestTokenService(t, time.Hour).WithClock(func() time.Time { return fixed })

	first, err := svc.Issue(alice)
	require.NoError(t, err)
	second, err := svc.Issue(alice)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestVerifyExpiredWithZeroTTL(t *testing.T) {
	t.Parallel()

	issuedAt := time.Unix(1_700_000_000, int64(500*time.Millisecond))
	svc := newTestTokenService(t, 0).WithClock(func() time.Time { return issuedAt })
	tok, err := svc.Issue(alice)
	require.NoError(t, err)

	later := svc.WithClock(func() time.Time { return issuedAt.Add(time.Millisecond) })
	_, err = later.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	t.Parallel()

	issuedAt := time.Unix(1_700_000_000, 0)
	svc := newTestTokenService(t, time.Minute).WithClock(func() time.Time { return issuedAt })
	tok, err := svc.Issue(alice)
	require.NoError(t, err)

	_, err = svc.WithClock(func() time.Time { return issuedAt.Add(time.Minute - time.Second) }).Verify(tok)
	require.NoError(t, err)

	_, err = svc.WithClock(func() time.Time { return issuedAt.Add(time.Minute) }).Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTamperedSignature(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, time.Hour)
	tok, err := svc.Issue(alice)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	sig[0] ^= 0x01
	parts[2] = base64.RawURLEncoding.EncodeToString(sig)

	_, err = svc.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTamperedClaims(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, time.Hour)
	tok, err := svc.Issue(types.User{ID: "u-2", Email: "b@x.com", Role: types.RoleConsumer})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	forged := strings.Replace(string(payload), `"consumer"`, `"creator"`, 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = svc.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newTestTokenService(t, time.Hour).Issue(alice)
	require.NoError(t, err)

	other, err := NewTokenService("rotated-secret", time.Hour)
	require.NoError(t, err)
	_, err = other.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, time.Hour)
	for _, raw := range []string{"", "not.a.jwt", "abc", "a.b.c.d"} {
		_, err := svc.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidToken, "token %q", raw)
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, time.Hour)
	claims := Claims{
		ID:   "u-1",
		Role: types.RoleCreator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("super-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, time.Hour)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{ID: "u-1"}).SignedString([]byte("super-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService("  ", time.Hour)
	require.ErrorIs(t, err, ErrMissingSecret)
}
