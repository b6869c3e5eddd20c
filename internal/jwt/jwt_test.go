package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestService(t *testing.T, clock *fakeClock) *Service {
	t.Helper()
	keys, err := NewKeys(testSecret)
	require.NoError(t, err)
	return NewService(keys, WithClock(clock.Now))
}

func TestNewKeys_RejectsShortSecret(t *testing.T) {
	_, err := NewKeys("short")
	assert.ErrorIs(t, err, ErrWeakSecret)
}

func TestMintVerify_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := newTestService(t, clock)

	tok, exp, err := s.Mint("octo", "Octo Cat")
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(time.Hour), exp)

	claims, err := s.Verify("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, "octo", claims.Subject)
	assert.Equal(t, "Octo Cat", claims.Company)
	assert.Equal(t, clock.t.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
}

func TestVerify_Errors(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := newTestService(t, clock)
	tok, _, err := s.Mint("octo", "")
	require.NoError(t, err)

	otherKeys, err := NewKeys("ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)
	foreign, _, err := NewService(otherKeys, WithClock(clock.Now)).Mint("octo", "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"empty", "", ErrMissingToken},
		{"no bearer prefix", tok, ErrInvalidToken},
		{"lowercase scheme", "bearer " + tok, ErrInvalidToken},
		{"prefix only", "Bearer ", ErrInvalidToken},
		{"garbage", "Bearer not.a.jwt", ErrInvalidToken},
		{"wrong key", "Bearer " + foreign, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Verify(tt.header)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerify_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := newTestService(t, clock)
	tok, exp, err := s.Mint("octo", "")
	require.NoError(t, err)

	clock.t = exp.Add(-time.Second)
	_, err = s.Verify("Bearer " + tok)
	require.NoError(t, err)

	clock.t = exp
	_, err = s.Verify("Bearer " + tok)
	assert.ErrorIs(t, err, ErrExpiredToken)

	clock.t = exp.Add(time.Minute)
	_, err = s.Verify("Bearer " + tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := newTestService(t, clock)

	claims := Claims{RegisteredClaims: jwtv5.RegisteredClaims{
		Subject:   "octo",
		ExpiresAt: jwtv5.NewNumericDate(clock.t.Add(time.Hour)),
	}}
	none, err := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, claims).SignedString(jwtv5.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.Verify("Bearer " + none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs512, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = s.Verify("Bearer " + hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RequiresExp(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := newTestService(t, clock)

	noExp, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, Claims{
		RegisteredClaims: jwtv5.RegisteredClaims{Subject: "octo"},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = s.Verify("Bearer " + noExp)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWithTTL(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	keys, err := NewKeys(testSecret)
	require.NoError(t, err)
	s := NewService(keys, WithClock(clock.Now), WithTTL(5*time.Minute))

	_, exp, err := s.Mint("octo", "")
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(5*time.Minute), exp)
}
