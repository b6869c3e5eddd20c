package authorize

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellokey/internal/domain"
	"github.com/dropDatabas3/hellokey/internal/jwt"
	"github.com/dropDatabas3/hellokey/internal/store"
	"github.com/dropDatabas3/hellokey/internal/store/adapters/memory"
)

type profileStub struct {
	profile domain.IdentityProfile
	err     error
	gotID   uint64
	calls   int
}

func (p *profileStub) ProfileByID(_ context.Context, id uint64) (domain.IdentityProfile, error) {
	p.calls++
	p.gotID = id
	return p.profile, p.err
}

type brokenStore struct{ store.CredentialStore }

func (brokenStore) Get(context.Context, string) (*domain.ClientCredentials, error) {
	return nil, errors.New("connection refused")
}

type failingMinter struct{}

func (failingMinter) Mint(string, string) (string, time.Time, error) {
	return "", time.Time{}, jwt.ErrTokenCreation
}

var stored = domain.ClientCredentials{UUID: 42, ClientID: "AbCdEfGhIjKlMnOp", ClientSecret: "0123456789abcdefghijABCDEFGHIJ01"}

func newService(t *testing.T, profiles *profileStub) (Service, *jwt.Service) {
	t.Helper()
	st := memory.New()
	require.NoError(t, st.Put(context.Background(), "42", stored))

	keys, err := jwt.NewKeys("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	tokens := jwt.NewService(keys)

	return NewService(Deps{Store: st, Profiles: profiles, Tokens: tokens}), tokens
}

func TestAuthorize_Success(t *testing.T) {
	profiles := &profileStub{profile: domain.IdentityProfile{ExternalID: 42, LoginHandle: "octo", DisplayName: "Octo Cat"}}
	svc, tokens := newService(t, profiles)

	res, err := svc.Authorize(context.Background(), Request{ClientID: stored.ClientID, ClientSecret: stored.ClientSecret, UserID: "42"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, uint64(42), profiles.gotID)

	claims, err := tokens.Verify("Bearer " + res.Token)
	require.NoError(t, err)
	assert.Equal(t, "octo", claims.Subject)
	assert.Equal(t, "Octo Cat", claims.Company)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, 5*time.Second)
}

func TestAuthorize_Rejections(t *testing.T) {
	profiles := &profileStub{profile: domain.IdentityProfile{ExternalID: 42, LoginHandle: "octo"}}
	svc, _ := newService(t, profiles)

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"empty client id", Request{ClientSecret: stored.ClientSecret, UserID: "42"}, ErrInvalidClient},
		{"empty secret", Request{ClientID: stored.ClientID, UserID: "42"}, ErrInvalidClient},
		{"empty everything", Request{}, ErrInvalidClient},
		{"empty user id", Request{ClientID: stored.ClientID, ClientSecret: stored.ClientSecret}, ErrMissingUserID},
		{"unknown user", Request{ClientID: stored.ClientID, ClientSecret: stored.ClientSecret, UserID: "7"}, ErrInvalidClient},
		{"wrong secret", Request{ClientID: stored.ClientID, ClientSecret: "nope", UserID: "42"}, ErrInvalidClient},
		{"wrong client id", Request{ClientID: "nope", ClientSecret: stored.ClientSecret, UserID: "42"}, ErrInvalidClient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authorize(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, profiles.calls)
}

func TestAuthorize_StoreFailure(t *testing.T) {
	svc := NewService(Deps{Store: brokenStore{}, Profiles: &profileStub{}})
	_, err := svc.Authorize(context.Background(), Request{ClientID: "a", ClientSecret: "b", UserID: "42"})
	assert.ErrorIs(t, err, ErrStore)
}

func TestAuthorize_ProfileFailure(t *testing.T) {
	svc, _ := newService(t, &profileStub{err: errors.New("github down")})
	_, err := svc.Authorize(context.Background(), Request{ClientID: stored.ClientID, ClientSecret: stored.ClientSecret, UserID: "42"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestAuthorize_MintFailure(t *testing.T) {
	st := memory.New()
	require.NoError(t, st.Put(context.Background(), "42", stored))
	svc := NewService(Deps{Store: st, Profiles: &profileStub{profile: domain.IdentityProfile{ExternalID: 42, LoginHandle: "octo"}}, Tokens: failingMinter{}})

	_, err := svc.Authorize(context.Background(), Request{ClientID: stored.ClientID, ClientSecret: stored.ClientSecret, UserID: "42"})
	assert.ErrorIs(t, err, ErrTokenCreation)
}
