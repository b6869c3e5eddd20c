package oauth

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dropDatabas3/hellokey/internal/domain"
	idp "github.com/dropDatabas3/hellokey/internal/oauth"
	"github.com/dropDatabas3/hellokey/internal/store"
)

type fakeProvider struct {
	mu           sync.Mutex
	gotVerifier  string
	exchangeErr  error
	profileErr   error
	profile      domain.IdentityProfile
	exchangeHits atomic.Int32
}

func (f *fakeProvider) Name() string { return "github" }

func (f *fakeProvider) AuthCodeURL(state, verifier string) string {
	u := "https://github.test/authorize?state=" + state
	if verifier != "" {
		u += "&code_challenge=x"
	}
	return u
}

func (f *fakeProvider) Exchange(_ context.Context, code, verifier string) (string, error) {
	f.exchangeHits.Add(1)
	f.mu.Lock()
	f.gotVerifier = verifier
	f.mu.Unlock()
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	return "access-" + code, nil
}

func (f *fakeProvider) Profile(context.Context, string) (domain.IdentityProfile, error) {
	if f.profileErr != nil {
		return domain.IdentityProfile{}, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeProvider) ProfileByID(context.Context, uint64) (domain.IdentityProfile, error) {
	return f.profile, f.profileErr
}

var _ idp.Provider = (*fakeProvider)(nil)

// flakyStore envuelve un store y permite inyectar fallas.
type flakyStore struct {
	store.CredentialStore
	getErr error
	putErr error
	// beforePut corre antes de delegar Put (simula un ganador concurrente)
	beforePut func()
	puts      atomic.Int32
}

func (s *flakyStore) Get(ctx context.Context, userID string) (*domain.ClientCredentials, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.CredentialStore.Get(ctx, userID)
}

func (s *flakyStore) Put(ctx context.Context, userID string, c domain.ClientCredentials) error {
	s.puts.Add(1)
	if s.beforePut != nil {
		s.beforePut()
	}
	if s.putErr != nil {
		return s.putErr
	}
	return s.CredentialStore.Put(ctx, userID, c)
}

type fixedIssuer struct {
	creds domain.ClientCredentials
	err   error
}

func (i fixedIssuer) Generate(p domain.IdentityProfile) (domain.ClientCredentials, error) {
	if i.err != nil {
		return domain.ClientCredentials{}, i.err
	}
	c := i.creds
	c.UUID = p.ExternalID
	return c, nil
}

var errBoom = errors.New("boom")
