package oauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/dropDatabas3/hellokey/internal/cache"
	idp "github.com/dropDatabas3/hellokey/internal/oauth"
	"github.com/dropDatabas3/hellokey/internal/observability/logger"
	tokens "github.com/dropDatabas3/hellokey/internal/security/token"
)

// csrfBytes es la entropía del CSRF token (base64url → 43 chars).
const csrfBytes = 32

// StartService arma la URL de consentimiento del provider.
type StartService interface {
	Start(ctx context.Context, provider string) (*StartResult, error)
}

// StartResult: el controller redirige a URL y setea CSRFToken en la cookie.
type StartResult struct {
	URL       string
	CSRFToken string
}

var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrStateStore      = errors.New("state store unavailable")
	ErrRandom          = errors.New("random source failure")
)

type StartDeps struct {
	Providers *idp.Registry
	States    cache.Client
	PKCE      bool
	StateTTL  time.Duration
}

type startService struct {
	providers *idp.Registry
	states    cache.Client
	pkce      bool
	ttl       time.Duration
	verifier  func() string
}

func NewStartService(d StartDeps) StartService {
	return &startService{
		providers: d.Providers,
		states:    d.States,
		pkce:      d.PKCE,
		ttl:       d.StateTTL,
		verifier:  oauth2.GenerateVerifier,
	}
}

func (s *startService) Start(ctx context.Context, provider string) (*StartResult, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("StartService.Start"), logger.Provider(provider))

	p, err := s.providers.Get(provider)
	if err != nil {
		return nil, ErrUnknownProvider
	}

	csrf, err := tokens.GenerateOpaqueToken(csrfBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandom, err)
	}

	verifier := ""
	if s.pkce {
		verifier = s.verifier()
		if err := s.states.Set(ctx, verifierKey(csrf), verifier, s.ttl); err != nil {
			log.Error("failed to persist pkce verifier", logger.Err(err))
			return nil, fmt.Errorf("%w: %v", ErrStateStore, err)
		}
	}

	log.Debug("authorization request built", logger.Bool("pkce", s.pkce))
	return &StartResult{
		URL:       p.AuthCodeURL(csrf, verifier),
		CSRFToken: csrf,
	}, nil
}
