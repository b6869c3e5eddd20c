package oauth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/hellokey/internal/audit"
	"github.com/dropDatabas3/hellokey/internal/cache"
	"github.com/dropDatabas3/hellokey/internal/credentials"
	"github.com/dropDatabas3/hellokey/internal/domain"
	"github.com/dropDatabas3/hellokey/internal/metrics"
	idp "github.com/dropDatabas3/hellokey/internal/oauth"
	"github.com/dropDatabas3/hellokey/internal/observability/logger"
	"github.com/dropDatabas3/hellokey/internal/store"
)

// CallbackService completa el handshake y devuelve las credenciales del usuario.
type CallbackService interface {
	Complete(ctx context.Context, req CallbackRequest) (*domain.ClientCredentials, error)
}

// CallbackRequest junta query params y la cookie CSRF.
type CallbackRequest struct {
	Provider      string
	Code          string
	State         string
	CookieState   string
	ProviderError string // query param "error"
}

var (
	ErrInvalidCode    = errors.New("invalid code")
	ErrInvalidCSRF    = errors.New("invalid csrf token")
	ErrRequestExpired = errors.New("authorization request expired")
	ErrUpstream       = errors.New("identity provider failure")
	ErrStore          = errors.New("credential store failure")
	ErrIssue          = errors.New("credential generation failure")
)

// ProviderDeniedError lleva el texto del parámetro "error" del provider.
type ProviderDeniedError struct {
	Text string
}

func (e *ProviderDeniedError) Error() string { return "provider error: " + e.Text }

type CallbackDeps struct {
	Providers *idp.Registry
	States    cache.Client
	Store     store.CredentialStore
	Issuer    credentials.Issuer
	PKCE      bool
}

type callbackService struct {
	providers *idp.Registry
	states    cache.Client
	store     store.CredentialStore
	issuer    credentials.Issuer
	pkce      bool

	// colapsa callbacks concurrentes de la misma identidad
	sf singleflight.Group
}

func NewCallbackService(d CallbackDeps) CallbackService {
	return &callbackService{
		providers: d.Providers,
		states:    d.States,
		store:     d.Store,
		issuer:    d.Issuer,
		pkce:      d.PKCE,
	}
}

func (s *callbackService) Complete(ctx context.Context, req CallbackRequest) (*domain.ClientCredentials, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("CallbackService.Complete"), logger.Provider(req.Provider))

	p, err := s.providers.Get(req.Provider)
	if err != nil {
		return nil, ErrUnknownProvider
	}

	if req.ProviderError != "" {
		return nil, &ProviderDeniedError{Text: req.ProviderError}
	}
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.State) == "" {
		return nil, ErrInvalidCode
	}
	if req.CookieState == "" || subtle.ConstantTimeCompare([]byte(req.CookieState), []byte(req.State)) != 1 {
		return nil, ErrInvalidCSRF
	}

	verifier := ""
	if s.pkce {
		// single-use: un state no puede canjearse dos veces
		verifier, err = s.states.Take(ctx, verifierKey(req.State))
		if err != nil {
			if cache.IsNotFound(err) {
				return nil, ErrRequestExpired
			}
			log.Error("failed to read pkce verifier", logger.Err(err))
			return nil, fmt.Errorf("%w: %v", ErrStateStore, err)
		}
	}

	start := time.Now()
	accessToken, err := p.Exchange(ctx, req.Code, verifier)
	metrics.ObserveProvider(req.Provider, metrics.OpExchange, start, err)
	if err != nil {
		log.Warn("code exchange failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	start = time.Now()
	profile, err := p.Profile(ctx, accessToken)
	metrics.ObserveProvider(req.Provider, metrics.OpProfile, start, err)
	if err != nil {
		log.Warn("profile fetch failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	creds, err := s.resolve(ctx, req.Provider, profile)
	if err != nil {
		log.Error("credential resolution failed", logger.ExternalID(profile.ExternalID), logger.Err(err))
		return nil, err
	}
	return &creds, nil
}

// resolveTimeout acota el get-or-create compartido, que no hereda la
// cancelación de ningún request.
const resolveTimeout = 10 * time.Second

// resolve devuelve las credenciales existentes o emite y persiste unas nuevas.
// Entre procesos la carrera la resuelve el Put create-if-absent del store.
// El trabajo compartido corre con un ctx desacoplado: si el request que lo
// inició se cancela, los demás callers de la misma identidad siguen esperando
// el resultado; cada caller sólo corta por su propio ctx.
func (s *callbackService) resolve(ctx context.Context, provider string, profile domain.IdentityProfile) (domain.ClientCredentials, error) {
	key := domain.UserKey(profile.ExternalID)

	ch := s.sf.DoChan(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resolveTimeout)
		defer cancel()

		existing, err := s.store.Get(ctx, key)
		if err == nil {
			return *existing, nil
		}
		if !store.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %v", ErrStore, err)
		}

		fresh, err := s.issuer.Generate(profile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIssue, err)
		}

		if err := s.store.Put(ctx, key, fresh); err != nil {
			if !store.IsAlreadyExists(err) {
				return nil, fmt.Errorf("%w: %v", ErrStore, err)
			}
			// otro proceso ganó: devolvemos lo que quedó guardado
			winner, err := s.store.Get(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrStore, err)
			}
			return *winner, nil
		}

		metrics.CredentialsIssued(provider)
		audit.Log(ctx, audit.EventCredentialsIssued,
			logger.Provider(provider),
			logger.ExternalID(profile.ExternalID),
			logger.Login(profile.LoginHandle),
			logger.ClientID(fresh.ClientID),
		)
		return fresh, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return domain.ClientCredentials{}, res.Err
		}
		return res.Val.(domain.ClientCredentials), nil
	case <-ctx.Done():
		return domain.ClientCredentials{}, ctx.Err()
	}
}
