// Package authorize canjea client_id/client_secret por un bearer token.
package authorize

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/hellokey/internal/audit"
	"github.com/dropDatabas3/hellokey/internal/domain"
	"github.com/dropDatabas3/hellokey/internal/metrics"
	"github.com/dropDatabas3/hellokey/internal/observability/logger"
	"github.com/dropDatabas3/hellokey/internal/store"
)

// Service valida el par de credenciales y firma un token.
type Service interface {
	Authorize(ctx context.Context, req Request) (*Result, error)
}

// Request son los headers client_id, client_secret y user_id.
type Request struct {
	ClientID     string
	ClientSecret string
	UserID       string
}

type Result struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}

var (
	// ErrInvalidClient cubre credenciales vacías, inexistentes o que no coinciden.
	// El cliente ve siempre el mismo mensaje.
	ErrInvalidClient = errors.New("invalid client id or secret")
	ErrMissingUserID = errors.New("missing user id")
	ErrStore         = errors.New("credential store failure")
	ErrUpstream      = errors.New("identity provider failure")
	ErrTokenCreation = errors.New("token creation failure")
)

// ProfileLookup resuelve el perfil público por external id.
type ProfileLookup interface {
	ProfileByID(ctx context.Context, id uint64) (domain.IdentityProfile, error)
}

// TokenMinter firma bearer tokens.
type TokenMinter interface {
	Mint(subject, company string) (string, time.Time, error)
}

type Deps struct {
	Store    store.CredentialStore
	Profiles ProfileLookup
	Tokens   TokenMinter
}

type service struct {
	store    store.CredentialStore
	profiles ProfileLookup
	tokens   TokenMinter
	provider string // label de métricas
}

func NewService(d Deps) Service {
	name := "unknown"
	if n, ok := d.Profiles.(interface{ Name() string }); ok {
		name = n.Name()
	}
	return &service{store: d.Store, profiles: d.Profiles, tokens: d.Tokens, provider: name}
}

func (s *service) Authorize(ctx context.Context, req Request) (*Result, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("AuthorizeService.Authorize"))

	if req.ClientID == "" || req.ClientSecret == "" {
		return nil, ErrInvalidClient
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, ErrMissingUserID
	}
	log = log.With(logger.UserID(userID))

	creds, err := s.store.Get(ctx, userID)
	if err != nil {
		if store.IsNotFound(err) {
			log.Info("authorize rejected: unknown user")
			return nil, ErrInvalidClient
		}
		log.Error("credential lookup failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	idOK := subtle.ConstantTimeCompare([]byte(creds.ClientID), []byte(req.ClientID))
	secretOK := subtle.ConstantTimeCompare([]byte(creds.ClientSecret), []byte(req.ClientSecret))
	if idOK&secretOK != 1 {
		log.Info("authorize rejected: credential mismatch")
		return nil, ErrInvalidClient
	}

	// el perfil se relee siempre del provider; nunca se cachea
	start := time.Now()
	profile, err := s.profiles.ProfileByID(ctx, creds.UUID)
	metrics.ObserveProvider(s.provider, metrics.OpProfileByID, start, err)
	if err != nil {
		log.Warn("profile lookup failed", logger.ExternalID(creds.UUID), logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	token, exp, err := s.tokens.Mint(profile.LoginHandle, profile.DisplayName)
	if err != nil {
		log.Error("token mint failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrTokenCreation, err)
	}
	metrics.TokenMinted()

	audit.Log(ctx, audit.EventTokenMinted,
		logger.Login(profile.LoginHandle),
		logger.ExternalID(creds.UUID),
		logger.Time("expires_at", exp),
	)
	return &Result{Token: token, TokenType: "Bearer", ExpiresAt: exp}, nil
}
