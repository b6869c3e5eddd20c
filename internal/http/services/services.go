// Package services es el composition root de los services HTTP.
//
// Cada dominio vive en su sub-paquete con su propio Deps/New*; acá sólo se
// agregan para que server los entregue a los controllers.
package services

import (
	"time"

	"github.com/dropDatabas3/hellokey/internal/articles"
	"github.com/dropDatabas3/hellokey/internal/cache"
	"github.com/dropDatabas3/hellokey/internal/credentials"
	"github.com/dropDatabas3/hellokey/internal/http/services/authorize"
	"github.com/dropDatabas3/hellokey/internal/http/services/health"
	"github.com/dropDatabas3/hellokey/internal/http/services/oauth"
	"github.com/dropDatabas3/hellokey/internal/jwt"
	idp "github.com/dropDatabas3/hellokey/internal/oauth"
	"github.com/dropDatabas3/hellokey/internal/store"
)

type Deps struct {
	Store     store.CredentialStore
	States    cache.Client
	Providers *idp.Registry
	// Profiles resuelve perfiles por id en /authorize (el provider principal).
	Profiles authorize.ProfileLookup
	Issuer   credentials.Issuer
	Tokens   *jwt.Service
	Articles articles.Source // nil → /api/scrape responde 501

	PKCE     bool
	StateTTL time.Duration
	Version  string
}

type Services struct {
	OAuth     oauth.Services
	Authorize authorize.Service
	Health    health.HealthService
	Tokens    *jwt.Service
	Articles  articles.Source
}

func New(d Deps) Services {
	if d.Issuer == nil {
		d.Issuer = credentials.NewIssuer()
	}

	checks := map[string]health.Checker{
		"store": d.Store.Ping,
	}
	if d.PKCE && d.States != nil {
		checks["state_cache"] = d.States.Ping
	}

	return Services{
		OAuth: oauth.NewServices(oauth.Deps{
			Providers: d.Providers,
			States:    d.States,
			Store:     d.Store,
			Issuer:    d.Issuer,
			PKCE:      d.PKCE,
			StateTTL:  d.StateTTL,
		}),
		Authorize: authorize.NewService(authorize.Deps{
			Store:    d.Store,
			Profiles: d.Profiles,
			Tokens:   d.Tokens,
		}),
		Health:   health.NewHealthService(health.Deps{Checks: checks, Version: d.Version}),
		Tokens:   d.Tokens,
		Articles: d.Articles,
	}
}
