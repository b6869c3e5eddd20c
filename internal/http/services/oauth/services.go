// Package oauth contiene los services del handshake OAuth: start (consent URL
// + CSRF + PKCE) y callback (exchange + emisión de credenciales).
package oauth

import (
	"time"

	"github.com/dropDatabas3/hellokey/internal/cache"
	"github.com/dropDatabas3/hellokey/internal/credentials"
	idp "github.com/dropDatabas3/hellokey/internal/oauth"
	"github.com/dropDatabas3/hellokey/internal/store"
)

// DefaultStateTTL es la vida del PKCE verifier guardado entre start y callback.
const DefaultStateTTL = 10 * time.Minute

// Deps contiene las dependencias para crear los services oauth.
type Deps struct {
	Providers *idp.Registry
	States    cache.Client // PKCE verifier por CSRF token
	Store     store.CredentialStore
	Issuer    credentials.Issuer
	PKCE      bool
	StateTTL  time.Duration
}

// Services agrupa los services del dominio oauth.
type Services struct {
	Start    StartService
	Callback CallbackService
}

func NewServices(d Deps) Services {
	if d.StateTTL <= 0 {
		d.StateTTL = DefaultStateTTL
	}
	return Services{
		Start: NewStartService(StartDeps{
			Providers: d.Providers,
			States:    d.States,
			PKCE:      d.PKCE,
			StateTTL:  d.StateTTL,
		}),
		Callback: NewCallbackService(CallbackDeps{
			Providers: d.Providers,
			States:    d.States,
			Store:     d.Store,
			Issuer:    d.Issuer,
			PKCE:      d.PKCE,
		}),
	}
}

// verifierKey es la clave de cache del PKCE verifier para un CSRF token.
func verifierKey(csrf string) string {
	return "pkce:" + csrf
}
