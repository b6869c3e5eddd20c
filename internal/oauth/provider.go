// Package oauth define el contrato de los identity providers externos
// y un registry por nombre (el segmento {provider} de las rutas).
package oauth

import (
	"context"
	"errors"

	"github.com/dropDatabas3/hellokey/internal/domain"
)

var (
	// ErrUnknownProvider se devuelve cuando la ruta nombra un provider no registrado.
	ErrUnknownProvider = errors.New("oauth: unknown provider")
	// ErrExchange cubre cualquier fallo del token endpoint del provider.
	ErrExchange = errors.New("oauth: code exchange failed")
	// ErrProfile cubre cualquier fallo al leer el perfil del usuario.
	ErrProfile = errors.New("oauth: profile fetch failed")
)

// Provider is an OAuth2 authorization-code provider that can resolve the
// signed-in user into an IdentityProfile.
type Provider interface {
	Name() string

	// AuthCodeURL builds the consent URL. verifier may be empty when PKCE is off.
	AuthCodeURL(state, verifier string) string

	// Exchange trades the authorization code for an access token.
	Exchange(ctx context.Context, code, verifier string) (string, error)

	// Profile reads the profile of the token owner.
	Profile(ctx context.Context, accessToken string) (domain.IdentityProfile, error)

	// ProfileByID reads a public profile by its stable numeric id.
	ProfileByID(ctx context.Context, id uint64) (domain.IdentityProfile, error)
}
