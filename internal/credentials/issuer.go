// Package credentials emite pares client_id/client_secret para identidades nuevas.
package credentials

import (
	"fmt"

	"github.com/dropDatabas3/hellokey/internal/domain"
	tokens "github.com/dropDatabas3/hellokey/internal/security/token"
)

const (
	ClientIDLength     = 16
	ClientSecretLength = 32
)

// Issuer generates fresh credential pairs. Generation is pure: nothing is
// persisted here.
type Issuer interface {
	Generate(profile domain.IdentityProfile) (domain.ClientCredentials, error)
}

type randomIssuer struct {
	gen func(n int) (string, error)
}

// NewIssuer returns an Issuer backed by crypto/rand.
func NewIssuer() Issuer {
	return &randomIssuer{gen: tokens.GenerateAlphanumeric}
}

// Generate reuses the provider's external id as uuid.
func (i *randomIssuer) Generate(profile domain.IdentityProfile) (domain.ClientCredentials, error) {
	id, err := i.gen(ClientIDLength)
	if err != nil {
		return domain.ClientCredentials{}, fmt.Errorf("generate client_id: %w", err)
	}
	secret, err := i.gen(ClientSecretLength)
	if err != nil {
		return domain.ClientCredentials{}, fmt.Errorf("generate client_secret: %w", err)
	}
	return domain.ClientCredentials{
		UUID:         profile.ExternalID,
		ClientID:     id,
		ClientSecret: secret,
	}, nil
}
