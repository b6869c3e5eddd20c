package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dropDatabas3/hellokey/internal/domain"
)

// Errores del store.
var (
	// ErrNotFound indica que no hay credenciales para el user id.
	ErrNotFound = errors.New("store: credentials not found")

	// ErrAlreadyExists indica que Put encontró un registro previo y no escribió nada.
	ErrAlreadyExists = errors.New("store: credentials already exist")
)

// CredentialStore es el KV durable de credenciales por user id.
//
// Keys: id decimal del usuario. Values: ClientCredentials en JSON.
type CredentialStore interface {
	// Get retorna ErrNotFound si no existe registro.
	Get(ctx context.Context, userID string) (*domain.ClientCredentials, error)

	// Put escribe sólo si la key no existe (create-if-absent).
	// Retorna ErrAlreadyExists sin modificar el registro existente.
	// Cuando retorna nil el registro ya es durable.
	Put(ctx context.Context, userID string, creds domain.ClientCredentials) error

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	// Close cierra la conexión.
	Close() error
}

// IsNotFound helper para verificar si el error es por registro inexistente.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists helper para verificar conflictos de creación.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// Encode serializa credenciales al formato persistido.
func Encode(c domain.ClientCredentials) ([]byte, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("store: encode credentials: %w", err)
	}
	return b, nil
}

// Decode parsea el valor persistido.
func Decode(b []byte) (*domain.ClientCredentials, error) {
	var c domain.ClientCredentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("store: decode credentials: %w", err)
	}
	return &c, nil
}
