// Package memory implementa un CredentialStore en memoria (dev/testing).
// No es durable: los registros se pierden al reiniciar el proceso.
package memory

import (
	"context"
	"sync"

	"github.com/dropDatabas3/hellokey/internal/domain"
	"github.com/dropDatabas3/hellokey/internal/store"
)

func init() {
	store.RegisterAdapter(&memoryAdapter{})
}

type memoryAdapter struct{}

func (a *memoryAdapter) Name() string { return "memory" }

func (a *memoryAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.CredentialStore, error) {
	return New(), nil
}

// Store guarda los valores serializados, igual que un backend real.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ store.CredentialStore = (*Store)(nil)

// New crea un store vacío.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(ctx context.Context, userID string) (*domain.ClientCredentials, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	b, ok := s.data[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	return store.Decode(b)
}

func (s *Store) Put(ctx context.Context, userID string, creds domain.ClientCredentials) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := store.Encode(creds)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[userID]; exists {
		return store.ErrAlreadyExists
	}
	s.data[userID] = b
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// Len retorna la cantidad de registros (útil en tests).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
