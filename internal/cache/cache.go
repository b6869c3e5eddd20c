// Package cache provee abstracciones para estado efímero con soporte multi-backend.
//
// Soporta:
//   - Memory (in-process, go-cache; para desarrollo o una sola instancia)
//   - Redis (distribuido, para producción con varias instancias)
//
// Se usa para guardar el PKCE verifier de cada authorization request,
// indexado por el CSRF token, hasta que vuelve el callback.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Client define las operaciones de cache.
type Client interface {
	// Get obtiene un valor. Retorna ErrNotFound si no existe.
	Get(ctx context.Context, key string) (string, error)

	// Set guarda un valor con TTL opcional.
	// Si ttl es 0, no expira.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Take obtiene y elimina una key de forma atómica (single-use).
	// Retorna ErrNotFound si no existe o expiró.
	Take(ctx context.Context, key string) (string, error)

	// Delete elimina una key.
	Delete(ctx context.Context, key string) error

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	// Close cierra la conexión.
	Close() error
}

// Config configuración para crear un cliente de cache.
type Config struct {
	Kind     string // "memory" | "redis"
	Addr     string
	Password string
	DB       int
	Prefix   string // Prefijo para todas las keys
}

// ErrNotFound indica que la key no existe o expiró.
var ErrNotFound = errors.New("cache: key not found")

// IsNotFound verifica si el error es porque la key no existe.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// New crea un cliente de cache según la configuración.
func New(cfg Config) (Client, error) {
	switch cfg.Kind {
	case "redis":
		return NewRedis(cfg)
	default:
		return NewMemory(cfg.Prefix), nil
	}
}

func prefixed(prefix, k string) string {
	prefix = strings.TrimRight(prefix, ":")
	if prefix == "" {
		return k
	}
	return prefix + ":" + k
}
