// Package store provee el registry de adaptadores de almacenamiento de credenciales.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Adapter representa un backend capaz de abrir un CredentialStore.
type Adapter interface {
	// Name retorna el nombre del driver (ej: "memory", "redis", "postgres", "sqlite", "mongo").
	Name() string

	// Connect establece conexión con el almacenamiento.
	Connect(ctx context.Context, cfg AdapterConfig) (CredentialStore, error)
}

// AdapterConfig configuración para conectar a un almacenamiento.
type AdapterConfig struct {
	// Driver: "memory" | "redis" | "postgres" | "sqlite" | "mongo"
	Driver string

	// DSN connection string (postgres, sqlite path)
	DSN string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Prefix para las keys (redis) o nombre de tabla/colección (sql, mongo).
	Prefix string

	// Mongo
	MongoURI      string
	MongoDatabase string
}

// ─── Registry Global ───

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// RegisterAdapter registra un adapter en el registry global.
// Llamar en init() de cada adapter.
func RegisterAdapter(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := a.Name()
	if _, exists := adapters[name]; exists {
		panic(fmt.Sprintf("adapter: %q already registered", name))
	}
	adapters[name] = a
}

// GetAdapter obtiene un adapter por nombre.
func GetAdapter(name string) (Adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[name]
	return a, ok
}

// ListAdapters retorna los nombres de todos los adapters registrados, ordenados.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open busca el adapter por driver y abre la conexión.
func Open(ctx context.Context, cfg AdapterConfig) (CredentialStore, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = "memory"
	}
	a, ok := GetAdapter(driver)
	if !ok {
		return nil, fmt.Errorf("store: unknown driver %q (registered: %s)", driver, strings.Join(ListAdapters(), ", "))
	}
	cs, err := a.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store: connect %s: %w", driver, err)
	}
	return cs, nil
}
