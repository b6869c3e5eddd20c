// Package health contiene el service para health checks.
package health

import (
	"context"
	"time"

	dto "github.com/dropDatabas3/hellokey/internal/http/dto/health"
	"github.com/dropDatabas3/hellokey/internal/observability/logger"
)

// Checker es un ping de una dependencia (store, cache).
type Checker func(ctx context.Context) error

// HealthService define las operaciones de health check.
type HealthService interface {
	Live(ctx context.Context) dto.HealthResponse
	Ready(ctx context.Context) dto.HealthResponse
}

type Deps struct {
	// Checks críticos: si alguno falla el servicio no está listo.
	Checks  map[string]Checker
	Version string
	Timeout time.Duration
}

type healthService struct {
	deps Deps
	now  func() time.Time
}

func NewHealthService(deps Deps) HealthService {
	if deps.Timeout <= 0 {
		deps.Timeout = 2 * time.Second
	}
	return &healthService{deps: deps, now: time.Now}
}

func (s *healthService) Live(context.Context) dto.HealthResponse {
	return dto.HealthResponse{Status: "ok", Version: s.deps.Version, Timestamp: s.now().UTC()}
}

func (s *healthService) Ready(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("health"), logger.Op("Ready"))

	resp := dto.HealthResponse{
		Status:     "ready",
		Version:    s.deps.Version,
		Components: make(map[string]dto.HealthStatus, len(s.deps.Checks)),
		Timestamp:  s.now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()

	for name, check := range s.deps.Checks {
		if err := check(ctx); err != nil {
			resp.Components[name] = dto.HealthStatus{Status: "error", Message: "unavailable"}
			resp.Status = "unavailable"
			log.Error("dependency unavailable", logger.Component(name), logger.Err(err))
			continue
		}
		resp.Components[name] = dto.HealthStatus{Status: "ok"}
	}
	return resp
}
