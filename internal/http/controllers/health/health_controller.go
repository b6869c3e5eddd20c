// Package health contiene el controller para health checks.
package health

import (
	"net/http"

	"github.com/dropDatabas3/hellokey/internal/http/helpers"
	svc "github.com/dropDatabas3/hellokey/internal/http/services/health"
)

type HealthController struct {
	service svc.HealthService
}

func NewHealthController(service svc.HealthService) *HealthController {
	return &HealthController{service: service}
}

// Healthz: liveness, nunca toca dependencias.
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.service.Live(r.Context()))
}

// Readyz: 503 si alguna dependencia crítica falla.
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	resp := c.service.Ready(r.Context())
	status := http.StatusOK
	if resp.Status != "ready" {
		status = http.StatusServiceUnavailable
	}
	helpers.WriteJSON(w, status, resp)
}
