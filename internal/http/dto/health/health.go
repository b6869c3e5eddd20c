// Package health contiene los DTOs de /healthz y /readyz.
package health

import "time"

type HealthStatus struct {
	Status  string `json:"status"` // ok | error
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status     string                  `json:"status"` // ok | ready | unavailable
	Version    string                  `json:"version,omitempty"`
	Components map[string]HealthStatus `json:"components,omitempty"`
	Timestamp  time.Time               `json:"timestamp"`
}
