// Package metrics registra los collectors Prometheus del servicio.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once
	registerErr  error

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        *prometheus.GaugeVec

	credentialsIssuedTotal  *prometheus.CounterVec
	tokensMintedTotal       prometheus.Counter
	tokenVerificationsTotal *prometheus.CounterVec
	rateLimitedTotal        *prometheus.CounterVec

	providerRequestDuration *prometheus.HistogramVec
)

// Resultados de verificación de bearer tokens.
const (
	VerifyOK      = "ok"
	VerifyMissing = "missing"
	VerifyInvalid = "invalid"
	VerifyExpired = "expired"
)

// Register crea y registra los collectors en reg (default: el registry global)
// y devuelve el handler para /metrics. Es idempotente.
func Register(reg prometheus.Registerer) (http.Handler, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "path", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})

		httpInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo por método",
		}, []string{"method"})

		credentialsIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "credentials_issued_total",
			Help: "Pares client_id/secret emitidos por primera vez",
		}, []string{"provider"})

		tokensMintedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tokens_minted_total",
			Help: "Bearer tokens firmados",
		})

		tokenVerificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "token_verifications_total",
			Help: "Verificaciones de bearer token por resultado",
		}, []string{"result"})

		rateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rate_limited_total",
			Help: "Requests rechazadas por rate limit",
		}, []string{"path"})

		providerRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Latencia de llamadas al identity provider",
			Buckets: prometheus.ExponentialBuckets(0.025, 2, 10),
		}, []string{"provider", "op", "result"})

		for _, c := range []prometheus.Collector{
			httpRequestsTotal, httpRequestDuration, httpInflight,
			credentialsIssuedTotal, tokensMintedTotal, tokenVerificationsTotal, rateLimitedTotal,
			providerRequestDuration,
		} {
			if err := registerCollector(reg, c); err != nil {
				registerErr = err
				return
			}
		}
	})
	if registerErr != nil {
		return nil, registerErr
	}

	if g, ok := reg.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{}), nil
	}
	return promhttp.Handler(), nil
}

// registerCollector ignora duplicados.
func registerCollector(reg prometheus.Registerer, collector prometheus.Collector) error {
	if err := reg.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

// CredentialsIssued cuenta un par nuevo persistido.
func CredentialsIssued(provider string) {
	if credentialsIssuedTotal != nil {
		credentialsIssuedTotal.WithLabelValues(provider).Inc()
	}
}

// TokenMinted cuenta un bearer token firmado.
func TokenMinted() {
	if tokensMintedTotal != nil {
		tokensMintedTotal.Inc()
	}
}

// TokenVerified cuenta una verificación con su resultado (VerifyOK, ...).
func TokenVerified(result string) {
	if tokenVerificationsTotal != nil {
		tokenVerificationsTotal.WithLabelValues(result).Inc()
	}
}

// RateLimited cuenta un request rechazado por el limiter, por ruta.
func RateLimited(r *http.Request) {
	if rateLimitedTotal != nil {
		rateLimitedTotal.WithLabelValues(RouteLabel(r)).Inc()
	}
}
