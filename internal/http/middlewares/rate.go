package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	httperrors "github.com/dropDatabas3/hellokey/internal/http/errors"
	"github.com/dropDatabas3/hellokey/internal/metrics"
	"github.com/dropDatabas3/hellokey/internal/observability/logger"
	"github.com/dropDatabas3/hellokey/internal/rate"
)

// clientIP es la IP del peer TCP. No mira headers: el cliente los controla.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// forwardedIP usa el primer hop de X-Forwarded-For. Sólo vale detrás de un
// proxy propio que reescribe el header.
func forwardedIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		if ip := strings.TrimSpace(strings.Split(xf, ",")[0]); ip != "" {
			return ip
		}
	}
	return clientIP(r)
}

// RateKeyFunc define cómo generar la clave de rate limiting.
type RateKeyFunc func(r *http.Request) string

// DefaultRateKey: IP del peer + path.
func DefaultRateKey(r *http.Request) string {
	return clientIP(r) + "|" + r.URL.Path
}

// ProxyRateKey: IP de X-Forwarded-For + path.
func ProxyRateKey(r *http.Request) string {
	return forwardedIP(r) + "|" + r.URL.Path
}

// RateKey elige la clave según si hay un proxy de confianza adelante.
func RateKey(trustProxy bool) RateKeyFunc {
	if trustProxy {
		return ProxyRateKey
	}
	return DefaultRateKey
}

// WithRateLimit rechaza con 429 cuando el limiter lo indica. Un error del
// limiter deja pasar el request.
func WithRateLimit(limiter rate.Limiter, keyFn RateKeyFunc) Middleware {
	if limiter == nil {
		return nil
	}
	if keyFn == nil {
		keyFn = DefaultRateKey
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), keyFn(r))
			if err != nil {
				logger.From(r.Context()).Warn("rate limiter error", logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			if !res.Allowed {
				if secs := int(res.RetryAfter.Seconds()); secs > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(secs))
				}
				metrics.RateLimited(r)
				httperrors.WriteError(w, httperrors.ErrRateLimitExceeded)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
