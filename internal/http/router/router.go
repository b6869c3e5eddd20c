// Package router arma el árbol de rutas (chi) del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/hellokey/internal/http/controllers"
	httperrors "github.com/dropDatabas3/hellokey/internal/http/errors"
	mw "github.com/dropDatabas3/hellokey/internal/http/middlewares"
	"github.com/dropDatabas3/hellokey/internal/metrics"
	"github.com/dropDatabas3/hellokey/internal/rate"
)

type Deps struct {
	Controllers *controllers.Controllers
	Tokens      mw.TokenVerifier
	// Limiter es opcional; aplica a /authorize y /callback/{provider}.
	Limiter rate.Limiter
	// TrustProxy habilita X-Forwarded-For como IP del cliente para el limiter.
	TrustProxy bool
	// Metrics es el handler de /metrics; nil deshabilita la ruta.
	Metrics http.Handler
}

// New devuelve el handler raíz con los middlewares globales aplicados.
func New(d Deps) http.Handler {
	c := d.Controllers
	r := chi.NewRouter()
	r.Use(metrics.WithMetrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	// ===========================================================================
	// Operacionales
	// ===========================================================================
	r.Get("/healthz", c.Health.Healthz)
	r.Get("/readyz", c.Health.Readyz)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	// ===========================================================================
	// Handshake OAuth + credenciales
	// ===========================================================================
	rl := mw.WithRateLimit(d.Limiter, mw.RateKey(d.TrustProxy))

	r.Group(func(r chi.Router) {
		r.Use(mw.WithNoStore())
		r.Get("/oauth/{provider}", c.Start.Start)
		r.Method(http.MethodGet, "/callback/{provider}", mw.Chain(http.HandlerFunc(c.Callback.Callback), rl))
		r.Method(http.MethodPost, "/authorize", mw.Chain(http.HandlerFunc(c.Authorize.Authorize), rl))
	})

	// ===========================================================================
	// Rutas protegidas por bearer token
	// ===========================================================================
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireBearer(d.Tokens))
		r.Get("/api/scrape", c.Scrape.Scrape)
	})

	return mw.Chain(r,
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithRecover(),
		mw.WithSecurityHeaders(),
	)
}
