// Package server arma el handler HTTP completo a partir de config.Config.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dropDatabas3/hellokey/internal/articles"
	"github.com/dropDatabas3/hellokey/internal/cache"
	"github.com/dropDatabas3/hellokey/internal/config"
	"github.com/dropDatabas3/hellokey/internal/credentials"
	"github.com/dropDatabas3/hellokey/internal/http/controllers"
	"github.com/dropDatabas3/hellokey/internal/http/router"
	"github.com/dropDatabas3/hellokey/internal/http/services"
	"github.com/dropDatabas3/hellokey/internal/jwt"
	"github.com/dropDatabas3/hellokey/internal/metrics"
	idp "github.com/dropDatabas3/hellokey/internal/oauth"
	"github.com/dropDatabas3/hellokey/internal/oauth/github"
	"github.com/dropDatabas3/hellokey/internal/observability/logger"
	"github.com/dropDatabas3/hellokey/internal/rate"
	"github.com/dropDatabas3/hellokey/internal/store"
)

// Version se setea con -ldflags en el build.
var Version = "dev"

// Options permite inyectar piezas ya construidas (tests, CLI).
// Cualquier campo nil se construye desde config.
type Options struct {
	Store      store.CredentialStore
	States     cache.Client
	HTTPClient *http.Client
	Issuer     credentials.Issuer
	Registerer prometheus.Registerer
}

// App es el resultado del wiring.
type App struct {
	Handler http.Handler
	Store   store.CredentialStore
	Tokens  *jwt.Service

	closers []func() error
}

// Close libera store, cache y clientes redis en orden inverso.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Build valida la config y construye todas las dependencias.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log := logger.L().With(logger.Component("server"))
	app := &App{}

	// ─── Token service ───
	keys, err := jwt.NewKeys(cfg.Auth.TokenSecret)
	if err != nil {
		return nil, fmt.Errorf("token secret: %w", err)
	}
	app.Tokens = jwt.NewService(keys, jwt.WithTTL(cfg.Auth.TokenTTL))

	// ─── Credential store ───
	st := opts.Store
	if st == nil {
		st, err = OpenStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, st.Close)
	}
	app.Store = st

	// ─── State cache + rate limiter ───
	states := opts.States
	if states == nil {
		states, err = cache.New(cache.Config{
			Kind:     cfg.Cache.Kind,
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.closers = append(app.closers, states.Close)
	}

	// el limiter comparte backend con el cache de state
	var limiter rate.Limiter
	if cfg.Rate.Enabled {
		if client, ok := cache.RedisOf(states); ok {
			limiter = rate.NewRedisLimiter(client, "rl:", cfg.Rate.MaxRequests, cfg.Rate.Window)
		} else {
			limiter = rate.NewMemoryLimiter(cfg.Rate.MaxRequests, cfg.Rate.Window)
		}
	}

	// ─── Identity provider ───
	gh := cfg.Providers.GitHub
	provider := github.New(github.Config{
		ClientID:     gh.ClientID,
		ClientSecret: gh.ClientSecret,
		RedirectURL:  gh.RedirectURL,
		Scopes:       gh.Scopes,
		AuthURL:      gh.AuthURL,
		TokenURL:     gh.TokenURL,
		APIURL:       gh.APIURL,
		HTTPClient:   opts.HTTPClient,
	})
	providers := idp.NewRegistry(provider)

	// ─── Articles (opcional) ───
	var source articles.Source
	if cfg.Articles.File != "" {
		static, err := articles.LoadFile(cfg.Articles.File)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("articles: %w", err)
		}
		source = static
	}

	metricsHandler, err := metrics.Register(opts.Registerer)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("metrics: %w", err)
	}

	svcs := services.New(services.Deps{
		Store:     st,
		States:    states,
		Providers: providers,
		Profiles:  provider,
		Issuer:    opts.Issuer,
		Tokens:    app.Tokens,
		Articles:  source,
		PKCE:      cfg.PKCEEnabled(),
		StateTTL:  cfg.OAuth.StateTTL,
		Version:   Version,
	})

	ctrls := controllers.New(svcs, controllers.CookieOptions{
		Name:   cfg.OAuth.CookieName,
		Secure: cfg.OAuth.CookieSecure,
		MaxAge: cfg.OAuth.StateTTL,
	})

	app.Handler = router.New(router.Deps{
		Controllers: ctrls,
		Tokens:      app.Tokens,
		Limiter:     limiter,
		TrustProxy:  cfg.Server.TrustProxy,
		Metrics:     metricsHandler,
	})

	log.Info("handler ready",
		logger.Driver(cfg.Storage.Driver),
		logger.String("cache", cfg.Cache.Kind),
		logger.Bool("pkce", cfg.PKCEEnabled()),
		logger.Bool("rate_limit", limiter != nil),
		logger.Bool("articles", source != nil),
	)
	return app, nil
}

// OpenStore abre el CredentialStore configurado. Requiere que los adapters
// estén registrados (import de store/adapters/all en cmd).
func OpenStore(ctx context.Context, cfg *config.Config) (store.CredentialStore, error) {
	ac := store.AdapterConfig{
		Driver:        cfg.Storage.Driver,
		DSN:           cfg.Storage.DSN,
		RedisAddr:     cfg.Storage.Redis.Addr,
		RedisPassword: cfg.Storage.Redis.Password,
		RedisDB:       cfg.Storage.Redis.DB,
		MongoURI:      cfg.Storage.Mongo.URI,
		MongoDatabase: cfg.Storage.Mongo.Database,
	}
	// Prefix es key prefix en redis; en sql/mongo sería el nombre de tabla.
	if cfg.Storage.Driver == "redis" {
		ac.Prefix = cfg.Storage.Redis.Prefix
	}
	st, err := store.Open(ctx, ac)
	if err != nil {
		return nil, err
	}
	return st, nil
}
