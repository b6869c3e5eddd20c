package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dropDatabas3/hellokey/internal/validation"
)

// Config agrupa toda la configuración del servicio.
// Orden de carga: YAML -> defaults -> env (HELLOKEY_*) -> Validate.
type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env" env:"HELLOKEY_APP_ENV"`
	} `yaml:"app"`

	Server struct {
		Addr    string `yaml:"addr" env:"HELLOKEY_SERVER_ADDR"`
		BaseURL string `yaml:"base_url" env:"HELLOKEY_SERVER_BASE_URL"`
		// TrustProxy: tomar la IP del cliente de X-Forwarded-For (sólo detrás de un proxy propio).
		TrustProxy bool `yaml:"trust_proxy" env:"HELLOKEY_SERVER_TRUST_PROXY"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level" env:"HELLOKEY_LOG_LEVEL"`
	} `yaml:"log"`

	Storage struct {
		// memory | redis | postgres | sqlite | mongo
		Driver string `yaml:"driver" env:"HELLOKEY_STORAGE_DRIVER"`
		DSN    string `yaml:"dsn" env:"HELLOKEY_STORAGE_DSN"`
		Redis  struct {
			Addr     string `yaml:"addr" env:"HELLOKEY_STORAGE_REDIS_ADDR"`
			DB       int    `yaml:"db" env:"HELLOKEY_STORAGE_REDIS_DB"`
			Password string `yaml:"password" env:"HELLOKEY_STORAGE_REDIS_PASSWORD"`
			Prefix   string `yaml:"prefix" env:"HELLOKEY_STORAGE_REDIS_PREFIX"`
		} `yaml:"redis"`
		Mongo struct {
			URI      string `yaml:"uri" env:"HELLOKEY_STORAGE_MONGO_URI"`
			Database string `yaml:"database" env:"HELLOKEY_STORAGE_MONGO_DATABASE"`
		} `yaml:"mongo"`
	} `yaml:"storage"`

	Cache struct {
		// memory | redis
		Kind  string `yaml:"kind" env:"HELLOKEY_CACHE_KIND"`
		Redis struct {
			Addr     string `yaml:"addr" env:"HELLOKEY_CACHE_REDIS_ADDR"`
			DB       int    `yaml:"db" env:"HELLOKEY_CACHE_REDIS_DB"`
			Password string `yaml:"password" env:"HELLOKEY_CACHE_REDIS_PASSWORD"`
			Prefix   string `yaml:"prefix" env:"HELLOKEY_CACHE_REDIS_PREFIX"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	OAuth struct {
		PKCE         *bool         `yaml:"pkce" env:"HELLOKEY_OAUTH_PKCE"`
		StateTTL     time.Duration `yaml:"state_ttl" env:"HELLOKEY_OAUTH_STATE_TTL"`
		CookieName   string        `yaml:"cookie_name" env:"HELLOKEY_OAUTH_COOKIE_NAME"`
		CookieSecure bool          `yaml:"cookie_secure" env:"HELLOKEY_OAUTH_COOKIE_SECURE"`
	} `yaml:"oauth"`

	Providers struct {
		GitHub struct {
			ClientID     string   `yaml:"client_id" env:"HELLOKEY_GITHUB_CLIENT_ID"`
			ClientSecret string   `yaml:"client_secret" env:"HELLOKEY_GITHUB_CLIENT_SECRET"`
			RedirectURL  string   `yaml:"redirect_url" env:"HELLOKEY_GITHUB_REDIRECT_URL"`
			Scopes       []string `yaml:"scopes" env:"HELLOKEY_GITHUB_SCOPES" envSeparator:","`
			// overrides para GitHub Enterprise / tests
			AuthURL  string `yaml:"auth_url" env:"HELLOKEY_GITHUB_AUTH_URL"`
			TokenURL string `yaml:"token_url" env:"HELLOKEY_GITHUB_TOKEN_URL"`
			APIURL   string `yaml:"api_url" env:"HELLOKEY_GITHUB_API_URL"`
		} `yaml:"github"`
	} `yaml:"providers"`

	Auth struct {
		TokenSecret string        `yaml:"token_secret" env:"HELLOKEY_TOKEN_SECRET"`
		TokenTTL    time.Duration `yaml:"token_ttl" env:"HELLOKEY_TOKEN_TTL"`
	} `yaml:"auth"`

	Rate struct {
		Enabled     bool          `yaml:"enabled" env:"HELLOKEY_RATE_ENABLED"`
		Window      time.Duration `yaml:"window" env:"HELLOKEY_RATE_WINDOW"`
		MaxRequests int           `yaml:"max_requests" env:"HELLOKEY_RATE_MAX_REQUESTS"`
	} `yaml:"rate"`

	Articles struct {
		// YAML con `articles:`; vacío => /api/scrape responde 501
		File string `yaml:"file" env:"HELLOKEY_ARTICLES_FILE"`
	} `yaml:"articles"`
}

// Errores de validación
var (
	ErrMissingGitHubClient = errors.New("providers.github.client_id and client_secret are required")
	ErrMissingTokenSecret  = errors.New("auth.token_secret is required")
	ErrMissingRedirectURL  = errors.New("providers.github.redirect_url or server.base_url is required")
	ErrUnknownDriver       = errors.New("unknown storage.driver")
	ErrUnknownCacheKind    = errors.New("unknown cache.kind")
)

// Load lee el YAML (si path != ""), aplica defaults y overrides de entorno.
// No valida; el caller decide cuándo llamar Validate.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// env pisa al YAML sólo para las vars presentes
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.Redis.Prefix == "" {
		c.Storage.Redis.Prefix = "hellokey:creds"
	}
	if c.Storage.Mongo.Database == "" {
		c.Storage.Mongo.Database = "hellokey"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "hellokey:state"
	}
	if c.OAuth.PKCE == nil {
		on := true
		c.OAuth.PKCE = &on
	}
	if c.OAuth.StateTTL <= 0 {
		c.OAuth.StateTTL = 10 * time.Minute
	}
	if c.OAuth.CookieName == "" {
		c.OAuth.CookieName = "auth_token"
	}
	gh := &c.Providers.GitHub
	if len(gh.Scopes) == 0 {
		gh.Scopes = []string{"user:email", "read:user", "read:org", "public_repo"}
	}
	if gh.RedirectURL == "" && c.Server.BaseURL != "" {
		gh.RedirectURL = strings.TrimRight(c.Server.BaseURL, "/") + "/callback/github"
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = time.Hour
	}
	if c.Rate.Window <= 0 {
		c.Rate.Window = time.Minute
	}
	if c.Rate.MaxRequests <= 0 {
		c.Rate.MaxRequests = 60
	}
}

// PKCEEnabled devuelve oauth.pkce (default true).
func (c *Config) PKCEEnabled() bool {
	return c.OAuth.PKCE == nil || *c.OAuth.PKCE
}

// Validate chequea los valores críticos; todos los errores juntos.
func (c *Config) Validate() error {
	var errs []error
	gh := c.Providers.GitHub
	if gh.ClientID == "" || gh.ClientSecret == "" {
		errs = append(errs, ErrMissingGitHubClient)
	}
	if gh.RedirectURL == "" {
		errs = append(errs, ErrMissingRedirectURL)
	}
	if err := validation.ValidateScopes(gh.Scopes); err != nil {
		errs = append(errs, fmt.Errorf("providers.github.scopes: %w", err))
	}
	if c.Auth.TokenSecret == "" {
		errs = append(errs, ErrMissingTokenSecret)
	}
	switch c.Storage.Driver {
	case "memory", "redis", "postgres", "sqlite", "mongo":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.Driver))
	}
	switch c.Cache.Kind {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownCacheKind, c.Cache.Kind))
	}
	return errors.Join(errs...)
}
