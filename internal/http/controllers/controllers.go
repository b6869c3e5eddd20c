// Package controllers agrupa los controllers por dominio.
package controllers

import (
	"time"

	"github.com/dropDatabas3/hellokey/internal/http/controllers/articles"
	"github.com/dropDatabas3/hellokey/internal/http/controllers/authorize"
	"github.com/dropDatabas3/hellokey/internal/http/controllers/health"
	"github.com/dropDatabas3/hellokey/internal/http/controllers/oauth"
	"github.com/dropDatabas3/hellokey/internal/http/services"
)

type Controllers struct {
	Start     *oauth.StartController
	Callback  *oauth.CallbackController
	Authorize *authorize.Controller
	Health    *health.HealthController
	Scrape    *articles.ScrapeController
}

// CookieOptions configura la cookie CSRF del handshake.
type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

func New(s services.Services, co CookieOptions) *Controllers {
	cookie := oauth.CookieConfig{Name: co.Name, Secure: co.Secure, MaxAge: co.MaxAge}
	return &Controllers{
		Start:     oauth.NewStartController(s.OAuth.Start, cookie),
		Callback:  oauth.NewCallbackController(s.OAuth.Callback, cookie),
		Authorize: authorize.NewController(s.Authorize),
		Health:    health.NewHealthController(s.Health),
		Scrape:    articles.NewScrapeController(s.Articles),
	}
}
