package oauth

import (
	"net/http"
	"time"
)

// DefaultCookieName es la cookie que ata el callback al navegador que inició el flujo.
const DefaultCookieName = "auth_token"

// CookieConfig controla la cookie CSRF.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration // 0: cookie de sesión
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

func (c CookieConfig) set(w http.ResponseWriter, value string) {
	ck := &http.Cookie{
		Name:     c.name(),
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if c.MaxAge > 0 {
		ck.MaxAge = int(c.MaxAge.Seconds())
	}
	http.SetCookie(w, ck)
}

func (c CookieConfig) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieConfig) read(r *http.Request) string {
	ck, err := r.Cookie(c.name())
	if err != nil {
		return ""
	}
	return ck.Value
}
