package jwt

import (
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// DefaultTTL es la vida de un bearer token.
const DefaultTTL = time.Hour

// Claims del bearer token: sub = login handle, company = display name.
type Claims struct {
	Company string `json:"company"`
	jwtv5.RegisteredClaims
}

// Service firma y verifica bearer tokens HS256.
type Service struct {
	keys Keys
	ttl  time.Duration
	now  func() time.Time
}

type Option func(*Service)

// WithTTL cambia la vida de los tokens emitidos.
func WithTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithClock inyecta el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(keys Keys, opts ...Option) *Service {
	s := &Service{keys: keys, ttl: DefaultTTL, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Mint firma un token para subject/company y devuelve su expiración.
func (s *Service) Mint(subject, company string) (string, time.Time, error) {
	if len(s.keys.hmac()) == 0 {
		return "", time.Time{}, fmt.Errorf("%w: no signing key", ErrTokenCreation)
	}
	now := s.now().Truncate(time.Second)
	exp := now.Add(s.ttl)

	claims := Claims{
		Company: company,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"
	signed, err := tk.SignedString(s.keys.hmac())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrTokenCreation, err)
	}
	return signed, exp, nil
}
