package jwt

import (
	"errors"
	"strings"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

// Verify valida un header Authorization completo ("Bearer <jwt>").
// El orden de los chequeos fija qué error ve el cliente:
// vacío → ErrMissingToken, sin prefijo o firma inválida → ErrInvalidToken,
// exp <= now → ErrExpiredToken.
func (s *Service) Verify(authorization string) (*Claims, error) {
	if authorization == "" {
		return nil, ErrMissingToken
	}
	raw, ok := strings.CutPrefix(authorization, bearerPrefix)
	if !ok || raw == "" {
		return nil, ErrInvalidToken
	}
	return s.Parse(raw)
}

// Parse valida un JWT sin el prefijo Bearer.
func (s *Service) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwtv5.ParseWithClaims(raw, claims,
		func(*jwtv5.Token) (any, error) { return s.keys.hmac(), nil },
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}

	// exp == now también cuenta como vencido
	if !claims.ExpiresAt.After(s.now()) {
		return nil, ErrExpiredToken
	}
	return claims, nil
}
