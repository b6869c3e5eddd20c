package middlewares

import (
	"errors"
	"net/http"

	httperrors "github.com/dropDatabas3/hellokey/internal/http/errors"
	"github.com/dropDatabas3/hellokey/internal/jwt"
	"github.com/dropDatabas3/hellokey/internal/metrics"
	"github.com/dropDatabas3/hellokey/internal/observability/logger"
)

// TokenVerifier valida el header Authorization completo.
type TokenVerifier interface {
	Verify(authorization string) (*jwt.Claims, error)
}

// RequireBearer deja pasar sólo requests con un bearer token válido.
// Sólo filtra: el request llega al handler tal cual entró.
func RequireBearer(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := v.Verify(r.Header.Get("Authorization")); err != nil {
				appErr, result := mapTokenError(err)
				metrics.TokenVerified(result)
				logger.From(r.Context()).Debug("bearer rejected", logger.String("reason", result))
				httperrors.WriteError(w, appErr)
				return
			}
			metrics.TokenVerified(metrics.VerifyOK)
			next.ServeHTTP(w, r)
		})
	}
}

func mapTokenError(err error) (*httperrors.AppError, string) {
	switch {
	case errors.Is(err, jwt.ErrMissingToken):
		return httperrors.ErrMissingToken, metrics.VerifyMissing
	case errors.Is(err, jwt.ErrExpiredToken):
		return httperrors.ErrExpiredToken, metrics.VerifyExpired
	default:
		return httperrors.ErrInvalidToken, metrics.VerifyInvalid
	}
}
