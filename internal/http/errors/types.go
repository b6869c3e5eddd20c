package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError es la forma estándar de los errores que llegan al cliente.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // causa original, solo para logs
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New crea un nuevo AppError
func New(status int, code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
	}
}

// Wrap crea un AppError envolviendo un error existente
func Wrap(err error, status int, code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
		Err:        err,
	}
}

// FromError busca un *AppError en la cadena; si no hay, devuelve un 500
// genérico conservando la causa.
func FromError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServerError.WithCause(err)
}

// WithDetail devuelve una COPIA con detail seteado.
func (e *AppError) WithDetail(detail string) *AppError {
	newErr := *e
	newErr.Detail = detail
	return &newErr
}

// WithCause devuelve una COPIA con la causa seteada.
func (e *AppError) WithCause(err error) *AppError {
	newErr := *e
	newErr.Err = err
	return &newErr
}

// ProviderError refleja el parámetro "error" que devolvió el identity provider.
func ProviderError(text string) *AppError {
	return New(http.StatusBadRequest, "PROVIDER_ERROR", "Error: "+text)
}

// =================================================================================
// ERRORES PREDEFINIDOS
// =================================================================================

// 400
var (
	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Bad request",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidCode = &AppError{
		Code:       "INVALID_CODE",
		Message:    "Invalid code",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidCSRF = &AppError{
		Code:       "INVALID_CSRF_TOKEN",
		Message:    "Invalid CSRF Token",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrAuthRequestExpired = &AppError{
		Code:       "AUTH_REQUEST_EXPIRED",
		Message:    "Authorization request expired",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrClientIDOrSecret = &AppError{
		Code:       "INVALID_CLIENT",
		Message:    "Invalid Client ID or Secret",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrMissingUserID = &AppError{
		Code:       "MISSING_USER_ID",
		Message:    "Missing User ID",
		HTTPStatus: http.StatusBadRequest,
	}
)

// 401 / 403
var (
	ErrInvalidToken = &AppError{
		Code:       "INVALID_TOKEN",
		Message:    "Invalid Token",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrMissingToken = &AppError{
		Code:       "MISSING_TOKEN",
		Message:    "Missing Token",
		HTTPStatus: http.StatusForbidden,
	}

	ErrExpiredToken = &AppError{
		Code:       "EXPIRED_TOKEN",
		Message:    "Expired Token",
		HTTPStatus: http.StatusForbidden,
	}
)

// 404 / 405 / 429
var (
	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrUnknownProvider = &AppError{
		Code:       "UNKNOWN_PROVIDER",
		Message:    "Unknown provider",
		HTTPStatus: http.StatusNotFound,
	}

	ErrMethodNotAllowed = &AppError{
		Code:       "METHOD_NOT_ALLOWED",
		Message:    "Method not allowed",
		HTTPStatus: http.StatusMethodNotAllowed,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Too many requests",
		HTTPStatus: http.StatusTooManyRequests,
	}
)

// 500+
var (
	ErrInternalServerError = &AppError{
		Code:       "INTERNAL_SERVER_ERROR",
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
	}

	ErrTokenCreation = &AppError{
		Code:       "TOKEN_CREATION_ERROR",
		Message:    "Token Creation Error",
		HTTPStatus: http.StatusInternalServerError,
	}

	ErrStore = &AppError{
		Code:       "STORE_ERROR",
		Message:    "Credential store error",
		HTTPStatus: http.StatusInternalServerError,
	}

	ErrUpstream = &AppError{
		Code:       "UPSTREAM_ERROR",
		Message:    "Identity provider error",
		HTTPStatus: http.StatusInternalServerError,
	}

	ErrNotImplemented = &AppError{
		Code:       "NOT_IMPLEMENTED",
		Message:    "Not implemented",
		HTTPStatus: http.StatusNotImplemented,
	}

	ErrServiceUnavailable = &AppError{
		Code:       "SERVICE_UNAVAILABLE",
		Message:    "Service unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
	}
)
