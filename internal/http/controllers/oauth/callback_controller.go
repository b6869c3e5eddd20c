package oauth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/hellokey/internal/http/dto/oauth"
	httperrors "github.com/dropDatabas3/hellokey/internal/http/errors"
	"github.com/dropDatabas3/hellokey/internal/http/helpers"
	svc "github.com/dropDatabas3/hellokey/internal/http/services/oauth"
	"github.com/dropDatabas3/hellokey/internal/observability/logger"
)

// CallbackController maneja GET /callback/{provider}.
type CallbackController struct {
	service svc.CallbackService
	cookie  CookieConfig
}

func NewCallbackController(service svc.CallbackService, cookie CookieConfig) *CallbackController {
	return &CallbackController{service: service, cookie: cookie}
}

func (c *CallbackController) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	provider := chi.URLParam(r, "provider")
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CallbackController.Callback"), logger.Provider(provider))

	q := r.URL.Query()
	creds, err := c.service.Complete(ctx, svc.CallbackRequest{
		Provider:      provider,
		Code:          strings.TrimSpace(q.Get("code")),
		State:         strings.TrimSpace(q.Get("state")),
		CookieState:   c.cookie.read(r),
		ProviderError: strings.TrimSpace(q.Get("error")),
	})
	if err != nil {
		appErr := mapCallbackError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			log.Error("callback failed", logger.Err(err))
		} else {
			log.Warn("callback rejected", logger.String("code", appErr.Code))
		}
		httperrors.WriteError(w, appErr)
		return
	}

	c.cookie.clear(w)
	helpers.WriteJSON(w, http.StatusOK, dto.CallbackResponse{Result: *creds})
}

func mapCallbackError(err error) *httperrors.AppError {
	var denied *svc.ProviderDeniedError
	switch {
	case errors.As(err, &denied):
		return httperrors.ProviderError(denied.Text)
	case errors.Is(err, svc.ErrUnknownProvider):
		return httperrors.ErrUnknownProvider
	case errors.Is(err, svc.ErrInvalidCode):
		return httperrors.ErrInvalidCode
	case errors.Is(err, svc.ErrInvalidCSRF):
		return httperrors.ErrInvalidCSRF
	case errors.Is(err, svc.ErrRequestExpired):
		return httperrors.ErrAuthRequestExpired
	case errors.Is(err, svc.ErrUpstream):
		return httperrors.ErrUpstream.WithCause(err)
	case errors.Is(err, svc.ErrStore):
		return httperrors.ErrStore.WithCause(err)
	default:
		return httperrors.ErrInternalServerError.WithCause(err)
	}
}
