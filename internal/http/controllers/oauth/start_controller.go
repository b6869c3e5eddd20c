package oauth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/hellokey/internal/http/errors"
	svc "github.com/dropDatabas3/hellokey/internal/http/services/oauth"
	"github.com/dropDatabas3/hellokey/internal/observability/logger"
)

// StartController maneja GET /oauth/{provider}.
type StartController struct {
	service svc.StartService
	cookie  CookieConfig
}

func NewStartController(service svc.StartService, cookie CookieConfig) *StartController {
	return &StartController{service: service, cookie: cookie}
}

func (c *StartController) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	provider := chi.URLParam(r, "provider")
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("StartController.Start"), logger.Provider(provider))

	result, err := c.service.Start(ctx, provider)
	if err != nil {
		if errors.Is(err, svc.ErrUnknownProvider) {
			httperrors.WriteError(w, httperrors.ErrUnknownProvider)
			return
		}
		log.Error("start failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithCause(err))
		return
	}

	c.cookie.set(w, result.CSRFToken)
	http.Redirect(w, r, result.URL, http.StatusFound)
	log.Debug("redirect to provider")
}
