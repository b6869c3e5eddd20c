// Package authorize contiene el controller de POST /authorize.
package authorize

import (
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/hellokey/internal/http/dto/authorize"
	httperrors "github.com/dropDatabas3/hellokey/internal/http/errors"
	"github.com/dropDatabas3/hellokey/internal/http/helpers"
	svc "github.com/dropDatabas3/hellokey/internal/http/services/authorize"
	"github.com/dropDatabas3/hellokey/internal/observability/logger"
)

type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Authorize lee las credenciales de los headers client_id, client_secret y user_id.
func (c *Controller) Authorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AuthorizeController.Authorize"))

	res, err := c.service.Authorize(ctx, svc.Request{
		ClientID:     r.Header.Get("client_id"),
		ClientSecret: r.Header.Get("client_secret"),
		UserID:       r.Header.Get("user_id"),
	})
	if err != nil {
		appErr := mapError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			log.Error("authorize failed", logger.Err(err))
		}
		httperrors.WriteError(w, appErr)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.TokenResponse{Token: res.Token, TokenType: res.TokenType})
}

func mapError(err error) *httperrors.AppError {
	switch {
	case errors.Is(err, svc.ErrInvalidClient):
		return httperrors.ErrClientIDOrSecret
	case errors.Is(err, svc.ErrMissingUserID):
		return httperrors.ErrMissingUserID
	case errors.Is(err, svc.ErrStore):
		return httperrors.ErrStore.WithCause(err)
	case errors.Is(err, svc.ErrUpstream):
		return httperrors.ErrUpstream.WithCause(err)
	case errors.Is(err, svc.ErrTokenCreation):
		return httperrors.ErrTokenCreation.WithCause(err)
	default:
		return httperrors.ErrInternalServerError.WithCause(err)
	}
}
