// Package articles contiene el controller de GET /api/scrape.
package articles

import (
	"net/http"

	"github.com/dropDatabas3/hellokey/internal/articles"
	dto "github.com/dropDatabas3/hellokey/internal/http/dto/articles"
	httperrors "github.com/dropDatabas3/hellokey/internal/http/errors"
	"github.com/dropDatabas3/hellokey/internal/http/helpers"
	"github.com/dropDatabas3/hellokey/internal/observability/logger"
)

type ScrapeController struct {
	source articles.Source
}

// NewScrapeController acepta source nil: la ruta responde 501.
func NewScrapeController(source articles.Source) *ScrapeController {
	return &ScrapeController{source: source}
}

func (c *ScrapeController) Scrape(w http.ResponseWriter, r *http.Request) {
	if c.source == nil {
		httperrors.WriteError(w, httperrors.ErrNotImplemented.WithCause(articles.ErrNoSource))
		return
	}
	list, err := c.source.Fetch(r.Context())
	if err != nil {
		logger.From(r.Context()).Error("article source failed", logger.Layer("controller"), logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrUpstream.WithCause(err))
		return
	}
	if list == nil {
		list = []articles.Article{}
	}
	helpers.WriteJSON(w, http.StatusOK, dto.ScrapeResponse{Result: list})
}
