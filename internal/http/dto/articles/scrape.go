// Package articles contiene los DTOs de /api/scrape.
package articles

import "github.com/dropDatabas3/hellokey/internal/articles"

type ScrapeResponse struct {
	Result []articles.Article `json:"Result"`
}
