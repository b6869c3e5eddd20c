// Package articles define el colaborador detrás de /api/scrape.
// El scraping en sí vive fuera de este servicio; acá sólo se define el
// contrato y una fuente estática cargada desde YAML.
package articles

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoSource indica que no hay fuente configurada.
var ErrNoSource = errors.New("articles: no source configured")

type Article struct {
	Title      string `json:"title" yaml:"title"`
	Link       string `json:"link" yaml:"link"`
	Time       string `json:"time" yaml:"time"`
	Author     string `json:"author" yaml:"author"`
	SourceLink string `json:"sourcelink" yaml:"sourcelink"`
	SourceName string `json:"sourcename" yaml:"sourcename"`
	ImageLink  string `json:"image_link" yaml:"image_link"`
}

// Source entrega la lista actual de artículos.
type Source interface {
	Fetch(ctx context.Context) ([]Article, error)
}

// Static es una fuente fija en memoria.
type Static []Article

func (s Static) Fetch(context.Context) ([]Article, error) {
	out := make([]Article, len(s))
	copy(out, s)
	return out, nil
}

// LoadFile lee un YAML con la forma `articles: [...]`.
func LoadFile(path string) (Static, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("articles: read %s: %w", path, err)
	}
	var doc struct {
		Articles []Article `yaml:"articles"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("articles: parse %s: %w", path, err)
	}
	return Static(doc.Articles), nil
}
