package articles

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
articles:
  - title: Go 1.24 released
    link: https://go.dev/blog/go1.24
    sourcename: go.dev
    image_link: https://go.dev/images/gophers.png
`), 0o600))

	src, err := LoadFile(path)
	require.NoError(t, err)

	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Go 1.24 released", got[0].Title)
	assert.Equal(t, "go.dev", got[0].SourceName)
	assert.Equal(t, "https://go.dev/images/gophers.png", got[0].ImageLink)

	got[0].Title = "mutated"
	again, _ := src.Fetch(context.Background())
	assert.Equal(t, "Go 1.24 released", again[0].Title)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("articles: {not: [a list"), 0o600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}
