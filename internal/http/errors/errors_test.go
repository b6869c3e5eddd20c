package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrExpiredToken)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "EXPIRED_TOKEN", body["code"])
	assert.Equal(t, "Expired Token", body["message"])
	_, hasDetail := body["detail"]
	assert.False(t, hasDetail)
}

func TestWriteError_WrappedAndPlain(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("ctx: %w", ErrClientIDOrSecret))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Client ID or Secret")

	rec = httptest.NewRecorder()
	WriteError(rec, stderrors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestWithDetailCopies(t *testing.T) {
	e := ErrBadRequest.WithDetail("x")
	assert.Equal(t, "x", e.Detail)
	assert.Empty(t, ErrBadRequest.Detail)

	cause := stderrors.New("cause")
	w := ErrStore.WithCause(cause)
	assert.ErrorIs(t, w, cause)
	assert.Nil(t, ErrStore.Err)
}

func TestProviderError(t *testing.T) {
	e := ProviderError("access_denied")
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatus)
	assert.Equal(t, "Error: access_denied", e.Message)
}
