package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonEchoHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	})
}

func TestCompression_GzipsJSON(t *testing.T) {
	payload := `{"products":[` + strings.Repeat(`{"id":"p1"},`, 99) + `{"id":"p1"}]}`
	handler := Compression(CompressionConfig{Level: 6})(jsonEchoHandler(payload))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	gr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	decoded, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.Equal(t, payload, string(decoded))
}

func TestCompression_SkippedWithoutAcceptEncoding(t *testing.T) {
	handler := Compression(CompressionConfig{Level: 6})(jsonEchoHandler(`{"status":"ok"}`))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, `{"status":"ok"}`, w.Body.String())
}

func TestCompression_SkipsNoContent(t *testing.T) {
	handler := Compression(CompressionConfig{Level: 6})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/api/products/p1", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}
