package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"no accept", "", DefaultAPIVersion},
		{"plain json", "application/json", DefaultAPIVersion},
		{"zip download", "application/zip", DefaultAPIVersion},
		{"vendor json", "application/vnd.devengine.v1+json", "v1"},
		{"vendor yaml", "application/vnd.devengine.v1+yaml", "v1"},
		{"vendor without suffix", "application/vnd.devengine.v1", "v1"},
		{"vendor after zip with q", "application/zip, application/vnd.devengine.v1+json;q=0.9", "v1"},
		{"unsupported version", "application/vnd.devengine.v9+json", DefaultAPIVersion},
		{"garbage version", "application/vnd.devengine.latest+json", DefaultAPIVersion},
		{"other vendor", "application/vnd.acme.v1+json", DefaultAPIVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/generate/kubernetes", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			assert.Equal(t, tt.want, negotiateAPIVersion(req))
		})
	}
}

func TestAPIVersionHeader(t *testing.T) {
	s := New(WithConfig(testConfig()), WithHandler(map[string]http.HandlerFunc{
		"GET /v1/ping": func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) },
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("Accept", "application/vnd.devengine.v1+yaml")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "v1", w.Header().Get("X-API-Version"))
}

func TestIsValidAPIVersion(t *testing.T) {
	assert.True(t, isValidAPIVersion("v1"))
	for _, v := range []string{"v2", "", "V1", "1"} {
		assert.False(t, isValidAPIVersion(v), v)
	}
}
