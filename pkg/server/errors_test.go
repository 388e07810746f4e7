package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arunachalam-140897/DevEngine/pkg/errors"
)

func TestErrorCodeMapping(t *testing.T) {
	tests := []struct {
		code      errors.ErrorCode
		status    int
		retryable bool
	}{
		{errors.ErrCodeInvalidRequest, http.StatusBadRequest, false},
		{errors.ErrCodeUnauthorized, http.StatusUnauthorized, false},
		{errors.ErrCodeNotFound, http.StatusNotFound, false},
		{errors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed, false},
		{errors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests, true},
		{errors.ErrCodeUnavailable, http.StatusServiceUnavailable, true},
		{errors.ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{errors.ErrCodeInternal, http.StatusInternalServerError, true},
		{errors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatusFromCode(tt.code))
			assert.Equal(t, tt.retryable, retryableFromCode(tt.code))
		})
	}
}

func TestMergeDetails(t *testing.T) {
	assert.Nil(t, mergeDetails(nil, nil))
	assert.Nil(t, mergeDetails(map[string]any{}, map[string]any{}))

	got := mergeDetails(
		map[string]any{"module": "kubernetes", "name": "old"},
		map[string]any{"strict": true, "name": "new"},
	)
	assert.Equal(t, map[string]any{"module": "kubernetes", "strict": true, "name": "new"}, got)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/templates", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
		"template name is required", false, map[string]any{"field": "name"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
	assert.Equal(t, "template name is required", resp.Message)
	assert.Equal(t, "req-123", resp.RequestID)
	assert.False(t, resp.Retryable)
	assert.Equal(t, "name", resp.Details["field"])
	assert.False(t, resp.Timestamp.IsZero())
}

func TestWriteErrorFromErr(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		extra       map[string]any
		wantStatus  int
		wantCode    errors.ErrorCode
		wantMessage string
		wantDetails map[string]any
	}{
		{
			name: "structured with context and cause",
			err: errors.WrapWithContext(errors.ErrCodeUnavailable, "template store save failed",
				stderrors.New("connection refused"), map[string]any{"store": "redis"}),
			extra:       map[string]any{"name": "web"},
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    errors.ErrCodeUnavailable,
			wantMessage: "template store save failed",
			wantDetails: map[string]any{"store": "redis", "name": "web", "error": "connection refused"},
		},
		{
			name:        "plain error falls back to internal",
			err:         stderrors.New("boom"),
			extra:       map[string]any{"name": "web"},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    errors.ErrCodeInternal,
			wantMessage: "failed to save template",
			wantDetails: map[string]any{"name": "web", "error": "boom"},
		},
		{
			name:        "wrapped structured error",
			err:         fmt.Errorf("lookup: %w", errors.New(errors.ErrCodeNotFound, `template "web" not found`)),
			wantStatus:  http.StatusNotFound,
			wantCode:    errors.ErrCodeNotFound,
			wantMessage: `template "web" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteErrorFromErr(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err, "failed to save template", tt.extra)

			require.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, string(tt.wantCode), resp.Code)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, retryableFromCode(tt.wantCode), resp.Retryable)
			assert.NotEmpty(t, resp.RequestID, "request id is generated when missing")
			if tt.wantDetails == nil {
				assert.Nil(t, resp.Details)
			} else {
				assert.Equal(t, tt.wantDetails, resp.Details)
			}
		})
	}
}
