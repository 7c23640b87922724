package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/merchspace/storefront/pkg/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Message
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, rr.Body.String())
}

func TestWriteMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteMessage(rr, http.StatusUnauthorized, "Must be logged in to review")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"message":"Must be logged in to review"}`, rr.Body.String())
}

func TestWriteError_AppError(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rr, req, apperrors.Unauthorized("invalid username or password"), discardLogger())

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "invalid username or password", decodeMessage(t, rr))
}

func TestWriteError_Sentinel(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rr, req, apperrors.ErrNotFound, discardLogger())

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "resource not found", decodeMessage(t, rr))
}

func TestWriteError_MasksInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rr, req, errors.New("pgx: connection refused to 10.0.0.3"), discardLogger())

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	msg := decodeMessage(t, rr)
	assert.Equal(t, "an internal error occurred", msg)
	assert.NotContains(t, rr.Body.String(), "10.0.0.3")
}

func TestParseID(t *testing.T) {
	tests := []struct {
		param  string
		wantID int64
		wantOK bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		rr := httptest.NewRecorder()
		id, ok := ParseID(rr, tt.param)
		assert.Equal(t, tt.wantOK, ok, "param %q", tt.param)
		assert.Equal(t, tt.wantID, id, "param %q", tt.param)
		if !tt.wantOK {
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		}
	}
}
