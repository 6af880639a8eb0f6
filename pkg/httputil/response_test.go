package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	err := WriteJSON(rec, http.StatusTeapot, map[string]string{"k": "v"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "v", body["k"])
}

func TestWriteErrorMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorMessage(rec, http.StatusBadRequest, "bad input")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "bad input", body.Message)
}

func TestWriteStatusHelpers(t *testing.T) {
	tests := []struct {
		name     string
		write    func(http.ResponseWriter)
		expected int
	}{
		{name: "validation", write: func(w http.ResponseWriter) { WriteValidationError(w, "x") }, expected: http.StatusBadRequest},
		{name: "not found", write: func(w http.ResponseWriter) { WriteNotFoundError(w, "x") }, expected: http.StatusNotFound},
		{name: "unauthorized", write: func(w http.ResponseWriter) { WriteUnauthorized(w, "x") }, expected: http.StatusUnauthorized},
		{name: "conflict", write: func(w http.ResponseWriter) { WriteConflict(w, "x") }, expected: http.StatusConflict},
		{name: "bad gateway", write: func(w http.ResponseWriter) { WriteBadGateway(w, "x") }, expected: http.StatusBadGateway},
		{name: "unavailable", write: func(w http.ResponseWriter) { WriteServiceUnavailable(w, "x") }, expected: http.StatusServiceUnavailable},
		{name: "internal", write: func(w http.ResponseWriter) { WriteInternalError(w, errors.New("x")) }, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteSuccess(rec, "done", map[string]int{"n": 1}))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "done", body.Message)
}

func TestWriteCreatedEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteCreated(rec, "created", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
