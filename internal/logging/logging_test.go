package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json output with level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New("debug", false, &buf)
		logger.Debug().Str("k", "v").Msg("hello")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "debug", line["level"])
		assert.Equal(t, "hello", line["message"])
		assert.Equal(t, "cashbook", line["service"])
		assert.Equal(t, "v", line["k"])
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New("loud", false, &buf)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

		logger.Debug().Msg("hidden")
		assert.Empty(t, buf.String())
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", false, &buf)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("nope"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/missing", line["path"])
	assert.Equal(t, float64(404), line["status"])
	assert.Equal(t, float64(4), line["bytes"])
	assert.NotEmpty(t, line["request_id"])
}
