package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeWithTraceID(h *Handler, header string) (*httptest.ResponseRecorder, *http.Request) {
	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set(traceIDHeader, header)
	}
	rec := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, req)
	return rec, captured
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{name: "reuses caller trace id", header: "web-ui-7f3a", wantSame: true},
		{name: "generates when absent", header: ""},
		{name: "replaces oversized id", header: strings.Repeat("x", maxTraceIDLength+1)},
		{name: "replaces id with spaces", header: "two words"},
	}

	h := &Handler{logger: logger.Nop()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, req := executeWithTraceID(h, tt.header)
			require.NotNil(t, req)

			got := rec.Header().Get(traceIDHeader)
			if tt.wantSame {
				assert.Equal(t, tt.header, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}

			fromCtx, ok := utils.GetTraceIDFromContext(req.Context())
			assert.True(t, ok)
			assert.Equal(t, got, fromCtx)
		})
	}
}

func TestWithLogging_LogsRoutePatternNotIDs(t *testing.T) {
	var buf bytes.Buffer
	api := newConfiguredAPI(t, nil)
	router := NewHandler(api.services, config.Server{}, &logger.Logger{Logger: zerolog.New(&buf)}).Init()

	req := httptest.NewRequest(http.MethodPut, "/api/entities/patients/p-7781", strings.NewReader(patientJSON))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	out := buf.String()
	assert.Contains(t, out, `"route":"/api/entities/{entityType}/{id}"`)
	assert.Contains(t, out, `"method":"PUT"`)
	assert.Contains(t, out, `"status":204`)
	assert.Contains(t, out, `"trace_id":`)
	assert.NotContains(t, out, "p-7781")
	assert.NotContains(t, out, "Jane Doe")
}

func TestWithLogging_ImplicitStatus(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	req := httptest.NewRequest(http.MethodGet, "/plain", nil)
	req = req.WithContext(l.WithContext(req.Context()))
	rec := httptest.NewRecorder()

	withLogging(next).ServeHTTP(rec, req)

	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), `"size":2`)
	assert.Contains(t, buf.String(), `"route":"/plain"`)
}

func TestRecoverer(t *testing.T) {
	api := newTestAPI(t, nil, config.App{})
	h := NewHandler(api.services, config.Server{}, logger.Nop())

	router := h.Init()
	router.Get("/api/panic", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/panic", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusTeapot)
	n, err := w.Write([]byte("abc"))

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, http.StatusCreated, w.status)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 3, w.size)
	assert.Equal(t, rec, w.Unwrap())
}
