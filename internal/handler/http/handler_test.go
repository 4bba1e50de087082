package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/osteo-vault/internal/adapter"
	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/crypto"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKDF = models.KDFParams{Time: 1, Memory: 64, Threads: 1, KeyLen: crypto.KeySize}

const testPIN = "2468"

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testAPI struct {
	services *service.ClientServices
	clock    *testClock
	router   http.Handler
}

func newTestAPI(t *testing.T, remote adapter.RemoteAdapter, app config.App) *testAPI {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 5, 4, 8, 30, 0, 0, time.UTC)}
	svc, err := service.NewClientServices(context.Background(), service.ClientDeps{
		Storages: store.NewMemoryStorages(),
		Remote:   remote,
		KeyChain: crypto.NewKeyChainServiceWithParams(testKDF),
		Clock:    clock,
	}, app, models.NewAppBuildInfo("v0.3.0", "2026-05-01", "9f1c2ab"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	return &testAPI{
		services: svc,
		clock:    clock,
		router:   NewHandler(svc, config.Server{}, logger.Nop()).Init(),
	}
}

func newConfiguredAPI(t *testing.T, remote adapter.RemoteAdapter) *testAPI {
	t.Helper()
	api := newTestAPI(t, remote, config.App{})
	require.NoError(t, api.services.Lock.Configure(context.Background(), testPIN))
	return api
}

func (a *testAPI) do(method, path string, body io.Reader, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, rec.Code, rec.Body.String())
	assert.Equal(t, code, decodeJSON[errorBody](t, rec).Code)
}

// ─────────────────────────────────────────────
// Init: route registration
// ─────────────────────────────────────────────

func TestNewHandler(t *testing.T) {
	h := NewHandler(&service.ClientServices{}, config.Server{RequestTimeout: time.Second}, logger.Nop())

	require.NotNil(t, h)
	assert.Equal(t, time.Second, h.requestTimeout)
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	api := newTestAPI(t, nil, config.App{})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/version"},
		{http.MethodGet, "/api/storage/status"},
		{http.MethodPost, "/api/storage/configure"},
		{http.MethodPost, "/api/storage/unlock"},
		{http.MethodPost, "/api/storage/lock"},
		{http.MethodGet, "/api/routes"},
		{http.MethodGet, "/api/routes/patients"},
		{http.MethodGet, "/api/entities/patients"},
		{http.MethodGet, "/api/entities/patients/p1"},
		{http.MethodPut, "/api/entities/patients/p1"},
		{http.MethodDelete, "/api/entities/patients/p1"},
		{http.MethodGet, "/api/backup"},
		{http.MethodPost, "/api/backup/import"},
	}

	for _, tc := range routes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := api.do(tc.method, tc.path, strings.NewReader("{}"))

			// a registered route may still reject the request; it must not be
			// unknown to the router
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
			if rec.Code == http.StatusNotFound {
				assert.Equal(t, "not_found", decodeJSON[errorBody](t, rec).Code)
			}
		})
	}
}

func TestInit_UnknownRoute(t *testing.T) {
	api := newTestAPI(t, nil, config.App{})

	rec := api.do(http.MethodGet, "/api/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPost, "/api/version", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetVersion(t *testing.T) {
	api := newTestAPI(t, nil, config.App{})

	rec := api.do(http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	info := decodeJSON[models.AppBuildInfo](t, rec)
	assert.Equal(t, models.AppBuildInfo{Version: "v0.3.0", Date: "2026-05-01", Commit: "9f1c2ab"}, info)
}
