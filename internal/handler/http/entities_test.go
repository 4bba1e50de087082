package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/MKhiriev/osteo-vault/internal/adapter"
	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/mock"
	"github.com/MKhiriev/osteo-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const patientJSON = `{"name":"Jane Doe","birth_date":"1980-04-12"}`

func TestEntities_LocalCRUD(t *testing.T) {
	api := newConfiguredAPI(t, nil)

	rec := api.do(http.MethodPut, "/api/entities/patients/p1", strings.NewReader(patientJSON))
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/entities/patients/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, patientJSON, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/entities/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ids":["p1"],"length":1}`, rec.Body.String())

	rec = api.do(http.MethodDelete, "/api/entities/patients/p1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/entities/patients/p1", nil)
	assertErrorCode(t, rec, http.StatusNotFound, "not_found")

	rec = api.do(http.MethodGet, "/api/entities/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ids":[],"length":0}`, rec.Body.String())
}

func TestEntities_EscapedID(t *testing.T) {
	api := newConfiguredAPI(t, nil)

	rec := api.do(http.MethodPut, "/api/entities/invoices/2026%2F0042", strings.NewReader(`{"amount":"80.00"}`))
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/entities/invoices", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ids":["2026/0042"],"length":1}`, rec.Body.String())
}

func TestEntities_LockedVault(t *testing.T) {
	api := newConfiguredAPI(t, nil)
	api.services.Lock.Lock()

	rec := api.do(http.MethodGet, "/api/entities/patients/p1", nil)
	assertErrorCode(t, rec, http.StatusLocked, "vault_locked")

	rec = api.do(http.MethodPut, "/api/entities/patients/p1", strings.NewReader(patientJSON))
	assertErrorCode(t, rec, http.StatusLocked, "vault_locked")
}

func TestEntities_InvalidInput(t *testing.T) {
	api := newConfiguredAPI(t, nil)

	rec := api.do(http.MethodPut, "/api/entities/patients/p1", strings.NewReader(`{"name":`))
	assertErrorCode(t, rec, http.StatusBadRequest, "invalid_record")

	rec = api.do(http.MethodGet, "/api/entities/Patients!/p1", nil)
	assertErrorCode(t, rec, http.StatusBadRequest, "invalid_entity_type")

	rec = api.do(http.MethodPut, "/api/entities/patients/p1", strings.NewReader(`"`+strings.Repeat("a", maxRecordBody)+`"`))
	assertErrorCode(t, rec, http.StatusRequestEntityTooLarge, "body_too_large")
}

func TestEntities_RemoteBound(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	remote.EXPECT().Close().Return(nil).AnyTimes()
	api := newConfiguredAPI(t, remote)

	cabinet := models.Record(`{"name":"Cabinet Lyon"}`)
	remote.EXPECT().Put(gomock.Any(), models.Cabinets, "c1", cabinet, false).Return(nil)
	remote.EXPECT().Get(gomock.Any(), models.Cabinets, "c1", false).Return(cabinet, nil)
	remote.EXPECT().Get(gomock.Any(), models.Cabinets, "c2", false).Return(nil, adapter.ErrNotFound)
	remote.EXPECT().List(gomock.Any(), models.Osteopaths, false).Return(nil, adapter.ErrRemoteUnavailable)
	remote.EXPECT().Delete(gomock.Any(), models.Preferences, "theme", false).Return(adapter.ErrTokenExpired)

	rec := api.do(http.MethodPut, "/api/entities/cabinets/c1", strings.NewReader(string(cabinet)))
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/entities/cabinets/c1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, string(cabinet), rec.Body.String())

	rec = api.do(http.MethodGet, "/api/entities/cabinets/c2", nil)
	assertErrorCode(t, rec, http.StatusNotFound, "not_found")

	rec = api.do(http.MethodGet, "/api/entities/osteopaths", nil)
	assertErrorCode(t, rec, http.StatusBadGateway, "remote_unavailable")

	rec = api.do(http.MethodDelete, "/api/entities/preferences/theme", nil)
	assertErrorCode(t, rec, http.StatusUnauthorized, "remote_token_expired")
}

func TestEntities_NoRemoteConfigured(t *testing.T) {
	api := newConfiguredAPI(t, nil)

	rec := api.do(http.MethodGet, "/api/entities/cabinets/c1", nil)
	assertErrorCode(t, rec, http.StatusServiceUnavailable, "no_remote")
}

func TestRoutes(t *testing.T) {
	api := newTestAPI(t, nil, config.App{})

	rec := api.do(http.MethodGet, "/api/routes/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entity_type":"patients","destination":"local_encrypted","reason":"sensitive","ephemeral":false}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/routes/billing_exports", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entity_type":"billing_exports","destination":"remote","reason":"unclassified","ephemeral":false}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/routes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeJSON[[]map[string]any](t, rec), 10)
}

func TestRoutes_DemoMode(t *testing.T) {
	api := newTestAPI(t, nil, config.App{DemoMode: true})

	rec := api.do(http.MethodGet, "/api/routes/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entity_type":"patients","destination":"remote","reason":"demo_mode","ephemeral":true}`, rec.Body.String())
}
