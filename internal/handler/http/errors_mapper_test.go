package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/osteo-vault/internal/adapter"
	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"wrong credential", service.ErrWrongCredential, http.StatusUnauthorized, "wrong_credential"},
		{"locked", fmt.Errorf("get: %w", service.ErrVaultLocked), http.StatusLocked, "vault_locked"},
		{"invalid id", fmt.Errorf("validate: %w", validators.ErrInvalidID), http.StatusBadRequest, "invalid_id"},
		{"restore cause wins", fmt.Errorf("%w: %w", service.ErrRestore, store.ErrArchiveChecksum), http.StatusUnprocessableEntity, "archive_checksum"},
		{"restore wrong credential", fmt.Errorf("%w: %w", service.ErrRestore, service.ErrWrongCredential), http.StatusUnauthorized, "wrong_credential"},
		{"restore generic", fmt.Errorf("%w: %w", service.ErrRestore, errors.New("disk full")), http.StatusUnprocessableEntity, "restore_failed"},
		{"remote expired token", adapter.ErrTokenExpired, http.StatusUnauthorized, "remote_token_expired"},
		{"remote down", adapter.ErrRemoteUnavailable, http.StatusBadGateway, "remote_unavailable"},
		{"no remote", adapter.ErrNoRemoteConfigured, http.StatusServiceUnavailable, "no_remote"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, "body_too_large"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := statusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestWriteError_HidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/entities/patients/p1", nil)

	writeError(rec, req, "test", errors.New("sqlite: table vault_entries is locked by pid 4711"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeJSON[errorBody](t, rec)
	assert.Equal(t, "internal", body.Code)
	assert.NotContains(t, body.Error, "4711")
}

func TestWriteError_ClientErrorKeepsMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/storage/unlock", nil)

	writeError(rec, req, "test", service.ErrWrongCredential)

	body := decodeJSON[errorBody](t, rec)
	assert.Equal(t, "wrong_credential", body.Code)
	assert.Equal(t, service.ErrWrongCredential.Error(), body.Error)
}
