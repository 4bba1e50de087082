package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/osteo-vault/internal/adapter"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/internal/utils"
	"github.com/MKhiriev/osteo-vault/internal/validators"
)

type errorStatus struct {
	target error
	status int
	code   string
}

// errorStatusTable is matched top to bottom; restore failures wrap their
// cause, so the causes come first.
var errorStatusTable = []errorStatus{
	{ErrMissingCredential, http.StatusBadRequest, "missing_credential"},
	{ErrInvalidJSON, http.StatusBadRequest, "invalid_json"},
	{ErrRecordNotFound, http.StatusNotFound, "not_found"},

	{service.ErrWrongCredential, http.StatusUnauthorized, "wrong_credential"},
	{service.ErrWeakCredential, http.StatusBadRequest, "weak_credential"},
	{service.ErrVaultLocked, http.StatusLocked, "vault_locked"},
	{service.ErrVaultAlreadyConfigured, http.StatusConflict, "already_configured"},
	{service.ErrAlreadyUnlocked, http.StatusConflict, "already_unlocked"},
	{service.ErrVaultNotConfigured, http.StatusConflict, "not_configured"},
	{service.ErrIntegrity, http.StatusInternalServerError, "integrity"},

	{validators.ErrInvalidEntityType, http.StatusBadRequest, "invalid_entity_type"},
	{validators.ErrInvalidID, http.StatusBadRequest, "invalid_id"},
	{validators.ErrInvalidRecord, http.StatusBadRequest, "invalid_record"},
	{validators.ErrNegativeAmount, http.StatusBadRequest, "negative_amount"},

	{store.ErrArchiveTooLarge, http.StatusRequestEntityTooLarge, "archive_too_large"},
	{store.ErrArchiveChecksum, http.StatusUnprocessableEntity, "archive_checksum"},
	{store.ErrArchiveVersion, http.StatusUnprocessableEntity, "archive_version"},
	{store.ErrArchiveMalformed, http.StatusUnprocessableEntity, "archive_malformed"},
	{service.ErrRestore, http.StatusUnprocessableEntity, "restore_failed"},
	{store.ErrPersistenceUnavailable, http.StatusServiceUnavailable, "persistence_unavailable"},

	{adapter.ErrBadRequest, http.StatusBadRequest, "remote_bad_request"},
	{adapter.ErrUnauthorized, http.StatusUnauthorized, "remote_unauthorized"},
	{adapter.ErrTokenExpired, http.StatusUnauthorized, "remote_token_expired"},
	{adapter.ErrForbidden, http.StatusForbidden, "remote_forbidden"},
	{adapter.ErrNotFound, http.StatusNotFound, "not_found"},
	{adapter.ErrConflict, http.StatusConflict, "remote_conflict"},
	{adapter.ErrNoRemoteConfigured, http.StatusServiceUnavailable, "no_remote"},
	{adapter.ErrRemoteUnavailable, http.StatusBadGateway, "remote_unavailable"},
	{adapter.ErrRemoteSchema, http.StatusBadGateway, "remote_schema"},

	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
}

func statusFromError(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, "body_too_large"
	}
	for _, e := range errorStatusTable {
		if errors.Is(err, e.target) {
			return e.status, e.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// writeError maps err to a status and writes an error body. Server-side
// failures get a generic message; the cause is only logged.
func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	log := logger.FromRequest(r)
	status, code := statusFromError(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Str("code", code).Msg("request failed")
		if code == "internal" {
			message = http.StatusText(status)
		}
	} else {
		log.Warn().Err(err).Str("func", fn).Str("code", code).Msg("request rejected")
	}

	utils.WriteError(w, status, code, message)
}
