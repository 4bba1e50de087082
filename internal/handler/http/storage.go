package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/internal/utils"
	"github.com/MKhiriev/osteo-vault/models"
)

// maxCredentialBody bounds configure and unlock request bodies.
const maxCredentialBody = 4 << 10

type credentialRequest struct {
	Credential string `json:"credential"`
}

// statusResponse is the body of every storage endpoint.
type statusResponse struct {
	models.LockStatus
	Build models.AppBuildInfo `json:"build"`
}

func (h *Handler) statusBody(r *http.Request) statusResponse {
	return statusResponse{
		LockStatus: h.services.Lock.State(),
		Build:      h.services.AppInfo.BuildInfo(r.Context()),
	}
}

func decodeCredential(w http.ResponseWriter, r *http.Request) (string, error) {
	var req credentialRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCredentialBody)).Decode(&req); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return req.Credential, nil
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	if _, err := h.services.Lock.Configured(r.Context()); err != nil {
		writeError(w, r, "*Handler.status", err)
		return
	}
	utils.WriteJSON(w, h.statusBody(r), http.StatusOK)
}

func (h *Handler) configure(w http.ResponseWriter, r *http.Request) {
	credential, err := decodeCredential(w, r)
	if err != nil {
		writeError(w, r, "*Handler.configure", err)
		return
	}

	if err := h.services.Lock.Configure(r.Context(), credential); err != nil {
		writeError(w, r, "*Handler.configure", err)
		return
	}

	utils.WriteJSON(w, h.statusBody(r), http.StatusCreated)
}

func (h *Handler) unlock(w http.ResponseWriter, r *http.Request) {
	credential, err := decodeCredential(w, r)
	if err != nil {
		writeError(w, r, "*Handler.unlock", err)
		return
	}

	ok, err := h.services.Lock.Unlock(r.Context(), credential)
	if err != nil {
		writeError(w, r, "*Handler.unlock", err)
		return
	}
	if !ok {
		writeError(w, r, "*Handler.unlock", service.ErrWrongCredential)
		return
	}

	utils.WriteJSON(w, h.statusBody(r), http.StatusOK)
}

func (h *Handler) lock(w http.ResponseWriter, r *http.Request) {
	h.services.Lock.Lock()
	utils.WriteJSON(w, h.statusBody(r), http.StatusOK)
}
