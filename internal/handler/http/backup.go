package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/internal/utils"
)

const (
	credentialHeader = "X-Vault-Credential"

	archiveContentType = "application/cbor"
)

// exportBackup streams the vault archive as a file download.
func (h *Handler) exportBackup(w http.ResponseWriter, r *http.Request) {
	archive, err := h.services.Backup.Export(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.exportBackup", err)
		return
	}

	var buf bytes.Buffer
	if err := store.EncodeArchive(&buf, archive); err != nil {
		writeError(w, r, "*Handler.exportBackup", err)
		return
	}

	name := service.BackupFileName(archive.ExportedAt)
	w.Header().Set("Content-Type", archiveContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// importBackup replaces the vault with the archive in the request body. The
// archive credential travels in a header so the body stays the raw file.
func (h *Handler) importBackup(w http.ResponseWriter, r *http.Request) {
	credential := r.Header.Get(credentialHeader)
	if credential == "" {
		writeError(w, r, "*Handler.importBackup", ErrMissingCredential)
		return
	}

	body := http.MaxBytesReader(w, r.Body, store.MaxArchiveSize)
	if err := h.services.Backup.ImportFromReader(r.Context(), body, credential); err != nil {
		writeError(w, r, "*Handler.importBackup", err)
		return
	}

	utils.WriteJSON(w, h.statusBody(r), http.StatusOK)
}
