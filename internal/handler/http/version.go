package http

import (
	"net/http"

	"github.com/MKhiriev/osteo-vault/internal/utils"
)

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfo.BuildInfo(r.Context()), http.StatusOK)
}
