package http

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/MKhiriev/osteo-vault/internal/utils"
	"github.com/MKhiriev/osteo-vault/models"
	"github.com/go-chi/chi/v5"
)

// maxRecordBody bounds a single record document.
const maxRecordBody = 4 << 20

type idListResponse struct {
	IDs    []string `json:"ids"`
	Length int      `json:"length"`
}

// pathParam returns the unescaped URL parameter, so ids containing
// reserved characters survive the round trip.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func recordAddress(r *http.Request) (models.EntityType, string) {
	return models.EntityType(pathParam(r, "entityType")), pathParam(r, "id")
}

func (h *Handler) getEntity(w http.ResponseWriter, r *http.Request) {
	entityType, id := recordAddress(r)

	record, err := h.services.Entities.Get(r.Context(), entityType, id)
	if err != nil {
		writeError(w, r, "*Handler.getEntity", err)
		return
	}
	if record == nil {
		writeError(w, r, "*Handler.getEntity", fmt.Errorf("%w: %s/%s", ErrRecordNotFound, entityType, id))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(record)
}

func (h *Handler) putEntity(w http.ResponseWriter, r *http.Request) {
	entityType, id := recordAddress(r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRecordBody))
	if err != nil {
		writeError(w, r, "*Handler.putEntity", err)
		return
	}

	if err := h.services.Entities.Put(r.Context(), entityType, id, models.Record(body)); err != nil {
		writeError(w, r, "*Handler.putEntity", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteEntity(w http.ResponseWriter, r *http.Request) {
	entityType, id := recordAddress(r)

	if err := h.services.Entities.Delete(r.Context(), entityType, id); err != nil {
		writeError(w, r, "*Handler.deleteEntity", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listEntities(w http.ResponseWriter, r *http.Request) {
	entityType := models.EntityType(pathParam(r, "entityType"))

	ids, err := h.services.Entities.List(r.Context(), entityType)
	if err != nil {
		writeError(w, r, "*Handler.listEntities", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	utils.WriteJSON(w, idListResponse{IDs: ids, Length: len(ids)}, http.StatusOK)
}
