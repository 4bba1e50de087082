package http

import (
	"net/http"

	"github.com/MKhiriev/osteo-vault/internal/utils"
	"github.com/MKhiriev/osteo-vault/models"
)

func (h *Handler) route(w http.ResponseWriter, r *http.Request) {
	entityType := models.EntityType(pathParam(r, "entityType"))
	utils.WriteJSON(w, h.services.Router.Route(entityType), http.StatusOK)
}

func (h *Handler) routingTable(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.Router.RoutingTable(), http.StatusOK)
}
