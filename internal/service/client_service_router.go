package service

import (
	"slices"

	"github.com/MKhiriev/osteo-vault/models"
)

// entityClasses is the routing classification. Health-sensitive categories
// stay in the local vault; practice administration goes to the backend.
// Entity types missing from this table route to the backend as
// unclassified.
var entityClasses = map[models.EntityType]models.RouteReason{
	models.Patients:         models.RouteSensitive,
	models.Appointments:     models.RouteSensitive,
	models.Invoices:         models.RouteSensitive,
	models.Consultations:    models.RouteSensitive,
	models.MedicalDocuments: models.RouteSensitive,

	models.Cabinets:           models.RouteNonSensitive,
	models.Osteopaths:         models.RouteNonSensitive,
	models.CabinetInvitations: models.RouteNonSensitive,
	models.Subscriptions:      models.RouteNonSensitive,
	models.Preferences:        models.RouteNonSensitive,
}

type router struct {
	demoMode bool
}

// NewRouter returns the [Router]. demoMode forces every entity type to the
// backend as ephemeral traffic; it is the only place the flag is read.
func NewRouter(demoMode bool) Router {
	return &router{demoMode: demoMode}
}

func (r *router) Route(entityType models.EntityType) models.RoutingDecision {
	d := models.RoutingDecision{EntityType: entityType, Destination: models.Remote}

	if r.demoMode {
		d.Reason = models.RouteDemoMode
		d.Ephemeral = true
		return d
	}

	reason, ok := entityClasses[entityType]
	if !ok {
		d.Reason = models.RouteUnclassified
		return d
	}
	d.Reason = reason
	if reason == models.RouteSensitive {
		d.Destination = models.LocalEncrypted
	}
	return d
}

func (r *router) RoutingTable() []models.RoutingDecision {
	table := make([]models.RoutingDecision, 0, len(entityClasses))
	for _, t := range KnownEntityTypes() {
		table = append(table, r.Route(t))
	}
	return table
}

func (r *router) DemoMode() bool {
	return r.demoMode
}

// KnownEntityTypes returns every classified entity type in ascending order.
func KnownEntityTypes() []models.EntityType {
	types := make([]models.EntityType, 0, len(entityClasses))
	for t := range entityClasses {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
