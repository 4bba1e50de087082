package service

import (
	"slices"
	"testing"

	"github.com/MKhiriev/osteo-vault/models"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestRouter_Route(t *testing.T) {
	tests := []struct {
		name       string
		entityType models.EntityType
		want       models.RoutingDecision
	}{
		{
			name:       "patients stay local",
			entityType: models.Patients,
			want:       models.RoutingDecision{EntityType: models.Patients, Destination: models.LocalEncrypted, Reason: models.RouteSensitive},
		},
		{
			name:       "medical documents stay local",
			entityType: models.MedicalDocuments,
			want:       models.RoutingDecision{EntityType: models.MedicalDocuments, Destination: models.LocalEncrypted, Reason: models.RouteSensitive},
		},
		{
			name:       "cabinets go remote",
			entityType: models.Cabinets,
			want:       models.RoutingDecision{EntityType: models.Cabinets, Destination: models.Remote, Reason: models.RouteNonSensitive},
		},
		{
			name:       "unknown type goes remote",
			entityType: "billing_exports",
			want:       models.RoutingDecision{EntityType: "billing_exports", Destination: models.Remote, Reason: models.RouteUnclassified},
		},
	}

	r := NewRouter(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Route(tt.entityType))
			assert.Equal(t, r.Route(tt.entityType), r.Route(tt.entityType))
		})
	}
}

func TestRouter_DemoModeOverridesEverything(t *testing.T) {
	r := NewRouter(true)
	assert.True(t, r.DemoMode())

	types := append(KnownEntityTypes(), "billing_exports")
	for _, et := range types {
		d := r.Route(et)
		assert.Equal(t, models.Remote, d.Destination, et)
		assert.Equal(t, models.RouteDemoMode, d.Reason, et)
		assert.True(t, d.Ephemeral, et)
	}
}

func TestRouter_NeverEphemeralOutsideDemo(t *testing.T) {
	r := NewRouter(false)
	assert.False(t, r.DemoMode())
	for _, d := range r.RoutingTable() {
		assert.False(t, d.Ephemeral, d.EntityType)
	}
}

func TestKnownEntityTypes_Sorted(t *testing.T) {
	types := KnownEntityTypes()
	assert.Len(t, types, 10)
	assert.True(t, slices.IsSorted(types))
}

func TestRouter_RoutingTableGolden(t *testing.T) {
	g := goldie.New(t)
	g.AssertJson(t, "routing_table", NewRouter(false).RoutingTable())
}
