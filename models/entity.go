// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EntityType names a category of practice data. Every record handled by the
// storage core is addressed by an (EntityType, ID) pair.
type EntityType string

// Health-sensitive categories. They must stay in locally controlled storage.
const (
	Patients         EntityType = "patients"
	Appointments     EntityType = "appointments"
	Invoices         EntityType = "invoices"
	Consultations    EntityType = "consultations"
	MedicalDocuments EntityType = "medical_documents"
)

// Practice-administration categories served by the remote backend.
const (
	Cabinets           EntityType = "cabinets"
	Osteopaths         EntityType = "osteopaths"
	CabinetInvitations EntityType = "cabinet_invitations"
	Subscriptions      EntityType = "subscriptions"
	Preferences        EntityType = "preferences"
)

// String implements [fmt.Stringer].
func (e EntityType) String() string {
	return string(e)
}

// Valid reports whether e is usable as a storage key component: non-empty,
// at most 64 bytes, lower-case ASCII letters, digits and underscores only.
func (e EntityType) Valid() bool {
	if len(e) == 0 || len(e) > 64 {
		return false
	}
	for _, r := range e {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
