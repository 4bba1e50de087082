// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Record is the plaintext form of a stored business entity. The storage core
// treats it as an opaque JSON document; only callers know its shape.
type Record = json.RawMessage

// Patient is the plaintext shape of a [Patients] record.
type Patient struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	CabinetID   string     `json:"cabinet_id,omitempty"`
	MedicalNote string     `json:"medical_note,omitempty"`
}

// Appointment is the plaintext shape of an [Appointments] record.
type Appointment struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	CabinetID string    `json:"cabinet_id,omitempty"`
	StartsAt  time.Time `json:"starts_at"`
	Duration  int       `json:"duration_minutes"`
	Reason    string    `json:"reason,omitempty"`
	Status    string    `json:"status"`
}

// Invoice is the plaintext shape of an [Invoices] record.
type Invoice struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	PatientID     string          `json:"patient_id"`
	AppointmentID string          `json:"appointment_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	IssuedAt      time.Time       `json:"issued_at"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

// Total returns the invoice amount rounded to cents.
func (i Invoice) Total() decimal.Decimal {
	return i.Amount.Round(2)
}

// Cabinet is the plaintext shape of a [Cabinets] record.
type Cabinet struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	OwnerID string `json:"owner_id"`
}

// RecordTemplate returns an empty record of the known shape for entityType
// with id filled in. It reports false for types without a typed shape.
func RecordTemplate(entityType EntityType, id string) (Record, bool) {
	var shape any
	switch entityType {
	case Patients:
		shape = Patient{ID: id}
	case Appointments:
		shape = Appointment{ID: id, Status: "booked"}
	case Invoices:
		shape = Invoice{ID: id, Amount: decimal.Zero}
	case Cabinets:
		shape = Cabinet{ID: id}
	default:
		return nil, false
	}

	b, err := json.Marshal(shape)
	if err != nil {
		return nil, false
	}
	return b, true
}
