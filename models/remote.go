// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// RemoteRecord is the wire shape exchanged with the hosted backend.
type RemoteRecord struct {
	EntityType EntityType      `json:"entity_type"`
	ID         string          `json:"id"`
	Payload    json.RawMessage `json:"payload"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}

// RemoteIDList is the body returned by the backend list endpoint.
type RemoteIDList struct {
	IDs    []string `json:"ids"`
	Length int      `json:"length"`
}
