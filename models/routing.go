// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Destination is the backend a record is routed to.
type Destination int

const (
	// Remote is the hosted backend reached through the remote adapter.
	Remote Destination = iota
	// LocalEncrypted is the encrypted local vault.
	LocalEncrypted
)

// String implements [fmt.Stringer].
func (d Destination) String() string {
	if d == LocalEncrypted {
		return "local_encrypted"
	}
	return "remote"
}

// MarshalText implements [encoding.TextMarshaler].
func (d Destination) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// RouteReason explains a [RoutingDecision].
type RouteReason string

const (
	RouteDemoMode     RouteReason = "demo_mode"
	RouteSensitive    RouteReason = "sensitive"
	RouteNonSensitive RouteReason = "non_sensitive"
	RouteUnclassified RouteReason = "unclassified"
)

// RoutingDecision is the result of routing an entity type.
type RoutingDecision struct {
	EntityType  EntityType  `json:"entity_type"`
	Destination Destination `json:"destination"`
	Reason      RouteReason `json:"reason"`
	// Ephemeral marks demo traffic that must never be written durably.
	Ephemeral bool `json:"ephemeral"`
}
