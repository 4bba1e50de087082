// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for reaching the
// hosted practice backend that stores non-sensitive entities and demo
// traffic.
//
// The primary abstraction is [RemoteAdapter], which decouples the service
// layer from the underlying protocol. Two implementations ship: an HTTP/REST
// client ([NewHTTPRemoteAdapter]) and a direct PostgreSQL connection
// ([NewPostgresRemoteAdapter]). [NewRemoteAdapter] picks one from config.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError and from database errors by mapStoreError so that callers can
// use [errors.Is] for transport-agnostic error handling (e.g. [ErrNotFound]
// for 404, [ErrRemoteUnavailable] for an unreachable backend).
package adapter

import (
	"context"

	"github.com/MKhiriev/osteo-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_adapter_mock.go -package=mock

// RemoteAdapter defines transport-agnostic access to the hosted backend.
// Records are addressed by (entityType, id); ephemeral marks demo traffic
// that the backend keeps apart from real practice data and discards.
type RemoteAdapter interface {
	// Get returns the record payload, or [ErrNotFound] when the backend has
	// no such record.
	Get(ctx context.Context, entityType models.EntityType, id string, ephemeral bool) (models.Record, error)

	// Put creates or replaces a record.
	Put(ctx context.Context, entityType models.EntityType, id string, record models.Record, ephemeral bool) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, entityType models.EntityType, id string, ephemeral bool) error

	// List returns the ids stored for entityType.
	List(ctx context.Context, entityType models.EntityType, ephemeral bool) ([]string, error)

	// Close releases connections held by the adapter.
	Close() error
}
