// Package http implements the local HTTP API the web UI uses to reach the
// storage core.
//
// It exposes vault setup and locking, routing decisions, record access by
// entity type and backup export/import. Cross-cutting concerns such as
// request tracing, access logging, activity tracking, compression and panic
// recovery are handled in this package before requests are delegated to the
// service layer.
package http
