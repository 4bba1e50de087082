package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// Run serves requests until ctx is cancelled or a transport fails, then
	// shuts every transport down. A clean shutdown returns nil.
	Run(ctx context.Context) error

	// RunServer runs until the process receives SIGTERM, SIGINT or SIGQUIT.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
