package server

// Server is the lifecycle contract for the transport servers this package
// manages. RunServer blocks until shutdown is requested; Shutdown stops the
// server and releases its resources.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
