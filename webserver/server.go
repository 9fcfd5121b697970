// Package webserver manages the lifecycle of embedded web servers bound
// to an application context: factory resolution from the bean registry,
// create-then-start with a lazily wired handler, stop-and-release on
// failure, and an initialized event published exactly once per successful
// start. Servlet and reactive stacks get separate context types that share
// the same discipline.
package webserver

import (
	"context"
	"net/http"
)

// WebServer is a created-but-controllable embedded server. Start binds and
// begins accepting connections; Stop releases the listener. A WebServer is
// owned by exactly one application context.
type WebServer interface {
	// Start binds the server and begins serving. Returns an error if the
	// bind fails; a started server keeps serving until Stop.
	Start(ctx context.Context) error

	// Stop gracefully shuts the server down.
	Stop(ctx context.Context) error

	// Port returns the bound port, or -1 before a successful Start.
	Port() int
}

// HTTPHandler is the reactive-stack request contract: handlers return an
// error instead of writing failure responses themselves.
type HTTPHandler interface {
	Handle(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// HTTPHandlerFunc adapts a function into an HTTPHandler.
type HTTPHandlerFunc func(ctx context.Context, w http.ResponseWriter, r *http.Request) error

// Handle implements HTTPHandler.
func (f HTTPHandlerFunc) Handle(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return f(ctx, w, r)
}

// ServletWebServerFactory creates servlet-stack servers around a standard
// http.Handler. Exactly one factory bean must be registered in a servlet
// context's own bean registry.
type ServletWebServerFactory interface {
	NewWebServer(handler http.Handler) (WebServer, error)
}

// ReactiveWebServerFactory creates reactive-stack servers around an
// HTTPHandler.
type ReactiveWebServerFactory interface {
	NewWebServer(handler HTTPHandler) (WebServer, error)
}

// LazyInitFactory is optionally implemented by factories whose handler
// supplier should be deferred until the first incoming request rather than
// resolved at start time.
type LazyInitFactory interface {
	LazyInit() bool
}
