package webserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/GoCodeAlone/bootkit"
)

// StdServletWebServerFactory creates servlet-stack servers backed by
// net/http. The zero Port binds an ephemeral port; the bound port is
// reported by the server after Start.
type StdServletWebServerFactory struct {
	Host string
	Port int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Logger bootkit.Logger
}

// NewWebServer implements ServletWebServerFactory.
func (f *StdServletWebServerFactory) NewWebServer(handler http.Handler) (WebServer, error) {
	if handler == nil {
		return nil, ErrHandlerMissing
	}
	return &stdWebServer{
		addr: fmt.Sprintf("%s:%d", f.Host, f.Port),
		server: &http.Server{
			Handler:      handler,
			ReadTimeout:  f.ReadTimeout,
			WriteTimeout: f.WriteTimeout,
			IdleTimeout:  f.IdleTimeout,
		},
		shutdownTimeout: f.ShutdownTimeout,
		port:            -1,
		logger:          f.Logger,
	}, nil
}

// StdReactiveWebServerFactory creates reactive-stack servers by adapting
// the HTTPHandler contract onto the same net/http backend. Handler errors
// become 500 responses.
type StdReactiveWebServerFactory struct {
	Servlet StdServletWebServerFactory
}

// NewWebServer implements ReactiveWebServerFactory.
func (f *StdReactiveWebServerFactory) NewWebServer(handler HTTPHandler) (WebServer, error) {
	if handler == nil {
		return nil, ErrHandlerMissing
	}
	return f.Servlet.NewWebServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := handler.Handle(r.Context(), w, r); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
}

type stdWebServer struct {
	addr            string
	server          *http.Server
	shutdownTimeout time.Duration
	listener        net.Listener
	port            int
	logger          bootkit.Logger
}

// Start binds the listener and serves in the background. The bound port is
// captured from the listener so an ephemeral port request resolves to the
// real port before Start returns.
func (s *stdWebServer) Start(_ context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("binding %s: %w", s.addr, err)
	}
	s.listener = listener
	s.port = listener.Addr().(*net.TCPAddr).Port

	go func() {
		if s.logger != nil {
			s.logger.Info("Starting HTTP server", "address", listener.Addr().String())
		}
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if s.logger != nil {
				s.logger.Error("HTTP server error", "error", err)
			}
		}
	}()
	return nil
}

// Stop shuts the server down gracefully, waiting up to the configured
// shutdown timeout for in-flight requests.
func (s *stdWebServer) Stop(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("HTTP server stopped", "address", s.addr)
	}
	return nil
}

// Port returns the bound port, or -1 before Start.
func (s *stdWebServer) Port() int {
	return s.port
}
