package webserver

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
)

// servletServerManager owns one servlet web server and its current
// handler. The manager hands itself to the factory as the server's
// handler, so the server can be created before the application's real
// handler exists; the handler reference is swapped exactly once, from an
// uninitialized placeholder that fails every request, when the context
// finishes refreshing. The swap is atomic because the server may dispatch
// requests concurrently with the initialization goroutine.
type servletServerManager struct {
	handler atomic.Pointer[http.Handler]
	server  WebServer
}

func newServletServerManager(factory ServletWebServerFactory) (*servletServerManager, error) {
	m := &servletServerManager{}
	var uninitialized http.Handler = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(ErrHandlerNotInitialized)
	})
	m.handler.Store(&uninitialized)

	server, err := factory.NewWebServer(m)
	if err != nil {
		return nil, err
	}
	m.server = server
	return m, nil
}

// ServeHTTP delegates to the current handler.
func (m *servletServerManager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	(*m.handler.Load()).ServeHTTP(w, r)
}

// start wires the real handler and starts the server. With lazy set, the
// supplier is not invoked until the first request arrives; a supplier
// failure then surfaces as a 500 on that request rather than a start
// failure.
func (m *servletServerManager) start(ctx context.Context, supplier func() (http.Handler, error), lazy bool) error {
	if lazy {
		resolve := sync.OnceValues(supplier)
		var deferred http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler, err := resolve()
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			handler.ServeHTTP(w, r)
		})
		m.handler.Store(&deferred)
	} else {
		handler, err := supplier()
		if err != nil {
			return err
		}
		m.handler.Store(&handler)
	}
	return m.server.Start(ctx)
}

func (m *servletServerManager) stop(ctx context.Context) error {
	return m.server.Stop(ctx)
}

func (m *servletServerManager) webServer() WebServer {
	return m.server
}

// reactiveServerManager is the reactive-stack counterpart. The
// uninitialized placeholder returns the illegal-state error instead of
// panicking, matching the reactive contract of returning handler errors.
type reactiveServerManager struct {
	handler atomic.Pointer[HTTPHandler]
	server  WebServer
}

func newReactiveServerManager(factory ReactiveWebServerFactory) (*reactiveServerManager, error) {
	m := &reactiveServerManager{}
	var uninitialized HTTPHandler = HTTPHandlerFunc(func(context.Context, http.ResponseWriter, *http.Request) error {
		return ErrHandlerNotInitialized
	})
	m.handler.Store(&uninitialized)

	server, err := factory.NewWebServer(m)
	if err != nil {
		return nil, err
	}
	m.server = server
	return m, nil
}

// Handle delegates to the current handler.
func (m *reactiveServerManager) Handle(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return (*m.handler.Load()).Handle(ctx, w, r)
}

func (m *reactiveServerManager) start(ctx context.Context, supplier func() (HTTPHandler, error), lazy bool) error {
	if lazy {
		resolve := sync.OnceValues(supplier)
		var deferred HTTPHandler = HTTPHandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			handler, err := resolve()
			if err != nil {
				return err
			}
			return handler.Handle(ctx, w, r)
		})
		m.handler.Store(&deferred)
	} else {
		handler, err := supplier()
		if err != nil {
			return err
		}
		m.handler.Store(&handler)
	}
	return m.server.Start(ctx)
}

func (m *reactiveServerManager) stop(ctx context.Context) error {
	return m.server.Stop(ctx)
}

func (m *reactiveServerManager) webServer() WebServer {
	return m.server
}
