package webserver

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/GoCodeAlone/bootkit"
	"github.com/GoCodeAlone/bootkit/condition"
)

// contextState tracks where a web-server application context is in its
// lifecycle.
type contextState int

const (
	stateCreated contextState = iota
	stateRefreshing
	stateRunning
	stateClosed
)

// ServletWebServerContext is an application context that owns one
// servlet-stack embedded server. Refresh resolves exactly one
// ServletWebServerFactory bean from the context's own registry, creates
// the server, runs any refresh hooks, then starts the server and publishes
// an initialized event. Any refresh failure stops and releases the server
// before the error propagates, so a failed context never leaves a running
// server behind.
type ServletWebServerContext struct {
	*observerList

	mu        sync.Mutex
	state     contextState
	registry  bootkit.BeanRegistry
	env       bootkit.Environment
	logger    bootkit.Logger
	contextID *bootkit.ContextID
	manager   *servletServerManager
	lazyInit  bool
	hooks     []func(context.Context) error
}

// NewServletWebServerContext creates a context over the given registry and
// environment, assigning its context id immediately. The registry's parent
// determines whether the id is minted from a parent context or from the
// application name.
func NewServletWebServerContext(registry bootkit.BeanRegistry, env bootkit.Environment, logger bootkit.Logger) (*ServletWebServerContext, error) {
	contextID, err := bootkit.AssignContextID(registry, env, registry.Parent())
	if err != nil {
		return nil, err
	}
	return &ServletWebServerContext{
		observerList: newObserverList(logger),
		registry:     registry,
		env:          env,
		logger:       logger,
		contextID:    contextID,
	}, nil
}

// ContextID returns the context's identifier.
func (c *ServletWebServerContext) ContextID() *bootkit.ContextID {
	return c.contextID
}

// Registry returns the context's bean registry.
func (c *ServletWebServerContext) Registry() bootkit.BeanRegistry {
	return c.registry
}

// WebApplicationType implements bootkit.WebTyped.
func (c *ServletWebServerContext) WebApplicationType() bootkit.WebApplicationType {
	return bootkit.WebApplicationServlet
}

// AddRefreshHook registers a function run during Refresh, after the server
// is created and before it starts. Hooks must be added before Refresh.
func (c *ServletWebServerContext) AddRefreshHook(hook func(context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, hook)
}

// Refresh drives the context from created to running. It is not
// restartable: a context refreshes at most once, and a failed refresh
// leaves the context closed. The initialized event is published after the
// context mutex is released, so observers may call back into the context,
// for example GetWebServer, while handling it.
func (c *ServletWebServerContext) Refresh(ctx context.Context) error {
	port, err := c.doRefresh(ctx)
	if err != nil {
		return err
	}

	c.logger.Info("Web server started", "contextId", c.contextID.ID(), "port", port)
	event := bootkit.NewCloudEvent(EventTypeServletWebServerInitialized, c.contextID.ID(),
		WebServerInitializedData{ContextID: c.contextID.ID(), Port: port})
	return c.NotifyObservers(ctx, event)
}

// doRefresh performs the locked portion of Refresh and reports the port the
// started server listens on.
func (c *ServletWebServerContext) doRefresh(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateCreated {
		return 0, fmt.Errorf("%w: context %s", ErrContextNotRefreshable, c.contextID.ID())
	}
	c.state = stateRefreshing

	if err := c.createWebServer(); err != nil {
		return 0, c.stopAndRelease(ctx, err)
	}
	for _, hook := range c.hooks {
		if err := hook(ctx); err != nil {
			return 0, c.stopAndRelease(ctx, fmt.Errorf("refresh hook: %w", err))
		}
	}
	if err := c.manager.start(ctx, c.resolveHandler, c.lazyInit); err != nil {
		return 0, c.stopAndRelease(ctx, err)
	}
	c.state = stateRunning

	return c.manager.webServer().Port(), nil
}

// createWebServer resolves exactly one factory bean from this context's
// own registry level and creates the server, unstarted, behind the
// manager's uninitialized handler.
func (c *ServletWebServerContext) createWebServer() error {
	factoryType := reflect.TypeOf((*ServletWebServerFactory)(nil)).Elem()
	name, err := resolveSingleBeanName(c.registry, factoryType,
		ErrWebServerFactoryMissing, ErrWebServerFactoryAmbiguous)
	if err != nil {
		return err
	}

	var factory ServletWebServerFactory
	if err := c.registry.GetBean(name, &factory); err != nil {
		return fmt.Errorf("retrieving web server factory %q: %w", name, err)
	}

	manager, err := newServletServerManager(factory)
	if err != nil {
		return fmt.Errorf("creating web server: %w", err)
	}
	c.manager = manager
	if lazyFactory, ok := factory.(LazyInitFactory); ok {
		c.lazyInit = lazyFactory.LazyInit()
	}
	return nil
}

// resolveHandler resolves exactly one http.Handler bean from this
// context's registry. Run at start time, or at first request when the
// factory requested lazy initialization.
func (c *ServletWebServerContext) resolveHandler() (http.Handler, error) {
	handlerType := reflect.TypeOf((*http.Handler)(nil)).Elem()
	name, err := resolveSingleBeanName(c.registry, handlerType,
		ErrHandlerMissing, ErrHandlerAmbiguous)
	if err != nil {
		return nil, err
	}
	var handler http.Handler
	if err := c.registry.GetBean(name, &handler); err != nil {
		return nil, fmt.Errorf("retrieving handler %q: %w", name, err)
	}
	return handler, nil
}

// stopAndRelease stops any created server, clears the manager reference,
// and closes the context, then returns the triggering error. A stop
// failure here is logged, not propagated, so the original cause surfaces.
func (c *ServletWebServerContext) stopAndRelease(ctx context.Context, cause error) error {
	if c.manager != nil {
		if stopErr := c.manager.stop(ctx); stopErr != nil {
			c.logger.Error("Failed to stop web server after refresh failure",
				"contextId", c.contextID.ID(), "error", stopErr)
		}
		c.manager = nil
	}
	c.state = stateClosed
	return cause
}

// Close stops the server and closes the context. The manager reference is
// always cleared, even when stop fails, so repeated Close calls are safe
// no-ops; a stop failure itself is fatal.
func (c *ServletWebServerContext) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateClosed {
		return nil
	}
	c.state = stateClosed

	manager := c.manager
	c.manager = nil
	if manager != nil {
		if err := manager.stop(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrWebServerStop, err)
		}
	}
	return nil
}

// GetWebServer returns the running server, or nil before refresh and after
// close.
func (c *ServletWebServerContext) GetWebServer() WebServer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.manager == nil {
		return nil
	}
	return c.manager.webServer()
}

// resolveSingleBeanName looks up beans of the given type in the registry's
// own level and requires exactly one match. Zero or multiple matches are
// configuration errors whose messages name the offending beans.
func resolveSingleBeanName(registry bootkit.BeanRegistry, t reflect.Type, missing, ambiguous error) (string, error) {
	names := condition.BeanNamesForType(registry, condition.SearchCurrent, t)
	switch len(names) {
	case 0:
		return "", fmt.Errorf("%w: no beans of type %s registered", missing, t)
	case 1:
		return names[0], nil
	default:
		return "", fmt.Errorf("%w: found %d beans of type %s: %s",
			ambiguous, len(names), t, strings.Join(names, ", "))
	}
}
