package webserver

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/GoCodeAlone/bootkit"
)

// ReactiveWebServerContext is the reactive-stack application context. It
// follows the same lifecycle discipline as ServletWebServerContext but
// resolves a ReactiveWebServerFactory and an HTTPHandler bean instead of
// the servlet contracts.
type ReactiveWebServerContext struct {
	*observerList

	mu        sync.Mutex
	state     contextState
	registry  bootkit.BeanRegistry
	env       bootkit.Environment
	logger    bootkit.Logger
	contextID *bootkit.ContextID
	manager   *reactiveServerManager
	lazyInit  bool
	hooks     []func(context.Context) error
}

// NewReactiveWebServerContext creates a context over the given registry
// and environment, assigning its context id immediately.
func NewReactiveWebServerContext(registry bootkit.BeanRegistry, env bootkit.Environment, logger bootkit.Logger) (*ReactiveWebServerContext, error) {
	contextID, err := bootkit.AssignContextID(registry, env, registry.Parent())
	if err != nil {
		return nil, err
	}
	return &ReactiveWebServerContext{
		observerList: newObserverList(logger),
		registry:     registry,
		env:          env,
		logger:       logger,
		contextID:    contextID,
	}, nil
}

// ContextID returns the context's identifier.
func (c *ReactiveWebServerContext) ContextID() *bootkit.ContextID {
	return c.contextID
}

// Registry returns the context's bean registry.
func (c *ReactiveWebServerContext) Registry() bootkit.BeanRegistry {
	return c.registry
}

// WebApplicationType implements bootkit.WebTyped.
func (c *ReactiveWebServerContext) WebApplicationType() bootkit.WebApplicationType {
	return bootkit.WebApplicationReactive
}

// AddRefreshHook registers a function run during Refresh, after the server
// is created and before it starts.
func (c *ReactiveWebServerContext) AddRefreshHook(hook func(context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, hook)
}

// Refresh drives the context from created to running. The initialized
// event is published after the context mutex is released, so observers may
// call back into the context while handling it.
func (c *ReactiveWebServerContext) Refresh(ctx context.Context) error {
	port, err := c.doRefresh(ctx)
	if err != nil {
		return err
	}

	c.logger.Info("Web server started", "contextId", c.contextID.ID(), "port", port)
	event := bootkit.NewCloudEvent(EventTypeReactiveWebServerInitialized, c.contextID.ID(),
		WebServerInitializedData{ContextID: c.contextID.ID(), Port: port})
	return c.NotifyObservers(ctx, event)
}

func (c *ReactiveWebServerContext) doRefresh(ctx context.Context) (int, error) {
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

func (c *ReactiveWebServerContext) createWebServer() error {
	factoryType := reflect.TypeOf((*ReactiveWebServerFactory)(nil)).Elem()
	name, err := resolveSingleBeanName(c.registry, factoryType,
		ErrWebServerFactoryMissing, ErrWebServerFactoryAmbiguous)
	if err != nil {
		return err
	}

	var factory ReactiveWebServerFactory
	if err := c.registry.GetBean(name, &factory); err != nil {
		return fmt.Errorf("retrieving web server factory %q: %w", name, err)
	}

	manager, err := newReactiveServerManager(factory)
	if err != nil {
		return fmt.Errorf("creating web server: %w", err)
	}
	c.manager = manager
	if lazyFactory, ok := factory.(LazyInitFactory); ok {
		c.lazyInit = lazyFactory.LazyInit()
	}
	return nil
}

func (c *ReactiveWebServerContext) resolveHandler() (HTTPHandler, error) {
	handlerType := reflect.TypeOf((*HTTPHandler)(nil)).Elem()
	name, err := resolveSingleBeanName(c.registry, handlerType,
		ErrHandlerMissing, ErrHandlerAmbiguous)
	if err != nil {
		return nil, err
	}
	var handler HTTPHandler
	if err := c.registry.GetBean(name, &handler); err != nil {
		return nil, fmt.Errorf("retrieving handler %q: %w", name, err)
	}
	return handler, nil
}

func (c *ReactiveWebServerContext) stopAndRelease(ctx context.Context, cause error) error {
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

// Close stops the server and closes the context. Repeated Close calls are
// safe no-ops.
func (c *ReactiveWebServerContext) Close(ctx context.Context) error {
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
func (c *ReactiveWebServerContext) GetWebServer() WebServer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.manager == nil {
		return nil
	}
	return c.manager.webServer()
}
