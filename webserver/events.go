package webserver

import (
	"context"
	"sync"

	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/GoCodeAlone/bootkit"
)

// Event types emitted by the web-server application contexts.
const (
	// EventTypeServletWebServerInitialized is published exactly once when a
	// servlet context's server has started and its port is known.
	EventTypeServletWebServerInitialized = "com.bootkit.webserver.servlet.initialized"

	// EventTypeReactiveWebServerInitialized is the reactive counterpart.
	EventTypeReactiveWebServerInitialized = "com.bootkit.webserver.reactive.initialized"
)

// WebServerInitializedData is the payload of an initialized event. The
// server handle itself is retrievable from the publishing context via
// GetWebServer.
type WebServerInitializedData struct {
	ContextID string `json:"contextId"`
	Port      int    `json:"port"`
}

// observerList implements bootkit.Subject for the application contexts.
// Delivery is synchronous and in registration order so lifecycle events
// are observed before the publishing operation returns.
type observerList struct {
	mu        sync.RWMutex
	order     []string
	observers map[string]*observerRegistration
	logger    bootkit.Logger
}

type observerRegistration struct {
	observer   bootkit.Observer
	eventTypes map[string]bool
}

func newObserverList(logger bootkit.Logger) *observerList {
	return &observerList{
		observers: make(map[string]*observerRegistration),
		logger:    logger,
	}
}

// RegisterObserver implements bootkit.Subject. An empty eventTypes list
// subscribes to all events.
func (l *observerList) RegisterObserver(observer bootkit.Observer, eventTypes ...string) error {
	if observer == nil {
		return bootkit.ErrObserverNil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	eventTypeMap := make(map[string]bool)
	for _, eventType := range eventTypes {
		eventTypeMap[eventType] = true
	}

	id := observer.ObserverID()
	if _, exists := l.observers[id]; !exists {
		l.order = append(l.order, id)
	}
	l.observers[id] = &observerRegistration{observer: observer, eventTypes: eventTypeMap}
	return nil
}

// UnregisterObserver implements bootkit.Subject. Idempotent.
func (l *observerList) UnregisterObserver(observer bootkit.Observer) error {
	if observer == nil {
		return bootkit.ErrObserverNil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	id := observer.ObserverID()
	if _, exists := l.observers[id]; exists {
		delete(l.observers, id)
		for i, name := range l.order {
			if name == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

// NotifyObservers implements bootkit.Subject. Observer errors are logged,
// never propagated.
func (l *observerList) NotifyObservers(ctx context.Context, event cloudevents.Event) error {
	l.mu.RLock()
	registrations := make([]*observerRegistration, 0, len(l.order))
	for _, id := range l.order {
		registrations = append(registrations, l.observers[id])
	}
	l.mu.RUnlock()

	for _, registration := range registrations {
		if len(registration.eventTypes) > 0 && !registration.eventTypes[event.Type()] {
			continue
		}
		if err := registration.observer.OnEvent(ctx, event); err != nil && l.logger != nil {
			l.logger.Error("Observer error",
				"observerID", registration.observer.ObserverID(),
				"event", event.Type(),
				"error", err)
		}
	}
	return nil
}
