// Package bootkit provides the core of a conditional auto-configuration
// application framework: a bean registry and environment contract, a
// class-presence oracle, context identity, and the event plumbing used by
// the web-server application contexts. Condition evaluation lives in the
// condition subpackage; the embedded-server lifecycle lives in webserver.
package bootkit

import (
	"context"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

// Observer is notified of framework lifecycle events. Events use the
// CloudEvents specification for a standardized format.
type Observer interface {
	// OnEvent is called when an event the observer subscribed to occurs.
	// Observers should handle events quickly to avoid blocking others.
	OnEvent(ctx context.Context, event cloudevents.Event) error

	// ObserverID returns a unique identifier for this observer, used for
	// registration tracking and debugging.
	ObserverID() string
}

// Subject is implemented by components that emit lifecycle events, such
// as the web-server application contexts.
type Subject interface {
	// RegisterObserver adds an observer. An empty eventTypes list
	// subscribes the observer to all events.
	RegisterObserver(observer Observer, eventTypes ...string) error

	// UnregisterObserver removes an observer. Idempotent.
	UnregisterObserver(observer Observer) error

	// NotifyObservers sends an event to all subscribed observers.
	// Observer errors are logged, not propagated.
	NotifyObservers(ctx context.Context, event cloudevents.Event) error
}

// FunctionalObserver adapts a function into an Observer.
type FunctionalObserver struct {
	id      string
	handler func(ctx context.Context, event cloudevents.Event) error
}

// NewFunctionalObserver creates an observer that delegates to handler.
func NewFunctionalObserver(id string, handler func(ctx context.Context, event cloudevents.Event) error) Observer {
	return &FunctionalObserver{id: id, handler: handler}
}

// OnEvent implements Observer.
func (f *FunctionalObserver) OnEvent(ctx context.Context, event cloudevents.Event) error {
	return f.handler(ctx, event)
}

// ObserverID implements Observer.
func (f *FunctionalObserver) ObserverID() string {
	return f.id
}

// NewCloudEvent creates a CloudEvent with the required attributes set.
func NewCloudEvent(eventType, source string, data any) cloudevents.Event {
	event := cloudevents.NewEvent()
	event.SetID(generateEventID())
	event.SetSource(source)
	event.SetType(eventType)
	event.SetTime(time.Now())
	event.SetSpecVersion(cloudevents.VersionV1)
	if data != nil {
		_ = event.SetData(cloudevents.ApplicationJSON, data)
	}
	return event
}

// generateEventID generates a time-ordered unique identifier using UUIDv7,
// falling back to v4 if v7 generation fails.
func generateEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
