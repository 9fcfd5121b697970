package webserver

import (
	"context"
	"fmt"

	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/GoCodeAlone/bootkit"
)

// ServerPortProperty is the environment property the port-info observer
// writes the bound server port to.
const ServerPortProperty = "local.server.port"

// ServerPortInfoObserver listens for web-server-initialized events and
// publishes the bound port into the environment, so components configured
// with an ephemeral port can discover the real one. When the environment
// is a MapEnvironment, the property is also written to every parent
// environment in the chain.
type ServerPortInfoObserver struct {
	env bootkit.Environment
}

// NewServerPortInfoObserver creates an observer targeting env. Register it
// on a context for the initialized event types.
func NewServerPortInfoObserver(env bootkit.Environment) *ServerPortInfoObserver {
	return &ServerPortInfoObserver{env: env}
}

// ObserverID implements bootkit.Observer.
func (o *ServerPortInfoObserver) ObserverID() string {
	return "webserver.serverPortInfo"
}

// OnEvent implements bootkit.Observer.
func (o *ServerPortInfoObserver) OnEvent(_ context.Context, event cloudevents.Event) error {
	switch event.Type() {
	case EventTypeServletWebServerInitialized, EventTypeReactiveWebServerInitialized:
	default:
		return nil
	}

	var data WebServerInitializedData
	if err := event.DataAs(&data); err != nil {
		return fmt.Errorf("decoding initialized event data: %w", err)
	}

	if mapEnv, ok := o.env.(*bootkit.MapEnvironment); ok {
		for env := mapEnv; env != nil; env = env.Parent() {
			env.SetProperty(ServerPortProperty, data.Port)
		}
		return nil
	}
	if setter, ok := o.env.(bootkit.PropertySetter); ok {
		setter.SetProperty(ServerPortProperty, data.Port)
	}
	return nil
}
