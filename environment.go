package bootkit

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/golobby/cast"
)

// Environment is the property-resolution contract the framework core
// depends on. Property values are plain strings; typed access goes through
// the conversion helpers on the stock implementation.
type Environment interface {
	// ContainsProperty reports whether the given key resolves to a value.
	ContainsProperty(key string) bool

	// Property returns the string value for the given key, if present.
	Property(key string) (string, bool)
}

// PropertySetter is implemented by environments whose properties can be
// mutated after construction, such as MapEnvironment. The web-server
// lifecycle uses it to expose the bound server port.
type PropertySetter interface {
	SetProperty(key string, value any)
}

// WebApplicationType identifies the flavor of web application an
// environment or application context belongs to.
type WebApplicationType int

const (
	// WebApplicationNone marks a non-web environment.
	WebApplicationNone WebApplicationType = iota
	// WebApplicationServlet marks a servlet-stack web environment.
	WebApplicationServlet
	// WebApplicationReactive marks a reactive-stack web environment.
	WebApplicationReactive
)

// String returns the flavor name used in metadata attribute values.
func (t WebApplicationType) String() string {
	switch t {
	case WebApplicationServlet:
		return "SERVLET"
	case WebApplicationReactive:
		return "REACTIVE"
	default:
		return "ANY"
	}
}

// WebTyped is implemented by environments and application contexts that
// belong to a specific web stack. The web-application condition probes for
// this interface by type assertion.
type WebTyped interface {
	WebApplicationType() WebApplicationType
}

// MapEnvironment is the stock Environment implementation backed by a map.
// Values of any type may be stored; string retrieval stringifies scalars,
// so properties loaded from YAML or TOML keep their native types until
// they are read. Safe for concurrent use.
type MapEnvironment struct {
	mu      sync.RWMutex
	props   map[string]any
	webType WebApplicationType
	parent  *MapEnvironment
}

// NewMapEnvironment creates an empty environment.
func NewMapEnvironment() *MapEnvironment {
	return &MapEnvironment{props: make(map[string]any)}
}

// NewWebEnvironment creates an environment marked with the given web
// application type. The returned environment satisfies WebTyped.
func NewWebEnvironment(webType WebApplicationType) *MapEnvironment {
	return &MapEnvironment{props: make(map[string]any), webType: webType}
}

// SetParent links a parent environment. Property writes propagated by the
// port-info observer walk this chain; lookups do not.
func (e *MapEnvironment) SetParent(parent *MapEnvironment) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.parent = parent
}

// Parent returns the parent environment, or nil.
func (e *MapEnvironment) Parent() *MapEnvironment {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parent
}

// WebApplicationType implements WebTyped.
func (e *MapEnvironment) WebApplicationType() WebApplicationType {
	return e.webType
}

// SetProperty stores a property value, replacing any existing value.
func (e *MapEnvironment) SetProperty(key string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.props[key] = value
}

// ContainsProperty reports whether the key is present.
func (e *MapEnvironment) ContainsProperty(key string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.props[key]
	return ok
}

// Property returns the stringified value for key.
func (e *MapEnvironment) Property(key string) (string, bool) {
	e.mu.RLock()
	v, ok := e.props[key]
	e.mu.RUnlock()
	if !ok {
		return "", false
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return fmt.Sprintf("%v", v), true
}

// TypedProperty converts the property value to the requested type using
// the same conversion rules the config feeders use.
func (e *MapEnvironment) TypedProperty(key string, t reflect.Type) (any, error) {
	s, ok := e.Property(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPropertyNotFound, key)
	}
	converted, err := cast.FromType(s, t)
	if err != nil {
		return nil, fmt.Errorf("%w: %s to %v: %w", ErrPropertyConvert, key, t, err)
	}
	return converted, nil
}

// PropertyBool returns the property converted to bool.
func (e *MapEnvironment) PropertyBool(key string) (bool, error) {
	v, err := e.TypedProperty(key, reflect.TypeOf(false))
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// PropertyInt returns the property converted to int.
func (e *MapEnvironment) PropertyInt(key string) (int, error) {
	v, err := e.TypedProperty(key, reflect.TypeOf(0))
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}
