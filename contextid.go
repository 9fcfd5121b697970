package bootkit

import (
	"fmt"
	"sync/atomic"
)

// ContextIDBeanName is the singleton bean name under which a context's
// ContextID is registered in its bean registry.
const ContextIDBeanName = "bootkit.contextID"

// ApplicationNameProperty is the environment property consulted for a root
// context's id. When absent, DefaultApplicationID is used.
const ApplicationNameProperty = "application.name"

// DefaultApplicationID is the fallback root context id.
const DefaultApplicationID = "application"

// ContextID is the human-diagnosable identifier of an application context.
// IDs form a path-like hierarchy: a child id is the parent id plus a
// "-N" suffix, where N is the 1-based sequence of children minted so far.
// The id itself is immutable; only the child counter advances.
type ContextID struct {
	children atomic.Int64
	id       string
}

// NewContextID creates a root ContextID with the given id.
func NewContextID(id string) *ContextID {
	return &ContextID{id: id}
}

// ID returns the identifier string.
func (c *ContextID) ID() string {
	return c.id
}

// ChildID atomically mints the next child identifier.
func (c *ContextID) ChildID() *ContextID {
	return NewContextID(fmt.Sprintf("%s-%d", c.id, c.children.Add(1)))
}

// AssignContextID assigns an id to a context's registry and returns it.
// If the parent registry carries a ContextID bean, the child id is minted
// from it; otherwise the id comes from the ApplicationNameProperty of the
// environment, falling back to DefaultApplicationID. The id is exposed as
// a singleton bean so it can be retrieved later by name.
func AssignContextID(registry BeanRegistry, env Environment, parent BeanRegistry) (*ContextID, error) {
	if registry.ContainsBean(ContextIDBeanName) {
		return nil, ErrContextIDAssigned
	}

	contextID := newContextID(env, parent)
	if err := registry.RegisterSingleton(ContextIDBeanName, contextID); err != nil {
		return nil, fmt.Errorf("registering context id: %w", err)
	}
	return contextID, nil
}

func newContextID(env Environment, parent BeanRegistry) *ContextID {
	if parent != nil && parent.ContainsBean(ContextIDBeanName) {
		var parentID *ContextID
		if err := parent.GetBean(ContextIDBeanName, &parentID); err == nil {
			return parentID.ChildID()
		}
	}
	if name, ok := env.Property(ApplicationNameProperty); ok && name != "" {
		return NewContextID(name)
	}
	return NewContextID(DefaultApplicationID)
}
