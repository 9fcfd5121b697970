package bootkit

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// BeanRegistry is the bean-registry contract the framework core depends on.
// It is a deliberately small slice of an IoC container: named singleton
// registration, reflection-based retrieval, type-driven name lookup scoped
// to a single registry level, and scope bookkeeping.
//
// BeanNamesForType never consults the parent registry; callers that want
// hierarchy-aware lookups go through condition.BeanNamesForType with an
// explicit search strategy.
type BeanRegistry interface {
	// RegisterSingleton adds a named bean instance to this registry level.
	RegisterSingleton(name string, bean any) error

	// GetBean retrieves a bean by name, assigning it to target which must
	// be a non-nil pointer. Interface targets are satisfied by any bean
	// implementing the interface.
	GetBean(name string, target any) error

	// ContainsBean reports whether a bean with the given name is registered
	// at this registry level.
	ContainsBean(name string) bool

	// BeanNamesForType returns the names of beans assignable to the given
	// type, in registration order, searching only this registry level.
	BeanNamesForType(t reflect.Type) []string

	// RegisterScope records a named scope (e.g. "session") on this registry.
	RegisterScope(name string) error

	// RegisteredScopeNames returns the registered scope names in
	// registration order.
	RegisteredScopeNames() []string

	// Parent returns the parent registry, or nil for a root registry.
	Parent() BeanRegistry
}

// StdBeanRegistry is the stock BeanRegistry implementation.
// It preserves registration order for type lookups and is safe for
// concurrent use.
type StdBeanRegistry struct {
	mu     sync.RWMutex
	names  []string
	beans  map[string]any
	scopes []string
	parent BeanRegistry
}

// NewBeanRegistry creates an empty root registry.
func NewBeanRegistry() *StdBeanRegistry {
	return &StdBeanRegistry{beans: make(map[string]any)}
}

// NewChildBeanRegistry creates a registry whose Parent is the given registry.
func NewChildBeanRegistry(parent BeanRegistry) *StdBeanRegistry {
	return &StdBeanRegistry{beans: make(map[string]any), parent: parent}
}

// RegisterSingleton adds a bean, rejecting duplicates and nil instances.
func (r *StdBeanRegistry) RegisterSingleton(name string, bean any) error {
	if bean == nil {
		return fmt.Errorf("%w: %s", ErrBeanNil, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.beans[name]; exists {
		return fmt.Errorf("%w: %s", ErrBeanAlreadyRegistered, name)
	}
	r.beans[name] = bean
	r.names = append(r.names, name)
	return nil
}

// GetBean retrieves a bean with type checking and assignment into target.
func (r *StdBeanRegistry) GetBean(name string, target any) error {
	r.mu.RLock()
	bean, exists := r.beans[name]
	r.mu.RUnlock()
	if !exists {
		return fmt.Errorf("%w: %s", ErrBeanNotFound, name)
	}

	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.IsNil() {
		return ErrTargetNotPointer
	}
	if !targetValue.Elem().IsValid() {
		return ErrTargetValueInvalid
	}

	beanType := reflect.TypeOf(bean)
	targetType := targetValue.Elem().Type()

	// Case 1: Target is an interface the bean implements
	if targetType.Kind() == reflect.Interface && beanType.Implements(targetType) {
		targetValue.Elem().Set(reflect.ValueOf(bean))
		return nil
	}

	// Case 2: Direct assignment or pointer dereference
	if beanType.AssignableTo(targetType) {
		targetValue.Elem().Set(reflect.ValueOf(bean))
		return nil
	} else if beanType.Kind() == reflect.Ptr && beanType.Elem().AssignableTo(targetType) {
		targetValue.Elem().Set(reflect.ValueOf(bean).Elem())
		return nil
	}

	return fmt.Errorf("%w: bean '%s' of type %s cannot be assigned to %s",
		ErrBeanIncompatible, name, beanType, targetType)
}

// ContainsBean reports whether the named bean exists at this level.
func (r *StdBeanRegistry) ContainsBean(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.beans[name]
	return exists
}

// BeanNamesForType returns names of beans assignable to t, in registration
// order, searching only this registry level.
func (r *StdBeanRegistry) BeanNamesForType(t reflect.Type) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []string
	for _, name := range r.names {
		beanType := reflect.TypeOf(r.beans[name])
		switch t.Kind() {
		case reflect.Interface:
			if beanType.Implements(t) {
				matches = append(matches, name)
			}
		default:
			if beanType.AssignableTo(t) {
				matches = append(matches, name)
			}
		}
	}
	return matches
}

// RegisterScope records a named scope.
func (r *StdBeanRegistry) RegisterScope(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.scopes, name) {
		return fmt.Errorf("%w: %s", ErrScopeAlreadyRegistered, name)
	}
	r.scopes = append(r.scopes, name)
	return nil
}

// RegisteredScopeNames returns the registered scope names.
func (r *StdBeanRegistry) RegisteredScopeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.scopes)
}

// Parent returns the parent registry, or nil for a root registry.
func (r *StdBeanRegistry) Parent() BeanRegistry {
	return r.parent
}
