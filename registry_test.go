package bootkit

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter interface {
	Greet() string
}

type englishGreeter struct{}

func (englishGreeter) Greet() string { return "hello" }

type frenchGreeter struct{}

func (frenchGreeter) Greet() string { return "bonjour" }

func TestBeanRegistryRegisterSingleton(t *testing.T) {
	registry := NewBeanRegistry()

	require.NoError(t, registry.RegisterSingleton("greeter", englishGreeter{}))
	assert.True(t, registry.ContainsBean("greeter"))

	err := registry.RegisterSingleton("greeter", frenchGreeter{})
	assert.ErrorIs(t, err, ErrBeanAlreadyRegistered)
	assert.Contains(t, err.Error(), "greeter")

	assert.ErrorIs(t, registry.RegisterSingleton("nothing", nil), ErrBeanNil)
}

func TestBeanRegistryGetBean(t *testing.T) {
	registry := NewBeanRegistry()
	require.NoError(t, registry.RegisterSingleton("greeter", englishGreeter{}))
	require.NoError(t, registry.RegisterSingleton("count", 42))

	t.Run("interface target", func(t *testing.T) {
		var g greeter
		require.NoError(t, registry.GetBean("greeter", &g))
		assert.Equal(t, "hello", g.Greet())
	})

	t.Run("value target", func(t *testing.T) {
		var n int
		require.NoError(t, registry.GetBean("count", &n))
		assert.Equal(t, 42, n)
	})

	t.Run("missing bean", func(t *testing.T) {
		var n int
		assert.ErrorIs(t, registry.GetBean("absent", &n), ErrBeanNotFound)
	})

	t.Run("non-pointer target", func(t *testing.T) {
		var n int
		assert.ErrorIs(t, registry.GetBean("count", n), ErrTargetNotPointer)
	})

	t.Run("incompatible target", func(t *testing.T) {
		var s string
		err := registry.GetBean("count", &s)
		assert.ErrorIs(t, err, ErrBeanIncompatible)
	})
}

func TestBeanRegistryGetBeanPointerDeref(t *testing.T) {
	registry := NewBeanRegistry()
	value := englishGreeter{}
	require.NoError(t, registry.RegisterSingleton("greeter", &value))

	var g englishGreeter
	require.NoError(t, registry.GetBean("greeter", &g))
}

func TestBeanRegistryBeanNamesForType(t *testing.T) {
	registry := NewBeanRegistry()
	require.NoError(t, registry.RegisterSingleton("english", englishGreeter{}))
	require.NoError(t, registry.RegisterSingleton("count", 7))
	require.NoError(t, registry.RegisterSingleton("french", frenchGreeter{}))

	greeterType := reflect.TypeOf((*greeter)(nil)).Elem()
	assert.Equal(t, []string{"english", "french"}, registry.BeanNamesForType(greeterType))
	assert.Equal(t, []string{"count"}, registry.BeanNamesForType(reflect.TypeOf(0)))
}

func TestBeanRegistryBeanNamesForTypeIgnoresParent(t *testing.T) {
	parent := NewBeanRegistry()
	require.NoError(t, parent.RegisterSingleton("parentGreeter", englishGreeter{}))

	child := NewChildBeanRegistry(parent)
	require.NoError(t, child.RegisterSingleton("childGreeter", frenchGreeter{}))

	greeterType := reflect.TypeOf((*greeter)(nil)).Elem()
	assert.Equal(t, []string{"childGreeter"}, child.BeanNamesForType(greeterType))
	assert.Same(t, parent, child.Parent())
}

func TestBeanRegistryScopes(t *testing.T) {
	registry := NewBeanRegistry()
	assert.Empty(t, registry.RegisteredScopeNames())

	require.NoError(t, registry.RegisterScope("session"))
	require.NoError(t, registry.RegisterScope("request"))
	assert.Equal(t, []string{"session", "request"}, registry.RegisteredScopeNames())

	assert.ErrorIs(t, registry.RegisterScope("session"), ErrScopeAlreadyRegistered)
}
