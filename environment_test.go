package bootkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapEnvironmentProperties(t *testing.T) {
	env := NewMapEnvironment()
	assert.False(t, env.ContainsProperty("server.port"))

	env.SetProperty("server.port", 8080)
	env.SetProperty("app.name", "demo")

	assert.True(t, env.ContainsProperty("server.port"))

	port, ok := env.Property("server.port")
	require.True(t, ok)
	assert.Equal(t, "8080", port, "non-string values stringify on read")

	name, ok := env.Property("app.name")
	require.True(t, ok)
	assert.Equal(t, "demo", name)

	_, ok = env.Property("absent")
	assert.False(t, ok)
}

func TestMapEnvironmentTypedProperties(t *testing.T) {
	env := NewMapEnvironment()
	env.SetProperty("server.port", "8080")
	env.SetProperty("feature.enabled", "true")

	port, err := env.PropertyInt("server.port")
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	enabled, err := env.PropertyBool("feature.enabled")
	require.NoError(t, err)
	assert.True(t, enabled)

	_, err = env.PropertyInt("absent")
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	env.SetProperty("server.host", "localhost")
	_, err = env.PropertyInt("server.host")
	assert.ErrorIs(t, err, ErrPropertyConvert)
}

func TestWebEnvironmentType(t *testing.T) {
	assert.Equal(t, WebApplicationServlet,
		NewWebEnvironment(WebApplicationServlet).WebApplicationType())
	assert.Equal(t, WebApplicationNone,
		NewMapEnvironment().WebApplicationType())

	assert.Equal(t, "SERVLET", WebApplicationServlet.String())
	assert.Equal(t, "REACTIVE", WebApplicationReactive.String())
	assert.Equal(t, "ANY", WebApplicationNone.String())
}

func TestMapEnvironmentParentChain(t *testing.T) {
	parent := NewMapEnvironment()
	child := NewMapEnvironment()
	child.SetParent(parent)

	assert.Same(t, parent, child.Parent())
	assert.Nil(t, parent.Parent())
}

func TestLoadPropertySourceYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n  host: localhost\napp:\n  name: demo\n"), 0o600))

	env := NewMapEnvironment()
	require.NoError(t, LoadPropertySource(env, path))

	port, err := env.PropertyInt("server.port")
	require.NoError(t, err)
	assert.Equal(t, 9090, port)

	name, _ := env.Property("app.name")
	assert.Equal(t, "demo", name)
}

func TestLoadPropertySourceTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 7070\n\n[feature]\nenabled = true\n"), 0o600))

	env := NewMapEnvironment()
	require.NoError(t, LoadPropertySource(env, path))

	port, err := env.PropertyInt("server.port")
	require.NoError(t, err)
	assert.Equal(t, 7070, port)

	enabled, err := env.PropertyBool("feature.enabled")
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestLoadPropertySourceUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("port=1\n"), 0o600))

	err := LoadPropertySource(NewMapEnvironment(), path)
	assert.ErrorIs(t, err, ErrPropertySourceUnsupported)
}

func TestLoadPropertySourceMissingFile(t *testing.T) {
	err := LoadPropertySource(NewMapEnvironment(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
