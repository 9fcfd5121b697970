package webserver

import "errors"

var (
	// ErrWebServerFactoryMissing is returned when context refresh finds no
	// web-server factory bean in the context's own registry.
	ErrWebServerFactoryMissing = errors.New("unable to start web server due to missing web server factory bean")

	// ErrWebServerFactoryAmbiguous is returned when context refresh finds
	// more than one web-server factory bean.
	ErrWebServerFactoryAmbiguous = errors.New("unable to start web server due to multiple web server factory beans")

	// ErrHandlerMissing is returned when server start finds no handler bean.
	ErrHandlerMissing = errors.New("unable to start web server due to missing handler bean")

	// ErrHandlerAmbiguous is returned when server start finds more than one
	// handler bean.
	ErrHandlerAmbiguous = errors.New("unable to start web server due to multiple handler beans")

	// ErrHandlerNotInitialized signals a request arriving before the context
	// finished initializing and swapped in the real handler.
	ErrHandlerNotInitialized = errors.New("handler has not yet been initialized")

	// ErrContextNotRefreshable is returned when Refresh is called on a
	// context that is not in the created state.
	ErrContextNotRefreshable = errors.New("context is not in a refreshable state")

	// ErrWebServerStop wraps a failure to stop the embedded server.
	ErrWebServerStop = errors.New("unable to stop web server")
)
