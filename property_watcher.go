package bootkit

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// PropertyWatcher monitors a property-source file and reloads it into an
// environment when the file changes. Reloads merge over existing
// properties; keys removed from the file keep their last loaded value.
type PropertyWatcher struct {
	env     *MapEnvironment
	path    string
	logger  Logger
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewPropertyWatcher creates a watcher for the given file. The file is not
// loaded until Start is called.
func NewPropertyWatcher(env *MapEnvironment, path string, logger Logger) *PropertyWatcher {
	return &PropertyWatcher{env: env, path: path, logger: logger}
}

// Start loads the property source once, then begins watching it for
// changes until the context is cancelled or Stop is called.
func (w *PropertyWatcher) Start(ctx context.Context) error {
	if err := LoadPropertySource(w.env, w.path); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating property watcher: %w", err)
	}
	if err := watcher.Add(w.path); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			w.logger.Warn("Failed to close property watcher", "error", closeErr)
		}
		return fmt.Errorf("watching property source %s: %w", w.path, err)
	}

	w.watcher = watcher
	w.done = make(chan struct{})
	go w.watchLoop(ctx)
	return nil
}

func (w *PropertyWatcher) watchLoop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := LoadPropertySource(w.env, w.path); err != nil {
				w.logger.Error("Failed to reload property source", "path", w.path, "error", err)
				continue
			}
			w.logger.Debug("Reloaded property source", "path", w.path)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Property watcher error", "path", w.path, "error", err)
		}
	}
}

// Stop terminates the watch loop. Safe to call once after a successful Start.
func (w *PropertyWatcher) Stop() error {
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	<-w.done
	if err != nil {
		return fmt.Errorf("closing property watcher: %w", err)
	}
	return nil
}
