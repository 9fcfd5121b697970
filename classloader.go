package bootkit

import (
	"fmt"
	"sync"
)

// ClassLoader answers whether a fully-qualified class name is loadable.
// A nil return means the class resolved. ErrClassNotFound (possibly
// wrapped) means the class is plainly absent; any other error is a load
// failure, which the full condition evaluation treats as fatal while the
// bulk filter pipeline recovers it locally as "missing".
type ClassLoader interface {
	LoadClass(name string) error
}

// ClassPresent reports whether the class resolves through the loader.
// Load failures count as absent, matching the filter pipeline's recovery
// behavior.
func ClassPresent(loader ClassLoader, name string) bool {
	return loader.LoadClass(name) == nil
}

// StaticClassLoader is the stock ClassLoader backed by a set of known
// class names. Lookups are map reads, so repeated queries are effectively
// cached. Names can also be registered as broken to simulate classes that
// exist but fail to load.
type StaticClassLoader struct {
	mu      sync.RWMutex
	present map[string]struct{}
	broken  map[string]error
}

// NewStaticClassLoader creates a loader that resolves the given names.
func NewStaticClassLoader(names ...string) *StaticClassLoader {
	l := &StaticClassLoader{
		present: make(map[string]struct{}, len(names)),
		broken:  make(map[string]error),
	}
	for _, name := range names {
		l.present[name] = struct{}{}
	}
	return l
}

// Register makes additional class names resolvable.
func (l *StaticClassLoader) Register(names ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, name := range names {
		l.present[name] = struct{}{}
	}
}

// RegisterBroken marks a class name as failing to load with the given
// cause. Loading it returns an error wrapping ErrClassLoad, not
// ErrClassNotFound.
func (l *StaticClassLoader) RegisterBroken(name string, cause error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.broken[name] = cause
}

// LoadClass implements ClassLoader.
func (l *StaticClassLoader) LoadClass(name string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if cause, isBroken := l.broken[name]; isBroken {
		return fmt.Errorf("%w: %s: %w", ErrClassLoad, name, cause)
	}
	if _, ok := l.present[name]; !ok {
		return fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}
	return nil
}
