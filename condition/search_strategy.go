package condition

import (
	"reflect"
	"slices"

	"github.com/GoCodeAlone/bootkit"
)

// SearchStrategy defines which registry levels a bean search considers.
type SearchStrategy int

const (
	// SearchCurrent searches only the given registry level.
	SearchCurrent SearchStrategy = iota

	// SearchAncestors searches all ancestor registries, skipping the
	// given level.
	SearchAncestors

	// SearchAll searches the given level and all of its ancestors.
	SearchAll
)

// BeanNamesForType returns bean names assignable to t according to the
// search strategy, in registration order, nearest registry level first.
func BeanNamesForType(registry bootkit.BeanRegistry, strategy SearchStrategy, t reflect.Type) []string {
	var names []string
	level := registry
	if strategy == SearchAncestors {
		level = registry.Parent()
	}
	for level != nil {
		for _, name := range level.BeanNamesForType(t) {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
		if strategy == SearchCurrent {
			break
		}
		level = level.Parent()
	}
	return names
}
