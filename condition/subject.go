package condition

import (
	"github.com/GoCodeAlone/bootkit"
)

// WebRequirement is the declarative web-application requirement carried by
// a subject. Negated inverts the check: the subject requires NOT being in
// a web application of the given flavor.
type WebRequirement struct {
	Type    bootkit.WebApplicationType
	Negated bool
}

// PropertyAttributes is one instance of a declarative property
// requirement. The requirement is repeatable: a subject may carry several
// independent instances, all of which must match.
//
// Exactly one of Value or Name must be non-empty; they are alternative
// spellings of the same attribute and are mutually exclusive.
type PropertyAttributes struct {
	// Prefix is prepended to every name; a trailing dot is added when
	// missing.
	Prefix string

	// HavingValue is the required property value. When empty, any value
	// except a case-insensitive "false" matches.
	HavingValue string

	// Value and Name each hold the property names to check.
	Value []string
	Name  []string

	// MatchIfMissing makes an absent property count as a match.
	MatchIfMissing bool
}

// Subject identifies what a condition is evaluated against: a candidate
// configuration class, or a method on one, together with its typed
// declarative requirements. The typed fields replace the raw attribute
// strings of the metadata side-table once full evaluation begins.
type Subject struct {
	Class  string
	Method string

	// RequiredClasses must all be loadable for OnClassCondition to match.
	RequiredClasses []string

	// ForbiddenClasses must all be absent for OnClassCondition to match.
	ForbiddenClasses []string

	// Web, when set, is evaluated by OnWebApplicationCondition.
	Web *WebRequirement

	// Properties, when non-empty, are evaluated by OnPropertyCondition.
	Properties []PropertyAttributes
}

// ID returns the subject identifier used as the report key: the class
// name, or "class#method" for a method subject.
func (s Subject) ID() string {
	if s.Method != "" {
		return s.Class + "#" + s.Method
	}
	return s.Class
}
