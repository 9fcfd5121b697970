package condition

import (
	"errors"
)

// Condition evaluation errors
var (
	// ErrConditionEvaluation is returned when a condition cannot be
	// evaluated at all, as opposed to evaluating to "no match".
	ErrConditionEvaluation = errors.New("error processing condition")

	// ErrPropertyNamesRequired is returned when a property condition is
	// constructed with neither the name nor the value attribute set.
	ErrPropertyNamesRequired = errors.New("the name or value attribute of the property condition must be specified")

	// ErrPropertyNamesExclusive is returned when a property condition is
	// constructed with both the name and the value attribute set.
	ErrPropertyNamesExclusive = errors.New("the name and value attributes of the property condition are exclusive")
)
