package bootkit

import (
	"errors"
)

// Framework errors
var (
	// Bean registry errors
	ErrBeanAlreadyRegistered  = errors.New("bean already registered")
	ErrBeanNotFound           = errors.New("bean not found")
	ErrBeanNil                = errors.New("bean is nil")
	ErrTargetNotPointer       = errors.New("target must be a non-nil pointer")
	ErrTargetValueInvalid     = errors.New("target value is invalid")
	ErrBeanIncompatible       = errors.New("bean cannot be assigned to target")
	ErrScopeAlreadyRegistered = errors.New("scope already registered")

	// Class loading errors
	ErrClassNotFound = errors.New("class not found")
	ErrClassLoad     = errors.New("failed to load class")

	// Property source errors
	ErrPropertySourceUnsupported = errors.New("unsupported property source format")
	ErrPropertyNotFound          = errors.New("property not found")
	ErrPropertyConvert           = errors.New("cannot convert property value")

	// Context ID errors
	ErrContextIDAssigned = errors.New("context id already assigned")

	// Observer errors
	ErrObserverNil = errors.New("observer is nil")
)
