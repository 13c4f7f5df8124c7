package registry

import (
	"errors"
	"fmt"
)

// Identifier errors
var (
	ErrInvalidIdentifier = errors.New("invalid environment identifier")
)

// Registration errors. A *RegistrationError matches ErrRegistration and
// exactly one of the specific causes below.
var (
	ErrRegistration         = errors.New("registration not allowed")
	ErrAlreadyRegistered    = errors.New("cannot override the registered environment")
	ErrNotFirstVersion      = errors.New("the first version of an environment must be v0")
	ErrNonSequentialVersion = errors.New("version must be exactly one greater than the latest registered version")
)

// Lookup and construction errors
var (
	ErrUnknownIdentifier    = errors.New("environment not registered")
	ErrEntryPointResolution = errors.New("cannot resolve entry point")
)

// RegistrationError reports why an identifier could not be registered.
type RegistrationError struct {
	ID    string
	Cause error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register %s: %v", e.ID, e.Cause)
}

// Unwrap exposes both ErrRegistration and the specific cause to errors.Is.
func (e *RegistrationError) Unwrap() []error {
	return []error{ErrRegistration, e.Cause}
}
