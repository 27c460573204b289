package renewal

import (
	"errors"
	"fmt"
)

// Validation-class errors are caller faults and are never retried.
var (
	ErrInvalidWindow         = errors.New("custom window requires both start and end dates")
	ErrUnsupportedCadence    = errors.New("renew period cannot be advanced automatically")
	ErrMissingRenewalDate    = errors.New("renewal date is not set on this entry")
	ErrAutofillNotApplicable = errors.New("autofill is not available for custom renew periods")
	ErrUnknownUpdateMode     = errors.New("mode must be either manual or autofill")
	ErrMissingTenant         = errors.New("tenant scope is required")
	ErrInvalidDate           = errors.New("date must be formatted as YYYY-MM-DD or RFC 3339")
)

// ErrRenewalNotEligible is returned both when the entry does not exist and
// when it exists but is not renewal-eligible, so callers cannot tell the two apart.
var ErrRenewalNotEligible = errors.New("history entry not found")

// ErrSubscriptionNotFound covers subscriptions outside the caller's tenant too.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// StoreError wraps a persistence failure. The engine never retries it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// IsValidationError reports whether err is a caller fault.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidWindow) ||
		errors.Is(err, ErrUnsupportedCadence) ||
		errors.Is(err, ErrMissingRenewalDate) ||
		errors.Is(err, ErrAutofillNotApplicable) ||
		errors.Is(err, ErrUnknownUpdateMode) ||
		errors.Is(err, ErrMissingTenant) ||
		errors.Is(err, ErrInvalidDate)
}
