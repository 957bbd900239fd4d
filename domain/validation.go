package domain

import "errors"

// ValidationError is returned when an entity rejects the values it was
// constructed or updated with. Its message is meant to be shown to callers
// as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// When returns a *ValidationError carrying message if hasError is true.
func When(hasError bool, message string) error {
	if hasError {
		return &ValidationError{Message: message}
	}
	return nil
}

// IsValidationError reports whether err, or any error it wraps, is a
// *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type rule struct {
	failed  bool
	message string
}

// check applies rules in order and stops at the first one that failed.
func check(rules ...rule) error {
	for _, r := range rules {
		if err := When(r.failed, r.message); err != nil {
			return err
		}
	}
	return nil
}
