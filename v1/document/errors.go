package document

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every provider. Callers branch with errors.Is or
// the Is* helpers below; backends wrap their own failures into these kinds.
var (
	// ErrConfiguration is returned for invalid collection names and missing
	// connection parameters. It is raised before any request is sent.
	ErrConfiguration = errors.New("configuration error")

	// ErrValidation is returned for invalid pages, malformed filters and
	// payloads that cannot be encoded or decoded.
	ErrValidation = errors.New("invalid data")

	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrBackend is returned for any other failure reported by the store.
	ErrBackend = errors.New("backend error")
)

// BackendError carries the diagnostics of a failed backend call: the
// operation, the target (URL or statement name), the status and the body.
type BackendError struct {
	Operation  string
	Target     string
	StatusCode int
	Body       string
	Err        error
}

func (e *BackendError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: error calling %q: %v", e.Operation, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: error calling %q; status: %d, message: %q", e.Operation, e.Target, e.StatusCode, e.Body)
}

// Unwrap exposes both ErrBackend and the underlying cause.
func (e *BackendError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrBackend}
	}
	return []error{ErrBackend, e.Err}
}

// Configurationf formats a configuration error.
func Configurationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// Validationf formats a validation error.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf formats a not-found error.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// IsConfiguration checks if the error is a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound checks if the error reports a missing document.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsBackend checks if the error is an opaque backend failure.
func IsBackend(err error) bool {
	return errors.Is(err, ErrBackend)
}
