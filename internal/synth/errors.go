package synth

import (
	"errors"
	"fmt"
)

// Error kinds surfaced across the namespace boundary. Callers react
// differently to the two: a not-available error is the expected outcome
// of a speculative lookup and is never logged as a problem, while a
// not-implemented error marks a request that cannot be served at all
// (unsupported pixel format, out-of-range bounding box, missing sheet).
var (
	ErrNotAvailable   = errors.New("not available")
	ErrNotImplemented = errors.New("not implemented")
)

// PathError records an error and the operation and namespace path that
// caused it.
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

// IsNotAvailable reports whether an error marks an expected namespace
// miss.
func IsNotAvailable(err error) bool {
	return errors.Is(err, ErrNotAvailable)
}

// IsNotImplemented reports whether an error marks an unsupported or
// unrecoverable request.
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}
