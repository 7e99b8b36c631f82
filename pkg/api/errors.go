package api

import "errors"

var (
	// ErrNotFound signals a lookup that matched nothing. It is not a
	// failure: handlers translate it to 404.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable signals a backend that could not be reached or a
	// query that failed for infrastructure reasons. The failover store
	// reroutes operations that return it.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrInvalid is the root of all input-validation failures. Handlers
	// translate anything wrapping it to 400.
	ErrInvalid = errors.New("invalid input")

	// ErrConflict signals a write that contradicts existing state, such
	// as registering an email twice.
	ErrConflict = errors.New("conflict")
)

// IsUnavailable reports whether err should trigger ephemeral fallback.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
