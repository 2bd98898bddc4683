package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services wrap these with fmt.Errorf("%w: ...") and the API layer uses
// errors.Is() to map them to HTTP responses.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// business rule validation.
	// Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with the current state
	// of a resource (duplicate username, illegal preset status transition).
	// Mapped to 409 Conflict.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the authenticated user is not allowed to
	// perform the requested action.
	// Mapped to 403 Forbidden.
	ErrPermission = errors.New("permission denied")

	// ErrUnauthorized signifies missing or invalid credentials.
	// Mapped to 401 Unauthorized.
	ErrUnauthorized = errors.New("authentication required")

	// ErrRateLimited signifies that the caller exceeded a request quota.
	// Mapped to 429 Too Many Requests.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrProviderUnavailable signifies that a vendor endpoint cannot be used,
	// typically because its credentials are not configured.
	// Mapped to 503 Service Unavailable.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrInternal is a generic error used to avoid leaking implementation details.
	// Mapped to 500 Internal Server Error.
	ErrInternal = errors.New("internal server error")
)
