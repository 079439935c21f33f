package apierror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error for propagation and HTTP mapping.
type Kind string

const (
	// KindValidation is a malformed or empty request, surfaced as a client error.
	KindValidation Kind = "VALIDATION_ERROR"
	// KindUpstream is a catalog upstream failure, surfaced as a bad gateway.
	KindUpstream Kind = "UPSTREAM_ERROR"
	// KindNotFound is a missing resource.
	KindNotFound Kind = "NOT_FOUND"
	// KindInternal is any other failure.
	KindInternal Kind = "INTERNAL_ERROR"
)

// Error is a classified error carrying an HTTP status code.
type Error struct {
	Kind       Kind   `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a 400 error.
func Validation(format string, args ...any) *Error {
	return &Error{
		Kind:       KindValidation,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: fiber.StatusBadRequest,
	}
}

// Upstream wraps a catalog upstream failure as a 502 error.
func Upstream(err error) *Error {
	return &Error{
		Kind:       KindUpstream,
		Message:    "catalog upstream request failed",
		StatusCode: fiber.StatusBadGateway,
		Err:        err,
	}
}

// NotFound creates a 404 error.
func NotFound(format string, args ...any) *Error {
	return &Error{
		Kind:       KindNotFound,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: fiber.StatusNotFound,
	}
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// Respond writes err as a JSON error body with the mapped status code.
// Unclassified errors become 500 responses without leaking their message.
func Respond(c *fiber.Ctx, err error) error {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = &Error{
			Kind:       KindInternal,
			Message:    "internal server error",
			StatusCode: fiber.StatusInternalServerError,
		}
	}

	body := fiber.Map{
		"code":    apiErr.Kind,
		"message": apiErr.Message,
	}
	if apiErr.Kind == KindUpstream && apiErr.Err != nil {
		body["details"] = apiErr.Err.Error()
	}

	return c.Status(apiErr.StatusCode).JSON(fiber.Map{"error": body})
}
