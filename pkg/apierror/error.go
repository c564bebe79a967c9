package apierror

import (
	"encoding/json"
	"net/http"
)

// Error is an HTTP failure with a status code and a single detail message.
// It renders on the wire as {"detail": "..."}.
type Error struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Detail
}

// ToJSON converts the error to its wire representation.
func (e *Error) ToJSON() []byte {
	data, _ := json.Marshal(e)
	return data
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(detail string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Detail:     detail,
	}
}

// Unauthorized creates a 401 Unauthorized error.
func Unauthorized(detail string) *Error {
	if detail == "" {
		detail = "Unauthorized"
	}
	return &Error{
		StatusCode: http.StatusUnauthorized,
		Detail:     detail,
	}
}

// NotFound creates a 404 Not Found error.
func NotFound(detail string) *Error {
	if detail == "" {
		detail = "Resource not found"
	}
	return &Error{
		StatusCode: http.StatusNotFound,
		Detail:     detail,
	}
}

// InternalError creates a 500 Internal Server Error.
func InternalError(detail string) *Error {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Detail:     detail,
	}
}
