package customErrors

import (
	"errors"
	"fmt"
)

const (
	ErrNotFound     = "NOT FOUND"
	ErrInvalidInput = "INVALID INPUT"
	ErrAuth         = "UNAUTHORIZED"
	ErrAccessDenied = "ACCESS DENIED"
	ErrConflict     = "CONFLICT"
	ErrRemote       = "REMOTE"
	ErrInternal     = "INTERNAL"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ErrorResponse) Error() string {
	return fmt.Sprintf("code: %s, message: %s", e.Code, e.Message)
}

// Is reports whether err carries the given taxonomy code anywhere in its chain.
func Is(err error, code string) bool {
	var resp ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == code
	}
	return false
}

// CodeOf extracts the taxonomy code from err, falling back to ErrInternal
// for errors that never passed through this package.
func CodeOf(err error) string {
	var resp ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code
	}
	return ErrInternal
}
