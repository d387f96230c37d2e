// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"fmt"
	"net/http"

	"github.com/sapcc/go-bits/errext"
)

// Error is returned by Gateway implementations when a request to the cloud
// fails in a way that shall be reported to the client with a specific status
// code.
type Error struct {
	StatusCode int
	Message    string
}

// Errorf is a convenience constructor for Error.
func Errorf(statusCode int, format string, args ...any) *Error {
	return &Error{statusCode, fmt.Sprintf(format, args...)}
}

// NotFound returns an Error with status 404.
func NotFound(kind, id string) *Error {
	return Errorf(http.StatusNotFound, "%s %q not found", kind, id)
}

// NotImplemented returns an Error with status 501.
func NotImplemented(format string, args ...any) *Error {
	return Errorf(http.StatusNotImplemented, format, args...)
}

// Error implements the builtin/error interface.
func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status code that this error shall be reported
// with.
func (e *Error) HTTPStatus() int {
	return e.StatusCode
}

// IsNotFound returns whether the given error is an Error with status 404,
// possibly wrapped.
func IsNotFound(err error) bool {
	berr, ok := errext.As[*Error](err)
	return ok && berr.StatusCode == http.StatusNotFound
}
