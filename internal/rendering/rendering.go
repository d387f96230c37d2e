// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package rendering contains the types shared by the format-specific
// renderers in its subpackages.
package rendering

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sapcc/go-bits/errext"

	"github.com/sapcc/occi-adapter/internal/occi"
)

// Environment contains request-specific information that renderers need.
type Environment struct {
	// ApplicationURL is the public base URL of this service, e.g.
	// "https://occi.example.com". Relative locations are resolved against it.
	ApplicationURL string
}

// URL returns the absolute URL for the given location.
func (e Environment) URL(location string) string {
	return JoinURL(e.ApplicationURL, location)
}

// EntityURL returns the absolute URL of the given entity.
func (e Environment) EntityURL(obj occi.EntityObject) string {
	return e.URL(obj.AsEntity().Location())
}

// JoinURL appends a location to a base URL, making sure that exactly one
// slash separates them. Locations starting with "?" are appended verbatim.
func JoinURL(base, location string) string {
	if strings.HasPrefix(location, "?") {
		return base + location
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(location, "/")
}

// Header is a single line of output in the header and text formats.
type Header struct {
	Name  string
	Value string
}

// UnsupportedRenderTypeError is returned by the GetRenderer() functions when
// there is no renderer for the given value in the requested format.
type UnsupportedRenderTypeError struct {
	Format string
	Value  any
}

// Error implements the builtin/error interface.
func (e UnsupportedRenderTypeError) Error() string {
	if obj, ok := e.Value.(occi.Object); ok {
		return fmt.Sprintf("cannot render %s objects in %s format", obj.Variant(), e.Format)
	}
	return fmt.Sprintf("cannot render values of type %T in %s format", e.Value, e.Format)
}

// StatusError is implemented by errors that know which HTTP status they
// should be reported with.
type StatusError interface {
	error
	HTTPStatus() int
}

// StatusCodeOf returns the HTTP status that the given error shall be
// rendered with. Errors that do not carry a status are internal errors.
func StatusCodeOf(err error) int {
	if serr, ok := errext.As[StatusError](err); ok {
		return serr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// FormatNumber renders a numeric attribute value. Integral floats are
// rendered without a decimal point.
func FormatNumber(value any) (string, bool) {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), true
	case float32:
		return FormatNumber(float64(v))
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}
