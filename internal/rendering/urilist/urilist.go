// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package urilist renders objects of the OCCI type model into the
// "text/uri-list" format, which contains only absolute locations.
package urilist

import (
	"strings"

	"github.com/sapcc/occi-adapter/internal/occi"
	"github.com/sapcc/occi-adapter/internal/rendering"
	"github.com/sapcc/occi-adapter/internal/rendering/headers"
)

// Format is the name of this format in error messages.
const Format = "uri-list"

// Renderer renders a single object into a response body.
type Renderer struct {
	render func(env rendering.Environment) string
}

// Render returns the response body.
func (r Renderer) Render(env rendering.Environment) string {
	return r.render(env)
}

var renderers = map[occi.Variant]func(occi.Object) Renderer{
	occi.VariantAction:     singleObject,
	occi.VariantKind:       singleObject,
	occi.VariantMixin:      singleObject,
	occi.VariantResource:   singleObject,
	occi.VariantLink:       singleObject,
	occi.VariantCollection: collection,
}

// GetRenderer returns the renderer for the given value. Error values are
// rendered as their plain message.
func GetRenderer(value any) (Renderer, error) {
	if err, ok := value.(error); ok {
		return Renderer{func(rendering.Environment) string { return err.Error() }}, nil
	}
	if obj, ok := value.(occi.Object); ok {
		if construct, exists := renderers[obj.Variant()]; exists {
			return construct(obj), nil
		}
	}
	return Renderer{}, rendering.UnsupportedRenderTypeError{Format: Format, Value: value}
}

func singleObject(obj occi.Object) Renderer {
	return Renderer{func(env rendering.Environment) string { return location(obj, env) }}
}

func collection(obj occi.Object) Renderer {
	c := obj.(*occi.Collection)
	return Renderer{func(env rendering.Environment) string {
		objects := c.Objects()
		lines := make([]string, len(objects))
		for idx, member := range objects {
			lines[idx] = location(member, env)
		}
		return strings.Join(lines, "\n")
	}}
}

// location returns the absolute location of the given object. Categories
// without a location are rendered as their category line instead.
func location(obj occi.Object, env rendering.Environment) string {
	if c, ok := obj.(occi.CategoryObject); ok && c.AsCategory().Location() == "" {
		return headers.PlainCategoryLine(c)
	}
	return env.URL(headers.Location(obj))
}
