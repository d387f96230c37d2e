// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package text renders objects of the OCCI type model into the "text/plain"
// format. This format contains the same lines as the header format, but
// places them in the response body.
package text

import (
	"strings"

	"github.com/sapcc/go-bits/errext"

	"github.com/sapcc/occi-adapter/internal/rendering"
	"github.com/sapcc/occi-adapter/internal/rendering/headers"
)

// Format is the name of this format in error messages.
const Format = "text"

// Renderer renders a single object into a response body.
type Renderer struct {
	inner headers.Renderer
}

// GetRenderer returns the renderer for the given value. Error values are
// rendered as exceptions.
func GetRenderer(value any) (Renderer, error) {
	inner, err := headers.GetRenderer(value)
	if err != nil {
		if uerr, ok := errext.As[rendering.UnsupportedRenderTypeError](err); ok {
			uerr.Format = Format
			return Renderer{}, uerr
		}
		return Renderer{}, err
	}
	return Renderer{inner}, nil
}

// Render returns the response body.
func (r Renderer) Render(env rendering.Environment) string {
	lines := r.inner.Render(env)
	var sb strings.Builder
	for idx, line := range lines {
		if idx > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line.Name)
		sb.WriteString(": ")
		sb.WriteString(line.Value)
	}
	return sb.String()
}
