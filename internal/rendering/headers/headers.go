// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package headers renders objects of the OCCI type model into the
// "text/occi" format, where each piece of information is one HTTP header.
package headers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sapcc/occi-adapter/internal/occi"
	"github.com/sapcc/occi-adapter/internal/rendering"
)

// Format is the name of this format in error messages.
const Format = "header"

// Header names used by this format.
const (
	CategoryHeader  = "Category"
	AttributeHeader = "X-OCCI-Attribute"
	LinkHeader      = "Link"
	LocationHeader  = "X-OCCI-Location"
	ErrorHeader     = "X-OCCI-Error"
)

// Renderer renders a single object into a list of headers.
type Renderer interface {
	Render(env rendering.Environment) []rendering.Header
}

// RendererFunc is a function implementing the Renderer interface.
type RendererFunc func(env rendering.Environment) []rendering.Header

// Render implements the Renderer interface.
func (f RendererFunc) Render(env rendering.Environment) []rendering.Header {
	return f(env)
}

var renderers = map[occi.Variant]func(occi.Object) Renderer{
	occi.VariantAttribute: func(obj occi.Object) Renderer {
		return RendererFunc(func(env rendering.Environment) []rendering.Header {
			return []rendering.Header{renderAttribute(obj.(*occi.Attribute), env)}
		})
	},
	occi.VariantAction:   categoryRenderer,
	occi.VariantKind:     categoryRenderer,
	occi.VariantMixin:    categoryRenderer,
	occi.VariantResource: func(obj occi.Object) Renderer { return resourceRenderer{obj.(occi.ResourceObject).AsResource()} },
	occi.VariantLink:     func(obj occi.Object) Renderer { return linkRenderer{obj.(occi.LinkObject).AsLink()} },
}

func categoryRenderer(obj occi.Object) Renderer {
	c := obj.(occi.CategoryObject)
	return RendererFunc(func(env rendering.Environment) []rendering.Header {
		return []rendering.Header{{Name: CategoryHeader, Value: CategoryLine(c, env)}}
	})
}

// GetRenderer returns the renderer for the given value. Error values are
// rendered as exceptions. For collections, every member must be renderable.
func GetRenderer(value any) (Renderer, error) {
	if err, ok := value.(error); ok {
		return exceptionRenderer{err}, nil
	}
	if c, ok := value.(*occi.Collection); ok && c != nil {
		return newCollectionRenderer(c)
	}
	if obj, ok := value.(occi.Object); ok {
		if construct, exists := renderers[obj.Variant()]; exists {
			return construct(obj), nil
		}
	}
	return nil, rendering.UnsupportedRenderTypeError{Format: Format, Value: value}
}

////////////////////////////////////////////////////////////////////////////////
// categories

// PlainCategoryLine renders the part of a category line that is common to all
// classes of categories.
func PlainCategoryLine(c occi.CategoryObject) string {
	cat := c.AsCategory()
	return fmt.Sprintf(`%s; scheme="%s"; class="%s"; title="%s"`,
		cat.Term(), cat.Scheme(), c.Class(), cat.Title())
}

// CategoryLine renders the full category line for the given category. For
// kinds, this includes the parent and location. For mixins, this includes the
// first related mixin and the location.
func CategoryLine(c occi.CategoryObject, env rendering.Environment) string {
	line := PlainCategoryLine(c)
	switch c := c.(type) {
	case *occi.Kind:
		if parent := c.Parent(); parent != nil {
			line += fmt.Sprintf(`; rel="%s"`, parent.TypeID())
		}
		if loc := c.Location(); loc != "" {
			line += fmt.Sprintf(`; location="%s"`, env.URL(loc))
		}
	case *occi.Mixin:
		if related := c.Related(); len(related) > 0 {
			line += fmt.Sprintf(`; rel="%s"`, related[0].TypeID())
		}
		if loc := c.Location(); loc != "" {
			line += fmt.Sprintf(`; location="%s"`, env.URL(loc))
		}
	}
	return line
}

////////////////////////////////////////////////////////////////////////////////
// attributes

func renderAttribute(attr *occi.Attribute, env rendering.Environment) rendering.Header {
	return rendering.Header{
		Name:  AttributeHeader,
		Value: attr.Name() + "=" + AttributeValue(attr.Value(), env),
	}
}

// AttributeValue renders an attribute value. Strings, booleans and entity
// references are quoted, everything else is not.
func AttributeValue(value any, env rendering.Environment) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case bool:
		return fmt.Sprintf(`"%t"`, v)
	case occi.EntityObject:
		return fmt.Sprintf("%q", env.EntityURL(v))
	}
	if s, ok := rendering.FormatNumber(value); ok {
		return s
	}
	buf, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(buf)
}

////////////////////////////////////////////////////////////////////////////////
// entities

// renderEntity renders the kind and mixins of an entity as plain category
// lines without rel and location. Those are only rendered in the query
// interface, where the categories themselves are the subject.
func renderEntity(e *occi.Entity, env rendering.Environment) []rendering.Header {
	result := []rendering.Header{{Name: CategoryHeader, Value: PlainCategoryLine(e.Kind())}}
	for _, m := range e.Mixins() {
		result = append(result, rendering.Header{Name: CategoryHeader, Value: PlainCategoryLine(m)})
	}
	for _, attr := range e.Attributes().All() {
		if attr.IsSet() {
			result = append(result, renderAttribute(attr, env))
		}
	}
	return result
}

type resourceRenderer struct {
	r *occi.Resource
}

// Render implements the Renderer interface.
func (rr resourceRenderer) Render(env rendering.Environment) []rendering.Header {
	result := renderEntity(&rr.r.Entity, env)
	resourceURL := env.EntityURL(rr.r)
	for _, a := range rr.r.Actions() {
		result = append(result, rendering.Header{
			Name:  LinkHeader,
			Value: fmt.Sprintf(`<%s>; rel="%s"`, rendering.JoinURL(resourceURL, a.Location()), a.TypeID()),
		})
	}
	for _, l := range rr.r.Links() {
		result = append(result, compositeLink(l, env))
	}
	return result
}

type linkRenderer struct {
	l *occi.Link
}

// Render implements the Renderer interface.
func (lr linkRenderer) Render(env rendering.Environment) []rendering.Header {
	return append(renderEntity(&lr.l.Entity, env), compositeLink(lr.l, env))
}

// compositeLink renders the single "Link" header that describes a link
// within the rendering of its source resource.
func compositeLink(l *occi.Link, env rendering.Environment) rendering.Header {
	categories := []string{l.Kind().TypeID()}
	for _, m := range l.Mixins() {
		categories = append(categories, m.TypeID())
	}

	var (
		targetURL  string
		targetKind string
	)
	if target := l.Target(); target != nil {
		targetURL = env.EntityURL(target)
		targetKind = target.Kind().TypeID()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<%s>; rel="%s"; self="%s"; category="%s"`,
		targetURL, targetKind, env.EntityURL(l), strings.Join(categories, " "))
	for _, attr := range l.Attributes().All() {
		if !attr.IsSet() {
			continue
		}
		if name := attr.Name(); name == occi.SourceAttribute || name == occi.TargetAttribute {
			continue
		}
		fmt.Fprintf(&sb, "; %s=%s", attr.Name(), AttributeValue(attr.Value(), env))
	}
	return rendering.Header{Name: LinkHeader, Value: sb.String()}
}

////////////////////////////////////////////////////////////////////////////////
// collections and errors

type collectionRenderer struct {
	c       *occi.Collection
	objects []occi.Object
	members []Renderer
}

func newCollectionRenderer(c *occi.Collection) (Renderer, error) {
	objects := c.Objects()
	members := make([]Renderer, len(objects))
	for idx, obj := range objects {
		//nil members are reported as unsupported
		r, err := GetRenderer(obj)
		if err != nil {
			return nil, err
		}
		members[idx] = r
	}
	return collectionRenderer{c, objects, members}, nil
}

// Render implements the Renderer interface.
func (cr collectionRenderer) Render(env rendering.Environment) []rendering.Header {
	var result []rendering.Header
	switch cr.c.PopulatedLists() {
	case 0:
		return nil
	case 1:
		for _, obj := range cr.objects {
			result = append(result, rendering.Header{Name: LocationHeader, Value: env.URL(Location(obj))})
		}
	default:
		for _, r := range cr.members {
			result = append(result, r.Render(env)...)
		}
	}
	return result
}

// Location returns the relative location of a collection member.
func Location(obj occi.Object) string {
	switch obj := obj.(type) {
	case occi.EntityObject:
		return obj.AsEntity().Location()
	case occi.CategoryObject:
		return obj.AsCategory().Location()
	default:
		return ""
	}
}

type exceptionRenderer struct {
	err error
}

// Render implements the Renderer interface.
func (er exceptionRenderer) Render(env rendering.Environment) []rendering.Header {
	return []rendering.Header{{Name: ErrorHeader, Value: er.err.Error()}}
}
