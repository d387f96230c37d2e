// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package occijson renders objects of the OCCI type model into the
// "application/occi+json" format.
package occijson

import (
	"encoding/json"

	"github.com/sapcc/occi-adapter/internal/occi"
	"github.com/sapcc/occi-adapter/internal/rendering"
)

// Format is the name of this format in error messages.
const Format = "json"

// Renderer renders a single object into JSON.
type Renderer struct {
	data func(env rendering.Environment) any
}

// Render returns the JSON-encoded representation of the object. Since the
// representation is built from maps, object keys appear in sorted order.
func (r Renderer) Render(env rendering.Environment) ([]byte, error) {
	return json.Marshal(r.data(env))
}

type dataFunc = func(env rendering.Environment) any

var renderers = map[occi.Variant]func(occi.Object) dataFunc{
	occi.VariantAttribute: func(obj occi.Object) dataFunc {
		attr := obj.(*occi.Attribute)
		return func(env rendering.Environment) any {
			return map[string]any{attr.Name(): attributeValue(attr.Value(), env)}
		}
	},
	occi.VariantAction: func(obj occi.Object) dataFunc {
		return func(env rendering.Environment) any { return renderCategory(obj.(*occi.Action), env) }
	},
	occi.VariantKind: func(obj occi.Object) dataFunc {
		return func(env rendering.Environment) any { return renderKind(obj.(*occi.Kind), env) }
	},
	occi.VariantMixin: func(obj occi.Object) dataFunc {
		return func(env rendering.Environment) any { return renderMixin(obj.(*occi.Mixin), env) }
	},
	occi.VariantResource: func(obj occi.Object) dataFunc {
		return func(env rendering.Environment) any {
			return renderResource(obj.(occi.ResourceObject).AsResource(), env)
		}
	},
	occi.VariantLink: func(obj occi.Object) dataFunc {
		return func(env rendering.Environment) any { return renderLink(obj.(occi.LinkObject).AsLink(), env) }
	},
	occi.VariantCollection: func(obj occi.Object) dataFunc {
		return func(env rendering.Environment) any { return renderCollection(obj.(*occi.Collection), env) }
	},
}

// GetRenderer returns the renderer for the given value. Error values are
// rendered as exceptions. For collections, every member must be renderable.
func GetRenderer(value any) (Renderer, error) {
	if err, ok := value.(error); ok {
		return Renderer{func(rendering.Environment) any {
			return map[string]any{
				"code":    rendering.StatusCodeOf(err),
				"message": err.Error(),
			}
		}}, nil
	}
	if c, ok := value.(*occi.Collection); ok && c != nil {
		for _, member := range c.Objects() {
			if member == nil {
				return Renderer{}, rendering.UnsupportedRenderTypeError{Format: Format, Value: member}
			}
		}
	}
	if obj, ok := value.(occi.Object); ok {
		if construct, exists := renderers[obj.Variant()]; exists {
			return Renderer{construct(obj)}, nil
		}
	}
	return Renderer{}, rendering.UnsupportedRenderTypeError{Format: Format, Value: value}
}

////////////////////////////////////////////////////////////////////////////////
// categories

func renderCategory(c occi.CategoryObject, env rendering.Environment) map[string]any {
	cat := c.AsCategory()
	result := map[string]any{
		"term":   cat.Term(),
		"scheme": cat.Scheme(),
	}
	if title := cat.Title(); title != "" {
		result["title"] = title
	}
	if schema := cat.Attributes(); schema.Len() > 0 {
		attrs := make(map[string]any, schema.Len())
		for _, spec := range schema.Specs() {
			attrs[spec.Name] = renderAttributeSpec(spec)
		}
		result["attributes"] = attrs
	}
	return result
}

func renderAttributeSpec(spec occi.AttributeSpec) map[string]any {
	result := map[string]any{
		"mutable":  spec.Mutable,
		"required": spec.Required,
		"type":     string(spec.Type),
	}
	if spec.Default != nil {
		result["default"] = spec.Default
	}
	if spec.Description != "" {
		result["description"] = spec.Description
	}
	return result
}

func addLocationAndActions(result map[string]any, location string, actions []*occi.Action, env rendering.Environment) {
	if location != "" {
		result["location"] = env.URL(location)
	}
	if len(actions) > 0 {
		result["actions"] = actionIDs(actions)
	}
}

func renderKind(k *occi.Kind, env rendering.Environment) map[string]any {
	result := renderCategory(k, env)
	addLocationAndActions(result, k.Location(), k.Actions(), env)
	if parent := k.Parent(); parent != nil {
		result["parent"] = parent.TypeID()
	}
	return result
}

func renderMixin(m *occi.Mixin, env rendering.Environment) map[string]any {
	result := renderCategory(m, env)
	addLocationAndActions(result, m.Location(), m.Actions(), env)
	if related := m.Related(); len(related) > 0 {
		depends := make([]string, len(related))
		for idx, r := range related {
			depends[idx] = r.TypeID()
		}
		result["depends"] = depends
	}
	if applies := m.Applies(); len(applies) > 0 {
		ids := make([]string, len(applies))
		for idx, k := range applies {
			ids[idx] = k.TypeID()
		}
		result["applies"] = ids
	}
	return result
}

func actionIDs(actions []*occi.Action) []string {
	result := make([]string, len(actions))
	for idx, a := range actions {
		result[idx] = a.TypeID()
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// entities

var promotedAttributes = map[string]bool{
	occi.IDAttribute:      true,
	occi.TitleAttribute:   true,
	occi.SummaryAttribute: true,
	occi.SourceAttribute:  true,
	occi.TargetAttribute:  true,
}

func attributeValue(value any, env rendering.Environment) any {
	if e, ok := value.(occi.EntityObject); ok {
		return env.EntityURL(e)
	}
	return value
}

func renderEntity(e *occi.Entity, env rendering.Environment) map[string]any {
	result := map[string]any{
		"kind": e.Kind().TypeID(),
		"id":   e.ID(),
	}
	if title := e.Title(); title != "" {
		result["title"] = title
	}
	if mixins := e.Mixins(); len(mixins) > 0 {
		ids := make([]string, len(mixins))
		for idx, m := range mixins {
			ids[idx] = m.TypeID()
		}
		result["mixins"] = ids
	}

	attrs := make(map[string]any)
	for _, attr := range e.Attributes().All() {
		if attr.IsSet() && !promotedAttributes[attr.Name()] {
			attrs[attr.Name()] = attributeValue(attr.Value(), env)
		}
	}
	if len(attrs) > 0 {
		result["attributes"] = attrs
	}

	if actions := e.Actions(); len(actions) > 0 {
		result["actions"] = actionIDs(actions)
	}
	return result
}

func renderResource(r *occi.Resource, env rendering.Environment) map[string]any {
	result := renderEntity(&r.Entity, env)
	if summary := r.Summary(); summary != "" {
		result["summary"] = summary
	}
	if links := r.Links(); len(links) > 0 {
		rendered := make([]any, len(links))
		for idx, l := range links {
			rendered[idx] = renderLink(l, env)
		}
		result["links"] = rendered
	}
	return result
}

func renderLink(l *occi.Link, env rendering.Environment) map[string]any {
	result := renderEntity(&l.Entity, env)
	if source := l.Source(); source != nil {
		result["source"] = endpoint(source, env)
	}
	if target := l.Target(); target != nil {
		result["target"] = endpoint(target, env)
	}
	return result
}

func endpoint(r *occi.Resource, env rendering.Environment) map[string]any {
	return map[string]any{
		"kind":     r.Kind().TypeID(),
		"location": env.EntityURL(r),
	}
}

////////////////////////////////////////////////////////////////////////////////
// collections

func renderCollection(c *occi.Collection, env rendering.Environment) map[string]any {
	result := make(map[string]any)
	if len(c.Kinds) > 0 {
		list := make([]any, len(c.Kinds))
		for idx, k := range c.Kinds {
			list[idx] = renderKind(k, env)
		}
		result["kinds"] = list
	}
	if len(c.Mixins) > 0 {
		list := make([]any, len(c.Mixins))
		for idx, m := range c.Mixins {
			list[idx] = renderMixin(m, env)
		}
		result["mixins"] = list
	}
	if len(c.Actions) > 0 {
		list := make([]any, len(c.Actions))
		for idx, a := range c.Actions {
			list[idx] = renderCategory(a, env)
		}
		result["actions"] = list
	}
	if len(c.Resources) > 0 {
		list := make([]any, len(c.Resources))
		for idx, r := range c.Resources {
			list[idx] = renderResource(r.AsResource(), env)
		}
		result["resources"] = list
	}
	if len(c.Links) > 0 {
		list := make([]any, len(c.Links))
		for idx, l := range c.Links {
			list[idx] = renderLink(l.AsLink(), env)
		}
		result["links"] = list
	}
	return result
}
