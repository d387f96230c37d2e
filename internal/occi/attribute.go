// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package occi contains the OCCI Core type model: typed attributes, the
// Category/Kind/Mixin/Action classification hierarchy, the Entity/Resource/Link
// object hierarchy, and the Collection result envelope.
package occi

import (
	"reflect"
)

// AttributeType is the declared type of an attribute.
type AttributeType string

// Possible values for AttributeType.
const (
	NumberType  AttributeType = "number"
	StringType  AttributeType = "string"
	BooleanType AttributeType = "boolean"
	ObjectType  AttributeType = "object"
	ListType    AttributeType = "list"
	HashType    AttributeType = "hash"
)

// Accepts returns whether the given value satisfies this type. A nil value
// is always accepted since it denotes an unset attribute.
func (t AttributeType) Accepts(value any) bool {
	if value == nil {
		return true
	}
	kind := reflect.TypeOf(value).Kind()
	switch t {
	case NumberType:
		switch kind {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return true
		default:
			return false
		}
	case StringType:
		return kind == reflect.String
	case BooleanType:
		return kind == reflect.Bool
	case ListType:
		return kind == reflect.Slice || kind == reflect.Array
	case HashType:
		return kind == reflect.Map
	case ObjectType:
		return true
	default:
		return false
	}
}

// AttributeSpec is the schema of an attribute: everything except its value.
// AttributeSpec instances are values and can be shared freely between Kinds,
// Mixins and the attribute instances created from them.
type AttributeSpec struct {
	Name        string
	Type        AttributeType
	Required    bool
	Mutable     bool
	Default     any //optional
	Description string
}

// MutableAttribute is a shorthand for declaring a mutable, optional attribute.
func MutableAttribute(name string, typ AttributeType) AttributeSpec {
	return AttributeSpec{Name: name, Type: typ, Mutable: true}
}

// ImmutableAttribute is a shorthand for declaring an immutable, optional attribute.
func ImmutableAttribute(name string, typ AttributeType) AttributeSpec {
	return AttributeSpec{Name: name, Type: typ}
}

// WithDefault returns a copy of this spec with the given default value.
func (s AttributeSpec) WithDefault(value any) AttributeSpec {
	s.Default = value
	return s
}

// WithDescription returns a copy of this spec with the given description.
func (s AttributeSpec) WithDescription(description string) AttributeSpec {
	s.Description = description
	return s
}

// AsRequired returns a copy of this spec with Required = true.
func (s AttributeSpec) AsRequired() AttributeSpec {
	s.Required = true
	return s
}

// Attribute is an instance of an AttributeSpec that holds a value. Each
// Entity owns its own Attribute instances.
type Attribute struct {
	spec  AttributeSpec
	value any
}

// NewAttribute constructs an attribute with the given schema and initial
// value. The value may be nil to leave the attribute unset. Note that the
// initial value is bound even when the attribute is immutable.
func NewAttribute(spec AttributeSpec, value any) (*Attribute, error) {
	if !spec.Type.Accepts(value) {
		return nil, &TypeMismatchError{spec.Name, spec.Type, value}
	}
	return &Attribute{spec, cloneValue(value)}, nil
}

// FromAttribute constructs a new immutable attribute that has the same schema
// as the given attribute, but the given value. This is used to materialize
// provider-reported read-only fields (e.g. states) into an entity.
func FromAttribute(attr *Attribute, value any) (*Attribute, error) {
	spec := attr.spec
	spec.Mutable = false
	return NewAttribute(spec, value)
}

// Name returns the attribute name.
func (a *Attribute) Name() string { return a.spec.Name }

// Spec returns the schema of this attribute.
func (a *Attribute) Spec() AttributeSpec { return a.spec }

// Value returns the current value, or nil if the attribute is unset. Lists
// and hashes are returned as deep copies, so modifying them does not affect
// the attribute.
func (a *Attribute) Value() any { return cloneValue(a.value) }

// IsSet returns whether the attribute has a value.
func (a *Attribute) IsSet() bool { return a.value != nil }

// Set replaces the value of a mutable attribute.
func (a *Attribute) Set(value any) error {
	if !a.spec.Mutable {
		return &ImmutableAttributeError{a.spec.Name}
	}
	if !a.spec.Type.Accepts(value) {
		return &TypeMismatchError{a.spec.Name, a.spec.Type, value}
	}
	a.value = cloneValue(value)
	return nil
}

func (a *Attribute) clone() *Attribute {
	return &Attribute{a.spec, cloneValue(a.value)}
}

// cloneValue copies lists and hashes recursively so that an attribute never
// shares a mutable container with its callers. Entities are referenced, not
// copied.
func cloneValue(value any) any {
	switch v := value.(type) {
	case []any:
		result := make([]any, len(v))
		for idx, elem := range v {
			result[idx] = cloneValue(elem)
		}
		return result
	case []string:
		return append([]string(nil), v...)
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, elem := range v {
			result[key] = cloneValue(elem)
		}
		return result
	case map[string]string:
		result := make(map[string]string, len(v))
		for key, elem := range v {
			result[key] = elem
		}
		return result
	default:
		return value
	}
}
