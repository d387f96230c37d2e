// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package occi

import (
	"fmt"
)

// Schema is an ordered, immutable list of attribute declarations. Each Kind
// and Mixin has one. Entities are instantiated from the merged schema of
// their Kind chain and their Mixins.
type Schema struct {
	specs []AttributeSpec
	index map[string]int
}

// NewSchema builds a Schema from the given declarations. Names must be
// non-empty and unique.
func NewSchema(specs ...AttributeSpec) (Schema, error) {
	s := Schema{
		specs: make([]AttributeSpec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for _, spec := range specs {
		if spec.Name == "" {
			return Schema{}, fmt.Errorf("cannot declare attribute with empty name (type %s)", spec.Type)
		}
		if _, exists := s.index[spec.Name]; exists {
			return Schema{}, fmt.Errorf("attribute %s is declared multiple times", spec.Name)
		}
		if !spec.Type.Accepts(spec.Default) {
			return Schema{}, &TypeMismatchError{spec.Name, spec.Type, spec.Default}
		}
		s.index[spec.Name] = len(s.specs)
		s.specs = append(s.specs, spec)
	}
	return s, nil
}

// Len returns the number of declared attributes.
func (s Schema) Len() int { return len(s.specs) }

// Specs returns a copy of the declarations in this schema.
func (s Schema) Specs() []AttributeSpec {
	return append([]AttributeSpec(nil), s.specs...)
}

// Lookup finds the declaration for the given attribute name.
func (s Schema) Lookup(name string) (AttributeSpec, bool) {
	idx, exists := s.index[name]
	if !exists {
		return AttributeSpec{}, false
	}
	return s.specs[idx], true
}

// Merge returns a schema containing all declarations of this schema, followed
// by those declarations of `other` that are not in this schema yet. If both
// schemas declare the same name, the declaration from this schema wins, but
// the types must agree.
func (s Schema) Merge(other Schema) (Schema, error) {
	specs := s.Specs()
	for _, spec := range other.specs {
		existing, exists := s.Lookup(spec.Name)
		if !exists {
			specs = append(specs, spec)
			continue
		}
		if existing.Type != spec.Type {
			return Schema{}, &SchemaConflictError{spec.Name, existing.Type, spec.Type}
		}
	}
	return NewSchema(specs...)
}

// Instantiate creates a fresh AttributeCollection for this schema. Values
// for immutable attributes can only be bound here; mutable attributes can
// also be changed later.
func (s Schema) Instantiate(values map[string]any) (*AttributeCollection, error) {
	for name := range values {
		if _, exists := s.index[name]; !exists {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchAttribute, name)
		}
	}

	c := &AttributeCollection{
		attrs: make([]*Attribute, len(s.specs)),
		index: s.index,
	}
	for idx, spec := range s.specs {
		attr, err := NewAttribute(spec, nil)
		if err != nil {
			return nil, err
		}
		value := cloneValue(values[spec.Name])
		if value != nil {
			if spec.Mutable {
				err = attr.Set(value)
			} else {
				attr, err = FromAttribute(attr, value)
			}
			if err != nil {
				return nil, err
			}
		}
		c.attrs[idx] = attr
	}
	return c, nil
}
