// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package occi

import (
	"fmt"
	"reflect"
)

// AttributeCollection is the ordered set of attribute instances owned by one
// Entity. Instances are created by Schema.Instantiate().
type AttributeCollection struct {
	attrs []*Attribute
	index map[string]int //shared with the Schema; never written to
}

// Len returns the number of declared attributes.
func (c *AttributeCollection) Len() int { return len(c.attrs) }

// Names returns the names of all declared attributes, in declaration order.
func (c *AttributeCollection) Names() []string {
	result := make([]string, len(c.attrs))
	for idx, attr := range c.attrs {
		result[idx] = attr.Name()
	}
	return result
}

// All returns all attribute instances, in declaration order.
func (c *AttributeCollection) All() []*Attribute {
	return append([]*Attribute(nil), c.attrs...)
}

// Get returns the attribute instance with the given name.
func (c *AttributeCollection) Get(name string) (*Attribute, bool) {
	idx, exists := c.index[name]
	if !exists {
		return nil, false
	}
	return c.attrs[idx], true
}

// Value returns the value of the given attribute. Unlike Attribute.Value(),
// this fails when the attribute is declared, but not set.
func (c *AttributeCollection) Value(name string) (any, error) {
	attr, exists := c.Get(name)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchAttribute, name)
	}
	if !attr.IsSet() {
		return nil, &AttributeNotSetError{name}
	}
	return attr.Value(), nil
}

// Set assigns a value to the given attribute.
func (c *AttributeCollection) Set(name string, value any) error {
	attr, exists := c.Get(name)
	if !exists {
		return fmt.Errorf("%w: %s", ErrNoSuchAttribute, name)
	}
	return attr.Set(value)
}

// Equal returns whether both collections declare the same attributes with
// pairwise equal values.
func (c *AttributeCollection) Equal(other *AttributeCollection) bool {
	if c.Len() != other.Len() {
		return false
	}
	for _, attr := range c.attrs {
		otherAttr, exists := other.Get(attr.Name())
		if !exists {
			return false
		}
		if !valuesEqual(attr.Value(), otherAttr.Value()) {
			return false
		}
	}
	return true
}

func valuesEqual(lhs, rhs any) bool {
	//entity-valued attributes (link source/target) compare by value, too
	lhsEntity, lhsOK := lhs.(EntityObject)
	rhsEntity, rhsOK := rhs.(EntityObject)
	if lhsOK && rhsOK {
		return lhsEntity.AsEntity().Equal(rhsEntity.AsEntity())
	}
	return reflect.DeepEqual(lhs, rhs)
}
