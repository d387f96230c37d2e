// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package occi

// Collection is the result envelope returned by all operations. The order of
// elements within each list carries no meaning.
type Collection struct {
	Kinds     []*Kind
	Mixins    []*Mixin
	Actions   []*Action
	Resources []ResourceObject
	Links     []LinkObject
}

// IsEmpty returns whether the collection contains nothing at all.
func (c *Collection) IsEmpty() bool {
	return c.PopulatedLists() == 0
}

// PopulatedLists returns how many of the five lists in this collection are
// non-empty. This is not the number of elements.
func (c *Collection) PopulatedLists() int {
	count := 0
	for _, l := range []int{len(c.Kinds), len(c.Mixins), len(c.Actions), len(c.Resources), len(c.Links)} {
		if l > 0 {
			count++
		}
	}
	return count
}

// Objects returns all elements of this collection in a stable order: kinds,
// then mixins, actions, resources and links. Nil elements are returned as nil
// Objects.
func (c *Collection) Objects() []Object {
	result := make([]Object, 0, len(c.Kinds)+len(c.Mixins)+len(c.Actions)+len(c.Resources)+len(c.Links))
	result = appendObjects(result, c.Kinds)
	result = appendObjects(result, c.Mixins)
	result = appendObjects(result, c.Actions)
	result = appendObjects(result, c.Resources)
	result = appendObjects(result, c.Links)
	return result
}

func appendObjects[T interface {
	comparable
	Object
}](result []Object, list []T) []Object {
	var zero T
	for _, obj := range list {
		if obj == zero {
			result = append(result, nil)
		} else {
			result = append(result, obj)
		}
	}
	return result
}
