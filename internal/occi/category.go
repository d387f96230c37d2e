// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package occi

import (
	"fmt"
)

// Category is the common identity of Kind, Mixin and Action. Categories are
// identified by their TypeID (scheme + term).
type Category struct {
	scheme   string
	term     string
	title    string
	location string //optional
	schema   Schema
}

func newCategory(scheme, term, title, location string, attributes []AttributeSpec) (Category, error) {
	typeID := scheme + term
	if scheme == "" {
		return Category{}, &InvalidCategoryError{typeID, "scheme is empty"}
	}
	if term == "" {
		return Category{}, &InvalidCategoryError{typeID, "term is empty"}
	}
	schema, err := NewSchema(attributes...)
	if err != nil {
		return Category{}, &InvalidCategoryError{typeID, err.Error()}
	}
	return Category{scheme, term, title, location, schema}, nil
}

// Scheme returns the scheme of this category, e.g. "http://schemas.ogf.org/occi/core#".
func (c *Category) Scheme() string { return c.scheme }

// Term returns the term of this category, e.g. "resource".
func (c *Category) Term() string { return c.term }

// Title returns the human-readable title of this category.
func (c *Category) Title() string { return c.title }

// Location returns the path (relative to the application URL) where this
// category is located, or "" if it has no location.
func (c *Category) Location() string { return c.location }

// TypeID returns the globally unique identifier of this category.
func (c *Category) TypeID() string { return c.scheme + c.term }

// Attributes returns the attributes declared by this category itself.
func (c *Category) Attributes() Schema { return c.schema }

// AsCategory implements the CategoryObject interface.
func (c *Category) AsCategory() *Category { return c }

////////////////////////////////////////////////////////////////////////////////
// Kind

// KindSpec contains the arguments for NewKind().
type KindSpec struct {
	Scheme     string
	Term       string
	Title      string
	Location   string
	Parent     *Kind //nil only for the root of the hierarchy
	Attributes []AttributeSpec
	Actions    []*Action
}

// Kind is the primary type classification of an Entity. Kinds form a tree
// through their parent pointers.
type Kind struct {
	Category
	parent  *Kind
	actions []*Action
	schema  Schema //merged with all ancestors
}

// NewKind constructs a Kind. The attribute schema is merged with the
// parent's schema at this point, so the full attribute set of an entity of
// this Kind is known without walking the hierarchy again.
func NewKind(spec KindSpec) (*Kind, error) {
	c, err := newCategory(spec.Scheme, spec.Term, spec.Title, spec.Location, spec.Attributes)
	if err != nil {
		return nil, err
	}
	for _, a := range spec.Actions {
		if a == nil {
			return nil, &InvalidCategoryError{c.TypeID(), "actions contain nil"}
		}
	}

	schema := c.schema
	if spec.Parent != nil {
		schema, err = spec.Parent.schema.Merge(c.schema)
		if err != nil {
			return nil, &InvalidCategoryError{c.TypeID(), err.Error()}
		}
	}

	return &Kind{
		Category: c,
		parent:   spec.Parent,
		actions:  append([]*Action(nil), spec.Actions...),
		schema:   schema,
	}, nil
}

// MustNewKind is like NewKind, but panics on error. It is intended for
// declaring Kinds in package-level variables.
func MustNewKind(spec KindSpec) *Kind {
	k, err := NewKind(spec)
	if err != nil {
		panic(err.Error())
	}
	return k
}

// Class implements the CategoryObject interface.
func (k *Kind) Class() string { return "kind" }

// Parent returns the parent Kind, or nil for the root Kind.
func (k *Kind) Parent() *Kind { return k.parent }

// Actions returns the actions that entities of this Kind support.
func (k *Kind) Actions() []*Action {
	return append([]*Action(nil), k.actions...)
}

// Schema returns the full attribute schema of this Kind, including all
// attributes inherited from its ancestors.
func (k *Kind) Schema() Schema { return k.schema }

// IsA returns whether this Kind is the given Kind or one of its descendants.
func (k *Kind) IsA(other *Kind) bool {
	for current := k; current != nil; current = current.parent {
		if current == other {
			return true
		}
	}
	return false
}

////////////////////////////////////////////////////////////////////////////////
// Mixin

// MixinSpec contains the arguments for NewMixin().
type MixinSpec struct {
	Scheme     string
	Term       string
	Title      string
	Location   string
	Attributes []AttributeSpec
	Actions    []*Action
	Related    []*Mixin
	Applies    []*Kind
}

// Mixin is a capability bundle that can be attached to entities of
// applicable Kinds.
type Mixin struct {
	Category
	actions []*Action
	related []*Mixin
	applies []*Kind
}

// NewMixin constructs a Mixin.
func NewMixin(spec MixinSpec) (*Mixin, error) {
	c, err := newCategory(spec.Scheme, spec.Term, spec.Title, spec.Location, spec.Attributes)
	if err != nil {
		return nil, err
	}
	for _, a := range spec.Actions {
		if a == nil {
			return nil, &InvalidCategoryError{c.TypeID(), "actions contain nil"}
		}
	}
	for _, m := range spec.Related {
		if m == nil {
			return nil, &InvalidCategoryError{c.TypeID(), "related mixins contain nil"}
		}
	}
	for _, k := range spec.Applies {
		if k == nil {
			return nil, &InvalidCategoryError{c.TypeID(), "applicable kinds contain nil"}
		}
	}
	return &Mixin{
		Category: c,
		actions:  append([]*Action(nil), spec.Actions...),
		related:  append([]*Mixin(nil), spec.Related...),
		applies:  append([]*Kind(nil), spec.Applies...),
	}, nil
}

// MustNewMixin is like NewMixin, but panics on error.
func MustNewMixin(spec MixinSpec) *Mixin {
	m, err := NewMixin(spec)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// Class implements the CategoryObject interface.
func (m *Mixin) Class() string { return "mixin" }

// Actions returns the actions that this mixin adds to an entity.
func (m *Mixin) Actions() []*Action {
	return append([]*Action(nil), m.actions...)
}

// Related returns the mixins that this mixin depends on.
func (m *Mixin) Related() []*Mixin {
	return append([]*Mixin(nil), m.related...)
}

// Applies returns the Kinds that this mixin can be attached to. An empty
// list means no restriction.
func (m *Mixin) Applies() []*Kind {
	return append([]*Kind(nil), m.applies...)
}

// AppliesTo returns whether this mixin may be attached to entities of the
// given Kind.
func (m *Mixin) AppliesTo(k *Kind) bool {
	if len(m.applies) == 0 {
		return true
	}
	for _, candidate := range m.applies {
		if k.IsA(candidate) {
			return true
		}
	}
	return false
}

// IsRelatedTo returns whether the given mixin is this mixin or one of its
// (transitively) related mixins.
func (m *Mixin) IsRelatedTo(other *Mixin) bool {
	if m == other {
		return true
	}
	for _, r := range m.related {
		if r.IsRelatedTo(other) {
			return true
		}
	}
	return false
}

////////////////////////////////////////////////////////////////////////////////
// Action

// ActionSpec contains the arguments for NewAction().
type ActionSpec struct {
	Scheme     string
	Term       string
	Title      string
	Attributes []AttributeSpec
}

// Action is an invocable operation of a Kind or Mixin. Its location is
// always "?action=<term>", relative to the entity it is invoked on.
type Action struct {
	Category
}

// NewAction constructs an Action.
func NewAction(spec ActionSpec) (*Action, error) {
	c, err := newCategory(spec.Scheme, spec.Term, spec.Title, fmt.Sprintf("?action=%s", spec.Term), spec.Attributes)
	if err != nil {
		return nil, err
	}
	return &Action{c}, nil
}

// MustNewAction is like NewAction, but panics on error.
func MustNewAction(spec ActionSpec) *Action {
	a, err := NewAction(spec)
	if err != nil {
		panic(err.Error())
	}
	return a
}

// Class implements the CategoryObject interface.
func (a *Action) Class() string { return "action" }
