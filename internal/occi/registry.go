// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package occi

import (
	"fmt"
	"sync/atomic"

	"github.com/sapcc/go-bits/errext"
)

// Registry holds the statically known categories of a process. It is filled
// once during package initialization and then sealed. After sealing, it is
// safe for concurrent use without locking because it is never written to
// again.
type Registry struct {
	kinds   []*Kind
	mixins  []*Mixin
	actions []*Action
	byID    map[string]CategoryObject
	sealed  atomic.Bool
}

// NewRegistry builds a sealed registry containing the given kinds and mixins
// and all actions referenced by them, plus the given additional actions.
// Parent kinds and related mixins must be listed explicitly, so that an
// incomplete registry is detected here instead of during rendering.
func NewRegistry(kinds []*Kind, mixins []*Mixin, actions []*Action) (*Registry, error) {
	r := &Registry{byID: make(map[string]CategoryObject)}
	var errs errext.ErrorSet
	for _, k := range kinds {
		errs.Add(r.Register(k))
	}
	for _, m := range mixins {
		errs.Add(r.Register(m))
	}
	for _, a := range actions {
		errs.Add(r.Register(a))
	}

	//check that all referenced categories are registered
	for _, k := range kinds {
		if k.Parent() != nil && r.byID[k.Parent().TypeID()] != k.Parent() {
			errs.Addf("parent of kind %s is not registered", k.TypeID())
		}
		for _, a := range k.Actions() {
			if r.byID[a.TypeID()] != a {
				errs.Addf("action %s of kind %s is not registered", a.TypeID(), k.TypeID())
			}
		}
	}
	for _, m := range mixins {
		for _, rel := range m.Related() {
			if r.byID[rel.TypeID()] != rel {
				errs.Addf("related mixin %s of mixin %s is not registered", rel.TypeID(), m.TypeID())
			}
		}
		for _, k := range m.Applies() {
			if r.byID[k.TypeID()] != k {
				errs.Addf("applicable kind %s of mixin %s is not registered", k.TypeID(), m.TypeID())
			}
		}
		for _, a := range m.Actions() {
			if r.byID[a.TypeID()] != a {
				errs.Addf("action %s of mixin %s is not registered", a.TypeID(), m.TypeID())
			}
		}
	}

	if !errs.IsEmpty() {
		return nil, fmt.Errorf("invalid category registry: %s", errs.Join(", "))
	}
	r.Seal()
	return r, nil
}

// MustNewRegistry is like NewRegistry, but panics on error.
func MustNewRegistry(kinds []*Kind, mixins []*Mixin, actions []*Action) *Registry {
	r, err := NewRegistry(kinds, mixins, actions)
	if err != nil {
		panic(err.Error())
	}
	return r
}

// Register adds a category to this registry. This fails once the registry has
// been sealed, and for duplicate type IDs.
func (r *Registry) Register(c CategoryObject) error {
	if r.sealed.Load() {
		return fmt.Errorf("cannot register %s: registry is sealed", c.AsCategory().TypeID())
	}
	typeID := c.AsCategory().TypeID()
	if _, exists := r.byID[typeID]; exists {
		return fmt.Errorf("category %s is registered multiple times", typeID)
	}
	r.byID[typeID] = c
	switch c := c.(type) {
	case *Kind:
		r.kinds = append(r.kinds, c)
	case *Mixin:
		r.mixins = append(r.mixins, c)
	case *Action:
		r.actions = append(r.actions, c)
	default:
		return fmt.Errorf("cannot register %s: unexpected category type %T", typeID, c)
	}
	return nil
}

// Seal prevents further registrations.
func (r *Registry) Seal() {
	r.sealed.Store(true)
}

// Kinds returns all registered kinds in registration order.
func (r *Registry) Kinds() []*Kind {
	return append([]*Kind(nil), r.kinds...)
}

// Mixins returns all registered mixins in registration order.
func (r *Registry) Mixins() []*Mixin {
	return append([]*Mixin(nil), r.mixins...)
}

// Actions returns all registered actions in registration order.
func (r *Registry) Actions() []*Action {
	return append([]*Action(nil), r.actions...)
}

// Lookup finds a registered category by its type ID.
func (r *Registry) Lookup(typeID string) (CategoryObject, bool) {
	c, exists := r.byID[typeID]
	return c, exists
}

// FindAction finds an action by its term among the given actions.
func FindAction(actions []*Action, term string) (*Action, bool) {
	for _, a := range actions {
		if a.Term() == term {
			return a, true
		}
	}
	return nil, false
}
