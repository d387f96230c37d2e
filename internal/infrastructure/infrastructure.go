// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package infrastructure contains the Kinds, Mixins and Actions defined by
// OCCI Infrastructure and the OpenStack extensions, and typed constructors
// for the corresponding entities.
//
// All categories in this package are created once during package
// initialization and must be treated as read-only afterwards.
package infrastructure

import (
	"fmt"

	. "github.com/majewsky/gg/option"

	"github.com/sapcc/occi-adapter/internal/occi"
)

// Schemes used by the categories in this package.
const (
	InfrastructureScheme = "http://schemas.ogf.org/occi/infrastructure#"
	ComputeActionScheme  = "http://schemas.ogf.org/occi/infrastructure/compute/action#"
	StorageActionScheme  = "http://schemas.ogf.org/occi/infrastructure/storage/action#"
	NetworkActionScheme  = "http://schemas.ogf.org/occi/infrastructure/network/action#"
	NetworkMixinScheme   = "http://schemas.ogf.org/occi/infrastructure/network#"
	InterfaceMixinScheme = "http://schemas.ogf.org/occi/infrastructure/networkinterface#"
	OSTemplateScheme     = "http://schemas.openstack.org/template/os#"
	ResourceTplScheme    = "http://schemas.openstack.org/template/resource#"
	UserDataScheme       = "http://schemas.openstack.org/compute/instance#"
	PublicKeyScheme      = "http://schemas.openstack.org/instance/credentials#"
	OSNetworkScheme      = "http://schemas.openstack.org/infrastructure/network#"
	FloatingIPPoolScheme = "http://schemas.openstack.org/network/floatingippool#"
)

const linkIDSeparator = "_"

// LinkID computes the ID of a link that is identified by its endpoints.
func LinkID(source, target occi.ResourceObject, extra ...string) string {
	id := source.AsResource().ID() + linkIDSeparator + target.AsResource().ID()
	for _, e := range extra {
		id += linkIDSeparator + e
	}
	return id
}

func checkKind(role string, r occi.ResourceObject, expected *occi.Kind) error {
	if r == nil {
		return fmt.Errorf("%s is missing", role)
	}
	actual := r.AsResource().Kind()
	if !actual.IsA(expected) {
		return fmt.Errorf("expected %s to be a %s, but got kind %s", role, expected.Term(), actual.TypeID())
	}
	return nil
}

// attributeValues collects attribute values for an entity constructor,
// skipping unset values.
type attributeValues map[string]any

func (v attributeValues) putString(name, value string) {
	if value != "" {
		v[name] = value
	}
}

func putOption[T any](v attributeValues, name string, value Option[T]) {
	if unpacked, ok := value.Unpack(); ok {
		v[name] = unpacked
	}
}

// readers for typed accessors on entities

func stringAttribute(e *occi.Entity, name string) string {
	attr, exists := e.Attributes().Get(name)
	if !exists {
		return ""
	}
	s, _ := attr.Value().(string)
	return s
}

func numberAttribute(e *occi.Entity, name string) Option[float64] {
	attr, exists := e.Attributes().Get(name)
	if !exists {
		return None[float64]()
	}
	switch v := attr.Value().(type) {
	case int:
		return Some(float64(v))
	case int64:
		return Some(float64(v))
	case uint64:
		return Some(float64(v))
	case float32:
		return Some(float64(v))
	case float64:
		return Some(v)
	default:
		return None[float64]()
	}
}

func intAttribute(e *occi.Entity, name string) Option[int] {
	f, ok := numberAttribute(e, name).Unpack()
	if !ok {
		return None[int]()
	}
	return Some(int(f))
}

func boolAttribute(e *occi.Entity, name string) Option[bool] {
	attr, exists := e.Attributes().Get(name)
	if !exists {
		return None[bool]()
	}
	b, ok := attr.Value().(bool)
	if !ok {
		return None[bool]()
	}
	return Some(b)
}
