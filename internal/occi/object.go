// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package occi

// Variant is the discriminant carried by every object of the type model. The
// rendering packages dispatch on it instead of inspecting dynamic types.
type Variant int

// Possible values for Variant.
const (
	VariantAttribute Variant = iota + 1
	VariantAction
	VariantKind
	VariantMixin
	VariantResource
	VariantLink
	VariantCollection
)

var variantNames = map[Variant]string{
	VariantAttribute:  "attribute",
	VariantAction:     "action",
	VariantKind:       "kind",
	VariantMixin:      "mixin",
	VariantResource:   "resource",
	VariantLink:       "link",
	VariantCollection: "collection",
}

// String implements the fmt.Stringer interface.
func (v Variant) String() string {
	name, exists := variantNames[v]
	if !exists {
		return "unknown"
	}
	return name
}

// Object is the interface implemented by all renderable objects of the type
// model. Types in other packages satisfy it by embedding Resource or Link.
type Object interface {
	Variant() Variant
}

// Variant implements the Object interface.
func (*Attribute) Variant() Variant { return VariantAttribute }

// Variant implements the Object interface.
func (*Action) Variant() Variant { return VariantAction }

// Variant implements the Object interface.
func (*Kind) Variant() Variant { return VariantKind }

// Variant implements the Object interface.
func (*Mixin) Variant() Variant { return VariantMixin }

// Variant implements the Object interface.
func (*Resource) Variant() Variant { return VariantResource }

// Variant implements the Object interface.
func (*Link) Variant() Variant { return VariantLink }

// Variant implements the Object interface.
func (*Collection) Variant() Variant { return VariantCollection }

// CategoryObject is implemented by Kind, Mixin and Action.
type CategoryObject interface {
	Object
	AsCategory() *Category
	// Class is "kind", "mixin" or "action".
	Class() string
}

// EntityObject is implemented by Resource and Link, and by every type
// embedding one of them.
type EntityObject interface {
	Object
	AsEntity() *Entity
}

// ResourceObject is implemented by Resource and every type embedding it.
type ResourceObject interface {
	EntityObject
	AsResource() *Resource
}

// LinkObject is implemented by Link and every type embedding it.
type LinkObject interface {
	EntityObject
	AsLink() *Link
}
