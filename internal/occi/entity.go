// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package occi

import (
	"errors"
	"fmt"

	uuid "github.com/satori/go.uuid"
)

// CoreScheme is the scheme of all categories defined by OCCI Core.
const CoreScheme = "http://schemas.ogf.org/occi/core#"

// Names of the attributes defined by OCCI Core.
const (
	IDAttribute      = "occi.core.id"
	TitleAttribute   = "occi.core.title"
	SummaryAttribute = "occi.core.summary"
	SourceAttribute  = "occi.core.source"
	TargetAttribute  = "occi.core.target"
)

var (
	// EntityKind is the root of the Kind hierarchy.
	EntityKind = MustNewKind(KindSpec{
		Scheme: CoreScheme,
		Term:   "entity",
		Title:  "entity",
		Attributes: []AttributeSpec{
			ImmutableAttribute(IDAttribute, StringType).AsRequired(),
			MutableAttribute(TitleAttribute, StringType),
		},
	})
	// ResourceKind is the parent of all resource Kinds.
	ResourceKind = MustNewKind(KindSpec{
		Scheme:   CoreScheme,
		Term:     "resource",
		Title:    "resource",
		Location: "resource/",
		Parent:   EntityKind,
		Attributes: []AttributeSpec{
			MutableAttribute(SummaryAttribute, StringType),
		},
	})
	// LinkKind is the parent of all link Kinds.
	LinkKind = MustNewKind(KindSpec{
		Scheme:   CoreScheme,
		Term:     "link",
		Title:    "link",
		Location: "link/",
		Parent:   EntityKind,
		Attributes: []AttributeSpec{
			MutableAttribute(SourceAttribute, ObjectType).AsRequired(),
			MutableAttribute(TargetAttribute, ObjectType).AsRequired(),
		},
	})
)

// generateID generates the ID for entities that are constructed without an
// explicit ID.
func generateID() string {
	return uuid.NewV4().String()
}

////////////////////////////////////////////////////////////////////////////////
// Entity

// Entity contains the state shared by Resource and Link. It is not
// instantiated on its own.
type Entity struct {
	kind       *Kind
	mixins     []*Mixin
	attributes *AttributeCollection
	actions    []*Action
}

func newEntity(kind, baseKind *Kind, id, title string, mixins []*Mixin, actions []*Action, values map[string]any) (Entity, error) {
	if kind == nil {
		return Entity{}, errors.New("cannot construct entity without kind")
	}
	if !kind.IsA(baseKind) {
		return Entity{}, fmt.Errorf("cannot construct %s from kind %s", baseKind.Term(), kind.TypeID())
	}

	schema := kind.Schema()
	for _, m := range mixins {
		if m == nil {
			return Entity{}, errors.New("cannot attach nil mixin")
		}
		if !m.AppliesTo(kind) {
			return Entity{}, fmt.Errorf("mixin %s cannot be applied to kind %s", m.TypeID(), kind.TypeID())
		}
		var err error
		schema, err = schema.Merge(m.Attributes())
		if err != nil {
			return Entity{}, err
		}
	}

	if id == "" {
		id = generateID()
	}
	values[IDAttribute] = id
	if title != "" {
		values[TitleAttribute] = title
	}

	attrs, err := schema.Instantiate(values)
	if err != nil {
		return Entity{}, err
	}
	return Entity{
		kind:       kind,
		mixins:     append([]*Mixin(nil), mixins...),
		attributes: attrs,
		actions:    append([]*Action(nil), actions...),
	}, nil
}

// AsEntity implements the EntityObject interface.
func (e *Entity) AsEntity() *Entity { return e }

// Kind returns the Kind of this entity.
func (e *Entity) Kind() *Kind { return e.kind }

// Mixins returns the mixins attached to this entity.
func (e *Entity) Mixins() []*Mixin {
	return append([]*Mixin(nil), e.mixins...)
}

// HasMixin returns whether the given mixin (or a mixin related to it) is
// attached to this entity.
func (e *Entity) HasMixin(m *Mixin) bool {
	for _, attached := range e.mixins {
		if attached.IsRelatedTo(m) {
			return true
		}
	}
	return false
}

// Attributes returns the attribute instances of this entity.
func (e *Entity) Attributes() *AttributeCollection { return e.attributes }

// Actions returns the actions that can currently be invoked on this entity.
func (e *Entity) Actions() []*Action {
	return append([]*Action(nil), e.actions...)
}

// AddAction makes the given action available on this entity.
func (e *Entity) AddAction(a *Action) {
	e.actions = append(e.actions, a)
}

// ID returns the identifier of this entity.
func (e *Entity) ID() string {
	return e.stringValue(IDAttribute)
}

// Title returns the title of this entity, or "" if it has none.
func (e *Entity) Title() string {
	return e.stringValue(TitleAttribute)
}

// SetTitle sets the title of this entity.
func (e *Entity) SetTitle(title string) error {
	return e.attributes.Set(TitleAttribute, title)
}

// Location returns the path of this entity, relative to the application URL.
func (e *Entity) Location() string {
	return e.kind.Location() + e.ID()
}

// Equal returns whether both entities have the same attributes with pairwise
// equal values.
func (e *Entity) Equal(other *Entity) bool {
	if e == other {
		return true
	}
	if e == nil || other == nil {
		return false
	}
	return e.attributes.Equal(other.attributes)
}

func (e *Entity) stringValue(name string) string {
	attr, exists := e.attributes.Get(name)
	if !exists {
		return ""
	}
	s, _ := attr.Value().(string)
	return s
}

////////////////////////////////////////////////////////////////////////////////
// Resource

// ResourceOptions contains the optional arguments for NewResource().
type ResourceOptions struct {
	ID         string //generated if empty
	Title      string
	Summary    string
	Mixins     []*Mixin
	Actions    []*Action
	Attributes map[string]any //values for attributes other than the core attributes
}

// Resource is an Entity that can be addressed on its own and that owns
// outgoing Links.
type Resource struct {
	Entity
	links []*Link
}

// NewResource constructs a Resource of the given Kind, which must be
// ResourceKind or one of its descendants.
func NewResource(kind *Kind, opts ResourceOptions) (*Resource, error) {
	values := make(map[string]any, len(opts.Attributes)+3)
	for k, v := range opts.Attributes {
		values[k] = v
	}
	if opts.Summary != "" {
		values[SummaryAttribute] = opts.Summary
	}
	e, err := newEntity(kind, ResourceKind, opts.ID, opts.Title, opts.Mixins, opts.Actions, values)
	if err != nil {
		return nil, err
	}
	return &Resource{Entity: e}, nil
}

// AsResource implements the ResourceObject interface.
func (r *Resource) AsResource() *Resource { return r }

// Summary returns the summary of this resource, or "" if it has none.
func (r *Resource) Summary() string {
	return r.stringValue(SummaryAttribute)
}

// SetSummary sets the summary of this resource.
func (r *Resource) SetSummary(summary string) error {
	return r.attributes.Set(SummaryAttribute, summary)
}

// Links returns the outgoing links of this resource.
func (r *Resource) Links() []*Link {
	return append([]*Link(nil), r.links...)
}

// Link creates a new generic Link from this resource to the given target and
// adds it to this resource's links.
func (r *Resource) Link(target ResourceObject, mixins ...*Mixin) (*Link, error) {
	l, err := NewLink(LinkKind, r, target, LinkOptions{Mixins: mixins})
	if err != nil {
		return nil, err
	}
	r.links = append(r.links, l)
	return l, nil
}

// AddLink adds an externally constructed link to this resource's links.
func (r *Resource) AddLink(l LinkObject) {
	r.links = append(r.links, l.AsLink())
}

////////////////////////////////////////////////////////////////////////////////
// Link

// LinkOptions contains the optional arguments for NewLink().
type LinkOptions struct {
	ID         string //generated if empty
	Title      string
	Mixins     []*Mixin
	Actions    []*Action
	Attributes map[string]any //values for attributes other than the core attributes
}

// Link is an Entity that associates two Resources. It does not own them.
type Link struct {
	Entity
}

// NewLink constructs a Link of the given Kind, which must be LinkKind or one
// of its descendants.
func NewLink(kind *Kind, source, target ResourceObject, opts LinkOptions) (*Link, error) {
	if source == nil || target == nil {
		return nil, errors.New("cannot construct link without source and target")
	}
	values := make(map[string]any, len(opts.Attributes)+4)
	for k, v := range opts.Attributes {
		values[k] = v
	}
	values[SourceAttribute] = source.AsResource()
	values[TargetAttribute] = target.AsResource()
	e, err := newEntity(kind, LinkKind, opts.ID, opts.Title, opts.Mixins, opts.Actions, values)
	if err != nil {
		return nil, err
	}
	return &Link{e}, nil
}

// AsLink implements the LinkObject interface.
func (l *Link) AsLink() *Link { return l }

// Source returns the resource that this link originates from.
func (l *Link) Source() *Resource {
	r, _ := l.attributes.Value(SourceAttribute)
	result, _ := r.(*Resource)
	return result
}

// SetSource points this link to a different source resource.
func (l *Link) SetSource(source ResourceObject) error {
	if source == nil {
		return errors.New("link source may not be nil")
	}
	return l.attributes.Set(SourceAttribute, source.AsResource())
}

// Target returns the resource that this link points to.
func (l *Link) Target() *Resource {
	r, _ := l.attributes.Value(TargetAttribute)
	result, _ := r.(*Resource)
	return result
}

// SetTarget points this link to a different target resource.
func (l *Link) SetTarget(target ResourceObject) error {
	if target == nil {
		return errors.New("link target may not be nil")
	}
	return l.attributes.Set(TargetAttribute, target.AsResource())
}
