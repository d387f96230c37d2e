// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package infrastructure

import (
	"github.com/sapcc/occi-adapter/internal/occi"
)

// Attribute names for templates and contextualization.
const (
	FlavorDiskAttribute      = "org.openstack.flavor.disk"
	FlavorSwapAttribute      = "org.openstack.flavor.swap"
	FlavorEphemeralAttribute = "org.openstack.flavor.ephemeral"
	FlavorNameAttribute      = "org.openstack.flavor.name"
	UserDataAttribute        = "org.openstack.compute.user_data"
	PublicKeyNameAttribute   = "org.openstack.credentials.publickey.name"
	PublicKeyDataAttribute   = "org.openstack.credentials.publickey.data"
)

var (
	// OSTemplateMixin is the base of all OS templates.
	OSTemplateMixin = occi.MustNewMixin(occi.MixinSpec{
		Scheme:   InfrastructureScheme,
		Term:     "os_tpl",
		Title:    "OCCI OS Template",
		Location: "os_tpl/",
	})

	// ResourceTemplateMixin is the base of all resource templates.
	ResourceTemplateMixin = occi.MustNewMixin(occi.MixinSpec{
		Scheme:   InfrastructureScheme,
		Term:     "resource_tpl",
		Title:    "OCCI Resource Template",
		Location: "resource_tpl/",
	})

	// UserDataMixin is attached to compute resources that were booted with
	// user data.
	UserDataMixin = occi.MustNewMixin(occi.MixinSpec{
		Scheme: UserDataScheme,
		Term:   "user_data",
		Title:  "Contextualization extension - user_data",
		Attributes: []occi.AttributeSpec{
			occi.MutableAttribute(UserDataAttribute, occi.StringType).
				WithDescription("Contextualization data (e.g., script, executable) that the client supplies once and only once. It cannot be updated."),
		},
		Applies: []*occi.Kind{ComputeKind},
	})

	// PublicKeyMixin is attached to compute resources that were booted with
	// an SSH key pair.
	PublicKeyMixin = occi.MustNewMixin(occi.MixinSpec{
		Scheme: PublicKeyScheme,
		Term:   "public_key",
		Title:  "Contextualization extension - public_key",
		Attributes: []occi.AttributeSpec{
			occi.MutableAttribute(PublicKeyNameAttribute, occi.StringType).WithDescription("Name of the public key"),
			occi.MutableAttribute(PublicKeyDataAttribute, occi.StringType).WithDescription("The public key itself"),
		},
		Applies: []*occi.Kind{ComputeKind},
	})
)

// NewOSTemplate builds the mixin that represents the given image.
func NewOSTemplate(imageID, imageName string) (*occi.Mixin, error) {
	return occi.NewMixin(occi.MixinSpec{
		Scheme:   OSTemplateScheme,
		Term:     imageID,
		Title:    imageName,
		Location: "os_tpl/" + imageID,
		Related:  []*occi.Mixin{OSTemplateMixin},
	})
}

// FlavorInfo contains the values that NewResourceTemplate exposes as
// attribute defaults.
type FlavorInfo struct {
	ID        string
	Name      string
	Cores     int
	Memory    float64 //in GiB
	Disk      int     //in GiB
	Swap      int     //in MiB
	Ephemeral int     //in GiB
}

// NewResourceTemplate builds the mixin that represents the given flavor.
func NewResourceTemplate(flavor FlavorInfo) (*occi.Mixin, error) {
	return occi.NewMixin(occi.MixinSpec{
		Scheme:   ResourceTplScheme,
		Term:     flavor.ID,
		Title:    "Flavor: " + flavor.Name,
		Location: "resource_tpl/" + flavor.ID,
		Related:  []*occi.Mixin{ResourceTemplateMixin},
		Attributes: []occi.AttributeSpec{
			occi.ImmutableAttribute(ComputeCoresAttribute, occi.NumberType).WithDefault(flavor.Cores),
			occi.ImmutableAttribute(ComputeMemoryAttribute, occi.NumberType).WithDefault(flavor.Memory),
			occi.ImmutableAttribute(FlavorDiskAttribute, occi.NumberType).WithDefault(flavor.Disk),
			occi.ImmutableAttribute(FlavorSwapAttribute, occi.NumberType).WithDefault(flavor.Swap),
			occi.ImmutableAttribute(FlavorEphemeralAttribute, occi.NumberType).WithDefault(flavor.Ephemeral),
			occi.ImmutableAttribute(FlavorNameAttribute, occi.StringType).WithDefault(flavor.Name),
		},
	})
}

// NewFloatingIPPool builds the mixin that represents the given floating IP
// pool.
func NewFloatingIPPool(pool string) (*occi.Mixin, error) {
	return occi.NewMixin(occi.MixinSpec{
		Scheme:  FloatingIPPoolScheme,
		Term:    pool,
		Title:   pool,
		Applies: []*occi.Kind{ComputeKind},
	})
}
