// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package processor

import (
	"context"

	"github.com/sapcc/occi-adapter/internal/infrastructure"
	"github.com/sapcc/occi-adapter/internal/occi"
)

// Query returns the contents of the query interface: all static categories
// plus one mixin per flavor, image and floating IP pool of the backend.
func (p *Processor) Query(ctx context.Context) (*occi.Collection, error) {
	result := &occi.Collection{
		Kinds:   infrastructure.Registry.Kinds(),
		Mixins:  infrastructure.Registry.Mixins(),
		Actions: infrastructure.Registry.Actions(),
	}

	templates, err := p.resourceTemplates(ctx)
	if err != nil {
		return nil, err
	}
	result.Mixins = append(result.Mixins, templates...)

	templates, err = p.osTemplates(ctx)
	if err != nil {
		return nil, err
	}
	result.Mixins = append(result.Mixins, templates...)

	pools, err := p.floatingIPPools(ctx)
	if err != nil {
		return nil, err
	}
	result.Mixins = append(result.Mixins, pools...)

	return result, nil
}

func (p *Processor) resourceTemplates(ctx context.Context) ([]*occi.Mixin, error) {
	flavors, err := p.gateway.ListFlavors(ctx)
	err = tolerateNotFound(p.track("list_flavors", err), "resource templates")
	if err != nil {
		return nil, err
	}
	result := make([]*occi.Mixin, 0, len(flavors))
	for _, f := range flavors {
		m, err := infrastructure.NewResourceTemplate(flavorInfo(f))
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}

func (p *Processor) osTemplates(ctx context.Context) ([]*occi.Mixin, error) {
	images, err := p.gateway.ListImages(ctx)
	err = tolerateNotFound(p.track("list_images", err), "OS templates")
	if err != nil {
		return nil, err
	}
	result := make([]*occi.Mixin, 0, len(images))
	for _, img := range images {
		m, err := infrastructure.NewOSTemplate(img.ID, img.Name)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}

func (p *Processor) floatingIPPools(ctx context.Context) ([]*occi.Mixin, error) {
	pools, err := p.gateway.ListFloatingIPPools(ctx)
	err = tolerateNotFound(p.track("list_floating_ip_pools", err), "floating IP pools")
	if err != nil {
		return nil, err
	}
	result := make([]*occi.Mixin, 0, len(pools))
	for _, pool := range pools {
		m, err := infrastructure.NewFloatingIPPool(pool.Name)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}
