// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package openstack contains the backend.Gateway "openstack", which
// translates OCCI requests into requests to Nova, Cinder, Neutron and Glance.
//
// Credentials are taken from the usual OS_* environment variables.
package openstack

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack"
	"github.com/sapcc/go-bits/gophercloudext"
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/occi-adapter/internal/backend"
)

// Gateway is the backend.Gateway "openstack".
type Gateway struct {
	ComputeV2      *gophercloud.ServiceClient
	BlockStorageV3 *gophercloud.ServiceClient
	NetworkV2      *gophercloud.ServiceClient
	ImageV2        *gophercloud.ServiceClient
}

func init() {
	backend.GatewayRegistry.Add(func() backend.Gateway { return &Gateway{} })
}

// PluginTypeID implements the backend.Gateway interface.
func (g *Gateway) PluginTypeID() string { return "openstack" }

// Init implements the backend.Gateway interface.
func (g *Gateway) Init(ctx context.Context) error {
	// service clients can be preset by tests
	if g.ComputeV2 != nil {
		return nil
	}

	provider, eo, err := gophercloudext.NewProviderClient(ctx, nil)
	if err != nil {
		return fmt.Errorf("cannot connect to OpenStack: %w", err)
	}

	g.ComputeV2, err = openstack.NewComputeV2(provider, eo)
	if err != nil {
		return fmt.Errorf("cannot find Nova v2 API: %w", err)
	}
	//2.3 adds the extended server attributes, including user_data
	g.ComputeV2.Microversion = "2.3"
	g.BlockStorageV3, err = openstack.NewBlockStorageV3(provider, eo)
	if err != nil {
		return fmt.Errorf("cannot find Cinder v3 API: %w", err)
	}
	g.NetworkV2, err = openstack.NewNetworkV2(provider, eo)
	if err != nil {
		return fmt.Errorf("cannot find Neutron v2 API: %w", err)
	}
	g.ImageV2, err = openstack.NewImageV2(provider, eo)
	if err != nil {
		return fmt.Errorf("cannot find Glance v2 API: %w", err)
	}

	logg.Debug("backend gateway connected to OpenStack at %s", provider.IdentityEndpoint)
	return nil
}
