// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package openstack

import (
	"context"

	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/external"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/layer3/floatingips"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/security/groups"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/networks"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/subnets"
	"github.com/gophercloud/gophercloud/v2/pagination"
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/occi-adapter/internal/backend"
)

type networkWithExternal struct {
	networks.Network
	external.NetworkExternalExt
}

func (g *Gateway) listNetworks(ctx context.Context, opts networks.ListOptsBuilder) ([]networkWithExternal, error) {
	page, err := networks.List(g.NetworkV2, opts).AllPages(ctx)
	if err != nil {
		return nil, translateError(err, "list networks")
	}
	var list []networkWithExternal
	err = networks.ExtractNetworksInto(page, &list)
	if err != nil {
		return nil, translateError(err, "list networks")
	}
	return list, nil
}

// ListFloatingIPPools implements the backend.Gateway interface.
func (g *Gateway) ListFloatingIPPools(ctx context.Context) ([]backend.FloatingIPPool, error) {
	isExternal := true
	list, err := g.listNetworks(ctx, external.ListOptsExt{
		ListOptsBuilder: networks.ListOpts{},
		External:        &isExternal,
	})
	if err != nil {
		return nil, err
	}

	result := make([]backend.FloatingIPPool, len(list))
	for idx, n := range list {
		result[idx] = backend.FloatingIPPool{ID: n.ID, Name: n.Name}
	}
	return result, nil
}

// ListNetworks implements the backend.Gateway interface.
func (g *Gateway) ListNetworks(ctx context.Context) ([]backend.Network, error) {
	list, err := g.listNetworks(ctx, networks.ListOpts{})
	if err != nil {
		return nil, err
	}

	//one request for all subnets instead of one per network
	subnetsByNetworkID, err := g.listSubnets(ctx, subnets.ListOpts{})
	if err != nil {
		return nil, err
	}

	result := make([]backend.Network, len(list))
	for idx, n := range list {
		result[idx] = convertNetwork(n, subnetsByNetworkID[n.ID])
	}
	return result, nil
}

// GetNetwork implements the backend.Gateway interface.
func (g *Gateway) GetNetwork(ctx context.Context, networkID string) (backend.Network, error) {
	var n networkWithExternal
	err := networks.Get(ctx, g.NetworkV2, networkID).ExtractInto(&n)
	if err != nil {
		return backend.Network{}, translateError(err, "get network %s", networkID)
	}
	subnetsByNetworkID, err := g.listSubnets(ctx, subnets.ListOpts{NetworkID: networkID})
	if err != nil {
		return backend.Network{}, err
	}
	return convertNetwork(n, subnetsByNetworkID[networkID]), nil
}

func (g *Gateway) listSubnets(ctx context.Context, opts subnets.ListOpts) (map[string][]subnets.Subnet, error) {
	page, err := subnets.List(g.NetworkV2, opts).AllPages(ctx)
	if err != nil {
		return nil, translateError(err, "list subnets")
	}
	list, err := subnets.ExtractSubnets(page)
	if err != nil {
		return nil, translateError(err, "list subnets")
	}
	result := make(map[string][]subnets.Subnet)
	for _, s := range list {
		result[s.NetworkID] = append(result[s.NetworkID], s)
	}
	return result, nil
}

func convertNetwork(n networkWithExternal, subnetList []subnets.Subnet) backend.Network {
	result := backend.Network{
		ID:       n.ID,
		Name:     n.Name,
		Status:   n.Status,
		External: n.External,
	}
	if !n.AdminStateUp {
		result.Status = "DOWN"
	}
	if len(subnetList) > 0 {
		s := subnetList[0]
		result.CIDR = s.CIDR
		result.GatewayIP = s.GatewayIP
		result.IPVersion = s.IPVersion
		result.DHCPEnabled = s.EnableDHCP
	}
	return result
}

// RunNetworkAction implements the backend.Gateway interface.
func (g *Gateway) RunNetworkAction(ctx context.Context, networkID string, action backend.NetworkAction) error {
	logg.Debug("running action %q on network %s", action, networkID)
	var adminStateUp bool
	switch action {
	case backend.NetworkActionUp:
		adminStateUp = true
	case backend.NetworkActionDown:
		adminStateUp = false
	default:
		return backend.NotImplemented("network action %q is not supported", action)
	}
	_, err := networks.Update(ctx, g.NetworkV2, networkID, networks.UpdateOpts{AdminStateUp: &adminStateUp}).Extract()
	return translateError(err, "set network %s %s", networkID, action)
}

// ListFloatingIPs implements the backend.Gateway interface.
func (g *Gateway) ListFloatingIPs(ctx context.Context) ([]backend.FloatingIP, error) {
	page, err := floatingips.List(g.NetworkV2, floatingips.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, translateError(err, "list floating IPs")
	}
	list, err := floatingips.ExtractFloatingIPs(page)
	if err != nil {
		return nil, translateError(err, "list floating IPs")
	}

	poolNames, err := g.poolNames(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]backend.FloatingIP, len(list))
	for idx, fip := range list {
		result[idx] = convertFloatingIP(fip, poolNames)
	}
	return result, nil
}

// GetFloatingIP implements the backend.Gateway interface.
func (g *Gateway) GetFloatingIP(ctx context.Context, floatingIPID string) (backend.FloatingIP, error) {
	fip, err := floatingips.Get(ctx, g.NetworkV2, floatingIPID).Extract()
	if err != nil {
		return backend.FloatingIP{}, translateError(err, "get floating IP %s", floatingIPID)
	}
	poolNames, err := g.poolNames(ctx)
	if err != nil {
		return backend.FloatingIP{}, err
	}
	return convertFloatingIP(*fip, poolNames), nil
}

func (g *Gateway) poolNames(ctx context.Context) (map[string]string, error) {
	pools, err := g.ListFloatingIPPools(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(pools))
	for _, p := range pools {
		result[p.ID] = p.Name
	}
	return result, nil
}

func convertFloatingIP(fip floatingips.FloatingIP, poolNames map[string]string) backend.FloatingIP {
	pool := poolNames[fip.FloatingNetworkID]
	if pool == "" {
		pool = fip.FloatingNetworkID
	}
	return backend.FloatingIP{
		ID:      fip.ID,
		Address: fip.FloatingIP,
		Pool:    pool,
		PortID:  fip.PortID,
		Status:  fip.Status,
	}
}

// ListSecurityGroups implements the backend.Gateway interface.
func (g *Gateway) ListSecurityGroups(ctx context.Context) ([]backend.SecurityGroup, error) {
	var result []backend.SecurityGroup
	err := groups.List(g.NetworkV2, groups.ListOpts{}).EachPage(ctx, func(_ context.Context, page pagination.Page) (bool, error) {
		list, err := groups.ExtractGroups(page)
		if err != nil {
			return false, err
		}
		for _, sg := range list {
			result = append(result, convertSecurityGroup(sg))
		}
		return true, nil
	})
	if err != nil {
		return nil, translateError(err, "list security groups")
	}
	return result, nil
}

// GetSecurityGroup implements the backend.Gateway interface.
func (g *Gateway) GetSecurityGroup(ctx context.Context, securityGroupID string) (backend.SecurityGroup, error) {
	sg, err := groups.Get(ctx, g.NetworkV2, securityGroupID).Extract()
	if err != nil {
		return backend.SecurityGroup{}, translateError(err, "get security group %s", securityGroupID)
	}
	return convertSecurityGroup(*sg), nil
}

func convertSecurityGroup(sg groups.SecGroup) backend.SecurityGroup {
	result := backend.SecurityGroup{
		ID:          sg.ID,
		Name:        sg.Name,
		Description: sg.Description,
	}
	for _, r := range sg.Rules {
		result.Rules = append(result.Rules, backend.SecurityGroupRule{
			Direction:      r.Direction,
			Protocol:       r.Protocol,
			PortRangeMin:   r.PortRangeMin,
			PortRangeMax:   r.PortRangeMax,
			RemoteIPPrefix: r.RemoteIPPrefix,
		})
	}
	return result
}
