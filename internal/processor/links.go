// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package processor

import (
	"context"

	. "github.com/majewsky/gg/option"

	"github.com/sapcc/occi-adapter/internal/backend"
	"github.com/sapcc/occi-adapter/internal/infrastructure"
	"github.com/sapcc/occi-adapter/internal/occi"
)

// linkStateActive is the state of all links that the backend reports, since
// it only reports attachments that exist.
const linkStateActive = "active"

// linkContext holds the backend objects that are needed to resolve the
// targets of a server's links.
type linkContext struct {
	networksByName       map[string]backend.Network
	floatingIPsByAddress map[string]backend.FloatingIP
	securityGroupsByName map[string]backend.SecurityGroup
}

func (p *Processor) newLinkContext(ctx context.Context) (*linkContext, error) {
	lc := &linkContext{
		networksByName:       make(map[string]backend.Network),
		floatingIPsByAddress: make(map[string]backend.FloatingIP),
		securityGroupsByName: make(map[string]backend.SecurityGroup),
	}

	networks, err := p.gateway.ListNetworks(ctx)
	err = p.track("list_networks", err)
	if err != nil {
		return nil, err
	}
	for _, n := range networks {
		lc.networksByName[n.Name] = n
	}

	fips, err := p.gateway.ListFloatingIPs(ctx)
	err = tolerateNotFound(p.track("list_floating_ips", err), "floating IPs")
	if err != nil {
		return nil, err
	}
	for _, fip := range fips {
		lc.floatingIPsByAddress[fip.Address] = fip
	}

	groups, err := p.gateway.ListSecurityGroups(ctx)
	err = tolerateNotFound(p.track("list_security_groups", err), "security groups")
	if err != nil {
		return nil, err
	}
	for _, sg := range groups {
		lc.securityGroupsByName[sg.Name] = sg
	}

	return lc, nil
}

// floatingIPPoolsOf returns the pool mixins for the floating IPs of the
// given server, without duplicates.
func (lc *linkContext) floatingIPPoolsOf(s backend.Server) ([]*occi.Mixin, error) {
	var result []*occi.Mixin
	seen := make(map[string]bool)
	for _, addr := range s.Addresses {
		if !addr.IsFloating() {
			continue
		}
		fip, exists := lc.floatingIPsByAddress[addr.Address]
		if !exists || fip.Pool == "" || seen[fip.Pool] {
			continue
		}
		seen[fip.Pool] = true
		m, err := infrastructure.NewFloatingIPPool(fip.Pool)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}

func (lc *linkContext) attachLinks(c *infrastructure.ComputeResource, s backend.Server) error {
	storageLinks, err := storageLinksOf(c, s.Volumes)
	if err != nil {
		return err
	}
	interfaces, err := lc.networkInterfacesOf(c, s)
	if err != nil {
		return err
	}
	sgLinks, err := lc.securityGroupLinksOf(c, s)
	if err != nil {
		return err
	}

	for _, l := range storageLinks {
		c.AddLink(l)
	}
	for _, l := range interfaces {
		c.AddLink(l)
	}
	for _, l := range sgLinks {
		c.AddLink(l)
	}
	return nil
}

func storageLinksOf(c occi.ResourceObject, attachments []backend.VolumeAttachment) ([]*infrastructure.StorageLink, error) {
	result := make([]*infrastructure.StorageLink, 0, len(attachments))
	for _, a := range attachments {
		target, err := infrastructure.NewStorageResource(infrastructure.StorageOptions{ID: a.VolumeID})
		if err != nil {
			return nil, err
		}
		l, err := infrastructure.NewStorageLink(c, target, infrastructure.StorageLinkOptions{
			DeviceID: a.Device,
			State:    linkStateActive,
		})
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, nil
}

func (lc *linkContext) networkInterfacesOf(c occi.ResourceObject, s backend.Server) ([]*infrastructure.NetworkInterface, error) {
	result := make([]*infrastructure.NetworkInterface, 0, len(s.Addresses))
	for _, addr := range s.Addresses {
		target, err := lc.networkTarget(addr)
		if err != nil {
			return nil, err
		}
		l, err := infrastructure.NewNetworkInterface(c, target, infrastructure.NetworkInterfaceOptions{
			MAC:        addr.MAC,
			State:      linkStateActive,
			Address:    addr.Address,
			Allocation: "dynamic",
		})
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, nil
}

// networkTarget returns the resource that a network interface for the given
// address points to: the IP reservation for floating IPs, the network
// otherwise.
func (lc *linkContext) networkTarget(addr backend.ServerAddress) (occi.ResourceObject, error) {
	if addr.IsFloating() {
		if fip, exists := lc.floatingIPsByAddress[addr.Address]; exists {
			return infrastructure.NewIPReservation(infrastructure.IPReservationOptions{
				ID:      fip.ID,
				Title:   fip.Address,
				Address: fip.Address,
				Used:    Some(fip.IsUsed()),
			})
		}
	}
	if n, exists := lc.networksByName[addr.NetworkName]; exists {
		return infrastructure.NewNetworkResource(infrastructure.NetworkOptions{ID: n.ID, Title: n.Name})
	}
	//Nova reports addresses on networks that the user cannot see by name only
	return infrastructure.NewNetworkResource(infrastructure.NetworkOptions{ID: addr.NetworkName, Title: addr.NetworkName})
}

func (lc *linkContext) securityGroupLinksOf(c occi.ResourceObject, s backend.Server) ([]*infrastructure.SecurityGroupLink, error) {
	result := make([]*infrastructure.SecurityGroupLink, 0, len(s.SecurityGroups))
	for _, name := range s.SecurityGroups {
		sg, exists := lc.securityGroupsByName[name]
		if !exists {
			continue
		}
		target, err := infrastructure.NewSecurityGroupResource(infrastructure.SecurityGroupOptions{ID: sg.ID, Title: sg.Name})
		if err != nil {
			return nil, err
		}
		l, err := infrastructure.NewSecurityGroupLink(c, target, linkStateActive)
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, nil
}

////////////////////////////////////////////////////////////////////////////////
// link collections

// ListStorageLinks returns all volume attachments as storage links.
func (p *Processor) ListStorageLinks(ctx context.Context) (*occi.Collection, error) {
	volumes, err := p.gateway.ListVolumes(ctx)
	err = p.track("list_volumes", err)
	if err != nil {
		return nil, err
	}
	result := &occi.Collection{}
	for _, v := range volumes {
		for _, a := range v.Attachments {
			source, err := infrastructure.NewComputeResource(infrastructure.ComputeOptions{ID: a.ServerID})
			if err != nil {
				return nil, err
			}
			target, err := newStorage(v)
			if err != nil {
				return nil, err
			}
			l, err := infrastructure.NewStorageLink(source, target, infrastructure.StorageLinkOptions{
				DeviceID: a.Device,
				State:    linkStateActive,
			})
			if err != nil {
				return nil, err
			}
			result.Links = append(result.Links, l)
		}
	}
	return result, nil
}

// ListNetworkInterfaces returns the addresses of all servers as network
// interfaces.
func (p *Processor) ListNetworkInterfaces(ctx context.Context) (*occi.Collection, error) {
	return p.listServerLinks(ctx, func(lc *linkContext, c *infrastructure.ComputeResource, s backend.Server) ([]occi.LinkObject, error) {
		links, err := lc.networkInterfacesOf(c, s)
		return asLinkObjects(links), err
	})
}

// ListSecurityGroupLinks returns the security group memberships of all
// servers as security group links.
func (p *Processor) ListSecurityGroupLinks(ctx context.Context) (*occi.Collection, error) {
	return p.listServerLinks(ctx, func(lc *linkContext, c *infrastructure.ComputeResource, s backend.Server) ([]occi.LinkObject, error) {
		links, err := lc.securityGroupLinksOf(c, s)
		return asLinkObjects(links), err
	})
}

type linkBuilder func(*linkContext, *infrastructure.ComputeResource, backend.Server) ([]occi.LinkObject, error)

func (p *Processor) listServerLinks(ctx context.Context, build linkBuilder) (*occi.Collection, error) {
	servers, err := p.gateway.ListServers(ctx)
	err = p.track("list_servers", err)
	if err != nil {
		return nil, err
	}
	lc, err := p.newLinkContext(ctx)
	if err != nil {
		return nil, err
	}

	result := &occi.Collection{}
	for _, s := range servers {
		c, err := newCompute(s, None[backend.Flavor](), nil)
		if err != nil {
			return nil, err
		}
		links, err := build(lc, c, s)
		if err != nil {
			return nil, err
		}
		result.Links = append(result.Links, links...)
	}
	return result, nil
}

func asLinkObjects[L occi.LinkObject](links []L) []occi.LinkObject {
	result := make([]occi.LinkObject, len(links))
	for idx, l := range links {
		result[idx] = l
	}
	return result
}

// ShowStorageLink returns the storage link with the given ID.
func (p *Processor) ShowStorageLink(ctx context.Context, linkID string) (occi.LinkObject, error) {
	return findLink(p.ListStorageLinks(ctx))(infrastructure.StorageLinkKind, linkID)
}

// ShowNetworkInterface returns the network interface with the given ID.
func (p *Processor) ShowNetworkInterface(ctx context.Context, linkID string) (occi.LinkObject, error) {
	return findLink(p.ListNetworkInterfaces(ctx))(infrastructure.NetworkInterfaceKind, linkID)
}

// ShowSecurityGroupLink returns the security group link with the given ID.
func (p *Processor) ShowSecurityGroupLink(ctx context.Context, linkID string) (occi.LinkObject, error) {
	return findLink(p.ListSecurityGroupLinks(ctx))(infrastructure.SecurityGroupLinkKind, linkID)
}

// Link IDs are derived from both endpoints, so links are found by listing.
func findLink(c *occi.Collection, err error) func(*occi.Kind, string) (occi.LinkObject, error) {
	return func(kind *occi.Kind, linkID string) (occi.LinkObject, error) {
		if err != nil {
			return nil, err
		}
		for _, l := range c.Links {
			if l.AsLink().ID() == linkID {
				return l, nil
			}
		}
		return nil, errNoSuchEntity(kind, linkID)
	}
}
