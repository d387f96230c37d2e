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

// Values for the occi.network.state attribute.
const (
	NetworkStateActive   = "active"
	NetworkStateInactive = "inactive"
)

func networkState(status string) string {
	if status == "ACTIVE" {
		return NetworkStateActive
	}
	return NetworkStateInactive
}

func networkActions(state string) []*occi.Action {
	if state == NetworkStateActive {
		return []*occi.Action{infrastructure.DownAction}
	}
	return []*occi.Action{infrastructure.UpAction}
}

var networkActionsByTerm = map[string]backend.NetworkAction{
	infrastructure.UpAction.Term():   backend.NetworkActionUp,
	infrastructure.DownAction.Term(): backend.NetworkActionDown,
}

func newNetwork(n backend.Network) (*infrastructure.NetworkResource, error) {
	state := networkState(n.Status)
	opts := infrastructure.NetworkOptions{
		ID:           n.ID,
		Title:        n.Name,
		Label:        n.Name,
		State:        state,
		StateMessage: n.Status,
		Actions:      networkActions(state),
	}
	if n.CIDR != "" {
		opts.Address = n.CIDR
		opts.Gateway = n.GatewayIP
		opts.Allocation = "static"
		if n.DHCPEnabled {
			opts.Allocation = "dynamic"
		}
	}
	if n.IPVersion != 0 {
		opts.IPVersion = Some(n.IPVersion)
	}
	return infrastructure.NewNetworkResource(opts)
}

// ListNetworks returns all networks as network resources.
func (p *Processor) ListNetworks(ctx context.Context) (*occi.Collection, error) {
	networks, err := p.gateway.ListNetworks(ctx)
	err = p.track("list_networks", err)
	if err != nil {
		return nil, err
	}
	result := &occi.Collection{}
	for _, n := range networks {
		r, err := newNetwork(n)
		if err != nil {
			return nil, err
		}
		result.Resources = append(result.Resources, r)
	}
	return result, nil
}

// ShowNetwork returns a single network as a network resource.
func (p *Processor) ShowNetwork(ctx context.Context, networkID string) (*infrastructure.NetworkResource, error) {
	n, err := p.gateway.GetNetwork(ctx, networkID)
	err = p.track("get_network", err)
	if err != nil {
		return nil, err
	}
	return newNetwork(n)
}

// RunNetworkAction runs the action with the given term on a network.
func (p *Processor) RunNetworkAction(ctx context.Context, networkID, term string) error {
	action, err := findAction(infrastructure.NetworkKind, term)
	if err != nil {
		return err
	}
	err = p.gateway.RunNetworkAction(ctx, networkID, networkActionsByTerm[action.Term()])
	return p.track("run_network_action", err)
}

////////////////////////////////////////////////////////////////////////////////
// IP reservations

func newIPReservation(fip backend.FloatingIP) (*infrastructure.IPReservation, error) {
	state := NetworkStateInactive
	if fip.Status == "ACTIVE" {
		state = NetworkStateActive
	}
	return infrastructure.NewIPReservation(infrastructure.IPReservationOptions{
		ID:      fip.ID,
		Title:   fip.Address,
		Summary: "floating IP from pool " + fip.Pool,
		Address: fip.Address,
		Used:    Some(fip.IsUsed()),
		State:   state,
	})
}

// ListIPReservations returns all floating IPs as IP reservations. Clouds
// without floating IPs yield an empty collection.
func (p *Processor) ListIPReservations(ctx context.Context) (*occi.Collection, error) {
	fips, err := p.gateway.ListFloatingIPs(ctx)
	err = tolerateNotFound(p.track("list_floating_ips", err), "IP reservations")
	if err != nil {
		return nil, err
	}
	result := &occi.Collection{}
	for _, fip := range fips {
		r, err := newIPReservation(fip)
		if err != nil {
			return nil, err
		}
		result.Resources = append(result.Resources, r)
	}
	return result, nil
}

// ShowIPReservation returns a single floating IP as an IP reservation.
func (p *Processor) ShowIPReservation(ctx context.Context, floatingIPID string) (*infrastructure.IPReservation, error) {
	fip, err := p.gateway.GetFloatingIP(ctx, floatingIPID)
	err = p.track("get_floating_ip", err)
	if err != nil {
		return nil, err
	}
	return newIPReservation(fip)
}
