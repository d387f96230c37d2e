// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package backend contains the interface between the OCCI layer and the
// cloud that is being adapted.
package backend

import (
	"context"
	"errors"

	"github.com/sapcc/go-bits/logg"
	"github.com/sapcc/go-bits/pluggable"
)

// Gateway is the pluggable interface for the cloud behind the OCCI API. All
// methods take the context of the HTTP request that they serve.
//
// Errors returned by Gateway methods should be of type *Error when they
// shall be reported to the client with a specific status code.
type Gateway interface {
	pluggable.Plugin
	// Init is called before any other interface methods, and allows the plugin to
	// perform first-time initialization.
	Init(ctx context.Context) error

	ListFlavors(ctx context.Context) ([]Flavor, error)
	GetFlavor(ctx context.Context, flavorID string) (Flavor, error)
	ListImages(ctx context.Context) ([]Image, error)
	// ListFloatingIPPools returns the external networks from which floating IPs
	// can be allocated. A 404 error indicates that the cloud does not offer
	// floating IPs at all.
	ListFloatingIPPools(ctx context.Context) ([]FloatingIPPool, error)

	ListServers(ctx context.Context) ([]Server, error)
	GetServer(ctx context.Context, serverID string) (Server, error)
	RunServerAction(ctx context.Context, serverID string, action ServerAction) error
	DeleteServer(ctx context.Context, serverID string) error

	ListVolumes(ctx context.Context) ([]Volume, error)
	GetVolume(ctx context.Context, volumeID string) (Volume, error)
	RunVolumeAction(ctx context.Context, volumeID string, action VolumeAction) error
	DeleteVolume(ctx context.Context, volumeID string) error

	ListNetworks(ctx context.Context) ([]Network, error)
	GetNetwork(ctx context.Context, networkID string) (Network, error)
	RunNetworkAction(ctx context.Context, networkID string, action NetworkAction) error

	ListFloatingIPs(ctx context.Context) ([]FloatingIP, error)
	GetFloatingIP(ctx context.Context, floatingIPID string) (FloatingIP, error)

	// The security group methods may return a 404 error if the cloud does not
	// support security groups.
	ListSecurityGroups(ctx context.Context) ([]SecurityGroup, error)
	GetSecurityGroup(ctx context.Context, securityGroupID string) (SecurityGroup, error)
}

// GatewayRegistry is a pluggable.Registry for Gateway implementations.
var GatewayRegistry pluggable.Registry[Gateway]

// NewGateway creates a new Gateway using one of the plugins registered
// with GatewayRegistry.
func NewGateway(ctx context.Context, pluginTypeID string) (Gateway, error) {
	logg.Debug("initializing backend gateway %q...", pluginTypeID)

	g := GatewayRegistry.Instantiate(pluginTypeID)
	if g == nil {
		return nil, errors.New("no such backend gateway: " + pluginTypeID)
	}
	return g, g.Init(ctx)
}

// ServerAction is an enum of actions that can be performed on servers.
type ServerAction string

// Possible values for ServerAction.
const (
	ServerActionStart   ServerAction = "start"
	ServerActionStop    ServerAction = "stop"
	ServerActionRestart ServerAction = "restart"
	ServerActionSuspend ServerAction = "suspend"
)

// VolumeAction is an enum of actions that can be performed on volumes.
type VolumeAction string

// Possible values for VolumeAction.
const (
	VolumeActionBackup   VolumeAction = "backup"
	VolumeActionSnapshot VolumeAction = "snapshot"
)

// NetworkAction is an enum of actions that can be performed on networks.
type NetworkAction string

// Possible values for NetworkAction.
const (
	NetworkActionUp   NetworkAction = "up"
	NetworkActionDown NetworkAction = "down"
)
