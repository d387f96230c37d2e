// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package trivial

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"github.com/sapcc/occi-adapter/internal/backend"
)

func init() {
	backend.GatewayRegistry.Add(func() backend.Gateway { return &Gateway{} })
}

// Gateway (driver ID "in-memory-for-testing") is a backend.Gateway for use in
// test suites where the cloud is simulated in RAM only. Tests populate it with
// the Add...() methods.
type Gateway struct {
	mutex          sync.RWMutex
	flavors        map[string]backend.Flavor
	images         map[string]backend.Image
	servers        map[string]backend.Server
	volumes        map[string]backend.Volume
	networks       map[string]backend.Network
	floatingIPs    map[string]backend.FloatingIP
	securityGroups map[string]backend.SecurityGroup

	// Backups and Snapshots contain the IDs of all volumes for which the
	// respective action was executed, in order.
	Backups   []string
	Snapshots []string
	// When set, the respective list methods report that the feature is not
	// deployed in this cloud.
	WithoutFloatingIPs    bool
	WithoutSecurityGroups bool
}

// PluginTypeID implements the backend.Gateway interface.
func (g *Gateway) PluginTypeID() string { return "in-memory-for-testing" }

// Init implements the backend.Gateway interface.
func (g *Gateway) Init(ctx context.Context) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.flavors = make(map[string]backend.Flavor)
	g.images = make(map[string]backend.Image)
	g.servers = make(map[string]backend.Server)
	g.volumes = make(map[string]backend.Volume)
	g.networks = make(map[string]backend.Network)
	g.floatingIPs = make(map[string]backend.FloatingIP)
	g.securityGroups = make(map[string]backend.SecurityGroup)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// setup for tests

// AddFlavor adds a flavor to the simulated cloud.
func (g *Gateway) AddFlavor(f backend.Flavor) { put(g, &g.flavors, f.ID, f) }

// AddImage adds an image to the simulated cloud.
func (g *Gateway) AddImage(i backend.Image) { put(g, &g.images, i.ID, i) }

// AddServer adds a server to the simulated cloud.
func (g *Gateway) AddServer(s backend.Server) { put(g, &g.servers, s.ID, s) }

// AddVolume adds a volume to the simulated cloud.
func (g *Gateway) AddVolume(v backend.Volume) { put(g, &g.volumes, v.ID, v) }

// AddNetwork adds a network to the simulated cloud.
func (g *Gateway) AddNetwork(n backend.Network) { put(g, &g.networks, n.ID, n) }

// AddFloatingIP adds a floating IP to the simulated cloud.
func (g *Gateway) AddFloatingIP(f backend.FloatingIP) { put(g, &g.floatingIPs, f.ID, f) }

// AddSecurityGroup adds a security group to the simulated cloud.
func (g *Gateway) AddSecurityGroup(s backend.SecurityGroup) { put(g, &g.securityGroups, s.ID, s) }

// put allocates the map on first use, so the Add methods also work on a
// Gateway that has not been initialized.
func put[T any](g *Gateway, m *map[string]T, id string, value T) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if *m == nil {
		*m = make(map[string]T)
	}
	(*m)[id] = value
}

func list[T any](g *Gateway, m map[string]T) []T {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]T, len(ids))
	for idx, id := range ids {
		result[idx] = m[id]
	}
	return result
}

func get[T any](g *Gateway, m map[string]T, kind, id string) (T, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	value, exists := m[id]
	if !exists {
		return value, backend.NotFound(kind, id)
	}
	return value, nil
}

////////////////////////////////////////////////////////////////////////////////
// templates

// ListFlavors implements the backend.Gateway interface.
func (g *Gateway) ListFlavors(ctx context.Context) ([]backend.Flavor, error) {
	return list(g, g.flavors), nil
}

// GetFlavor implements the backend.Gateway interface.
func (g *Gateway) GetFlavor(ctx context.Context, flavorID string) (backend.Flavor, error) {
	return get(g, g.flavors, "flavor", flavorID)
}

// ListImages implements the backend.Gateway interface.
func (g *Gateway) ListImages(ctx context.Context) ([]backend.Image, error) {
	return list(g, g.images), nil
}

// ListFloatingIPPools implements the backend.Gateway interface.
func (g *Gateway) ListFloatingIPPools(ctx context.Context) ([]backend.FloatingIPPool, error) {
	if g.WithoutFloatingIPs {
		return nil, backend.NotFound("extension", "os-floating-ip-pools")
	}
	var result []backend.FloatingIPPool
	for _, n := range list(g, g.networks) {
		if n.External {
			result = append(result, backend.FloatingIPPool{ID: n.ID, Name: n.Name})
		}
	}
	return result, nil
}

////////////////////////////////////////////////////////////////////////////////
// servers

// ListServers implements the backend.Gateway interface.
func (g *Gateway) ListServers(ctx context.Context) ([]backend.Server, error) {
	return list(g, g.servers), nil
}

// GetServer implements the backend.Gateway interface.
func (g *Gateway) GetServer(ctx context.Context, serverID string) (backend.Server, error) {
	return get(g, g.servers, "server", serverID)
}

var serverStatusAfterAction = map[backend.ServerAction]string{
	backend.ServerActionStart:   "ACTIVE",
	backend.ServerActionStop:    "SHUTOFF",
	backend.ServerActionRestart: "ACTIVE",
	backend.ServerActionSuspend: "SUSPENDED",
}

// RunServerAction implements the backend.Gateway interface.
func (g *Gateway) RunServerAction(ctx context.Context, serverID string, action backend.ServerAction) error {
	status, exists := serverStatusAfterAction[action]
	if !exists {
		return backend.NotImplemented("server action %q is not supported", action)
	}
	g.mutex.Lock()
	defer g.mutex.Unlock()
	s, exists := g.servers[serverID]
	if !exists {
		return backend.NotFound("server", serverID)
	}
	s.Status = status
	g.servers[serverID] = s
	return nil
}

// DeleteServer implements the backend.Gateway interface.
func (g *Gateway) DeleteServer(ctx context.Context, serverID string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if _, exists := g.servers[serverID]; !exists {
		return backend.NotFound("server", serverID)
	}
	delete(g.servers, serverID)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// volumes

// ListVolumes implements the backend.Gateway interface.
func (g *Gateway) ListVolumes(ctx context.Context) ([]backend.Volume, error) {
	return list(g, g.volumes), nil
}

// GetVolume implements the backend.Gateway interface.
func (g *Gateway) GetVolume(ctx context.Context, volumeID string) (backend.Volume, error) {
	return get(g, g.volumes, "volume", volumeID)
}

// RunVolumeAction implements the backend.Gateway interface.
func (g *Gateway) RunVolumeAction(ctx context.Context, volumeID string, action backend.VolumeAction) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if _, exists := g.volumes[volumeID]; !exists {
		return backend.NotFound("volume", volumeID)
	}
	switch action {
	case backend.VolumeActionBackup:
		g.Backups = append(g.Backups, volumeID)
	case backend.VolumeActionSnapshot:
		g.Snapshots = append(g.Snapshots, volumeID)
	default:
		return backend.NotImplemented("volume action %q is not supported", action)
	}
	return nil
}

// DeleteVolume implements the backend.Gateway interface.
func (g *Gateway) DeleteVolume(ctx context.Context, volumeID string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	v, exists := g.volumes[volumeID]
	if !exists {
		return backend.NotFound("volume", volumeID)
	}
	if len(v.Attachments) > 0 {
		return backend.Errorf(http.StatusConflict, "volume %q is still attached", volumeID)
	}
	delete(g.volumes, volumeID)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// networks

// ListNetworks implements the backend.Gateway interface.
func (g *Gateway) ListNetworks(ctx context.Context) ([]backend.Network, error) {
	return list(g, g.networks), nil
}

// GetNetwork implements the backend.Gateway interface.
func (g *Gateway) GetNetwork(ctx context.Context, networkID string) (backend.Network, error) {
	return get(g, g.networks, "network", networkID)
}

// RunNetworkAction implements the backend.Gateway interface.
func (g *Gateway) RunNetworkAction(ctx context.Context, networkID string, action backend.NetworkAction) error {
	var status string
	switch action {
	case backend.NetworkActionUp:
		status = "ACTIVE"
	case backend.NetworkActionDown:
		status = "DOWN"
	default:
		return backend.NotImplemented("network action %q is not supported", action)
	}
	g.mutex.Lock()
	defer g.mutex.Unlock()
	n, exists := g.networks[networkID]
	if !exists {
		return backend.NotFound("network", networkID)
	}
	n.Status = status
	g.networks[networkID] = n
	return nil
}

// ListFloatingIPs implements the backend.Gateway interface.
func (g *Gateway) ListFloatingIPs(ctx context.Context) ([]backend.FloatingIP, error) {
	if g.WithoutFloatingIPs {
		return nil, backend.NotFound("extension", "os-floating-ips")
	}
	return list(g, g.floatingIPs), nil
}

// GetFloatingIP implements the backend.Gateway interface.
func (g *Gateway) GetFloatingIP(ctx context.Context, floatingIPID string) (backend.FloatingIP, error) {
	return get(g, g.floatingIPs, "floating IP", floatingIPID)
}

////////////////////////////////////////////////////////////////////////////////
// security groups

// ListSecurityGroups implements the backend.Gateway interface.
func (g *Gateway) ListSecurityGroups(ctx context.Context) ([]backend.SecurityGroup, error) {
	if g.WithoutSecurityGroups {
		return nil, backend.NotFound("extension", "security-group")
	}
	return list(g, g.securityGroups), nil
}

// GetSecurityGroup implements the backend.Gateway interface.
func (g *Gateway) GetSecurityGroup(ctx context.Context, securityGroupID string) (backend.SecurityGroup, error) {
	if g.WithoutSecurityGroups {
		return backend.SecurityGroup{}, backend.NotFound("extension", "security-group")
	}
	return get(g, g.securityGroups, "security group", securityGroupID)
}

// Server returns the current state of the given server, for use in test
// assertions.
func (g *Gateway) Server(serverID string) (backend.Server, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	s, exists := g.servers[serverID]
	return s, exists
}

// HasVolume returns whether the given volume exists, for use in test
// assertions.
func (g *Gateway) HasVolume(volumeID string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, exists := g.volumes[volumeID]
	return exists
}
