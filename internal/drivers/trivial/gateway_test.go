// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package trivial

import (
	"context"
	"net/http"
	"testing"

	"github.com/sapcc/go-bits/assert"
	"github.com/sapcc/go-bits/errext"
	"github.com/sapcc/go-bits/must"

	"github.com/sapcc/occi-adapter/internal/backend"
)

func newGateway(t *testing.T) *Gateway {
	t.Helper()
	g, err := backend.NewGateway(context.Background(), "in-memory-for-testing")
	must.SucceedT(t, err)
	return g.(*Gateway)
}

func statusOf(err error) int {
	berr, ok := errext.As[*backend.Error](err)
	if !ok {
		return 0
	}
	return berr.StatusCode
}

func TestServerLifecycle(t *testing.T) {
	ctx := context.Background()
	g := newGateway(t)
	g.AddServer(backend.Server{ID: "srv2", Name: "second", Status: "ACTIVE"})
	g.AddServer(backend.Server{ID: "srv1", Name: "first", Status: "ACTIVE"})

	servers := must.ReturnT(g.ListServers(ctx))(t)
	assert.DeepEqual(t, "server IDs", []string{servers[0].ID, servers[1].ID}, []string{"srv1", "srv2"})

	must.SucceedT(t, g.RunServerAction(ctx, "srv1", backend.ServerActionStop))
	s, _ := g.Server("srv1")
	assert.DeepEqual(t, "status after stop", s.Status, "SHUTOFF")
	must.SucceedT(t, g.RunServerAction(ctx, "srv1", backend.ServerActionSuspend))
	s, _ = g.Server("srv1")
	assert.DeepEqual(t, "status after suspend", s.Status, "SUSPENDED")

	assert.DeepEqual(t, "unknown action", statusOf(g.RunServerAction(ctx, "srv1", "hibernate")), http.StatusNotImplemented)
	assert.DeepEqual(t, "unknown server", statusOf(g.RunServerAction(ctx, "srv3", backend.ServerActionStart)), http.StatusNotFound)

	must.SucceedT(t, g.DeleteServer(ctx, "srv1"))
	_, exists := g.Server("srv1")
	assert.DeepEqual(t, "srv1 exists", exists, false)
	_, err := g.GetServer(ctx, "srv1")
	assert.DeepEqual(t, "is not found", backend.IsNotFound(err), true)
}

func TestAddWithoutInit(t *testing.T) {
	ctx := context.Background()
	g := &Gateway{}
	g.AddFlavor(backend.Flavor{ID: "1", Name: "m1.tiny"})
	g.AddImage(backend.Image{ID: "img1", Name: "cirros"})
	g.AddServer(backend.Server{ID: "srv1", Name: "first", Status: "ACTIVE"})
	g.AddVolume(backend.Volume{ID: "vol1", Name: "data"})
	g.AddNetwork(backend.Network{ID: "net1", Name: "private"})
	g.AddFloatingIP(backend.FloatingIP{ID: "fip1", Address: "172.24.4.10"})
	g.AddSecurityGroup(backend.SecurityGroup{ID: "sg1", Name: "default"})

	s := must.ReturnT(g.GetServer(ctx, "srv1"))(t)
	assert.DeepEqual(t, "server name", s.Name, "first")
	assert.DeepEqual(t, "number of flavors", len(must.ReturnT(g.ListFlavors(ctx))(t)), 1)
	assert.DeepEqual(t, "number of images", len(must.ReturnT(g.ListImages(ctx))(t)), 1)
	assert.DeepEqual(t, "number of volumes", len(must.ReturnT(g.ListVolumes(ctx))(t)), 1)
	assert.DeepEqual(t, "number of networks", len(must.ReturnT(g.ListNetworks(ctx))(t)), 1)
	assert.DeepEqual(t, "number of floating IPs", len(must.ReturnT(g.ListFloatingIPs(ctx))(t)), 1)
	assert.DeepEqual(t, "number of security groups", len(must.ReturnT(g.ListSecurityGroups(ctx))(t)), 1)

	//Init starts over with an empty cloud
	must.SucceedT(t, g.Init(ctx))
	_, err := g.GetServer(ctx, "srv1")
	assert.DeepEqual(t, "status after Init", statusOf(err), http.StatusNotFound)
}

func TestVolumes(t *testing.T) {
	ctx := context.Background()
	g := newGateway(t)
	g.AddVolume(backend.Volume{ID: "vol1", Status: "available", SizeGiB: 10})
	g.AddVolume(backend.Volume{ID: "vol2", Status: "in-use", SizeGiB: 20, Attachments: []backend.VolumeAttachment{
		{ServerID: "srv1", VolumeID: "vol2", Device: "/dev/vdb"},
	}})

	must.SucceedT(t, g.RunVolumeAction(ctx, "vol1", backend.VolumeActionBackup))
	must.SucceedT(t, g.RunVolumeAction(ctx, "vol2", backend.VolumeActionSnapshot))
	assert.DeepEqual(t, "backups", g.Backups, []string{"vol1"})
	assert.DeepEqual(t, "snapshots", g.Snapshots, []string{"vol2"})

	assert.DeepEqual(t, "delete attached volume", statusOf(g.DeleteVolume(ctx, "vol2")), http.StatusConflict)
	must.SucceedT(t, g.DeleteVolume(ctx, "vol1"))
	assert.DeepEqual(t, "vol1 exists", g.HasVolume("vol1"), false)
	assert.DeepEqual(t, "vol2 exists", g.HasVolume("vol2"), true)
}

func TestNetworksAndPools(t *testing.T) {
	ctx := context.Background()
	g := newGateway(t)
	g.AddNetwork(backend.Network{ID: "net1", Name: "private", Status: "ACTIVE"})
	g.AddNetwork(backend.Network{ID: "ext", Name: "public", Status: "ACTIVE", External: true})

	pools := must.ReturnT(g.ListFloatingIPPools(ctx))(t)
	assert.DeepEqual(t, "pools", pools, []backend.FloatingIPPool{{ID: "ext", Name: "public"}})

	must.SucceedT(t, g.RunNetworkAction(ctx, "net1", backend.NetworkActionDown))
	n := must.ReturnT(g.GetNetwork(ctx, "net1"))(t)
	assert.DeepEqual(t, "status after down", n.Status, "DOWN")

	g.WithoutFloatingIPs = true
	_, err := g.ListFloatingIPPools(ctx)
	assert.DeepEqual(t, "pools without extension", backend.IsNotFound(err), true)
}
