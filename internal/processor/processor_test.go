// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package processor

import (
	"context"
	"net/http"
	"slices"
	"sort"
	"testing"

	. "github.com/majewsky/gg/option"
	"github.com/sapcc/go-bits/assert"
	"github.com/sapcc/go-bits/must"

	"github.com/sapcc/occi-adapter/internal/backend"
	"github.com/sapcc/occi-adapter/internal/drivers/trivial"
	"github.com/sapcc/occi-adapter/internal/infrastructure"
	"github.com/sapcc/occi-adapter/internal/occi"
	"github.com/sapcc/occi-adapter/internal/rendering"
	"github.com/sapcc/occi-adapter/internal/rendering/headers"
)

func setup(t *testing.T) (*Processor, *trivial.Gateway) {
	t.Helper()
	gw := &trivial.Gateway{}
	must.SucceedT(t, gw.Init(context.Background()))

	gw.AddFlavor(backend.Flavor{ID: "2", Name: "m1.small", VCPUs: 2, RAMMiB: 2048, DiskGiB: 20})
	gw.AddImage(backend.Image{ID: "img1", Name: "Ubuntu 24.04"})
	gw.AddNetwork(backend.Network{ID: "net1", Name: "private", Status: "ACTIVE", CIDR: "10.0.0.0/24", GatewayIP: "10.0.0.1", IPVersion: 4, DHCPEnabled: true})
	gw.AddNetwork(backend.Network{ID: "ext", Name: "public", Status: "ACTIVE", External: true})
	gw.AddFloatingIP(backend.FloatingIP{ID: "fip1", Address: "172.24.4.10", Pool: "public", PortID: "port1", Status: "ACTIVE"})
	gw.AddSecurityGroup(backend.SecurityGroup{ID: "sg1", Name: "default", Rules: []backend.SecurityGroupRule{
		{Direction: "ingress", Protocol: "tcp", PortRangeMin: 22, PortRangeMax: 22, RemoteIPPrefix: "0.0.0.0/0"},
		{Direction: "egress"},
	}})
	gw.AddVolume(backend.Volume{ID: "vol1", Name: "data", Status: "in-use", SizeGiB: 10, Attachments: []backend.VolumeAttachment{
		{ServerID: "srv1", VolumeID: "vol1", Device: "/dev/vdb"},
	}})
	gw.AddVolume(backend.Volume{ID: "vol2", Name: "scratch", Status: "creating", SizeGiB: 1})
	gw.AddServer(backend.Server{
		ID:       "srv1",
		Name:     "web",
		Status:   "ACTIVE",
		FlavorID: "2",
		ImageID:  "img1",
		KeyName:  "mykey",
		UserData: "IyEvYmluL3NoCg==",
		Addresses: []backend.ServerAddress{
			{NetworkName: "private", Address: "10.0.0.5", Version: 4, MAC: "fa:16:3e:00:00:01", Type: "fixed"},
			{NetworkName: "private", Address: "172.24.4.10", Version: 4, MAC: "fa:16:3e:00:00:01", Type: "floating"},
		},
		Volumes:        []backend.VolumeAttachment{{ServerID: "srv1", VolumeID: "vol1", Device: "/dev/vdb"}},
		SecurityGroups: []string{"default"},
	})
	gw.AddServer(backend.Server{ID: "srv2", Name: "worker", Status: "SHUTOFF"})

	return New(gw), gw
}

func typeIDs[C occi.CategoryObject](list []C) []string {
	result := make([]string, len(list))
	for idx, c := range list {
		result[idx] = c.AsCategory().TypeID()
	}
	sort.Strings(result)
	return result
}

func terms(actions []*occi.Action) []string {
	result := make([]string, len(actions))
	for idx, a := range actions {
		result[idx] = a.Term()
	}
	return result
}

func TestQuery(t *testing.T) {
	p, gw := setup(t)
	ctx := context.Background()

	c := must.ReturnT(p.Query(ctx))(t)
	assert.DeepEqual(t, "kinds", len(c.Kinds), len(infrastructure.Registry.Kinds()))
	assert.DeepEqual(t, "actions", len(c.Actions), len(infrastructure.Registry.Actions()))
	staticMixins := len(infrastructure.Registry.Mixins())
	assert.DeepEqual(t, "dynamic mixins", typeIDs(c.Mixins[staticMixins:]), []string{
		infrastructure.FloatingIPPoolScheme + "public",
		infrastructure.OSTemplateScheme + "img1",
		infrastructure.ResourceTplScheme + "2",
	})

	//a missing extension is not an error
	gw.WithoutFloatingIPs = true
	c = must.ReturnT(p.Query(ctx))(t)
	assert.DeepEqual(t, "dynamic mixins without floating IPs", len(c.Mixins)-staticMixins, 2)
}

func TestShowCompute(t *testing.T) {
	p, _ := setup(t)

	c := must.ReturnT(p.ShowCompute(context.Background(), "srv1"))(t)
	assert.DeepEqual(t, "id", c.ID(), "srv1")
	assert.DeepEqual(t, "title", c.Title(), "web")
	assert.DeepEqual(t, "state", c.State(), ComputeStateActive)
	assert.DeepEqual(t, "state message", c.StateMessage(), "ACTIVE")
	assert.DeepEqual(t, "cores", c.Cores(), Some(2))
	assert.DeepEqual(t, "memory", c.Memory(), Some(2.0))
	assert.DeepEqual(t, "actions", terms(c.Actions()), []string{"stop", "suspend", "restart"})
	assert.DeepEqual(t, "mixins", typeIDs(c.Mixins()), []string{
		infrastructure.UserDataScheme + "user_data",
		infrastructure.PublicKeyScheme + "public_key",
		infrastructure.FloatingIPPoolScheme + "public",
		infrastructure.OSTemplateScheme + "img1",
		infrastructure.ResourceTplScheme + "2",
	})

	var linkIDs []string
	for _, l := range c.Links() {
		linkIDs = append(linkIDs, l.Kind().Term()+":"+l.ID()+"->"+l.Target().Location())
	}
	assert.DeepEqual(t, "links", linkIDs, []string{
		"storagelink:srv1_vol1->storage/vol1",
		"networkinterface:srv1_net1_10.0.0.5->network/net1",
		"networkinterface:srv1_fip1_172.24.4.10->ipreservation/fip1",
		"securitygrouplink:srv1_sg1->securitygroup/sg1",
	})
}

func TestComputeContextualization(t *testing.T) {
	p, _ := setup(t)
	ctx := context.Background()

	c := must.ReturnT(p.ShowCompute(ctx, "srv1"))(t)
	assert.DeepEqual(t, "key name", c.PublicKeyName(), "mykey")
	assert.DeepEqual(t, "has public_key mixin", c.HasMixin(infrastructure.PublicKeyMixin), true)
	assert.DeepEqual(t, "user data", c.UserData(), "IyEvYmluL3NoCg==")
	assert.DeepEqual(t, "has user_data mixin", c.HasMixin(infrastructure.UserDataMixin), true)

	lines := must.ReturnT(headers.GetRenderer(c))(t).Render(rendering.Environment{ApplicationURL: "https://occi.example.com"})
	assert.DeepEqual(t, "public_key category rendered", slices.Contains(lines, rendering.Header{
		Name:  headers.CategoryHeader,
		Value: `public_key; scheme="http://schemas.openstack.org/instance/credentials#"; class="mixin"; title="Contextualization extension - public_key"`,
	}), true)
	assert.DeepEqual(t, "key name rendered", slices.Contains(lines, rendering.Header{
		Name:  headers.AttributeHeader,
		Value: `org.openstack.credentials.publickey.name="mykey"`,
	}), true)
	assert.DeepEqual(t, "user data rendered", slices.Contains(lines, rendering.Header{
		Name:  headers.AttributeHeader,
		Value: `org.openstack.compute.user_data="IyEvYmluL3NoCg=="`,
	}), true)

	//servers booted without key pair and user data get neither mixin
	c = must.ReturnT(p.ShowCompute(ctx, "srv2"))(t)
	assert.DeepEqual(t, "key name of srv2", c.PublicKeyName(), "")
	assert.DeepEqual(t, "srv2 has public_key mixin", c.HasMixin(infrastructure.PublicKeyMixin), false)
	assert.DeepEqual(t, "srv2 has user_data mixin", c.HasMixin(infrastructure.UserDataMixin), false)
}

func TestListComputes(t *testing.T) {
	p, _ := setup(t)

	c := must.ReturnT(p.ListComputes(context.Background()))(t)
	assert.DeepEqual(t, "count", len(c.Resources), 2)
	srv2 := c.Resources[1].(*infrastructure.ComputeResource)
	assert.DeepEqual(t, "state", srv2.State(), ComputeStateInactive)
	assert.DeepEqual(t, "actions", terms(srv2.Actions()), []string{"start"})
	assert.DeepEqual(t, "cores", srv2.Cores(), None[int]())
}

func TestComputeState(t *testing.T) {
	for status, expected := range map[string]string{
		"ACTIVE":            ComputeStateActive,
		"MIGRATING":         ComputeStateActive,
		"PAUSED":            ComputeStateSuspended,
		"SHELVED_OFFLOADED": ComputeStateSuspended,
		"ERROR":             ComputeStateError,
		"UNKNOWN":           ComputeStateError,
		"BUILD":             ComputeStateInactive,
		"SHUTOFF":           ComputeStateInactive,
	} {
		assert.DeepEqual(t, "state for "+status, computeState(status), expected)
	}
	assert.DeepEqual(t, "actions in error state", len(computeActions(ComputeStateError)), 0)
}

func TestComputeActions(t *testing.T) {
	p, gw := setup(t)
	ctx := context.Background()

	must.SucceedT(t, p.RunComputeAction(ctx, "srv1", "stop"))
	s, _ := gw.Server("srv1")
	assert.DeepEqual(t, "status", s.Status, "SHUTOFF")

	err := p.RunComputeAction(ctx, "srv1", "hibernate")
	assert.DeepEqual(t, "unknown action", rendering.StatusCodeOf(err), http.StatusNotImplemented)
	err = p.RunComputeAction(ctx, "srv3", "start")
	assert.DeepEqual(t, "unknown server", rendering.StatusCodeOf(err), http.StatusNotFound)

	must.SucceedT(t, p.DeleteCompute(ctx, "srv2"))
	_, exists := gw.Server("srv2")
	assert.DeepEqual(t, "srv2 exists", exists, false)
}

func TestStorage(t *testing.T) {
	p, gw := setup(t)
	ctx := context.Background()

	s := must.ReturnT(p.ShowStorage(ctx, "vol1"))(t)
	assert.DeepEqual(t, "title", s.Title(), "data")
	assert.DeepEqual(t, "size", s.Size(), Some(10.0))
	assert.DeepEqual(t, "state", s.State(), StorageStateOnline)
	assert.DeepEqual(t, "actions", terms(s.Actions()), []string{"backup", "snapshot"})

	s = must.ReturnT(p.ShowStorage(ctx, "vol2"))(t)
	assert.DeepEqual(t, "state while creating", s.State(), StorageStateOffline)
	assert.DeepEqual(t, "actions while creating", len(s.Actions()), 0)

	must.SucceedT(t, p.RunStorageAction(ctx, "vol1", "snapshot"))
	assert.DeepEqual(t, "snapshots", gw.Snapshots, []string{"vol1"})
	for _, term := range []string{"online", "offline", "resize", "explode"} {
		err := p.RunStorageAction(ctx, "vol1", term)
		assert.DeepEqual(t, "status of "+term, rendering.StatusCodeOf(err), http.StatusNotImplemented)
	}

	err := p.DeleteStorage(ctx, "vol1")
	assert.DeepEqual(t, "delete attached", rendering.StatusCodeOf(err), http.StatusConflict)
	must.SucceedT(t, p.DeleteStorage(ctx, "vol2"))
	assert.DeepEqual(t, "vol2 exists", gw.HasVolume("vol2"), false)
}

func TestStorageLinks(t *testing.T) {
	p, _ := setup(t)
	ctx := context.Background()

	c := must.ReturnT(p.ListStorageLinks(ctx))(t)
	assert.DeepEqual(t, "count", len(c.Links), 1)

	l := must.ReturnT(p.ShowStorageLink(ctx, "srv1_vol1"))(t)
	sl := l.(*infrastructure.StorageLink)
	assert.DeepEqual(t, "device", sl.DeviceID(), "/dev/vdb")
	assert.DeepEqual(t, "source", sl.Source().Location(), "compute/srv1")
	assert.DeepEqual(t, "target", sl.Target().Location(), "storage/vol1")

	_, err := p.ShowStorageLink(ctx, "srv1_vol2")
	assert.DeepEqual(t, "missing link", backend.IsNotFound(err), true)
}

func TestNetworks(t *testing.T) {
	p, gw := setup(t)
	ctx := context.Background()

	n := must.ReturnT(p.ShowNetwork(ctx, "net1"))(t)
	assert.DeepEqual(t, "address", n.Address(), "10.0.0.0/24")
	assert.DeepEqual(t, "gateway", n.Gateway(), "10.0.0.1")
	assert.DeepEqual(t, "allocation", n.Allocation(), "dynamic")
	assert.DeepEqual(t, "ip version", n.IPVersion(), Some(4))
	assert.DeepEqual(t, "actions", terms(n.Actions()), []string{"down"})

	must.SucceedT(t, p.RunNetworkAction(ctx, "net1", "down"))
	n = must.ReturnT(p.ShowNetwork(ctx, "net1"))(t)
	assert.DeepEqual(t, "state after down", n.State(), NetworkStateInactive)
	assert.DeepEqual(t, "actions after down", terms(n.Actions()), []string{"up"})

	r := must.ReturnT(p.ShowIPReservation(ctx, "fip1"))(t)
	assert.DeepEqual(t, "reserved address", r.Address(), "172.24.4.10")
	assert.DeepEqual(t, "used", r.Used(), Some(true))

	gw.WithoutFloatingIPs = true
	c := must.ReturnT(p.ListIPReservations(ctx))(t)
	assert.DeepEqual(t, "reservations without extension", c.IsEmpty(), true)
}

func TestNetworkInterfaces(t *testing.T) {
	p, _ := setup(t)
	ctx := context.Background()

	c := must.ReturnT(p.ListNetworkInterfaces(ctx))(t)
	assert.DeepEqual(t, "count", len(c.Links), 2)

	l := must.ReturnT(p.ShowNetworkInterface(ctx, "srv1_net1_10.0.0.5"))(t)
	ni := l.(*infrastructure.NetworkInterface)
	assert.DeepEqual(t, "mac", ni.MAC(), "fa:16:3e:00:00:01")
	assert.DeepEqual(t, "state", ni.State(), "active")
}

func TestSecurityGroups(t *testing.T) {
	p, gw := setup(t)
	ctx := context.Background()

	sg := must.ReturnT(p.ShowSecurityGroup(ctx, "sg1"))(t)
	assert.DeepEqual(t, "rules", sg.Rules(), []infrastructure.SecurityGroupRule{
		{Type: "inbound", Protocol: "tcp", Port: "22-22", Range: "0.0.0.0/0"},
		{Type: "outbound"},
	})

	l := must.ReturnT(p.ShowSecurityGroupLink(ctx, "srv1_sg1"))(t)
	assert.DeepEqual(t, "link state", l.(*infrastructure.SecurityGroupLink).State(), "active")

	gw.WithoutSecurityGroups = true
	c := must.ReturnT(p.ListSecurityGroups(ctx))(t)
	assert.DeepEqual(t, "groups without extension", c.IsEmpty(), true)
	c = must.ReturnT(p.ListSecurityGroupLinks(ctx))(t)
	assert.DeepEqual(t, "links without extension", c.IsEmpty(), true)
}
