// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package openstack

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/jarcoal/httpmock"
	"github.com/sapcc/go-bits/assert"
	"github.com/sapcc/go-bits/errext"
	"github.com/sapcc/go-bits/must"

	"github.com/sapcc/occi-adapter/internal/backend"
)

const (
	computeURL = "https://nova.example.com/v2.1/"
	cinderURL  = "https://cinder.example.com/v3/"
	neutronURL = "https://neutron.example.com/v2.0/"
	glanceURL  = "https://glance.example.com/v2/"
)

func setupGateway(t *testing.T) *Gateway {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	provider := &gophercloud.ProviderClient{}
	g := &Gateway{
		ComputeV2:      &gophercloud.ServiceClient{ProviderClient: provider, Endpoint: computeURL},
		BlockStorageV3: &gophercloud.ServiceClient{ProviderClient: provider, Endpoint: cinderURL},
		NetworkV2:      &gophercloud.ServiceClient{ProviderClient: provider, Endpoint: neutronURL, ResourceBase: neutronURL},
		ImageV2:        &gophercloud.ServiceClient{ProviderClient: provider, Endpoint: glanceURL},
	}
	must.SucceedT(t, g.Init(context.Background()))
	return g
}

func jsonResponder(status int, body string) httpmock.Responder {
	return func(r *http.Request) (*http.Response, error) {
		resp := httpmock.NewStringResponse(status, body)
		resp.Header.Set("Content-Type", "application/json")
		return resp, nil
	}
}

func TestListFlavors(t *testing.T) {
	g := setupGateway(t)
	httpmock.RegisterResponder("GET", computeURL+"flavors/detail", jsonResponder(http.StatusOK, `{"flavors":[
		{"id":"1","name":"m1.tiny","vcpus":1,"ram":512,"disk":1,"swap":"","OS-FLV-EXT-DATA:ephemeral":0},
		{"id":"2","name":"m1.small","vcpus":2,"ram":2048,"disk":20,"swap":1024,"OS-FLV-EXT-DATA:ephemeral":10}
	]}`))

	flavors := must.ReturnT(g.ListFlavors(context.Background()))(t)
	assert.DeepEqual(t, "flavors", flavors, []backend.Flavor{
		{ID: "1", Name: "m1.tiny", VCPUs: 1, RAMMiB: 512, DiskGiB: 1},
		{ID: "2", Name: "m1.small", VCPUs: 2, RAMMiB: 2048, DiskGiB: 20, SwapMiB: 1024, EphemeralGiB: 10},
	})
}

const serverJSON = `{"server":{
	"id":"srv1","name":"web","status":"ACTIVE","key_name":"mykey",
	"OS-EXT-SRV-ATTR:user_data":"IyEvYmluL3NoCg==",
	"flavor":{"id":"2","links":[]},
	"image":{"id":"img1","links":[]},
	"addresses":{
		"private":[
			{"addr":"10.0.0.5","version":4,"OS-EXT-IPS:type":"fixed","OS-EXT-IPS-MAC:mac_addr":"fa:16:3e:00:00:01"},
			{"addr":"172.24.4.10","version":4,"OS-EXT-IPS:type":"floating","OS-EXT-IPS-MAC:mac_addr":"fa:16:3e:00:00:01"}
		]
	},
	"security_groups":[{"name":"default"}],
	"os-extended-volumes:volumes_attached":[{"id":"vol1"}]
}}`

func TestGetServer(t *testing.T) {
	g := setupGateway(t)
	httpmock.RegisterResponder("GET", computeURL+"servers/srv1", jsonResponder(http.StatusOK, serverJSON))
	httpmock.RegisterResponder("GET", computeURL+"servers/srv1/os-volume_attachments", jsonResponder(http.StatusOK,
		`{"volumeAttachments":[{"id":"vol1","volumeId":"vol1","serverId":"srv1","device":"/dev/vdb"}]}`))

	server := must.ReturnT(g.GetServer(context.Background(), "srv1"))(t)
	assert.DeepEqual(t, "server", server, backend.Server{
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
}

func TestServerNotFound(t *testing.T) {
	g := setupGateway(t)
	httpmock.RegisterResponder("GET", computeURL+"servers/missing",
		jsonResponder(http.StatusNotFound, `{"itemNotFound":{"code":404,"message":"Instance missing could not be found."}}`))

	_, err := g.GetServer(context.Background(), "missing")
	berr, ok := errext.As[*backend.Error](err)
	assert.DeepEqual(t, "is backend.Error", ok, true)
	assert.DeepEqual(t, "status", berr.StatusCode, http.StatusNotFound)
}

func TestServerActions(t *testing.T) {
	g := setupGateway(t)
	var bodies []string
	httpmock.RegisterResponder("POST", computeURL+"servers/srv1/action", func(r *http.Request) (*http.Response, error) {
		buf, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, string(buf))
		return httpmock.NewStringResponse(http.StatusAccepted, ""), nil
	})

	ctx := context.Background()
	must.SucceedT(t, g.RunServerAction(ctx, "srv1", backend.ServerActionStop))
	must.SucceedT(t, g.RunServerAction(ctx, "srv1", backend.ServerActionRestart))
	assert.DeepEqual(t, "request bodies", bodies, []string{
		`{"os-stop":null}`,
		`{"reboot":{"type":"SOFT"}}`,
	})

	err := g.RunServerAction(ctx, "srv1", backend.ServerAction("explode"))
	assert.DeepEqual(t, "status", errext.IsOfType[*backend.Error](err), true)
}

func TestServerErrorIsBadGateway(t *testing.T) {
	g := setupGateway(t)
	httpmock.RegisterResponder("DELETE", computeURL+"servers/srv1",
		jsonResponder(http.StatusInternalServerError, `{"computeFault":{"code":500,"message":"oops"}}`))

	err := g.DeleteServer(context.Background(), "srv1")
	berr, ok := errext.As[*backend.Error](err)
	assert.DeepEqual(t, "is backend.Error", ok, true)
	assert.DeepEqual(t, "status", berr.StatusCode, http.StatusBadGateway)
}

func TestGetVolume(t *testing.T) {
	g := setupGateway(t)
	httpmock.RegisterResponder("GET", cinderURL+"volumes/vol1", jsonResponder(http.StatusOK, `{"volume":{
		"id":"vol1","name":"data","description":"","status":"in-use","size":10,
		"attachments":[{"server_id":"srv1","attachment_id":"a1","volume_id":"vol1","device":"/dev/vdb","id":"vol1"}]
	}}`))

	volume := must.ReturnT(g.GetVolume(context.Background(), "vol1"))(t)
	assert.DeepEqual(t, "volume", volume, backend.Volume{
		ID:          "vol1",
		Name:        "data",
		Status:      "in-use",
		SizeGiB:     10,
		Attachments: []backend.VolumeAttachment{{ServerID: "srv1", VolumeID: "vol1", Device: "/dev/vdb"}},
	})
}

func TestListNetworksAndPools(t *testing.T) {
	g := setupGateway(t)
	httpmock.RegisterResponder("GET", neutronURL+"networks", func(r *http.Request) (*http.Response, error) {
		if r.URL.Query().Get("router:external") == "true" {
			return jsonResponder(http.StatusOK, `{"networks":[
				{"id":"ext","name":"public","status":"ACTIVE","admin_state_up":true,"router:external":true}
			]}`)(r)
		}
		return jsonResponder(http.StatusOK, `{"networks":[
			{"id":"ext","name":"public","status":"ACTIVE","admin_state_up":true,"router:external":true},
			{"id":"net1","name":"private","status":"ACTIVE","admin_state_up":false,"router:external":false}
		]}`)(r)
	})
	httpmock.RegisterResponder("GET", neutronURL+"subnets", jsonResponder(http.StatusOK, `{"subnets":[
		{"id":"sub1","network_id":"net1","cidr":"10.0.0.0/24","gateway_ip":"10.0.0.1","ip_version":4,"enable_dhcp":true}
	]}`))

	ctx := context.Background()
	pools := must.ReturnT(g.ListFloatingIPPools(ctx))(t)
	assert.DeepEqual(t, "pools", pools, []backend.FloatingIPPool{{ID: "ext", Name: "public"}})

	networks := must.ReturnT(g.ListNetworks(ctx))(t)
	assert.DeepEqual(t, "networks", networks, []backend.Network{
		{ID: "ext", Name: "public", Status: "ACTIVE", External: true},
		{ID: "net1", Name: "private", Status: "DOWN", CIDR: "10.0.0.0/24", GatewayIP: "10.0.0.1", IPVersion: 4, DHCPEnabled: true},
	})
}

func TestListFloatingIPs(t *testing.T) {
	g := setupGateway(t)
	httpmock.RegisterResponder("GET", neutronURL+"networks", jsonResponder(http.StatusOK, `{"networks":[
		{"id":"ext","name":"public","status":"ACTIVE","admin_state_up":true,"router:external":true}
	]}`))
	httpmock.RegisterResponder("GET", neutronURL+"floatingips", jsonResponder(http.StatusOK, `{"floatingips":[
		{"id":"fip1","floating_network_id":"ext","floating_ip_address":"172.24.4.10","fixed_ip_address":"10.0.0.5","port_id":"port1","status":"ACTIVE"},
		{"id":"fip2","floating_network_id":"gone","floating_ip_address":"172.24.4.11","fixed_ip_address":null,"port_id":null,"status":"DOWN"}
	]}`))

	fips := must.ReturnT(g.ListFloatingIPs(context.Background()))(t)
	assert.DeepEqual(t, "fips", fips, []backend.FloatingIP{
		{ID: "fip1", Address: "172.24.4.10", Pool: "public", PortID: "port1", Status: "ACTIVE"},
		//unknown pools are reported by network ID
		{ID: "fip2", Address: "172.24.4.11", Pool: "gone", Status: "DOWN"},
	})
	assert.DeepEqual(t, "fips[0].IsUsed", fips[0].IsUsed(), true)
	assert.DeepEqual(t, "fips[1].IsUsed", fips[1].IsUsed(), false)
}

func TestListSecurityGroups(t *testing.T) {
	g := setupGateway(t)
	httpmock.RegisterResponder("GET", neutronURL+"security-groups", jsonResponder(http.StatusOK, `{"security_groups":[
		{"id":"sg1","name":"default","description":"default group","security_group_rules":[
			{"id":"r1","direction":"ingress","protocol":"tcp","port_range_min":22,"port_range_max":22,"remote_ip_prefix":"0.0.0.0/0","ethertype":"IPv4"},
			{"id":"r2","direction":"egress","protocol":"","port_range_min":0,"port_range_max":0,"remote_ip_prefix":"","ethertype":"IPv4"}
		]}
	]}`))

	groups := must.ReturnT(g.ListSecurityGroups(context.Background()))(t)
	assert.DeepEqual(t, "security groups", groups, []backend.SecurityGroup{{
		ID:          "sg1",
		Name:        "default",
		Description: "default group",
		Rules: []backend.SecurityGroupRule{
			{Direction: "ingress", Protocol: "tcp", PortRangeMin: 22, PortRangeMax: 22, RemoteIPPrefix: "0.0.0.0/0"},
			{Direction: "egress"},
		},
	}})
}
