// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package openstack

import (
	"context"
	"sort"

	"github.com/gophercloud/gophercloud/v2/openstack/compute/v2/flavors"
	"github.com/gophercloud/gophercloud/v2/openstack/compute/v2/servers"
	"github.com/gophercloud/gophercloud/v2/openstack/compute/v2/volumeattach"
	"github.com/gophercloud/gophercloud/v2/openstack/image/v2/images"
	"github.com/mitchellh/mapstructure"
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/occi-adapter/internal/backend"
)

// ListFlavors implements the backend.Gateway interface.
func (g *Gateway) ListFlavors(ctx context.Context) ([]backend.Flavor, error) {
	page, err := flavors.ListDetail(g.ComputeV2, flavors.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, translateError(err, "list flavors")
	}
	list, err := flavors.ExtractFlavors(page)
	if err != nil {
		return nil, translateError(err, "list flavors")
	}

	result := make([]backend.Flavor, len(list))
	for idx, f := range list {
		result[idx] = convertFlavor(f)
	}
	return result, nil
}

// GetFlavor implements the backend.Gateway interface.
func (g *Gateway) GetFlavor(ctx context.Context, flavorID string) (backend.Flavor, error) {
	f, err := flavors.Get(ctx, g.ComputeV2, flavorID).Extract()
	if err != nil {
		return backend.Flavor{}, translateError(err, "get flavor %s", flavorID)
	}
	return convertFlavor(*f), nil
}

func convertFlavor(f flavors.Flavor) backend.Flavor {
	return backend.Flavor{
		ID:           f.ID,
		Name:         f.Name,
		VCPUs:        f.VCPUs,
		RAMMiB:       f.RAM,
		DiskGiB:      f.Disk,
		SwapMiB:      f.Swap,
		EphemeralGiB: f.Ephemeral,
	}
}

// ListImages implements the backend.Gateway interface.
func (g *Gateway) ListImages(ctx context.Context) ([]backend.Image, error) {
	page, err := images.List(g.ImageV2, images.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, translateError(err, "list images")
	}
	list, err := images.ExtractImages(page)
	if err != nil {
		return nil, translateError(err, "list images")
	}

	result := make([]backend.Image, len(list))
	for idx, img := range list {
		result[idx] = backend.Image{ID: img.ID, Name: img.Name}
	}
	return result, nil
}

// ListServers implements the backend.Gateway interface.
func (g *Gateway) ListServers(ctx context.Context) ([]backend.Server, error) {
	page, err := servers.List(g.ComputeV2, servers.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, translateError(err, "list servers")
	}
	list, err := servers.ExtractServers(page)
	if err != nil {
		return nil, translateError(err, "list servers")
	}

	result := make([]backend.Server, len(list))
	for idx, s := range list {
		result[idx], err = convertServer(s)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// GetServer implements the backend.Gateway interface.
//
// In contrast to ListServers, the volume attachments include device names.
func (g *Gateway) GetServer(ctx context.Context, serverID string) (backend.Server, error) {
	r := servers.Get(ctx, g.ComputeV2, serverID)
	s, err := r.Extract()
	if err != nil {
		return backend.Server{}, translateError(err, "get server %s", serverID)
	}
	result, err := convertServer(*s)
	if err != nil {
		return backend.Server{}, err
	}
	var extended struct {
		Server struct {
			UserData string `json:"OS-EXT-SRV-ATTR:user_data"`
		} `json:"server"`
	}
	err = r.ExtractInto(&extended)
	if err != nil {
		return backend.Server{}, translateError(err, "decode extended attributes of server %s", serverID)
	}
	result.UserData = extended.Server.UserData

	page, err := volumeattach.List(g.ComputeV2, serverID).AllPages(ctx)
	if err != nil {
		return backend.Server{}, translateError(err, "list volume attachments of server %s", serverID)
	}
	attachments, err := volumeattach.ExtractVolumeAttachments(page)
	if err != nil {
		return backend.Server{}, translateError(err, "list volume attachments of server %s", serverID)
	}
	result.Volumes = make([]backend.VolumeAttachment, len(attachments))
	for idx, a := range attachments {
		result.Volumes[idx] = backend.VolumeAttachment{
			ServerID: serverID,
			VolumeID: a.VolumeID,
			Device:   a.Device,
		}
	}
	return result, nil
}

// novaAddress is the format of the entries in the "addresses" field of a
// Nova server.
type novaAddress struct {
	Address string `mapstructure:"addr"`
	Version int    `mapstructure:"version"`
	Type    string `mapstructure:"OS-EXT-IPS:type"`
	MAC     string `mapstructure:"OS-EXT-IPS-MAC:mac_addr"`
}

// novaReference is the format of the "flavor" and "image" fields of a Nova
// server, as well as the entries in its "security_groups" field.
type novaReference struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

func convertServer(s servers.Server) (backend.Server, error) {
	result := backend.Server{
		ID:      s.ID,
		Name:    s.Name,
		Status:  s.Status,
		KeyName: s.KeyName,
	}

	var flavor, image novaReference
	err := mapstructure.Decode(s.Flavor, &flavor)
	if err != nil {
		return backend.Server{}, translateError(err, "decode flavor of server %s", s.ID)
	}
	result.FlavorID = flavor.ID
	//servers booted from volume report image = "", which decodes into a nil map
	err = mapstructure.Decode(s.Image, &image)
	if err != nil {
		return backend.Server{}, translateError(err, "decode image of server %s", s.ID)
	}
	result.ImageID = image.ID

	var addresses map[string][]novaAddress
	err = mapstructure.Decode(s.Addresses, &addresses)
	if err != nil {
		return backend.Server{}, translateError(err, "decode addresses of server %s", s.ID)
	}
	networkNames := make([]string, 0, len(addresses))
	for name := range addresses {
		networkNames = append(networkNames, name)
	}
	sort.Strings(networkNames)
	for _, name := range networkNames {
		for _, addr := range addresses[name] {
			result.Addresses = append(result.Addresses, backend.ServerAddress{
				NetworkName: name,
				Address:     addr.Address,
				Version:     addr.Version,
				MAC:         addr.MAC,
				Type:        addr.Type,
			})
		}
	}

	var secgroups []novaReference
	err = mapstructure.Decode(s.SecurityGroups, &secgroups)
	if err != nil {
		return backend.Server{}, translateError(err, "decode security groups of server %s", s.ID)
	}
	for _, sg := range secgroups {
		result.SecurityGroups = append(result.SecurityGroups, sg.Name)
	}

	for _, v := range s.AttachedVolumes {
		result.Volumes = append(result.Volumes, backend.VolumeAttachment{ServerID: s.ID, VolumeID: v.ID})
	}
	return result, nil
}

// RunServerAction implements the backend.Gateway interface.
func (g *Gateway) RunServerAction(ctx context.Context, serverID string, action backend.ServerAction) error {
	logg.Debug("running action %q on server %s", action, serverID)
	var err error
	switch action {
	case backend.ServerActionStart:
		err = servers.Start(ctx, g.ComputeV2, serverID).ExtractErr()
	case backend.ServerActionStop:
		err = servers.Stop(ctx, g.ComputeV2, serverID).ExtractErr()
	case backend.ServerActionRestart:
		err = servers.Reboot(ctx, g.ComputeV2, serverID, servers.RebootOpts{Type: servers.SoftReboot}).ExtractErr()
	case backend.ServerActionSuspend:
		err = servers.Suspend(ctx, g.ComputeV2, serverID).ExtractErr()
	default:
		return backend.NotImplemented("server action %q is not supported", action)
	}
	return translateError(err, "%s server %s", action, serverID)
}

// DeleteServer implements the backend.Gateway interface.
func (g *Gateway) DeleteServer(ctx context.Context, serverID string) error {
	err := servers.Delete(ctx, g.ComputeV2, serverID).ExtractErr()
	return translateError(err, "delete server %s", serverID)
}
