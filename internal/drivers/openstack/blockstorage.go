// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package openstack

import (
	"context"

	"github.com/gophercloud/gophercloud/v2/openstack/blockstorage/v3/backups"
	"github.com/gophercloud/gophercloud/v2/openstack/blockstorage/v3/snapshots"
	"github.com/gophercloud/gophercloud/v2/openstack/blockstorage/v3/volumes"
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/occi-adapter/internal/backend"
)

// ListVolumes implements the backend.Gateway interface.
func (g *Gateway) ListVolumes(ctx context.Context) ([]backend.Volume, error) {
	page, err := volumes.List(g.BlockStorageV3, volumes.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, translateError(err, "list volumes")
	}
	list, err := volumes.ExtractVolumes(page)
	if err != nil {
		return nil, translateError(err, "list volumes")
	}

	result := make([]backend.Volume, len(list))
	for idx, v := range list {
		result[idx] = convertVolume(v)
	}
	return result, nil
}

// GetVolume implements the backend.Gateway interface.
func (g *Gateway) GetVolume(ctx context.Context, volumeID string) (backend.Volume, error) {
	v, err := volumes.Get(ctx, g.BlockStorageV3, volumeID).Extract()
	if err != nil {
		return backend.Volume{}, translateError(err, "get volume %s", volumeID)
	}
	return convertVolume(*v), nil
}

func convertVolume(v volumes.Volume) backend.Volume {
	result := backend.Volume{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Status:      v.Status,
		SizeGiB:     v.Size,
	}
	for _, a := range v.Attachments {
		result.Attachments = append(result.Attachments, backend.VolumeAttachment{
			ServerID: a.ServerID,
			VolumeID: v.ID,
			Device:   a.Device,
		})
	}
	return result
}

// RunVolumeAction implements the backend.Gateway interface.
func (g *Gateway) RunVolumeAction(ctx context.Context, volumeID string, action backend.VolumeAction) error {
	logg.Debug("running action %q on volume %s", action, volumeID)
	var err error
	switch action {
	case backend.VolumeActionBackup:
		_, err = backups.Create(ctx, g.BlockStorageV3, backups.CreateOpts{
			VolumeID: volumeID,
			Name:     "occi-backup-" + volumeID,
			Force:    true,
		}).Extract()
	case backend.VolumeActionSnapshot:
		_, err = snapshots.Create(ctx, g.BlockStorageV3, snapshots.CreateOpts{
			VolumeID: volumeID,
			Name:     "occi-snapshot-" + volumeID,
			Force:    true,
		}).Extract()
	default:
		return backend.NotImplemented("volume action %q is not supported", action)
	}
	return translateError(err, "%s volume %s", action, volumeID)
}

// DeleteVolume implements the backend.Gateway interface.
func (g *Gateway) DeleteVolume(ctx context.Context, volumeID string) error {
	err := volumes.Delete(ctx, g.BlockStorageV3, volumeID, volumes.DeleteOpts{}).ExtractErr()
	return translateError(err, "delete volume %s", volumeID)
}
