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

// Values for the occi.storage.state attribute.
const (
	StorageStateOnline  = "online"
	StorageStateOffline = "offline"
	StorageStateError   = "error"
)

// storageState maps a Cinder volume status to an OCCI storage state.
func storageState(status string) string {
	switch status {
	case "available", "in-use":
		return StorageStateOnline
	case "error":
		return StorageStateError
	default:
		return StorageStateOffline
	}
}

func storageActions(state string) []*occi.Action {
	if state == StorageStateOnline {
		return []*occi.Action{infrastructure.BackupAction, infrastructure.SnapshotAction}
	}
	return nil
}

var volumeActions = map[string]backend.VolumeAction{
	infrastructure.BackupAction.Term():   backend.VolumeActionBackup,
	infrastructure.SnapshotAction.Term(): backend.VolumeActionSnapshot,
}

func newStorage(v backend.Volume) (*infrastructure.StorageResource, error) {
	state := storageState(v.Status)
	return infrastructure.NewStorageResource(infrastructure.StorageOptions{
		ID:           v.ID,
		Title:        v.Name,
		Summary:      v.Description,
		Size:         Some(float64(v.SizeGiB)),
		State:        state,
		StateMessage: v.Status,
		Actions:      storageActions(state),
	})
}

// ListStorages returns all volumes as storage resources.
func (p *Processor) ListStorages(ctx context.Context) (*occi.Collection, error) {
	volumes, err := p.gateway.ListVolumes(ctx)
	err = p.track("list_volumes", err)
	if err != nil {
		return nil, err
	}
	result := &occi.Collection{}
	for _, v := range volumes {
		s, err := newStorage(v)
		if err != nil {
			return nil, err
		}
		result.Resources = append(result.Resources, s)
	}
	return result, nil
}

// ShowStorage returns a single volume as a storage resource.
func (p *Processor) ShowStorage(ctx context.Context, volumeID string) (*infrastructure.StorageResource, error) {
	v, err := p.gateway.GetVolume(ctx, volumeID)
	err = p.track("get_volume", err)
	if err != nil {
		return nil, err
	}
	return newStorage(v)
}

// RunStorageAction runs the action with the given term on a volume. Only
// backup and snapshot are supported by the backend.
func (p *Processor) RunStorageAction(ctx context.Context, volumeID, term string) error {
	action, err := findAction(infrastructure.StorageKind, term)
	if err != nil {
		return err
	}
	volumeAction, exists := volumeActions[action.Term()]
	if !exists {
		return backend.NotImplemented("storage action %q is not supported", term)
	}
	err = p.gateway.RunVolumeAction(ctx, volumeID, volumeAction)
	return p.track("run_volume_action", err)
}

// DeleteStorage deletes a volume.
func (p *Processor) DeleteStorage(ctx context.Context, volumeID string) error {
	err := p.gateway.DeleteVolume(ctx, volumeID)
	return p.track("delete_volume", err)
}
