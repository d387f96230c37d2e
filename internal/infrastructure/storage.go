// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package infrastructure

import (
	. "github.com/majewsky/gg/option"

	"github.com/sapcc/occi-adapter/internal/occi"
)

// Attribute names for storage resources.
const (
	StorageSizeAttribute         = "occi.storage.size"
	StorageStateAttribute        = "occi.storage.state"
	StorageStateMessageAttribute = "occi.storage.state.message"
	StorageResizeSizeAttribute   = "size"
)

var (
	// OnlineAction brings a storage online.
	OnlineAction = occi.MustNewAction(occi.ActionSpec{
		Scheme: StorageActionScheme,
		Term:   "online",
		Title:  "Bring storage online",
	})
	// OfflineAction takes a storage offline.
	OfflineAction = occi.MustNewAction(occi.ActionSpec{
		Scheme: StorageActionScheme,
		Term:   "offline",
		Title:  "Bring storage offline",
	})
	// BackupAction creates a backup of a storage.
	BackupAction = occi.MustNewAction(occi.ActionSpec{
		Scheme: StorageActionScheme,
		Term:   "backup",
		Title:  "Backup storage",
	})
	// SnapshotAction creates a snapshot of a storage.
	SnapshotAction = occi.MustNewAction(occi.ActionSpec{
		Scheme: StorageActionScheme,
		Term:   "snapshot",
		Title:  "Snapshot storage",
	})
	// ResizeAction changes the size of a storage.
	ResizeAction = occi.MustNewAction(occi.ActionSpec{
		Scheme: StorageActionScheme,
		Term:   "resize",
		Title:  "Resize storage",
		Attributes: []occi.AttributeSpec{
			occi.MutableAttribute(StorageResizeSizeAttribute, occi.NumberType).AsRequired(),
		},
	})

	// StorageKind is the kind of all block storage volumes.
	StorageKind = occi.MustNewKind(occi.KindSpec{
		Scheme:   InfrastructureScheme,
		Term:     "storage",
		Title:    "storage resource",
		Location: "storage/",
		Parent:   occi.ResourceKind,
		Attributes: []occi.AttributeSpec{
			occi.MutableAttribute(StorageSizeAttribute, occi.NumberType).AsRequired(),
			occi.ImmutableAttribute(StorageStateAttribute, occi.StringType),
			occi.ImmutableAttribute(StorageStateMessageAttribute, occi.StringType),
		},
		Actions: []*occi.Action{OnlineAction, OfflineAction, BackupAction, SnapshotAction, ResizeAction},
	})
)

// StorageOptions contains the values for NewStorageResource.
type StorageOptions struct {
	ID           string
	Title        string
	Summary      string
	Size         Option[float64] //in GiB
	State        string
	StateMessage string
	Mixins       []*occi.Mixin
	Actions      []*occi.Action
}

// StorageResource is a resource of kind StorageKind.
type StorageResource struct {
	occi.Resource
}

// NewStorageResource builds a new storage resource.
func NewStorageResource(opts StorageOptions) (*StorageResource, error) {
	values := attributeValues{}
	putOption(values, StorageSizeAttribute, opts.Size)
	values.putString(StorageStateAttribute, opts.State)
	values.putString(StorageStateMessageAttribute, opts.StateMessage)

	r, err := occi.NewResource(StorageKind, occi.ResourceOptions{
		ID:         opts.ID,
		Title:      opts.Title,
		Summary:    opts.Summary,
		Mixins:     opts.Mixins,
		Actions:    opts.Actions,
		Attributes: values,
	})
	if err != nil {
		return nil, err
	}
	return &StorageResource{*r}, nil
}

// Size returns the size in GiB.
func (s *StorageResource) Size() Option[float64] {
	return numberAttribute(&s.Entity, StorageSizeAttribute)
}

// State returns the value of occi.storage.state.
func (s *StorageResource) State() string {
	return stringAttribute(&s.Entity, StorageStateAttribute)
}

// StateMessage returns the backend status that State was derived from.
func (s *StorageResource) StateMessage() string {
	return stringAttribute(&s.Entity, StorageStateMessageAttribute)
}

////////////////////////////////////////////////////////////////////////////////
// StorageLink

// Attribute names for storage links.
const (
	StorageLinkDeviceIDAttribute     = "occi.storagelink.deviceid"
	StorageLinkMountpointAttribute   = "occi.storagelink.mountpoint"
	StorageLinkStateAttribute        = "occi.storagelink.state"
	StorageLinkStateMessageAttribute = "occi.storagelink.state.message"
)

// StorageLinkKind is the kind of volume attachments.
var StorageLinkKind = occi.MustNewKind(occi.KindSpec{
	Scheme:   InfrastructureScheme,
	Term:     "storagelink",
	Title:    "storage link resource",
	Location: "link/storage/",
	Parent:   occi.LinkKind,
	Attributes: []occi.AttributeSpec{
		occi.MutableAttribute(StorageLinkDeviceIDAttribute, occi.StringType),
		occi.MutableAttribute(StorageLinkMountpointAttribute, occi.StringType),
		occi.ImmutableAttribute(StorageLinkStateAttribute, occi.StringType),
		occi.ImmutableAttribute(StorageLinkStateMessageAttribute, occi.StringType),
	},
})

// StorageLinkOptions contains the values for NewStorageLink. There is no ID
// field since the ID is derived from the link's endpoints.
type StorageLinkOptions struct {
	DeviceID     string
	Mountpoint   string
	State        string
	StateMessage string
	Mixins       []*occi.Mixin
}

// StorageLink is a link of kind StorageLinkKind.
type StorageLink struct {
	occi.Link
}

// NewStorageLink attaches the target storage to the source resource.
func NewStorageLink(source, target occi.ResourceObject, opts StorageLinkOptions) (*StorageLink, error) {
	err := checkKind("storage link target", target, StorageKind)
	if err != nil {
		return nil, err
	}

	values := attributeValues{}
	values.putString(StorageLinkDeviceIDAttribute, opts.DeviceID)
	values.putString(StorageLinkMountpointAttribute, opts.Mountpoint)
	values.putString(StorageLinkStateAttribute, opts.State)
	values.putString(StorageLinkStateMessageAttribute, opts.StateMessage)

	l, err := occi.NewLink(StorageLinkKind, source, target, occi.LinkOptions{
		ID:         LinkID(source, target),
		Mixins:     opts.Mixins,
		Attributes: values,
	})
	if err != nil {
		return nil, err
	}
	return &StorageLink{*l}, nil
}

// DeviceID returns the device name inside the instance, e.g. "/dev/vdb".
func (l *StorageLink) DeviceID() string {
	return stringAttribute(&l.Entity, StorageLinkDeviceIDAttribute)
}

// Mountpoint returns the mount point inside the instance, if known.
func (l *StorageLink) Mountpoint() string {
	return stringAttribute(&l.Entity, StorageLinkMountpointAttribute)
}

// State returns the value of occi.storagelink.state.
func (l *StorageLink) State() string {
	return stringAttribute(&l.Entity, StorageLinkStateAttribute)
}

// StateMessage returns the backend status that State was derived from.
func (l *StorageLink) StateMessage() string {
	return stringAttribute(&l.Entity, StorageLinkStateMessageAttribute)
}
