// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package infrastructure

import "github.com/sapcc/occi-adapter/internal/occi"

// Registry contains all static categories known to this package. Dynamic
// template mixins are not part of it since they depend on the backend.
var Registry = occi.MustNewRegistry(
	[]*occi.Kind{
		occi.EntityKind, occi.ResourceKind, occi.LinkKind,
		ComputeKind, StorageKind, StorageLinkKind,
		NetworkKind, NetworkInterfaceKind, IPReservationKind,
		SecurityGroupKind, SecurityGroupLinkKind,
	},
	[]*occi.Mixin{
		IPNetworkMixin, IPNetworkInterfaceMixin, OSNetworkMixin,
		OSTemplateMixin, ResourceTemplateMixin,
		UserDataMixin, PublicKeyMixin,
	},
	[]*occi.Action{
		StartAction, StopAction, RestartAction, SuspendAction,
		OnlineAction, OfflineAction, BackupAction, SnapshotAction, ResizeAction,
		UpAction, DownAction,
	},
)
