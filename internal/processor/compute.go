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

// Values for the occi.compute.state attribute.
const (
	ComputeStateActive    = "active"
	ComputeStateInactive  = "inactive"
	ComputeStateSuspended = "suspended"
	ComputeStateError     = "error"
)

var computeStates = map[string]string{
	"ACTIVE":            ComputeStateActive,
	"MIGRATING":         ComputeStateActive,
	"PAUSED":            ComputeStateSuspended,
	"SUSPENDED":         ComputeStateSuspended,
	"SHELVED":           ComputeStateSuspended,
	"SHELVED_OFFLOADED": ComputeStateSuspended,
	"ERROR":             ComputeStateError,
	"UNKNOWN":           ComputeStateError,
}

// computeState maps a Nova server status to an OCCI compute state.
func computeState(status string) string {
	state, exists := computeStates[status]
	if !exists {
		return ComputeStateInactive
	}
	return state
}

// computeActions returns the actions that make sense in the given state.
func computeActions(state string) []*occi.Action {
	switch state {
	case ComputeStateActive:
		return []*occi.Action{infrastructure.StopAction, infrastructure.SuspendAction, infrastructure.RestartAction}
	case ComputeStateInactive, ComputeStateSuspended:
		return []*occi.Action{infrastructure.StartAction}
	default:
		return nil
	}
}

var serverActions = map[string]backend.ServerAction{
	infrastructure.StartAction.Term():   backend.ServerActionStart,
	infrastructure.StopAction.Term():    backend.ServerActionStop,
	infrastructure.RestartAction.Term(): backend.ServerActionRestart,
	infrastructure.SuspendAction.Term(): backend.ServerActionSuspend,
}

func flavorInfo(f backend.Flavor) infrastructure.FlavorInfo {
	return infrastructure.FlavorInfo{
		ID:        f.ID,
		Name:      f.Name,
		Cores:     f.VCPUs,
		Memory:    float64(f.RAMMiB) / 1024,
		Disk:      f.DiskGiB,
		Swap:      f.SwapMiB,
		Ephemeral: f.EphemeralGiB,
	}
}

// ListComputes returns all servers as compute resources. Since the result is
// rendered in compact form, flavors and links are not resolved.
func (p *Processor) ListComputes(ctx context.Context) (*occi.Collection, error) {
	servers, err := p.gateway.ListServers(ctx)
	err = p.track("list_servers", err)
	if err != nil {
		return nil, err
	}
	result := &occi.Collection{}
	for _, s := range servers {
		c, err := newCompute(s, None[backend.Flavor](), nil)
		if err != nil {
			return nil, err
		}
		result.Resources = append(result.Resources, c)
	}
	return result, nil
}

// ShowCompute returns a single server as a compute resource, including its
// templates and its links to storages, networks and security groups.
func (p *Processor) ShowCompute(ctx context.Context, serverID string) (*infrastructure.ComputeResource, error) {
	server, err := p.gateway.GetServer(ctx, serverID)
	err = p.track("get_server", err)
	if err != nil {
		return nil, err
	}

	var mixins []*occi.Mixin
	flavor := None[backend.Flavor]()
	if server.FlavorID != "" {
		f, err := p.gateway.GetFlavor(ctx, server.FlavorID)
		err = tolerateNotFound(p.track("get_flavor", err), "resource template of server "+serverID)
		if err != nil {
			return nil, err
		}
		if f.ID != "" {
			flavor = Some(f)
			m, err := infrastructure.NewResourceTemplate(flavorInfo(f))
			if err != nil {
				return nil, err
			}
			mixins = append(mixins, m)
		}
	}
	if server.ImageID != "" {
		m, err := p.osTemplateFor(ctx, server.ImageID)
		if err != nil {
			return nil, err
		}
		mixins = append(mixins, m)
	}

	lc, err := p.newLinkContext(ctx)
	if err != nil {
		return nil, err
	}
	pools, err := lc.floatingIPPoolsOf(server)
	if err != nil {
		return nil, err
	}
	mixins = append(mixins, pools...)

	c, err := newCompute(server, flavor, mixins)
	if err != nil {
		return nil, err
	}
	err = lc.attachLinks(c, server)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Processor) osTemplateFor(ctx context.Context, imageID string) (*occi.Mixin, error) {
	images, err := p.gateway.ListImages(ctx)
	err = tolerateNotFound(p.track("list_images", err), "OS template "+imageID)
	if err != nil {
		return nil, err
	}
	name := imageID
	for _, img := range images {
		if img.ID == imageID {
			name = img.Name
			break
		}
	}
	return infrastructure.NewOSTemplate(imageID, name)
}

func newCompute(s backend.Server, flavor Option[backend.Flavor], mixins []*occi.Mixin) (*infrastructure.ComputeResource, error) {
	state := computeState(s.Status)
	opts := infrastructure.ComputeOptions{
		ID:            s.ID,
		Title:         s.Name,
		Hostname:      s.Name,
		State:         state,
		StateMessage:  s.Status,
		UserData:      s.UserData,
		PublicKeyName: s.KeyName,
		Mixins:        mixins,
		Actions:       computeActions(state),
	}
	if f, ok := flavor.Unpack(); ok {
		opts.Cores = Some(f.VCPUs)
		opts.Memory = Some(float64(f.RAMMiB) / 1024)
	}
	return infrastructure.NewComputeResource(opts)
}

// RunComputeAction runs the action with the given term on a server.
func (p *Processor) RunComputeAction(ctx context.Context, serverID, term string) error {
	action, err := findAction(infrastructure.ComputeKind, term)
	if err != nil {
		return err
	}
	serverAction, exists := serverActions[action.Term()]
	if !exists {
		return backend.NotImplemented("compute action %q is not supported", term)
	}
	err = p.gateway.RunServerAction(ctx, serverID, serverAction)
	return p.track("run_server_action", err)
}

// DeleteCompute deletes a server.
func (p *Processor) DeleteCompute(ctx context.Context, serverID string) error {
	err := p.gateway.DeleteServer(ctx, serverID)
	return p.track("delete_server", err)
}
