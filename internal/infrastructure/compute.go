// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package infrastructure

import (
	. "github.com/majewsky/gg/option"

	"github.com/sapcc/occi-adapter/internal/occi"
)

// Attribute names for compute resources.
const (
	ComputeArchitectureAttribute = "occi.compute.architecture"
	ComputeCoresAttribute        = "occi.compute.cores"
	ComputeHostnameAttribute     = "occi.compute.hostname"
	ComputeSpeedAttribute        = "occi.compute.speed"
	ComputeMemoryAttribute       = "occi.compute.memory"
	ComputeStateAttribute        = "occi.compute.state"
	ComputeStateMessageAttribute = "occi.compute.state.message"
)

var (
	// StartAction boots a stopped or suspended compute instance.
	StartAction = occi.MustNewAction(occi.ActionSpec{
		Scheme: ComputeActionScheme,
		Term:   "start",
		Title:  "Start compute instance",
	})
	// StopAction shuts down a compute instance.
	StopAction = occi.MustNewAction(occi.ActionSpec{
		Scheme: ComputeActionScheme,
		Term:   "stop",
		Title:  "Stop compute instance",
	})
	// RestartAction reboots a compute instance.
	RestartAction = occi.MustNewAction(occi.ActionSpec{
		Scheme: ComputeActionScheme,
		Term:   "restart",
		Title:  "Restart compute instance",
	})
	// SuspendAction suspends a compute instance.
	SuspendAction = occi.MustNewAction(occi.ActionSpec{
		Scheme: ComputeActionScheme,
		Term:   "suspend",
		Title:  "Suspend compute instance",
	})

	// ComputeKind is the kind of all virtual machines.
	ComputeKind = occi.MustNewKind(occi.KindSpec{
		Scheme:   InfrastructureScheme,
		Term:     "compute",
		Title:    "compute resource",
		Location: "compute/",
		Parent:   occi.ResourceKind,
		Attributes: []occi.AttributeSpec{
			occi.MutableAttribute(ComputeArchitectureAttribute, occi.StringType),
			occi.MutableAttribute(ComputeCoresAttribute, occi.NumberType),
			occi.MutableAttribute(ComputeHostnameAttribute, occi.StringType),
			occi.MutableAttribute(ComputeSpeedAttribute, occi.NumberType),
			occi.MutableAttribute(ComputeMemoryAttribute, occi.NumberType),
			occi.ImmutableAttribute(ComputeStateAttribute, occi.StringType),
			occi.ImmutableAttribute(ComputeStateMessageAttribute, occi.StringType),
		},
		Actions: []*occi.Action{StartAction, StopAction, RestartAction, SuspendAction},
	})
)

// ComputeOptions contains the values for NewComputeResource.
type ComputeOptions struct {
	ID           string
	Title        string
	Summary      string
	Architecture string
	Cores        Option[int]
	Hostname     string
	Speed        Option[float64]
	Memory       Option[float64] //in GiB
	State        string
	StateMessage string
	//if set, UserDataMixin and PublicKeyMixin are attached in addition to Mixins
	UserData      string //base64-encoded
	PublicKeyName string
	Mixins        []*occi.Mixin
	Actions       []*occi.Action
}

// ComputeResource is a resource of kind ComputeKind.
type ComputeResource struct {
	occi.Resource
}

// NewComputeResource builds a new compute resource.
func NewComputeResource(opts ComputeOptions) (*ComputeResource, error) {
	values := attributeValues{}
	values.putString(ComputeArchitectureAttribute, opts.Architecture)
	putOption(values, ComputeCoresAttribute, opts.Cores)
	values.putString(ComputeHostnameAttribute, opts.Hostname)
	putOption(values, ComputeSpeedAttribute, opts.Speed)
	putOption(values, ComputeMemoryAttribute, opts.Memory)
	values.putString(ComputeStateAttribute, opts.State)
	values.putString(ComputeStateMessageAttribute, opts.StateMessage)

	mixins := append([]*occi.Mixin(nil), opts.Mixins...)
	if opts.UserData != "" {
		mixins = append(mixins, UserDataMixin)
		values[UserDataAttribute] = opts.UserData
	}
	if opts.PublicKeyName != "" {
		mixins = append(mixins, PublicKeyMixin)
		values[PublicKeyNameAttribute] = opts.PublicKeyName
	}

	r, err := occi.NewResource(ComputeKind, occi.ResourceOptions{
		ID:         opts.ID,
		Title:      opts.Title,
		Summary:    opts.Summary,
		Mixins:     mixins,
		Actions:    opts.Actions,
		Attributes: values,
	})
	if err != nil {
		return nil, err
	}
	return &ComputeResource{*r}, nil
}

// Architecture returns the CPU architecture, or "" if unknown.
func (c *ComputeResource) Architecture() string {
	return stringAttribute(&c.Entity, ComputeArchitectureAttribute)
}

// Cores returns the number of virtual CPU cores.
func (c *ComputeResource) Cores() Option[int] {
	return intAttribute(&c.Entity, ComputeCoresAttribute)
}

// Hostname returns the hostname of the instance.
func (c *ComputeResource) Hostname() string {
	return stringAttribute(&c.Entity, ComputeHostnameAttribute)
}

// Speed returns the CPU clock frequency in GHz.
func (c *ComputeResource) Speed() Option[float64] {
	return numberAttribute(&c.Entity, ComputeSpeedAttribute)
}

// Memory returns the RAM size in GiB.
func (c *ComputeResource) Memory() Option[float64] {
	return numberAttribute(&c.Entity, ComputeMemoryAttribute)
}

// State returns the value of occi.compute.state.
func (c *ComputeResource) State() string {
	return stringAttribute(&c.Entity, ComputeStateAttribute)
}

// StateMessage returns the backend status that State was derived from.
func (c *ComputeResource) StateMessage() string {
	return stringAttribute(&c.Entity, ComputeStateMessageAttribute)
}

// UserData returns the base64-encoded user data of the instance, or "" if
// UserDataMixin is not attached.
func (c *ComputeResource) UserData() string {
	return stringAttribute(&c.Entity, UserDataAttribute)
}

// PublicKeyName returns the name of the SSH key pair that the instance was
// booted with, or "" if PublicKeyMixin is not attached.
func (c *ComputeResource) PublicKeyName() string {
	return stringAttribute(&c.Entity, PublicKeyNameAttribute)
}
