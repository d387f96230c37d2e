// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package infrastructure

import (
	. "github.com/majewsky/gg/option"

	"github.com/sapcc/occi-adapter/internal/occi"
)

// Attribute names for network resources and their mixins.
const (
	NetworkVLANAttribute         = "occi.network.vlan"
	NetworkLabelAttribute        = "occi.network.label"
	NetworkStateAttribute        = "occi.network.state"
	NetworkStateMessageAttribute = "occi.network.state.message"
	NetworkAddressAttribute      = "occi.network.address"
	NetworkGatewayAttribute      = "occi.network.gateway"
	NetworkAllocationAttribute   = "occi.network.allocation"
	NetworkIPVersionAttribute    = "org.openstack.network.ip_version"
)

var (
	// UpAction brings a network up.
	UpAction = occi.MustNewAction(occi.ActionSpec{
		Scheme: NetworkActionScheme,
		Term:   "up",
		Title:  "Bring network up",
	})
	// DownAction takes a network down.
	DownAction = occi.MustNewAction(occi.ActionSpec{
		Scheme: NetworkActionScheme,
		Term:   "down",
		Title:  "Bring network down",
	})

	// NetworkKind is the kind of all networks.
	NetworkKind = occi.MustNewKind(occi.KindSpec{
		Scheme:   InfrastructureScheme,
		Term:     "network",
		Title:    "network resource",
		Location: "network/",
		Parent:   occi.ResourceKind,
		Attributes: []occi.AttributeSpec{
			occi.MutableAttribute(NetworkVLANAttribute, occi.NumberType),
			occi.MutableAttribute(NetworkLabelAttribute, occi.StringType),
			occi.ImmutableAttribute(NetworkStateAttribute, occi.StringType),
			occi.ImmutableAttribute(NetworkStateMessageAttribute, occi.StringType),
		},
		Actions: []*occi.Action{UpAction, DownAction},
	})

	// IPNetworkMixin adds IP addressing to a network.
	IPNetworkMixin = occi.MustNewMixin(occi.MixinSpec{
		Scheme: NetworkMixinScheme,
		Term:   "ipnetwork",
		Title:  "IP Networking Mixin",
		Attributes: []occi.AttributeSpec{
			occi.MutableAttribute(NetworkAddressAttribute, occi.StringType),
			occi.MutableAttribute(NetworkGatewayAttribute, occi.StringType),
			occi.MutableAttribute(NetworkAllocationAttribute, occi.StringType),
		},
		Applies: []*occi.Kind{NetworkKind},
	})

	// OSNetworkMixin carries OpenStack-specific network properties.
	OSNetworkMixin = occi.MustNewMixin(occi.MixinSpec{
		Scheme: OSNetworkScheme,
		Term:   "osnetwork",
		Title:  "openstack network",
		Attributes: []occi.AttributeSpec{
			occi.MutableAttribute(NetworkIPVersionAttribute, occi.NumberType).WithDefault(4),
		},
		Applies: []*occi.Kind{NetworkKind},
	})
)

// NetworkOptions contains the values for NewNetworkResource. When any of
// Address, Gateway or Allocation is set, IPNetworkMixin is attached. When
// IPVersion is set, OSNetworkMixin is attached.
type NetworkOptions struct {
	ID           string
	Title        string
	Summary      string
	VLAN         Option[int]
	Label        string
	State        string
	StateMessage string
	Address      string
	Gateway      string
	Allocation   string
	IPVersion    Option[int]
	Mixins       []*occi.Mixin
	Actions      []*occi.Action
}

// NetworkResource is a resource of kind NetworkKind.
type NetworkResource struct {
	occi.Resource
}

// NewNetworkResource builds a new network resource.
func NewNetworkResource(opts NetworkOptions) (*NetworkResource, error) {
	values, mixins := opts.buildValues()
	r, err := occi.NewResource(NetworkKind, occi.ResourceOptions{
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
	return &NetworkResource{*r}, nil
}

func (opts NetworkOptions) buildValues() (attributeValues, []*occi.Mixin) {
	values := attributeValues{}
	putOption(values, NetworkVLANAttribute, opts.VLAN)
	values.putString(NetworkLabelAttribute, opts.Label)
	values.putString(NetworkStateAttribute, opts.State)
	values.putString(NetworkStateMessageAttribute, opts.StateMessage)

	mixins := append([]*occi.Mixin(nil), opts.Mixins...)
	if opts.Address != "" || opts.Gateway != "" || opts.Allocation != "" {
		values.putString(NetworkAddressAttribute, opts.Address)
		values.putString(NetworkGatewayAttribute, opts.Gateway)
		values.putString(NetworkAllocationAttribute, opts.Allocation)
		mixins = appendMixin(mixins, IPNetworkMixin)
	}
	if opts.IPVersion.IsSome() {
		putOption(values, NetworkIPVersionAttribute, opts.IPVersion)
		mixins = appendMixin(mixins, OSNetworkMixin)
	}
	return values, mixins
}

func appendMixin(mixins []*occi.Mixin, m *occi.Mixin) []*occi.Mixin {
	for _, existing := range mixins {
		if existing == m {
			return mixins
		}
	}
	return append(mixins, m)
}

// VLAN returns the 802.1q VLAN identifier.
func (n *NetworkResource) VLAN() Option[int] {
	return intAttribute(&n.Entity, NetworkVLANAttribute)
}

// Label returns the tag-based VLAN label.
func (n *NetworkResource) Label() string {
	return stringAttribute(&n.Entity, NetworkLabelAttribute)
}

// State returns the value of occi.network.state.
func (n *NetworkResource) State() string {
	return stringAttribute(&n.Entity, NetworkStateAttribute)
}

// StateMessage returns the backend status that State was derived from.
func (n *NetworkResource) StateMessage() string {
	return stringAttribute(&n.Entity, NetworkStateMessageAttribute)
}

// Address returns the CIDR of the network, if the IPNetworkMixin is attached.
func (n *NetworkResource) Address() string {
	return stringAttribute(&n.Entity, NetworkAddressAttribute)
}

// Gateway returns the gateway address of the IP network mixin.
func (n *NetworkResource) Gateway() string {
	return stringAttribute(&n.Entity, NetworkGatewayAttribute)
}

// Allocation is "dynamic" or "static".
func (n *NetworkResource) Allocation() string {
	return stringAttribute(&n.Entity, NetworkAllocationAttribute)
}

// IPVersion returns 4 or 6, if known.
func (n *NetworkResource) IPVersion() Option[int] {
	return intAttribute(&n.Entity, NetworkIPVersionAttribute)
}

////////////////////////////////////////////////////////////////////////////////
// NetworkInterface

// Attribute names for network interfaces and their mixin.
const (
	InterfaceNameAttribute         = "occi.networkinterface.interface"
	InterfaceMACAttribute          = "occi.networkinterface.mac"
	InterfaceStateAttribute        = "occi.networkinterface.state"
	InterfaceStateMessageAttribute = "occi.networkinterface.state.message"
	InterfaceAddressAttribute      = "occi.networkinterface.address"
	InterfaceGatewayAttribute      = "occi.networkinterface.gateway"
	InterfaceAllocationAttribute   = "occi.networkinterface.allocation"
)

var (
	// NetworkInterfaceKind is the kind of links between a compute resource
	// and a network.
	NetworkInterfaceKind = occi.MustNewKind(occi.KindSpec{
		Scheme:   InfrastructureScheme,
		Term:     "networkinterface",
		Title:    "network link resource",
		Location: "link/networkinterface/",
		Parent:   occi.LinkKind,
		Attributes: []occi.AttributeSpec{
			occi.MutableAttribute(InterfaceNameAttribute, occi.StringType),
			occi.MutableAttribute(InterfaceMACAttribute, occi.StringType),
			occi.ImmutableAttribute(InterfaceStateAttribute, occi.StringType),
			occi.ImmutableAttribute(InterfaceStateMessageAttribute, occi.StringType),
		},
	})

	// IPNetworkInterfaceMixin adds IP addressing to a network interface.
	IPNetworkInterfaceMixin = occi.MustNewMixin(occi.MixinSpec{
		Scheme: InterfaceMixinScheme,
		Term:   "ipnetworkinterface",
		Title:  "IP Network interface Mixin",
		Attributes: []occi.AttributeSpec{
			occi.MutableAttribute(InterfaceAddressAttribute, occi.StringType),
			occi.MutableAttribute(InterfaceGatewayAttribute, occi.StringType),
			occi.MutableAttribute(InterfaceAllocationAttribute, occi.StringType),
		},
		Applies: []*occi.Kind{NetworkInterfaceKind},
	})
)

// NetworkInterfaceOptions contains the values for NewNetworkInterface.
// IPNetworkInterfaceMixin is always attached.
type NetworkInterfaceOptions struct {
	Interface    string
	MAC          string
	State        string
	StateMessage string
	Address      string
	Gateway      string
	Allocation   string
	Mixins       []*occi.Mixin
}

// NetworkInterface is a link of kind NetworkInterfaceKind.
type NetworkInterface struct {
	occi.Link
}

// NewNetworkInterface connects the source resource to the target network.
// The link ID contains the address since one server can hold several
// addresses on the same network.
func NewNetworkInterface(source, target occi.ResourceObject, opts NetworkInterfaceOptions) (*NetworkInterface, error) {
	err := checkKind("network interface target", target, NetworkKind)
	if err != nil {
		return nil, err
	}

	values := attributeValues{}
	values.putString(InterfaceNameAttribute, opts.Interface)
	values.putString(InterfaceMACAttribute, opts.MAC)
	values.putString(InterfaceStateAttribute, opts.State)
	values.putString(InterfaceStateMessageAttribute, opts.StateMessage)
	values.putString(InterfaceAddressAttribute, opts.Address)
	values.putString(InterfaceGatewayAttribute, opts.Gateway)
	values.putString(InterfaceAllocationAttribute, opts.Allocation)

	l, err := occi.NewLink(NetworkInterfaceKind, source, target, occi.LinkOptions{
		ID:         LinkID(source, target, opts.Address),
		Mixins:     appendMixin(append([]*occi.Mixin(nil), opts.Mixins...), IPNetworkInterfaceMixin),
		Attributes: values,
	})
	if err != nil {
		return nil, err
	}
	return &NetworkInterface{*l}, nil
}

// Interface returns the name of the interface inside the instance.
func (l *NetworkInterface) Interface() string {
	return stringAttribute(&l.Entity, InterfaceNameAttribute)
}

// MAC returns the hardware address of the interface.
func (l *NetworkInterface) MAC() string {
	return stringAttribute(&l.Entity, InterfaceMACAttribute)
}

// State returns the value of occi.networkinterface.state.
func (l *NetworkInterface) State() string {
	return stringAttribute(&l.Entity, InterfaceStateAttribute)
}

// Address returns the IP address bound to the interface.
func (l *NetworkInterface) Address() string {
	return stringAttribute(&l.Entity, InterfaceAddressAttribute)
}

// Gateway returns the gateway address of the interface.
func (l *NetworkInterface) Gateway() string {
	return stringAttribute(&l.Entity, InterfaceGatewayAttribute)
}

// Allocation is "dynamic" or "static".
func (l *NetworkInterface) Allocation() string {
	return stringAttribute(&l.Entity, InterfaceAllocationAttribute)
}

////////////////////////////////////////////////////////////////////////////////
// IPReservation

// Attribute names for IP reservations.
const (
	IPReservationAddressAttribute = "occi.ipreservation.address"
	IPReservationUsedAttribute    = "occi.ipreservation.used"
	IPReservationStateAttribute   = "occi.ipreservation.state"
)

// IPReservationKind is the kind of floating IPs.
var IPReservationKind = occi.MustNewKind(occi.KindSpec{
	Scheme:   InfrastructureScheme,
	Term:     "ipreservation",
	Title:    "IPReservation",
	Location: "ipreservation/",
	Parent:   NetworkKind,
	Attributes: []occi.AttributeSpec{
		occi.MutableAttribute(IPReservationAddressAttribute, occi.StringType),
		occi.MutableAttribute(IPReservationUsedAttribute, occi.BooleanType).WithDefault(false),
		occi.ImmutableAttribute(IPReservationStateAttribute, occi.StringType),
	},
})

// IPReservationOptions contains the values for NewIPReservation.
type IPReservationOptions struct {
	ID      string
	Title   string
	Summary string
	Address string
	Used    Option[bool]
	State   string
	Mixins  []*occi.Mixin
}

// IPReservation is a resource of kind IPReservationKind.
type IPReservation struct {
	occi.Resource
}

// NewIPReservation builds a new IP reservation.
func NewIPReservation(opts IPReservationOptions) (*IPReservation, error) {
	values := attributeValues{}
	values.putString(IPReservationAddressAttribute, opts.Address)
	putOption(values, IPReservationUsedAttribute, opts.Used)
	values.putString(IPReservationStateAttribute, opts.State)

	r, err := occi.NewResource(IPReservationKind, occi.ResourceOptions{
		ID:         opts.ID,
		Title:      opts.Title,
		Summary:    opts.Summary,
		Mixins:     opts.Mixins,
		Attributes: values,
	})
	if err != nil {
		return nil, err
	}
	return &IPReservation{*r}, nil
}

// Address returns the reserved IP address.
func (r *IPReservation) Address() string {
	return stringAttribute(&r.Entity, IPReservationAddressAttribute)
}

// Used returns whether the address is associated with a port.
func (r *IPReservation) Used() Option[bool] {
	return boolAttribute(&r.Entity, IPReservationUsedAttribute)
}

// State returns the value of occi.ipreservation.state.
func (r *IPReservation) State() string {
	return stringAttribute(&r.Entity, IPReservationStateAttribute)
}
