// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package backend

// Flavor describes a server flavor.
type Flavor struct {
	ID           string
	Name         string
	VCPUs        int
	RAMMiB       int
	DiskGiB      int
	SwapMiB      int
	EphemeralGiB int
}

// Image describes a bootable image.
type Image struct {
	ID   string
	Name string
}

// FloatingIPPool describes an external network.
type FloatingIPPool struct {
	ID   string
	Name string
}

// Server describes a virtual machine.
type Server struct {
	ID     string
	Name   string
	Status string //as reported by Nova, e.g. "ACTIVE" or "SHUTOFF"
	// Fields that may be empty if the backend does not report them.
	FlavorID       string
	ImageID        string
	KeyName        string
	UserData       string //base64-encoded, usually only visible to admins
	Addresses      []ServerAddress
	Volumes        []VolumeAttachment
	SecurityGroups []string //names
}

// ServerAddress describes an IP address held by a server.
type ServerAddress struct {
	NetworkName string
	Address     string
	Version     int
	MAC         string
	// Type is either "fixed" or "floating".
	Type string
}

// IsFloating returns whether this is a floating IP address.
func (a ServerAddress) IsFloating() bool {
	return a.Type == "floating"
}

// Volume describes a block storage volume.
type Volume struct {
	ID          string
	Name        string
	Description string
	Status      string //as reported by Cinder, e.g. "available" or "in-use"
	SizeGiB     int
	Attachments []VolumeAttachment
}

// VolumeAttachment describes the attachment of a volume to a server.
type VolumeAttachment struct {
	ServerID string
	VolumeID string
	Device   string //may be empty
}

// Network describes a network.
type Network struct {
	ID       string
	Name     string
	Status   string //as reported by Neutron, e.g. "ACTIVE" or "DOWN"
	External bool
	// Fields from the first subnet, if any.
	CIDR        string
	GatewayIP   string
	IPVersion   int
	DHCPEnabled bool
}

// FloatingIP describes a floating IP.
type FloatingIP struct {
	ID      string
	Address string
	Pool    string //name of the external network
	PortID  string //empty if unassociated
	Status  string
}

// IsUsed returns whether the floating IP is associated with a port.
func (f FloatingIP) IsUsed() bool {
	return f.PortID != ""
}

// SecurityGroup describes a security group.
type SecurityGroup struct {
	ID          string
	Name        string
	Description string
	Rules       []SecurityGroupRule
}

// SecurityGroupRule describes a single rule in a security group.
type SecurityGroupRule struct {
	Direction      string //"ingress" or "egress"
	Protocol       string //empty for any
	PortRangeMin   int    //0 if not restricted
	PortRangeMax   int    //0 if not restricted
	RemoteIPPrefix string
}
