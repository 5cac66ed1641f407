package rspec

import (
	"encoding/xml"
	"fmt"
)

const SliverTypeRawPC = "raw-pc"

// Execute is a startup service run on the node once it has booted.
type Execute struct {
	Shell   string
	Command string
}

// IPv4Address is a static address assigned to an interface.
type IPv4Address struct {
	Address string
	Netmask string
}

// Interface is a network interface on a node. Its client id is
// "<node>:<name>", which is how links refer to it.
type Interface struct {
	Name      string
	ClientID  string
	Addresses []IPv4Address
}

func (i *Interface) AddAddress(addr IPv4Address) {
	i.Addresses = append(i.Addresses, addr)
}

// Node is a requested compute node. Only raw PCs are modelled.
type Node struct {
	Name         string
	Exclusive    bool
	HardwareType string
	DiskImage    string
	Interfaces   []*Interface
	Services     []Execute

	// Root key installation, nil leaves the testbed default in place.
	RootKeys *RootKeys

	// StartVNC asks the node to run a VNC server; NoStartVNC installs it
	// without starting it at boot.
	StartVNC   bool
	NoStartVNC bool
}

// RootKeys selects which testbed root ssh keys are installed on the node.
type RootKeys struct {
	Private bool
	Public  bool
}

func NewRawPC(name string) *Node {
	return &Node{
		Name:      name,
		Exclusive: true,
	}
}

func (n *Node) AddInterface(name string) *Interface {
	iface := &Interface{
		Name:     name,
		ClientID: fmt.Sprintf("%s:%s", n.Name, name),
	}
	n.Interfaces = append(n.Interfaces, iface)
	return iface
}

func (n *Node) AddService(svc Execute) {
	n.Services = append(n.Services, svc)
}

func (n *Node) InstallRootKeys(private, public bool) {
	n.RootKeys = &RootKeys{Private: private, Public: public}
}

func (*Node) isResource() {}

type nameXML struct {
	Name string `xml:"name,attr"`
}

type enabledXML struct {
	Enabled bool `xml:"enabled,attr"`
}

type sliverTypeXML struct {
	Name      string   `xml:"name,attr"`
	DiskImage *nameXML `xml:"disk_image,omitempty"`
}

type ipXML struct {
	Address string `xml:"address,attr"`
	Netmask string `xml:"netmask,attr,omitempty"`
	Type    string `xml:"type,attr"`
}

type interfaceXML struct {
	ClientID string  `xml:"client_id,attr"`
	IPs      []ipXML `xml:"ip"`
}

type executeXML struct {
	Shell   string `xml:"shell,attr"`
	Command string `xml:"command,attr"`
}

type servicesXML struct {
	Execute []executeXML `xml:"execute"`
}

type rootKeyXML struct {
	Private bool `xml:"private,attr"`
	Public  bool `xml:"public,attr"`
}

type startVNCXML struct {
	NoStart bool `xml:"nostart,attr,omitempty"`
}

type nodeXML struct {
	XMLName      xml.Name       `xml:"node"`
	ClientID     string         `xml:"client_id,attr"`
	Exclusive    bool           `xml:"exclusive,attr"`
	SliverType   sliverTypeXML  `xml:"sliver_type"`
	HardwareType *nameXML       `xml:"hardware_type,omitempty"`
	Interfaces   []interfaceXML `xml:"interface"`
	Services     *servicesXML   `xml:"services,omitempty"`
	RootKey      *rootKeyXML    `xml:"emulab:rootkey,omitempty"`
	StartVNC     *startVNCXML   `xml:"emulab:startvnc,omitempty"`
}

func (n *Node) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	out := nodeXML{
		ClientID:   n.Name,
		Exclusive:  n.Exclusive,
		SliverType: sliverTypeXML{Name: SliverTypeRawPC},
	}

	if n.DiskImage != "" {
		out.SliverType.DiskImage = &nameXML{Name: n.DiskImage}
	}
	if n.HardwareType != "" {
		out.HardwareType = &nameXML{Name: n.HardwareType}
	}

	for _, iface := range n.Interfaces {
		ix := interfaceXML{ClientID: iface.ClientID}
		for _, addr := range iface.Addresses {
			ix.IPs = append(ix.IPs, ipXML{Address: addr.Address, Netmask: addr.Netmask, Type: "ipv4"})
		}
		out.Interfaces = append(out.Interfaces, ix)
	}

	if len(n.Services) > 0 {
		out.Services = &servicesXML{}
		for _, svc := range n.Services {
			out.Services.Execute = append(out.Services.Execute, executeXML{Shell: svc.Shell, Command: svc.Command})
		}
	}

	if n.RootKeys != nil {
		out.RootKey = &rootKeyXML{Private: n.RootKeys.Private, Public: n.RootKeys.Public}
	}
	if n.StartVNC {
		out.StartVNC = &startVNCXML{NoStart: n.NoStartVNC}
	}

	return e.Encode(out)
}
