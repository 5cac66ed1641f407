package rspec

import "encoding/xml"

// Link joins interfaces into one broadcast domain. A link with a shared
// VLAN name attaches to a VLAN that other experiments can also join.
type Link struct {
	Name             string
	InterfaceRefs    []string
	SharedVlan       string
	LinkMultiplexing bool
	BestEffort       bool
}

func NewLink(name string) *Link {
	return &Link{Name: name}
}

func (l *Link) AddInterface(iface *Interface) {
	l.InterfaceRefs = append(l.InterfaceRefs, iface.ClientID)
}

func (l *Link) CreateSharedVlan(name string) {
	l.SharedVlan = name
}

func (*Link) isResource() {}

type interfaceRefXML struct {
	ClientID string `xml:"client_id,attr"`
}

type linkXML struct {
	XMLName          xml.Name          `xml:"link"`
	ClientID         string            `xml:"client_id,attr"`
	InterfaceRefs    []interfaceRefXML `xml:"interface_ref"`
	LinkMultiplexing *enabledXML       `xml:"emulab:link_multiplexing,omitempty"`
	BestEffort       *enabledXML       `xml:"emulab:best_effort,omitempty"`
	SharedVlan       *nameXML          `xml:"sharedvlan:link_shared_vlan,omitempty"`
}

func (l *Link) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	out := linkXML{ClientID: l.Name}
	for _, ref := range l.InterfaceRefs {
		out.InterfaceRefs = append(out.InterfaceRefs, interfaceRefXML{ClientID: ref})
	}
	if l.LinkMultiplexing {
		out.LinkMultiplexing = &enabledXML{Enabled: true}
	}
	if l.BestEffort {
		out.BestEffort = &enabledXML{Enabled: true}
	}
	if l.SharedVlan != "" {
		out.SharedVlan = &nameXML{Name: l.SharedVlan}
	}
	return e.Encode(out)
}
