package rspec

import "encoding/xml"

// AddressPool requests Count publicly routable addresses, assigned to the
// named node by the backend.
type AddressPool struct {
	ClientID string
	Count    int
	Type     string
}

func NewAddressPool(clientID string, count int) *AddressPool {
	return &AddressPool{ClientID: clientID, Count: count, Type: "any"}
}

func (*AddressPool) isResource() {}

type addressPoolXML struct {
	XMLName  xml.Name `xml:"emulab:routable_pool"`
	ClientID string   `xml:"client_id,attr"`
	Count    int      `xml:"count,attr"`
	Type     string   `xml:"type,attr"`
}

func (p *AddressPool) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return e.Encode(addressPoolXML{ClientID: p.ClientID, Count: p.Count, Type: p.Type})
}

// Password is a placeholder the backend replaces with a randomly generated
// credential at provisioning time. It never carries a value.
type Password struct {
	Name string
}

func NewPassword(name string) *Password {
	return &Password{Name: name}
}

func (*Password) isResource() {}

type passwordXML struct {
	XMLName xml.Name `xml:"emulab:password"`
	Name    string   `xml:"name,attr"`
}

func (p *Password) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return e.Encode(passwordXML{Name: p.Name})
}

const (
	TourText     = "text"
	TourMarkdown = "markdown"
)

// Tour is the human-facing description and instructions shown by the
// portal for the experiment.
type Tour struct {
	DescriptionType  string
	Description      string
	InstructionsType string
	Instructions     string
}

func NewTour() *Tour {
	return &Tour{}
}

func (t *Tour) SetDescription(kind, text string) {
	t.DescriptionType = kind
	t.Description = text
}

func (t *Tour) SetInstructions(kind, text string) {
	t.InstructionsType = kind
	t.Instructions = text
}

type typedTextXML struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

type tourXML struct {
	XMLName      xml.Name      `xml:"http://www.protogeni.net/resources/rspec/ext/apt-tour/1 rspec_tour"`
	Description  *typedTextXML `xml:"description,omitempty"`
	Instructions *typedTextXML `xml:"instructions,omitempty"`
}

func (t *Tour) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	out := tourXML{}
	if t.Description != "" {
		out.Description = &typedTextXML{Type: t.DescriptionType, Text: t.Description}
	}
	if t.Instructions != "" {
		out.Instructions = &typedTextXML{Type: t.InstructionsType, Text: t.Instructions}
	}
	return e.Encode(out)
}
