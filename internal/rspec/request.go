package rspec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Resource is one top-level element of a request. The set of
// implementations is closed: *Node, *Link, *AddressPool and *Password.
type Resource interface {
	xml.Marshaler
	isResource()
}

// Request is the in-memory request document. Resources are serialized in
// the order they were added.
type Request struct {
	tour      *Tour
	vnc       bool
	resources []Resource
}

func NewRequest() *Request {
	return &Request{}
}

func (r *Request) AddTour(t *Tour) {
	r.tour = t
}

func (r *Request) Tour() *Tour {
	return r.tour
}

// InitVNC declares the VNC extension on the document so the portal offers
// remote desktop access to nodes that start a VNC server.
func (r *Request) InitVNC() {
	r.vnc = true
}

func (r *Request) VNCEnabled() bool {
	return r.vnc
}

func (r *Request) AddResource(res Resource) {
	r.resources = append(r.resources, res)
}

func (r *Request) Resources() []Resource {
	out := make([]Resource, len(r.resources))
	copy(out, r.resources)
	return out
}

// Nodes returns the node resources in document order.
func (r *Request) Nodes() []*Node {
	var nodes []*Node
	for _, res := range r.resources {
		if n, ok := res.(*Node); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (r *Request) Links() []*Link {
	var links []*Link
	for _, res := range r.resources {
		if l, ok := res.(*Link); ok {
			links = append(links, l)
		}
	}
	return links
}

func (r *Request) rootAttrs() []xml.Attr {
	attrs := []xml.Attr{
		{Name: xml.Name{Local: "xmlns"}, Value: NamespaceGENIv3},
		{Name: xml.Name{Local: "xmlns:client"}, Value: NamespaceClient},
		{Name: xml.Name{Local: "xmlns:emulab"}, Value: NamespaceEmulab},
		{Name: xml.Name{Local: "xmlns:sharedvlan"}, Value: NamespaceSharedVlan},
	}
	if r.vnc {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "xmlns:vnc"}, Value: NamespaceVNC})
	}
	return append(attrs,
		xml.Attr{Name: xml.Name{Local: "xmlns:xsi"}, Value: NamespaceXSI},
		xml.Attr{Name: xml.Name{Local: "xsi:schemaLocation"}, Value: requestSchemaLocation},
		xml.Attr{Name: xml.Name{Local: "type"}, Value: "request"},
	)
}

func (r *Request) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "rspec"}, Attr: r.rootAttrs()}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.tour != nil {
		if err := e.Encode(r.tour); err != nil {
			return fmt.Errorf("could not encode tour: %w", err)
		}
	}

	for i, res := range r.resources {
		if err := e.Encode(res); err != nil {
			return fmt.Errorf("could not encode resource %d: %w", i, err)
		}
	}

	return e.EncodeToken(start.End())
}

// WriteXML writes the indented document, with XML header, to w.
func (r *Request) WriteXML(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("could not serialize request: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}

func (r *Request) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WriteXML(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
