package rspec

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Decoding side of the wire format. Prefixed elements resolve to their
// namespace URI on unmarshal, which also checks the root declarations.
type decodedRSpec struct {
	XMLName   xml.Name      `xml:"http://www.geni.net/resources/rspec/3 rspec"`
	Type      string        `xml:"type,attr"`
	Tour      *decodedTour  `xml:"http://www.protogeni.net/resources/rspec/ext/apt-tour/1 rspec_tour"`
	Nodes     []decodedNode `xml:"node"`
	Links     []decodedLink `xml:"link"`
	Passwords []decodedName `xml:"http://www.protogeni.net/resources/rspec/ext/emulab/1 password"`
	Pools     []decodedPool `xml:"http://www.protogeni.net/resources/rspec/ext/emulab/1 routable_pool"`
}

type decodedTour struct {
	Description  decodedText `xml:"description"`
	Instructions decodedText `xml:"instructions"`
}

type decodedText struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

type decodedName struct {
	Name string `xml:"name,attr"`
}

type decodedNode struct {
	ClientID   string `xml:"client_id,attr"`
	Exclusive  bool   `xml:"exclusive,attr"`
	SliverType struct {
		Name      string       `xml:"name,attr"`
		DiskImage *decodedName `xml:"disk_image"`
	} `xml:"sliver_type"`
	HardwareType *decodedName `xml:"hardware_type"`
	Interfaces   []struct {
		ClientID string `xml:"client_id,attr"`
		IPs      []struct {
			Address string `xml:"address,attr"`
			Netmask string `xml:"netmask,attr"`
			Type    string `xml:"type,attr"`
		} `xml:"ip"`
	} `xml:"interface"`
	Execute []struct {
		Shell   string `xml:"shell,attr"`
		Command string `xml:"command,attr"`
	} `xml:"services>execute"`
	RootKey *struct {
		Private bool `xml:"private,attr"`
		Public  bool `xml:"public,attr"`
	} `xml:"http://www.protogeni.net/resources/rspec/ext/emulab/1 rootkey"`
	StartVNC *struct {
		NoStart bool `xml:"nostart,attr"`
	} `xml:"http://www.protogeni.net/resources/rspec/ext/emulab/1 startvnc"`
}

type decodedLink struct {
	ClientID      string `xml:"client_id,attr"`
	InterfaceRefs []struct {
		ClientID string `xml:"client_id,attr"`
	} `xml:"interface_ref"`
	Multiplexing *struct {
		Enabled bool `xml:"enabled,attr"`
	} `xml:"http://www.protogeni.net/resources/rspec/ext/emulab/1 link_multiplexing"`
	BestEffort *struct {
		Enabled bool `xml:"enabled,attr"`
	} `xml:"http://www.protogeni.net/resources/rspec/ext/emulab/1 best_effort"`
	SharedVlan *decodedName `xml:"http://www.protogeni.net/resources/rspec/ext/shared-vlan/1 link_shared_vlan"`
}

type decodedPool struct {
	ClientID string `xml:"client_id,attr"`
	Count    int    `xml:"count,attr"`
	Type     string `xml:"type,attr"`
}

func decode(t *testing.T, data []byte) decodedRSpec {
	t.Helper()
	var out decodedRSpec
	require.NoError(t, xml.Unmarshal(data, &out))
	return out
}

func TestRequest_EmptyDocument(t *testing.T) {
	data, err := NewRequest().Marshal()
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, xml.Header))
	assert.Contains(t, s, `xmlns="http://www.geni.net/resources/rspec/3"`)
	assert.Contains(t, s, `xmlns:emulab="http://www.protogeni.net/resources/rspec/ext/emulab/1"`)
	assert.NotContains(t, s, "xmlns:vnc")

	doc := decode(t, data)
	assert.Equal(t, "request", doc.Type)
	assert.Nil(t, doc.Tour)
	assert.Empty(t, doc.Nodes)
}

func TestRequest_ResourcesRoundTrip(t *testing.T) {
	req := NewRequest()

	node := NewRawPC("node-0")
	node.HardwareType = "d430"
	node.DiskImage = "urn:publicid:IDN+emulab.net+image+emulab-ops//UBUNTU22-64-STD"
	node.AddService(Execute{Shell: "sh", Command: `echo "hi" && id -u`})
	node.InstallRootKeys(false, false)
	iface := node.AddInterface("ifSharedVlan")
	iface.AddAddress(IPv4Address{Address: "10.254.254.1", Netmask: "255.255.255.0"})

	link := NewLink("shared-vlan-oran")
	link.AddInterface(iface)
	link.CreateSharedVlan("oran-vlan")
	link.LinkMultiplexing = true
	link.BestEffort = true

	req.AddResource(node)
	req.AddResource(link)
	req.AddResource(NewPassword("adminPass"))
	req.AddResource(NewAddressPool("node-0", 3))

	data, err := req.Marshal()
	require.NoError(t, err)
	doc := decode(t, data)

	require.Len(t, doc.Nodes, 1)
	n := doc.Nodes[0]
	assert.Equal(t, "node-0", n.ClientID)
	assert.True(t, n.Exclusive)
	assert.Equal(t, SliverTypeRawPC, n.SliverType.Name)
	require.NotNil(t, n.SliverType.DiskImage)
	assert.Equal(t, node.DiskImage, n.SliverType.DiskImage.Name)
	require.NotNil(t, n.HardwareType)
	assert.Equal(t, "d430", n.HardwareType.Name)
	require.Len(t, n.Execute, 1)
	assert.Equal(t, `echo "hi" && id -u`, n.Execute[0].Command)
	require.NotNil(t, n.RootKey)
	assert.False(t, n.RootKey.Private)
	assert.Nil(t, n.StartVNC)

	require.Len(t, n.Interfaces, 1)
	assert.Equal(t, "node-0:ifSharedVlan", n.Interfaces[0].ClientID)
	require.Len(t, n.Interfaces[0].IPs, 1)
	assert.Equal(t, "10.254.254.1", n.Interfaces[0].IPs[0].Address)
	assert.Equal(t, "255.255.255.0", n.Interfaces[0].IPs[0].Netmask)
	assert.Equal(t, "ipv4", n.Interfaces[0].IPs[0].Type)

	require.Len(t, doc.Links, 1)
	l := doc.Links[0]
	assert.Equal(t, "shared-vlan-oran", l.ClientID)
	require.Len(t, l.InterfaceRefs, 1)
	assert.Equal(t, "node-0:ifSharedVlan", l.InterfaceRefs[0].ClientID)
	require.NotNil(t, l.SharedVlan)
	assert.Equal(t, "oran-vlan", l.SharedVlan.Name)
	require.NotNil(t, l.Multiplexing)
	assert.True(t, l.Multiplexing.Enabled)
	require.NotNil(t, l.BestEffort)
	assert.True(t, l.BestEffort.Enabled)

	if diff := cmp.Diff([]decodedName{{Name: "adminPass"}}, doc.Passwords); diff != "" {
		t.Errorf("passwords mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]decodedPool{{ClientID: "node-0", Count: 3, Type: "any"}}, doc.Pools); diff != "" {
		t.Errorf("pools mismatch (-want +got):\n%s", diff)
	}
}

func TestRequest_ResourceOrderIsInsertionOrder(t *testing.T) {
	req := NewRequest()
	req.AddResource(NewRawPC("node-0"))
	req.AddResource(NewLink("lan"))
	req.AddResource(NewPassword("adminPass"))
	req.AddResource(NewAddressPool("node-0", 1))

	data, err := req.Marshal()
	require.NoError(t, err)
	s := string(data)

	node := strings.Index(s, "<node ")
	link := strings.Index(s, "<link ")
	pass := strings.Index(s, "<emulab:password ")
	pool := strings.Index(s, "<emulab:routable_pool ")
	require.True(t, node >= 0 && link >= 0 && pass >= 0 && pool >= 0, s)
	assert.Less(t, node, link)
	assert.Less(t, link, pass)
	assert.Less(t, pass, pool)
}

func TestRequest_VNC(t *testing.T) {
	req := NewRequest()
	req.InitVNC()
	node := NewRawPC("node-0")
	node.StartVNC = true
	node.NoStartVNC = true
	req.AddResource(node)

	data, err := req.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `xmlns:vnc="`+NamespaceVNC+`"`)

	doc := decode(t, data)
	require.Len(t, doc.Nodes, 1)
	require.NotNil(t, doc.Nodes[0].StartVNC)
	assert.True(t, doc.Nodes[0].StartVNC.NoStart)
}

func TestRequest_Tour(t *testing.T) {
	tour := NewTour()
	tour.SetDescription(TourText, "A profile.")
	tour.SetInstructions(TourMarkdown, "## Setup\nUse `{password-adminPass}` & wait.")

	req := NewRequest()
	req.AddTour(tour)

	data, err := req.Marshal()
	require.NoError(t, err)

	doc := decode(t, data)
	require.NotNil(t, doc.Tour)
	assert.Equal(t, "text", doc.Tour.Description.Type)
	assert.Equal(t, "A profile.", doc.Tour.Description.Text)
	assert.Equal(t, "markdown", doc.Tour.Instructions.Type)
	assert.Equal(t, "## Setup\nUse `{password-adminPass}` & wait.", doc.Tour.Instructions.Text)
}

func TestRequest_Accessors(t *testing.T) {
	req := NewRequest()
	req.AddResource(NewRawPC("a"))
	req.AddResource(NewPassword("adminPass"))
	req.AddResource(NewRawPC("b"))
	req.AddResource(NewLink("l"))

	assert.Len(t, req.Resources(), 4)
	require.Len(t, req.Nodes(), 2)
	assert.Equal(t, "b", req.Nodes()[1].Name)
	assert.Len(t, req.Links(), 1)
}
