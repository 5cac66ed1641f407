package rspec

// XML namespaces of a GENI v3 request and the ProtoGENI extensions used by
// the portal.
const (
	NamespaceGENIv3     = "http://www.geni.net/resources/rspec/3"
	NamespaceClient     = "http://www.protogeni.net/resources/rspec/ext/client/1"
	NamespaceEmulab     = "http://www.protogeni.net/resources/rspec/ext/emulab/1"
	NamespaceSharedVlan = "http://www.protogeni.net/resources/rspec/ext/shared-vlan/1"
	NamespaceVNC        = "http://www.protogeni.net/resources/rspec/ext/vnc/1"
	NamespaceTour       = "http://www.protogeni.net/resources/rspec/ext/apt-tour/1"
	NamespaceXSI        = "http://www.w3.org/2001/XMLSchema-instance"

	requestSchemaLocation = NamespaceGENIv3 + " " + NamespaceGENIv3 + "/request.xsd"
)
