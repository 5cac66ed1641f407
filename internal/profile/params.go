package profile

import "github.com/terabiome/geniprofile/internal/portal"

const (
	ParamNodeCount         = "nodeCount"
	ParamNodeType          = "nodeType"
	ParamRICRelease        = "ricRelease"
	ParamInstallVNC        = "installVNC"
	ParamInstallORANSC     = "installORANSC"
	ParamSharedVlanName    = "sharedVlanName"
	ParamSharedVlanAddress = "sharedVlanAddress"
	ParamSharedVlanNetmask = "sharedVlanNetmask"
	ParamDiskImage         = "diskImage"
	ParamPublicIPCount     = "publicIPCount"
)

const (
	DefaultNodeType          = "d430"
	DefaultRICRelease        = "h-release"
	DefaultSharedVlanAddress = "10.254.254.1"
	DefaultSharedVlanNetmask = "255.255.255.0"
	DefaultDiskImage         = "urn:publicid:IDN+emulab.net+image+emulab-ops//UBUNTU22-64-STD"

	// MaxPublicIPCount is the most routable addresses one experiment may ask for.
	MaxPublicIPCount = 8
)

// Params are the bound profile parameters.
type Params struct {
	NodeCount         int    `mapstructure:"nodeCount" json:"nodeCount"`
	NodeType          string `mapstructure:"nodeType" json:"nodeType"`
	RICRelease        string `mapstructure:"ricRelease" json:"ricRelease"`
	InstallVNC        bool   `mapstructure:"installVNC" json:"installVNC"`
	InstallORANSC     bool   `mapstructure:"installORANSC" json:"installORANSC"`
	SharedVlanName    string `mapstructure:"sharedVlanName" json:"sharedVlanName"`
	SharedVlanAddress string `mapstructure:"sharedVlanAddress" json:"sharedVlanAddress"`
	SharedVlanNetmask string `mapstructure:"sharedVlanNetmask" json:"sharedVlanNetmask"`
	DiskImage         string `mapstructure:"diskImage" json:"diskImage"`
	PublicIPCount     int    `mapstructure:"publicIPCount" json:"publicIPCount"`
}

// Parameters is the profile's parameter schema in form order.
var Parameters = []portal.Parameter{
	{
		Name:            ParamNodeCount,
		Description:     "Number of Nodes",
		Type:            portal.ParameterTypeInteger,
		DefaultValue:    1,
		LongDescription: "Number of nodes in your kubernetes cluster. For simplified O-RAN deployment, use 1 node.",
	},
	{
		Name:            ParamNodeType,
		Description:     "Hardware Type",
		Type:            portal.ParameterTypeNodeType,
		DefaultValue:    DefaultNodeType,
		LongDescription: "Hardware type for the O-RAN node. d430 or d740 recommended.",
	},
	{
		Name:         ParamRICRelease,
		Description:  "O-RAN SC RIC Release",
		Type:         portal.ParameterTypeString,
		DefaultValue: DefaultRICRelease,
		LegalValues: []portal.LegalValue{
			{Value: "h-release", Label: "h-release (e2ap v2)"},
			{Value: "g-release", Label: "g-release (e2ap v2)"},
		},
		LongDescription: "O-RAN SC RIC component version for E2 agent compatibility.",
	},
	{
		Name:            ParamInstallVNC,
		Description:     "Install VNC",
		Type:            portal.ParameterTypeBoolean,
		DefaultValue:    false,
		LongDescription: "Install VNC for remote desktop access.",
	},
	{
		Name:            ParamInstallORANSC,
		Description:     "Install O-RAN SC RIC",
		Type:            portal.ParameterTypeBoolean,
		DefaultValue:    true,
		LongDescription: "Install the essential O-RAN SC RIC components for E2 connectivity.",
	},
	{
		Name:            ParamSharedVlanName,
		Description:     "Shared VLAN Name",
		Type:            portal.ParameterTypeString,
		DefaultValue:    "",
		LongDescription: "Name of shared VLAN to connect with srsRAN handover experiment. Must match the VLAN name in your srsRAN experiment.",
	},
	{
		Name:            ParamSharedVlanAddress,
		Description:     "O-RAN Gateway IP Address",
		Type:            portal.ParameterTypeString,
		DefaultValue:    DefaultSharedVlanAddress,
		LongDescription: "IP address for this O-RAN node on the shared VLAN. This should be the gateway address configured in the srsRAN experiment.",
	},
	{
		Name:            ParamSharedVlanNetmask,
		Description:     "Shared VLAN Netmask",
		Type:            portal.ParameterTypeString,
		DefaultValue:    DefaultSharedVlanNetmask,
		LongDescription: "Subnet mask for the shared VLAN interface.",
	},
	{
		Name:            ParamDiskImage,
		Description:     "Disk Image",
		Type:            portal.ParameterTypeString,
		DefaultValue:    DefaultDiskImage,
		Advanced:        true,
		LongDescription: "Ubuntu 22 image for O-RAN deployment.",
	},
	{
		Name:            ParamPublicIPCount,
		Description:     "Number of public IP addresses",
		Type:            portal.ParameterTypeInteger,
		DefaultValue:    1,
		Advanced:        true,
		LongDescription: "Number of public IPs for accessing O-RAN services.",
	},
}
