package profile

import (
	"fmt"
	"net"

	"github.com/terabiome/geniprofile/internal/portal"
)

// Check runs the profile's advisory checks against p and reports each
// failure as a warning on pc. Checks are independent and never block
// assembly.
func Check(pc *portal.Context, p Params) {
	if p.PublicIPCount > MaxPublicIPCount {
		pc.ReportWarning(portal.NewParameterWarning(
			fmt.Sprintf("You cannot request more than %d public IP addresses!", MaxPublicIPCount),
			ParamPublicIPCount))
	}

	if p.NodeCount > 1 {
		pc.ReportWarning(portal.NewParameterWarning(
			"This simplified O-RAN profile is designed for single-node deployment. Multi-node may not work as expected.",
			ParamNodeCount))
	}

	if p.SharedVlanName == "" {
		return
	}

	if p.SharedVlanAddress != "" && !isIPv4(p.SharedVlanAddress) {
		pc.ReportWarning(portal.NewParameterWarning(
			fmt.Sprintf("%q is not an IPv4 address; the shared VLAN interface may not come up.", p.SharedVlanAddress),
			ParamSharedVlanAddress))
	}

	if p.SharedVlanAddress != "" && !isIPv4Netmask(p.SharedVlanNetmask) {
		pc.ReportWarning(portal.NewParameterWarning(
			fmt.Sprintf("%q is not a valid IPv4 netmask.", p.SharedVlanNetmask),
			ParamSharedVlanNetmask))
	}
}

func isIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil
}

func isIPv4Netmask(s string) bool {
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return false
	}
	// Size reports 0, 0 for non-canonical masks such as 255.0.255.0.
	_, bits := net.IPMask(ip.To4()).Size()
	return bits == 32
}
