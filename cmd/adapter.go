package main

import (
	"github.com/terabiome/geniprofile/internal/api"
	"github.com/terabiome/geniprofile/pkg/libvirt"
)

// hypervisorInspector exposes a libvirt connection to the system handler
type hypervisorInspector struct {
	cm *libvirt.ConnectionManager
}

func (h hypervisorInspector) Info() (api.HypervisorInfo, error) {
	info, err := h.cm.Info()
	return api.HypervisorInfo{
		URI:        info.URI,
		Hostname:   info.Hostname,
		LibVersion: info.LibVersion,
		Alive:      info.Alive,
	}, err
}
