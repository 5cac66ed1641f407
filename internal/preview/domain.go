// Package preview renders an assembled request node as a local libvirt
// domain so a profile can be smoke-tested on a workstation before it is
// submitted to the testbed.
package preview

import (
	"fmt"

	"github.com/google/uuid"
	"libvirt.org/go/libvirtxml"

	"github.com/terabiome/geniprofile/internal/rspec"
)

const (
	DomainPrefix  = "geniprofile-"
	DefaultBridge = "virbr0"
)

// Sizing is the local vCPU and memory footprint used for a hardware type.
type Sizing struct {
	VCPU     int
	MemoryMB int
}

// hardwareSizing scales testbed hardware types down to something a
// workstation can host.
var hardwareSizing = map[string]Sizing{
	"d430": {VCPU: 4, MemoryMB: 8192},
	"d740": {VCPU: 8, MemoryMB: 16384},
	"d710": {VCPU: 2, MemoryMB: 4096},
	"m400": {VCPU: 2, MemoryMB: 4096},
}

var defaultSizing = Sizing{VCPU: 2, MemoryMB: 4096}

// SizingFor returns the local sizing for hardwareType, falling back to a
// small default for unknown or empty types.
func SizingFor(hardwareType string) Sizing {
	if s, ok := hardwareSizing[hardwareType]; ok {
		return s
	}
	return defaultSizing
}

// Options override what the node itself implies. Zero values keep the
// derived setting.
type Options struct {
	VCPU     int
	MemoryMB int
	DiskPath string
	Bridge   string
}

// Domain builds the libvirt domain for node.
func Domain(node *rspec.Node, id uuid.UUID, opts Options) (*libvirtxml.Domain, error) {
	if node == nil {
		return nil, fmt.Errorf("no node to preview")
	}
	if opts.VCPU < 0 || opts.MemoryMB < 0 {
		return nil, fmt.Errorf("vcpu and memory must not be negative")
	}

	sizing := SizingFor(node.HardwareType)
	if opts.VCPU > 0 {
		sizing.VCPU = opts.VCPU
	}
	if opts.MemoryMB > 0 {
		sizing.MemoryMB = opts.MemoryMB
	}

	bridge := opts.Bridge
	if bridge == "" {
		bridge = DefaultBridge
	}

	memoryKiB := uint(sizing.MemoryMB) << 10

	domain := &libvirtxml.Domain{
		Type:        "kvm",
		Name:        DomainPrefix + node.Name,
		UUID:        id.String(),
		Title:       node.HardwareType,
		Description: node.DiskImage,
		Memory:      &libvirtxml.DomainMemory{Value: memoryKiB, Unit: "KiB"},
		CurrentMemory: &libvirtxml.DomainCurrentMemory{
			Value: memoryKiB,
			Unit:  "KiB",
		},
		VCPU: &libvirtxml.DomainVCPU{Placement: "static", Value: uint(sizing.VCPU)},
		OS: &libvirtxml.DomainOS{
			Type:        &libvirtxml.DomainOSType{Arch: "x86_64", Machine: "q35", Type: "hvm"},
			BootDevices: []libvirtxml.DomainBootDevice{{Dev: "hd"}},
		},
		Features: &libvirtxml.DomainFeatureList{
			ACPI: &libvirtxml.DomainFeature{},
			APIC: &libvirtxml.DomainFeatureAPIC{},
		},
		CPU: &libvirtxml.DomainCPU{Mode: "host-passthrough"},
		Devices: &libvirtxml.DomainDeviceList{
			Consoles: []libvirtxml.DomainConsole{
				{Target: &libvirtxml.DomainConsoleTarget{Type: "serial"}},
			},
		},
	}

	if opts.DiskPath != "" {
		domain.Devices.Disks = append(domain.Devices.Disks, libvirtxml.DomainDisk{
			Device: "disk",
			Driver: &libvirtxml.DomainDiskDriver{Name: "qemu", Type: "qcow2"},
			Source: &libvirtxml.DomainDiskSource{
				File: &libvirtxml.DomainDiskSourceFile{File: opts.DiskPath},
			},
			Target: &libvirtxml.DomainDiskTarget{Dev: "vda", Bus: "virtio"},
		})
	}

	// control network first, then one NIC per experiment interface
	nics := 1 + len(node.Interfaces)
	for i := 0; i < nics; i++ {
		domain.Devices.Interfaces = append(domain.Devices.Interfaces, libvirtxml.DomainInterface{
			Source: &libvirtxml.DomainInterfaceSource{
				Bridge: &libvirtxml.DomainInterfaceSourceBridge{Bridge: bridge},
			},
			Model: &libvirtxml.DomainInterfaceModel{Type: "virtio"},
		})
	}

	if node.StartVNC {
		domain.Devices.Graphics = append(domain.Devices.Graphics, libvirtxml.DomainGraphic{
			VNC: &libvirtxml.DomainGraphicVNC{
				Port:     -1,
				AutoPort: "yes",
				Listen:   "127.0.0.1",
			},
		})
	}

	return domain, nil
}

// Render builds and marshals the domain for node.
func Render(node *rspec.Node, id uuid.UUID, opts Options) (string, error) {
	domain, err := Domain(node, id, opts)
	if err != nil {
		return "", err
	}

	xml, err := domain.Marshal()
	if err != nil {
		return "", fmt.Errorf("could not serialize Libvirt XML to string: %w", err)
	}
	return xml, nil
}
