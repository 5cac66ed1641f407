package api

// GenerateRequest carries raw parameter values keyed by parameter name.
// Omitted parameters take their defaults.
type GenerateRequest struct {
	Parameters map[string]any `json:"parameters"`
}

// Warning is an advisory message attached to one or more parameters.
type Warning struct {
	Message    string   `json:"message"`
	Parameters []string `json:"parameters"`
}

// GenerateResponse holds the serialized request document.
type GenerateResponse struct {
	RSpec    string    `json:"rspec"`
	Warnings []Warning `json:"warnings"`
}

// LegalValue is one allowed value of an enumerated parameter.
type LegalValue struct {
	Value any    `json:"value"`
	Label string `json:"label,omitempty"`
}

// Parameter describes one profile parameter.
type Parameter struct {
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Type            string       `json:"type"`
	DefaultValue    any          `json:"default_value"`
	LegalValues     []LegalValue `json:"legal_values,omitempty"`
	LongDescription string       `json:"long_description,omitempty"`
	Advanced        bool         `json:"advanced,omitempty"`
	Required        bool         `json:"required,omitempty"`
}

type ParametersResponse struct {
	Parameters []Parameter `json:"parameters"`
}

// PreviewRequest renders the profile's node as a local libvirt domain.
// Zero sizing fields keep the values implied by the node's hardware type.
type PreviewRequest struct {
	Parameters map[string]any `json:"parameters"`
	VCPU       int            `json:"vcpu"`
	MemoryMB   int            `json:"memory_mb"`
	DiskPath   string         `json:"disk_path"`
	Bridge     string         `json:"bridge_network_interface"`
	Define     bool           `json:"define"`
	Start      bool           `json:"start"`
}

type PreviewResponse struct {
	UUID      string    `json:"uuid"`
	DomainXML string    `json:"domain_xml"`
	Defined   bool      `json:"defined"`
	Warnings  []Warning `json:"warnings"`
}

// HypervisorInfo describes the local libvirt connection used for previews.
type HypervisorInfo struct {
	URI        string `json:"uri"`
	Hostname   string `json:"hostname,omitempty"`
	LibVersion string `json:"lib_version,omitempty"`
	Alive      bool   `json:"alive"`
}
