package profile

import (
	"fmt"
	"log/slog"

	"github.com/terabiome/geniprofile/internal/portal"
	"github.com/terabiome/geniprofile/internal/rspec"
	"github.com/terabiome/geniprofile/pkg/templator"
)

const (
	NodeName           = "node-0"
	SharedVlanIface    = "ifSharedVlan"
	SharedVlanLinkName = "shared-vlan-oran"
	AdminPasswordName  = "adminPass"

	// SetupCommand runs the repository's setup driver as the experiment
	// owner and logs to /local/logs/setup.log.
	SetupCommand = "sudo mkdir -p /local/setup && sudo chown `geni-get user_urn | cut -f4 -d+` /local/setup && sudo -u `geni-get user_urn | cut -f4 -d+` -Hi /bin/bash -c '/local/repository/setup-driver.sh >/local/logs/setup.log 2>&1'"
	SetupShell   = "sh"
)

// Profile is the simplified O-RAN profile. It is safe to reuse across
// generation passes; all per-pass state lives in the portal.Context.
type Profile struct {
	engine *templator.Engine
	logger *slog.Logger

	// DisableRootKeys keeps the testbed's root ssh key service off the
	// node. It races with the setup scripts.
	DisableRootKeys bool
}

func New(logger *slog.Logger) (*Profile, error) {
	engine, err := loadInstructionTemplates()
	if err != nil {
		return nil, fmt.Errorf("could not load instruction templates: %w", err)
	}

	return &Profile{
		engine:          engine,
		logger:          logger.With(slog.String("component", "profile")),
		DisableRootKeys: true,
	}, nil
}

// Define declares every profile parameter on pc.
func (p *Profile) Define(pc *portal.Context) error {
	for _, param := range Parameters {
		if err := pc.DefineParameter(param); err != nil {
			return fmt.Errorf("could not define parameter: %w", err)
		}
	}
	return nil
}

// Bind resolves input against the declared parameters and decodes the
// result. The returned error is a *portal.VerificationError when the input
// was structurally invalid.
func (p *Profile) Bind(pc *portal.Context, input map[string]any) (Params, error) {
	var params Params

	bindings, err := pc.BindParameters(input)
	if err != nil {
		return params, err
	}
	p.logger.Debug("bound parameters", slog.Any("values", bindings.Map()))

	if err := bindings.Decode(&params); err != nil {
		return params, err
	}
	return params, nil
}

// Check reports the profile's advisory warnings on pc.
func (p *Profile) Check(pc *portal.Context, params Params) {
	Check(pc, params)
}

// Tour builds the portal tour from the description and the rendered
// instruction blocks.
func (p *Profile) Tour(params Params) (*rspec.Tour, error) {
	instructions, err := renderInstructions(p.engine, params)
	if err != nil {
		return nil, err
	}

	tour := rspec.NewTour()
	tour.SetDescription(rspec.TourText, TourDescription)
	tour.SetInstructions(rspec.TourMarkdown, instructions)
	return tour, nil
}

// Assemble builds the request document for params. Exactly one node is
// built whatever nodeCount says.
func (p *Profile) Assemble(params Params, tour *rspec.Tour) *rspec.Request {
	req := rspec.NewRequest()
	if tour != nil {
		req.AddTour(tour)
	}

	if params.InstallVNC {
		req.InitVNC()
	}

	node := rspec.NewRawPC(NodeName)
	if params.NodeType != "" {
		node.HardwareType = params.NodeType
	}
	if params.DiskImage != "" {
		node.DiskImage = params.DiskImage
	}
	node.AddService(rspec.Execute{Shell: SetupShell, Command: SetupCommand})
	if p.DisableRootKeys {
		node.InstallRootKeys(false, false)
	}
	if params.InstallVNC {
		node.StartVNC = true
		node.NoStartVNC = true
	}

	var sharedVlan *rspec.Link
	if params.SharedVlanName != "" {
		iface := node.AddInterface(SharedVlanIface)
		if params.SharedVlanAddress != "" {
			iface.AddAddress(rspec.IPv4Address{
				Address: params.SharedVlanAddress,
				Netmask: params.SharedVlanNetmask,
			})
		}

		sharedVlan = rspec.NewLink(SharedVlanLinkName)
		sharedVlan.AddInterface(iface)
		sharedVlan.CreateSharedVlan(params.SharedVlanName)
		sharedVlan.LinkMultiplexing = true
		sharedVlan.BestEffort = true
	}

	req.AddResource(node)
	if sharedVlan != nil {
		req.AddResource(sharedVlan)
	}
	req.AddResource(rspec.NewPassword(AdminPasswordName))
	req.AddResource(rspec.NewAddressPool(NodeName, params.PublicIPCount))

	p.logger.Debug("assembled request",
		slog.Int("resources", len(req.Resources())),
		slog.Bool("shared_vlan", sharedVlan != nil),
	)

	return req
}
