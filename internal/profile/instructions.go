package profile

import (
	"embed"
	"fmt"
	"strings"

	"github.com/terabiome/geniprofile/pkg/templator"
)

//go:embed templates/*.md.tpl
var templateFS embed.FS

const (
	templateHead = "head"
	templateKube = "kube"
	templateTail = "tail"
)

// instructionBlocks are concatenated in this order into the tour
// instructions.
var instructionBlocks = []struct {
	name string
	path string
}{
	{templateHead, "templates/head.md.tpl"},
	{templateKube, "templates/kube.md.tpl"},
	{templateTail, "templates/tail.md.tpl"},
}

// TourDescription is the short text shown in the portal's profile list.
const TourDescription = "Simplified O-RAN profile for connecting to srsRAN handover experiments via shared VLAN. This profile deploys only the essential O-RAN SC Near-RT RIC components needed for E2 agent connectivity and basic xApp functionality."

func loadInstructionTemplates() (*templator.Engine, error) {
	engine := templator.NewEngine()
	for _, block := range instructionBlocks {
		if err := engine.LoadTemplateFS(block.name, templateFS, block.path); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

// renderInstructions renders every block against p. Placeholders the portal
// substitutes itself, such as {host-node-0}, pass through untouched.
func renderInstructions(engine *templator.Engine, p Params) (string, error) {
	var sb strings.Builder
	for _, block := range instructionBlocks {
		text, err := engine.RenderToString(block.name, p)
		if err != nil {
			return "", fmt.Errorf("could not render %s instructions: %w", block.name, err)
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}
