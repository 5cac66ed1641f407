package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/terabiome/geniprofile/internal/portal"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func renderParameters(w io.Writer, params []portal.Parameter, format string) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(params)
	case formatTable:
		renderParameterTable(w, params)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderParameterTable(w io.Writer, params []portal.Parameter) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"NAME", "TYPE", "DEFAULT", "LEGAL VALUES", "DESCRIPTION"})

	for _, p := range params {
		name := p.Name
		if p.Advanced {
			name += text.FgHiBlack.Sprint(" (advanced)")
		}

		var legal []string
		for _, lv := range p.LegalValues {
			legal = append(legal, fmt.Sprint(lv.Value))
		}

		t.AppendRow(table.Row{
			name,
			string(p.Type),
			fmt.Sprint(p.DefaultValue),
			strings.Join(legal, ", "),
			p.Description,
		})
	}

	t.AppendFooter(table.Row{"", "", "", "Total", len(params)})
	t.Render()
}
