package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/terabiome/geniprofile/pkg/libvirt"
)

// runHypervisorInfo connects to uri and prints what the preview backend sees
func runHypervisorInfo(w io.Writer, uri string, log *slog.Logger) error {
	connManager, err := libvirt.NewConnectionManager(uri, log)
	if err != nil {
		return err
	}
	defer connManager.Close()

	info, err := connManager.Info()
	if err != nil {
		return fmt.Errorf("failed to inspect hypervisor: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"KEY", "VALUE"})
	t.AppendRows([]table.Row{
		{"uri", info.URI},
		{"hostname", info.Hostname},
		{"libvirt", info.LibVersion},
		{"alive", info.Alive},
	})
	t.Render()

	return nil
}
