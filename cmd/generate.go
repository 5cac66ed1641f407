package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/terabiome/geniprofile/internal/config"
	"github.com/terabiome/geniprofile/internal/portal"
	"github.com/terabiome/geniprofile/internal/preview"
	"github.com/terabiome/geniprofile/internal/service"
	"github.com/terabiome/geniprofile/pkg/libvirt"
)

type generateOptions struct {
	paramsFile   string
	overrides    []string
	output       string
	warningsFile string
	stdout       io.Writer
	stderr       io.Writer
}

// runGenerate performs one generation pass. On verification failure the
// report goes to stderr and the warnings file, and nothing is written to
// the output.
func runGenerate(ctx context.Context, profiles *service.ProfileService, log *slog.Logger, opts generateOptions) error {
	input, err := collectParameters(opts.paramsFile, opts.overrides)
	if err != nil {
		return err
	}

	result, err := profiles.Generate(ctx, input)
	if err != nil {
		var verr *portal.VerificationError
		if errors.As(err, &verr) {
			if werr := writeReport(opts.warningsFile, verr.Report); werr != nil {
				log.Error("failed to write parameter report", slog.String("error", werr.Error()))
			}
			if data, jerr := verr.Report.JSON(); jerr == nil {
				fmt.Fprintln(opts.stderr, string(data))
			}
		}
		return err
	}

	if err := writeReport(opts.warningsFile, result.Report); err != nil {
		return err
	}

	if opts.output == "" {
		return result.Request.WriteXML(opts.stdout)
	}

	data, err := result.Request.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("could not write output file: %w", err)
	}
	log.Info("wrote request document", slog.String("path", opts.output))
	return nil
}

type previewOptions struct {
	paramsFile string
	overrides  []string
	diskPath   string
	bridge     string
	vcpu       int
	memoryMB   int
	define     bool
	start      bool
}

func runPreview(ctx context.Context, cfg *config.Config, log *slog.Logger, opts previewOptions) error {
	input, err := collectParameters(opts.paramsFile, opts.overrides)
	if err != nil {
		return err
	}

	profiles, err := initProfileService(log)
	if err != nil {
		return err
	}

	var definer service.DomainDefiner
	if opts.define || opts.start {
		connManager, err := libvirt.NewConnectionManager(cfg.LibvirtURI, log)
		if err != nil {
			return fmt.Errorf("failed to initialize connection manager: %w", err)
		}
		defer connManager.Close()
		definer = connManager
	}

	result, err := service.NewPreviewService(profiles, definer, log).Preview(ctx, service.PreviewRequest{
		Parameters: input,
		Options: preview.Options{
			VCPU:     opts.vcpu,
			MemoryMB: opts.memoryMB,
			DiskPath: opts.diskPath,
			Bridge:   opts.bridge,
		},
		Define: opts.define,
		Start:  opts.start,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, result.DomainXML)
	return nil
}
