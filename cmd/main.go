package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/terabiome/geniprofile/internal/config"
	"github.com/terabiome/geniprofile/internal/handler"
	"github.com/terabiome/geniprofile/internal/profile"
	"github.com/terabiome/geniprofile/internal/routes"
	"github.com/terabiome/geniprofile/internal/service"
	"github.com/terabiome/geniprofile/pkg/libvirt"
	"github.com/terabiome/geniprofile/pkg/logger"
	"github.com/terabiome/geniprofile/pkg/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", slog.String("error", err.Error()))
		return 1
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Debug("geniprofile starting",
		slog.String("log_level", cfg.LogLevel),
		slog.String("log_format", cfg.LogFormat),
		slog.Bool("telemetry_enabled", cfg.TelemetryEnabled),
	)

	if cfg.TelemetryEnabled {
		tel, err := telemetry.Initialize(os.Stderr)
		if err != nil {
			log.Error("failed to initialize telemetry", slog.String("error", err.Error()))
			return 1
		}
		defer func() {
			log.Debug("shutting down telemetry")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := tel.Shutdown(shutdownCtx); err != nil {
				log.Error("failed to shutdown telemetry", slog.String("error", err.Error()))
			}
		}()
		log.Debug("telemetry initialized")
	}

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", slog.String("signal", sig.String()))
		cancel()
	}()

	parameterFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:    "params-file",
				Aliases: []string{"p"},
				Usage:   "JSON or YAML file with parameter values",
				Value:   cfg.ParamsFile,
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "Override a parameter as name=value (repeatable)",
			},
		}
	}

	generateFlags := func() []cli.Flag {
		return append([]cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the request document to a file instead of stdout",
			},
			&cli.StringFlag{
				Name:  "warnings-file",
				Usage: "Write the parameter report as JSON to this file",
				Value: cfg.WarningsFile,
			},
		}, parameterFlags()...)
	}

	generateAction := func(cliCtx *cli.Context) error {
		profiles, err := initProfileService(log)
		if err != nil {
			return err
		}
		return runGenerate(ctx, profiles, log, generateOptions{
			paramsFile:   cliCtx.String("params-file"),
			overrides:    cliCtx.StringSlice("set"),
			output:       cliCtx.String("output"),
			warningsFile: cliCtx.String("warnings-file"),
			stdout:       os.Stdout,
			stderr:       os.Stderr,
		})
	}

	app := &cli.App{
		Name:                 "geniprofile",
		Usage:                "Generate the simplified O-RAN testbed profile request",
		EnableBashCompletion: true,
		Flags:                generateFlags(),
		Action:               generateAction,
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "Write the RSpec request document",
				Flags:  generateFlags(),
				Action: generateAction,
			},
			{
				Name:  "parameters",
				Usage: "Describe the profile parameters",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (table, json)",
						Value:   formatTable,
					},
				},
				Action: func(cliCtx *cli.Context) error {
					profiles, err := initProfileService(log)
					if err != nil {
						return err
					}
					return renderParameters(os.Stdout, profiles.Parameters(), cliCtx.String("format"))
				},
			},
			{
				Name:  "preview",
				Usage: "Render the profile node as a local libvirt domain",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "disk-path",
						Usage: "qcow2 image to attach as the boot disk",
					},
					&cli.StringFlag{
						Name:  "bridge",
						Usage: "Bridge network interface for the domain NICs",
					},
					&cli.IntFlag{
						Name:  "vcpu",
						Usage: "Override the vCPU count implied by the node type",
					},
					&cli.IntFlag{
						Name:  "memory-mb",
						Usage: "Override the memory implied by the node type",
					},
					&cli.BoolFlag{
						Name:  "define",
						Usage: "Define the domain on the local hypervisor",
					},
					&cli.BoolFlag{
						Name:    "start",
						Aliases: []string{"s"},
						Usage:   "Start the domain after defining it",
					},
				}, parameterFlags()...),
				Action: func(cliCtx *cli.Context) error {
					return runPreview(ctx, cfg, log, previewOptions{
						paramsFile: cliCtx.String("params-file"),
						overrides:  cliCtx.StringSlice("set"),
						diskPath:   cliCtx.String("disk-path"),
						bridge:     cliCtx.String("bridge"),
						vcpu:       cliCtx.Int("vcpu"),
						memoryMB:   cliCtx.Int("memory-mb"),
						define:     cliCtx.Bool("define"),
						start:      cliCtx.Bool("start"),
					})
				},
			},
			{
				Name:  "server",
				Usage: "Start HTTP API server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "address",
						Aliases: []string{"a"},
						Usage:   "Server address",
						Value:   cfg.ServerAddress,
					},
					&cli.BoolFlag{
						Name:  "libvirt",
						Usage: "Connect to the hypervisor so previews can be defined",
					},
				},
				Action: func(cliCtx *cli.Context) error {
					return runServer(ctx, cfg, log, cliCtx.String("address"), cliCtx.Bool("libvirt"))
				},
			},
			{
				Name:  "system",
				Usage: "Show system information",
				Subcommands: []*cli.Command{
					{
						Name:  "hypervisor",
						Usage: "Display the libvirt connection used for previews",
						Action: func(cliCtx *cli.Context) error {
							return runHypervisorInfo(os.Stdout, cfg.LibvirtURI, log)
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func initProfileService(log *slog.Logger) (*service.ProfileService, error) {
	prof, err := profile.New(log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize profile: %w", err)
	}
	return service.NewProfileService(prof, log), nil
}

// runServer starts the HTTP API server
func runServer(ctx context.Context, cfg *config.Config, log *slog.Logger, address string, withLibvirt bool) error {
	log.Info("initializing HTTP server", slog.String("address", address))

	profiles, err := initProfileService(log)
	if err != nil {
		return err
	}

	var (
		definer   service.DomainDefiner
		inspector handler.HypervisorInspector
	)
	if withLibvirt {
		connManager, err := libvirt.NewConnectionManager(cfg.LibvirtURI, log)
		if err != nil {
			return fmt.Errorf("failed to initialize connection manager: %w", err)
		}
		defer connManager.Close()

		definer = connManager
		inspector = hypervisorInspector{cm: connManager}
	}

	previews := service.NewPreviewService(profiles, definer, log)

	router := routes.SetupMux(
		handler.NewProfile(profiles, previews, log),
		handler.NewSystem(inspector, log),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", slog.String("address", address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case err := <-serverErrChan:
		return err
	case <-ctx.Done():
		log.Info("shutting down HTTP server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		log.Info("HTTP server stopped")
		return nil
	}
}
