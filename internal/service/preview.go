package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/terabiome/geniprofile/internal/portal"
	"github.com/terabiome/geniprofile/internal/preview"
)

// ErrNoHypervisor is returned when a define is asked for without a
// hypervisor connection.
var ErrNoHypervisor = errors.New("no hypervisor connection configured")

// DomainDefiner defines libvirt domains. pkg/libvirt.ConnectionManager
// satisfies it.
type DomainDefiner interface {
	DefineDomain(domainXML string, start bool) (string, error)
}

type PreviewRequest struct {
	Parameters map[string]any
	Options    preview.Options
	Define     bool
	Start      bool
}

type PreviewResult struct {
	UUID      uuid.UUID
	DomainXML string
	Warnings  []portal.ParameterWarning
	Defined   bool
}

type PreviewService struct {
	profiles   *ProfileService
	hypervisor DomainDefiner
	logger     *slog.Logger
}

// NewPreviewService builds a preview service. hypervisor may be nil, in
// which case only rendering is available.
func NewPreviewService(profiles *ProfileService, hypervisor DomainDefiner, logger *slog.Logger) *PreviewService {
	return &PreviewService{
		profiles:   profiles,
		hypervisor: hypervisor,
		logger:     logger.With(slog.String("service", "preview")),
	}
}

func (s *PreviewService) Preview(ctx context.Context, request PreviewRequest) (*PreviewResult, error) {
	tracer := otel.Tracer("geniprofile/service")
	ctx, span := tracer.Start(ctx, "Preview")
	defer span.End()

	if request.Start {
		request.Define = true
	}
	if request.Define && s.hypervisor == nil {
		return nil, ErrNoHypervisor
	}

	generated, err := s.profiles.Generate(ctx, request.Parameters)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate failed")
		return nil, err
	}

	nodes := generated.Request.Nodes()
	if len(nodes) == 0 {
		return nil, fmt.Errorf("request has no nodes to preview")
	}

	id := uuid.New()
	domainXML, err := preview.Render(nodes[0], id, request.Options)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return nil, err
	}
	span.SetAttributes(attribute.String("domain.uuid", id.String()))

	result := &PreviewResult{
		UUID:      id,
		DomainXML: domainXML,
		Warnings:  generated.Warnings,
	}

	if !request.Define {
		return result, nil
	}

	if _, err := s.hypervisor.DefineDomain(domainXML, request.Start); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "define failed")
		return nil, fmt.Errorf("could not define preview domain: %w", err)
	}
	result.Defined = true

	s.logger.Info("defined preview domain",
		slog.String("node", nodes[0].Name),
		slog.String("uuid", id.String()),
		slog.Bool("started", request.Start),
	)

	return result, nil
}
