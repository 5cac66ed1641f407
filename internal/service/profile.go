package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/terabiome/geniprofile/internal/portal"
	"github.com/terabiome/geniprofile/internal/profile"
	"github.com/terabiome/geniprofile/internal/rspec"
)

// GenerateResult is the outcome of one successful generation pass.
type GenerateResult struct {
	Request  *rspec.Request
	Params   profile.Params
	Warnings []portal.ParameterWarning
	Report   portal.Report
}

// ProfileService runs generation passes. It holds no per-pass state.
type ProfileService struct {
	profile *profile.Profile
	logger  *slog.Logger

	generateCounter  metric.Int64Counter
	warningCounter   metric.Int64Counter
	generateDuration metric.Float64Histogram
}

func NewProfileService(prof *profile.Profile, logger *slog.Logger) *ProfileService {
	meter := otel.Meter("geniprofile/service")

	generateCounter, err := meter.Int64Counter(
		"geniprofile.generate",
		metric.WithDescription("Number of request generation passes"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		logger.Warn("failed to create generateCounter metric", slog.String("error", err.Error()))
	}

	warningCounter, err := meter.Int64Counter(
		"geniprofile.warnings",
		metric.WithDescription("Number of parameter warnings reported"),
		metric.WithUnit("{warning}"),
	)
	if err != nil {
		logger.Warn("failed to create warningCounter metric", slog.String("error", err.Error()))
	}

	generateDuration, err := meter.Float64Histogram(
		"geniprofile.generate.duration",
		metric.WithDescription("Duration of request generation passes"),
		metric.WithUnit("s"),
	)
	if err != nil {
		logger.Warn("failed to create generateDuration metric", slog.String("error", err.Error()))
	}

	return &ProfileService{
		profile:          prof,
		logger:           logger.With(slog.String("service", "profile")),
		generateCounter:  generateCounter,
		warningCounter:   warningCounter,
		generateDuration: generateDuration,
	}
}

// Parameters returns the profile's parameter schema.
func (s *ProfileService) Parameters() []portal.Parameter {
	pc := portal.NewContext(s.logger)
	if err := s.profile.Define(pc); err != nil {
		s.logger.Error("profile parameters do not define cleanly", slog.String("error", err.Error()))
		return nil
	}
	return pc.Parameters()
}

// Generate runs intake, validation and assembly for input. When binding or
// verification fails the error is a *portal.VerificationError and no
// document is built.
func (s *ProfileService) Generate(ctx context.Context, input map[string]any) (*GenerateResult, error) {
	tracer := otel.Tracer("geniprofile/service")
	ctx, span := tracer.Start(ctx, "Generate")
	defer span.End()

	start := time.Now()
	defer func() {
		if s.generateDuration != nil {
			s.generateDuration.Record(ctx, time.Since(start).Seconds())
		}
	}()

	pc := portal.NewContext(s.logger)
	if err := s.profile.Define(pc); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "define failed")
		return nil, fmt.Errorf("could not define profile parameters: %w", err)
	}

	params, err := s.profile.Bind(pc, input)
	if err != nil {
		s.countGenerate(ctx, "invalid")
		span.RecordError(err)
		span.SetStatus(codes.Error, "binding failed")
		return nil, err
	}

	s.profile.Check(pc, params)

	warnings := pc.Warnings()
	for _, w := range warnings {
		s.logger.Warn("parameter warning",
			slog.String("message", w.Message),
			slog.Any("parameters", w.Parameters),
		)
	}
	if s.warningCounter != nil && len(warnings) > 0 {
		s.warningCounter.Add(ctx, int64(len(warnings)))
	}
	span.SetAttributes(attribute.Int("parameter.warnings", len(warnings)))

	if err := pc.VerifyParameters(); err != nil {
		s.countGenerate(ctx, "invalid")
		span.RecordError(err)
		span.SetStatus(codes.Error, "verification failed")
		return nil, err
	}

	tour, err := s.profile.Tour(params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "instructions failed")
		return nil, fmt.Errorf("could not build tour: %w", err)
	}

	req := s.profile.Assemble(params, tour)
	span.SetAttributes(
		attribute.Int("request.resources", len(req.Resources())),
		attribute.Bool("request.shared_vlan", params.SharedVlanName != ""),
	)
	s.countGenerate(ctx, "ok")

	s.logger.Info("generated request",
		slog.String("node_type", params.NodeType),
		slog.Int("public_ips", params.PublicIPCount),
		slog.Int("warnings", len(warnings)),
	)

	return &GenerateResult{
		Request:  req,
		Params:   params,
		Warnings: warnings,
		Report:   pc.Report(),
	}, nil
}

func (s *ProfileService) countGenerate(ctx context.Context, outcome string) {
	if s.generateCounter == nil {
		return
	}
	s.generateCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
