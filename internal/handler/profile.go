package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/terabiome/geniprofile/internal/adapter"
	"github.com/terabiome/geniprofile/internal/api"
	"github.com/terabiome/geniprofile/internal/portal"
	"github.com/terabiome/geniprofile/internal/service"
)

// Profile handles profile generation HTTP requests
type Profile struct {
	profileService *service.ProfileService
	previewService *service.PreviewService
	logger         *slog.Logger
}

// NewProfile creates a new Profile handler
func NewProfile(profileService *service.ProfileService, previewService *service.PreviewService, logger *slog.Logger) *Profile {
	return &Profile{
		profileService: profileService,
		previewService: previewService,
		logger:         logger,
	}
}

// Parameters handles GET /parameters requests to describe the profile inputs
func (h *Profile) Parameters(writer http.ResponseWriter, request *http.Request) {
	writeResult(writer, http.StatusOK, GenericResponse{
		Body:    adapter.AdaptParameters(h.profileService.Parameters()),
		Message: "listed profile parameters successfully",
	})
}

// Generate handles POST /generate requests. Clients that accept
// application/xml get the bare document instead of the JSON envelope.
func (h *Profile) Generate(writer http.ResponseWriter, request *http.Request) {
	var generateRequest api.GenerateRequest
	cb, err := parseBodyAndHandleError(writer, request, &generateRequest, false)
	if err != nil {
		cb()
		return
	}

	result, err := h.profileService.Generate(request.Context(), generateRequest.Parameters)
	if err != nil {
		h.writeServiceError(writer, "failed to generate request document", err)
		return
	}

	response, err := adapter.AdaptGenerateResult(result)
	if err != nil {
		writeResult(writer, http.StatusInternalServerError, GenericResponse{
			Body:    nil,
			Message: "failed to serialize request document",
			Error:   err.Error(),
		})
		return
	}

	if strings.Contains(request.Header.Get("Accept"), "application/xml") {
		writeBytes(writer, http.StatusOK, "application/xml", []byte(response.RSpec))
		return
	}

	writeResult(writer, http.StatusOK, GenericResponse{
		Body:    response,
		Message: "generated request document successfully",
	})
}

// Preview handles POST /preview requests to render the node as a libvirt domain
func (h *Profile) Preview(writer http.ResponseWriter, request *http.Request) {
	var previewRequest api.PreviewRequest
	cb, err := parseBodyAndHandleError(writer, request, &previewRequest, false)
	if err != nil {
		cb()
		return
	}

	result, err := h.previewService.Preview(request.Context(), adapter.AdaptPreviewRequest(previewRequest))
	if err != nil {
		h.writeServiceError(writer, "failed to preview profile", err)
		return
	}

	writeResult(writer, http.StatusOK, GenericResponse{
		Body:    adapter.AdaptPreviewResult(result),
		Message: "rendered profile preview successfully",
	})
}

func (h *Profile) writeServiceError(writer http.ResponseWriter, message string, err error) {
	var verr *portal.VerificationError
	switch {
	case errors.As(err, &verr):
		writeResult(writer, http.StatusBadRequest, GenericResponse{
			Body:    verr.Report,
			Message: "parameter verification failed",
			Error:   err.Error(),
		})
	case errors.Is(err, service.ErrNoHypervisor):
		writeResult(writer, http.StatusServiceUnavailable, GenericResponse{
			Body:    nil,
			Message: message,
			Error:   err.Error(),
		})
	default:
		h.logger.Error(message, slog.String("error", err.Error()))
		writeResult(writer, http.StatusInternalServerError, GenericResponse{
			Body:    nil,
			Message: message,
			Error:   err.Error(),
		})
	}
}
