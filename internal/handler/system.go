package handler

import (
	"log/slog"
	"net/http"

	"github.com/terabiome/geniprofile/internal/api"
)

// HypervisorInspector reports on the local libvirt connection.
type HypervisorInspector interface {
	Info() (api.HypervisorInfo, error)
}

// System handles system-related HTTP requests
type System struct {
	hypervisor HypervisorInspector
	logger     *slog.Logger
}

// NewSystem creates a new System handler. hypervisor may be nil when the
// server runs without a libvirt connection.
func NewSystem(hypervisor HypervisorInspector, logger *slog.Logger) *System {
	return &System{
		hypervisor: hypervisor,
		logger:     logger,
	}
}

// Hypervisor handles GET /hypervisor requests to describe the preview backend
func (h *System) Hypervisor(writer http.ResponseWriter, request *http.Request) {
	if h.hypervisor == nil {
		writeResult(writer, http.StatusServiceUnavailable, GenericResponse{
			Body:    nil,
			Message: "no hypervisor connection configured",
		})
		return
	}

	info, err := h.hypervisor.Info()
	if err != nil {
		h.logger.Warn("hypervisor inspection failed", slog.String("error", err.Error()))
		writeResult(writer, http.StatusInternalServerError, GenericResponse{
			Body:    info,
			Message: "failed to inspect hypervisor",
			Error:   err.Error(),
		})
		return
	}

	writeResult(writer, http.StatusOK, GenericResponse{
		Body:    info,
		Message: "retrieved hypervisor information successfully",
	})
}
