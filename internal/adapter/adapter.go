package adapter

import (
	"fmt"

	"github.com/terabiome/geniprofile/internal/api"
	"github.com/terabiome/geniprofile/internal/portal"
	"github.com/terabiome/geniprofile/internal/preview"
	"github.com/terabiome/geniprofile/internal/service"
)

func AdaptParameters(params []portal.Parameter) api.ParametersResponse {
	result := make([]api.Parameter, len(params))
	for i, p := range params {
		var legal []api.LegalValue
		for _, lv := range p.LegalValues {
			legal = append(legal, api.LegalValue{Value: lv.Value, Label: lv.Label})
		}

		result[i] = api.Parameter{
			Name:            p.Name,
			Description:     p.Description,
			Type:            string(p.Type),
			DefaultValue:    p.DefaultValue,
			LegalValues:     legal,
			LongDescription: p.LongDescription,
			Advanced:        p.Advanced,
			Required:        p.Required,
		}
	}
	return api.ParametersResponse{Parameters: result}
}

func AdaptWarnings(warnings []portal.ParameterWarning) []api.Warning {
	result := make([]api.Warning, len(warnings))
	for i, w := range warnings {
		result[i] = api.Warning{
			Message:    w.Message,
			Parameters: w.Parameters,
		}
	}
	return result
}

func AdaptGenerateResult(result *service.GenerateResult) (api.GenerateResponse, error) {
	data, err := result.Request.Marshal()
	if err != nil {
		return api.GenerateResponse{}, fmt.Errorf("could not serialize request document: %w", err)
	}

	return api.GenerateResponse{
		RSpec:    string(data),
		Warnings: AdaptWarnings(result.Warnings),
	}, nil
}

func AdaptPreviewRequest(req api.PreviewRequest) service.PreviewRequest {
	return service.PreviewRequest{
		Parameters: req.Parameters,
		Options: preview.Options{
			VCPU:     req.VCPU,
			MemoryMB: req.MemoryMB,
			DiskPath: req.DiskPath,
			Bridge:   req.Bridge,
		},
		Define: req.Define,
		Start:  req.Start,
	}
}

func AdaptPreviewResult(result *service.PreviewResult) api.PreviewResponse {
	return api.PreviewResponse{
		UUID:      result.UUID.String(),
		DomainXML: result.DomainXML,
		Defined:   result.Defined,
		Warnings:  AdaptWarnings(result.Warnings),
	}
}
