package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/terabiome/geniprofile/internal/portal"
)

// loadParameterFile reads parameter values from a JSON or YAML file. Values
// may be given bare or wrapped as {"value": x}.
func loadParameterFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read parameter file: %w", err)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("could not parse parameter file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("could not parse parameter file %s: %w", path, err)
		}
	}

	for name, value := range raw {
		if wrapped, ok := value.(map[string]any); ok {
			if v, ok := wrapped["value"]; ok {
				raw[name] = v
			}
		}
	}
	return raw, nil
}

// applyOverrides sets name=value pairs on params. Values stay strings and are
// coerced when bound.
func applyOverrides(params map[string]any, overrides []string) (map[string]any, error) {
	if params == nil {
		params = map[string]any{}
	}
	for _, override := range overrides {
		name, value, ok := strings.Cut(override, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter override %q, expected name=value", override)
		}
		params[name] = value
	}
	return params, nil
}

func collectParameters(paramsFile string, overrides []string) (map[string]any, error) {
	var params map[string]any
	if paramsFile != "" {
		var err error
		if params, err = loadParameterFile(paramsFile); err != nil {
			return nil, err
		}
	}
	return applyOverrides(params, overrides)
}

// writeReport writes the verification report where the portal expects it.
func writeReport(path string, report portal.Report) error {
	if path == "" {
		return nil
	}

	data, err := report.JSON()
	if err != nil {
		return fmt.Errorf("could not encode parameter report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write parameter report: %w", err)
	}
	return nil
}
