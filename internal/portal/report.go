package portal

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParameterWarning is advisory feedback tied to one or more parameters.
// It never stops document generation.
type ParameterWarning struct {
	Message    string
	Parameters []string
}

func NewParameterWarning(message string, parameters ...string) ParameterWarning {
	return ParameterWarning{Message: message, Parameters: parameters}
}

func (w ParameterWarning) String() string {
	return fmt.Sprintf("%s (%s)", w.Message, strings.Join(w.Parameters, ", "))
}

// ParameterError is a binding or validation failure that prevents a
// document from being generated.
type ParameterError struct {
	Message    string
	Parameters []string
}

func NewParameterError(message string, parameters ...string) ParameterError {
	return ParameterError{Message: message, Parameters: parameters}
}

func (e ParameterError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Parameters, ", "))
}

// ReportEntry is the wire form of a warning or error.
type ReportEntry struct {
	Type       string   `json:"type"`
	Message    string   `json:"message"`
	Parameters []string `json:"parameters"`
}

// Report is the JSON document the portal reads back after verification.
type Report struct {
	Errors   []ReportEntry `json:"errors"`
	Warnings []ReportEntry `json:"warnings"`
}

func newReport(errs []ParameterError, warnings []ParameterWarning) Report {
	report := Report{
		Errors:   make([]ReportEntry, 0, len(errs)),
		Warnings: make([]ReportEntry, 0, len(warnings)),
	}
	for _, e := range errs {
		report.Errors = append(report.Errors, ReportEntry{
			Type:       "ParameterError",
			Message:    e.Message,
			Parameters: e.Parameters,
		})
	}
	for _, w := range warnings {
		report.Warnings = append(report.Warnings, ReportEntry{
			Type:       "ParameterWarning",
			Message:    w.Message,
			Parameters: w.Parameters,
		})
	}
	return report
}

func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// VerificationError is returned when binding or verification recorded at
// least one ParameterError.
type VerificationError struct {
	Report Report
}

func (e *VerificationError) Error() string {
	msgs := make([]string, len(e.Report.Errors))
	for i, entry := range e.Report.Errors {
		msgs[i] = fmt.Sprintf("%s (%s)", entry.Message, strings.Join(entry.Parameters, ", "))
	}
	return fmt.Sprintf("parameter verification failed: %s", strings.Join(msgs, "; "))
}
