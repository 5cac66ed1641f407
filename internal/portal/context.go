package portal

import (
	"fmt"
	"log/slog"
	"sort"
)

// Context collects parameter declarations and the warnings and errors
// produced while binding and checking them. One Context serves exactly one
// generation pass.
type Context struct {
	parameters []Parameter
	index      map[string]int
	warnings   []ParameterWarning
	errors     []ParameterError
	logger     *slog.Logger
}

func NewContext(logger *slog.Logger) *Context {
	return &Context{
		index:  make(map[string]int),
		logger: logger.With(slog.String("component", "portal")),
	}
}

// DefineParameter declares p. Declaring the same name twice, an unknown
// type, or a default outside the legal values is a definition error.
func (c *Context) DefineParameter(p Parameter) error {
	if p.Name == "" {
		return fmt.Errorf("parameter name is required")
	}
	if _, exists := c.index[p.Name]; exists {
		return fmt.Errorf("parameter %s already defined", p.Name)
	}
	if !p.Type.valid() {
		return fmt.Errorf("parameter %s has unknown type %q", p.Name, p.Type)
	}

	if p.DefaultValue != nil {
		def, err := p.Coerce(p.DefaultValue)
		if err != nil {
			return fmt.Errorf("parameter %s default: %w", p.Name, err)
		}
		if !p.allows(def) {
			return fmt.Errorf("parameter %s default %v is not one of %v", p.Name, def, p.legalValueList())
		}
		p.DefaultValue = def
	}

	c.index[p.Name] = len(c.parameters)
	c.parameters = append(c.parameters, p)
	return nil
}

// Parameters returns the declared parameters in declaration order.
func (c *Context) Parameters() []Parameter {
	out := make([]Parameter, len(c.parameters))
	copy(out, c.parameters)
	return out
}

// BindParameters resolves every declared parameter from input, falling back
// to defaults. Type and legal-value failures are recorded as errors; the
// returned Bindings hold whatever could be resolved. A *VerificationError
// is returned when any error was recorded.
func (c *Context) BindParameters(input map[string]any) (*Bindings, error) {
	values := make(map[string]any, len(c.parameters))

	for _, p := range c.parameters {
		raw, supplied := input[p.Name]
		if !supplied || raw == nil {
			if p.Required && p.DefaultValue == nil {
				c.ReportError(NewParameterError("A value is required", p.Name))
				continue
			}
			values[p.Name] = p.DefaultValue
			continue
		}

		v, err := p.Coerce(raw)
		if err != nil {
			c.ReportError(NewParameterError(fmt.Sprintf("Invalid value: %s", err), p.Name))
			continue
		}
		if !p.allows(v) {
			c.ReportError(NewParameterError(
				fmt.Sprintf("Value %v is not one of %v", v, p.legalValueList()), p.Name))
			continue
		}
		values[p.Name] = v
	}

	var unknown []string
	for name := range input {
		if _, ok := c.index[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		c.logger.Debug("ignoring undeclared parameters", slog.Any("names", unknown))
	}

	bindings := &Bindings{values: values}
	if len(c.errors) > 0 {
		return bindings, c.verificationError()
	}
	return bindings, nil
}

func (c *Context) ReportWarning(w ParameterWarning) {
	c.logger.Debug("parameter warning",
		slog.String("message", w.Message),
		slog.Any("parameters", w.Parameters),
	)
	c.warnings = append(c.warnings, w)
}

func (c *Context) ReportError(e ParameterError) {
	c.logger.Debug("parameter error",
		slog.String("message", e.Message),
		slog.Any("parameters", e.Parameters),
	)
	c.errors = append(c.errors, e)
}

func (c *Context) Warnings() []ParameterWarning {
	out := make([]ParameterWarning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

func (c *Context) Errors() []ParameterError {
	out := make([]ParameterError, len(c.errors))
	copy(out, c.errors)
	return out
}

// Report returns the current warnings and errors in portal JSON form.
func (c *Context) Report() Report {
	return newReport(c.errors, c.warnings)
}

// VerifyParameters fails only when errors were recorded. Warnings are
// carried in the report but never block generation.
func (c *Context) VerifyParameters() error {
	if len(c.errors) > 0 {
		return c.verificationError()
	}
	return nil
}

func (c *Context) verificationError() *VerificationError {
	return &VerificationError{Report: c.Report()}
}
