package portal

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ParameterType is the value type the portal renders and binds for a
// parameter.
type ParameterType string

const (
	ParameterTypeInteger  ParameterType = "integer"
	ParameterTypeString   ParameterType = "string"
	ParameterTypeBoolean  ParameterType = "boolean"
	ParameterTypeNodeType ParameterType = "nodetype"
)

func (t ParameterType) valid() bool {
	switch t {
	case ParameterTypeInteger, ParameterTypeString, ParameterTypeBoolean, ParameterTypeNodeType:
		return true
	}
	return false
}

// LegalValue is one entry of an enumerated parameter: the bound value and
// the label shown in the portal form.
type LegalValue struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

// Parameter declares one profile input. A parameter with LegalValues is an
// enumeration: bound values must be one of them.
type Parameter struct {
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Type            ParameterType `json:"type"`
	DefaultValue    any           `json:"defaultValue"`
	LegalValues     []LegalValue  `json:"legalValues,omitempty"`
	LongDescription string        `json:"longDescription,omitempty"`
	Advanced        bool          `json:"advanced,omitempty"`
	// Required parameters have no usable default; omitting them is an error.
	Required bool `json:"required,omitempty"`
}

// IsEnum reports whether the parameter has a closed set of values.
func (p Parameter) IsEnum() bool {
	return len(p.LegalValues) > 0
}

// Coerce converts raw caller input to the parameter's declared type.
func (p Parameter) Coerce(raw any) (any, error) {
	switch p.Type {
	case ParameterTypeInteger:
		v, err := coerceInt(raw)
		if err != nil {
			return nil, fmt.Errorf("expected an integer, got %q", fmt.Sprint(raw))
		}
		return v, nil
	case ParameterTypeBoolean:
		v, err := cast.ToBoolE(raw)
		if err != nil {
			return nil, fmt.Errorf("expected a boolean, got %q", fmt.Sprint(raw))
		}
		return v, nil
	case ParameterTypeString, ParameterTypeNodeType:
		v, err := cast.ToStringE(raw)
		if err != nil {
			return nil, fmt.Errorf("expected a string, got %T", raw)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown parameter type %q", p.Type)
	}
}

func (p Parameter) allows(v any) bool {
	if !p.IsEnum() {
		return true
	}
	for _, legal := range p.LegalValues {
		coerced, err := p.Coerce(legal.Value)
		if err == nil && coerced == v {
			return true
		}
	}
	return false
}

func (p Parameter) legalValueList() []any {
	values := make([]any, len(p.LegalValues))
	for i, legal := range p.LegalValues {
		values[i] = legal.Value
	}
	return values
}

// coerceInt reads textual input as base 10 only, so "010" is ten.
func coerceInt(raw any) (int, error) {
	switch v := raw.(type) {
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	case json.Number:
		return strconv.Atoi(strings.TrimSpace(string(v)))
	default:
		return cast.ToIntE(raw)
	}
}
