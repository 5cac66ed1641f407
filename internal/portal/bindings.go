package portal

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// Bindings are the resolved parameter values of one pass. Read-only.
type Bindings struct {
	values map[string]any
}

func (b *Bindings) Value(name string) (any, bool) {
	v, ok := b.values[name]
	return v, ok
}

func (b *Bindings) Int(name string) int {
	return cast.ToInt(b.values[name])
}

func (b *Bindings) String(name string) string {
	return cast.ToString(b.values[name])
}

func (b *Bindings) Bool(name string) bool {
	return cast.ToBool(b.values[name])
}

// Map returns a copy of the bound values.
func (b *Bindings) Map() map[string]any {
	out := make(map[string]any, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

// Decode copies the bound values into out, a pointer to a struct whose
// fields carry `mapstructure` tags naming the parameters.
func (b *Bindings) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnset:       false,
	})
	if err != nil {
		return fmt.Errorf("could not create parameter decoder: %w", err)
	}

	if err := decoder.Decode(b.values); err != nil {
		return fmt.Errorf("could not decode parameters: %w", err)
	}
	return nil
}
