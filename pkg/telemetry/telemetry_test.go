package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitialize_ExportsToWriter(t *testing.T) {
	var buf bytes.Buffer

	tel, err := Initialize(&buf)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "sample")
	span.End()

	require.NoError(t, tel.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name": "sample"`)
}
