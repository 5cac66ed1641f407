package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terabiome/geniprofile/internal/api"
	"github.com/terabiome/geniprofile/internal/portal"
	"github.com/terabiome/geniprofile/internal/profile"
	"github.com/terabiome/geniprofile/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProfileHandler(t *testing.T) *Profile {
	t.Helper()

	prof, err := profile.New(discardLogger())
	require.NoError(t, err)

	profiles := service.NewProfileService(prof, discardLogger())
	previews := service.NewPreviewService(profiles, nil, discardLogger())
	return NewProfile(profiles, previews, discardLogger())
}

// envelope decodes a GenericResponse with its body left raw.
type envelope struct {
	Body    json.RawMessage `json:"body"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, body any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if body != nil {
		require.NoError(t, json.Unmarshal(env.Body, body))
	}
	return env
}

func TestParameters_ListsSchema(t *testing.T) {
	h := newTestProfileHandler(t)

	rec := httptest.NewRecorder()
	h.Parameters(rec, httptest.NewRequest(http.MethodGet, "/parameters", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ParametersResponse
	decodeEnvelope(t, rec, &resp)
	require.Len(t, resp.Parameters, len(profile.Parameters))
	assert.Equal(t, "nodeCount", resp.Parameters[0].Name)
	assert.Equal(t, "integer", resp.Parameters[0].Type)
}

func TestGenerate_EmptyBodyUsesDefaults(t *testing.T) {
	h := newTestProfileHandler(t)

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/generate", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.GenerateResponse
	decodeEnvelope(t, rec, &resp)
	assert.Empty(t, resp.Warnings)
	assert.True(t, strings.HasPrefix(resp.RSpec, "<?xml"))
	assert.Contains(t, resp.RSpec, `<rspec `)
	assert.Contains(t, resp.RSpec, `type="request"`)
}

func TestGenerate_WarningsInResponse(t *testing.T) {
	h := newTestProfileHandler(t)

	body := `{"parameters":{"publicIPCount":9,"nodeCount":2}}`
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.GenerateResponse
	decodeEnvelope(t, rec, &resp)
	require.Len(t, resp.Warnings, 2)
	assert.Contains(t, resp.RSpec, `count="9"`)
}

func TestGenerate_AcceptXML(t *testing.T) {
	h := newTestProfileHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"parameters":{"sharedVlanName":"oran"}}`))
	req.Header.Set("Accept", "application/xml")
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `<sharedvlan:link_shared_vlan name="oran">`)
}

func TestGenerate_VerificationFailure(t *testing.T) {
	h := newTestProfileHandler(t)

	body := `{"parameters":{"nodeCount":"abc"}}`
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var report portal.Report
	env := decodeEnvelope(t, rec, &report)
	assert.Equal(t, "parameter verification failed", env.Message)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, []string{"nodeCount"}, report.Errors[0].Parameters)
	assert.NotContains(t, rec.Body.String(), "<rspec")
}

func TestGenerate_MalformedBody(t *testing.T) {
	h := newTestProfileHandler(t)

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"parameters":`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	assert.Equal(t, "invalid request body", env.Message)
}

func TestPreview_RendersDomain(t *testing.T) {
	h := newTestProfileHandler(t)

	body := `{"parameters":{"nodeType":"m400"},"memory_mb":1024}`
	rec := httptest.NewRecorder()
	h.Preview(rec, httptest.NewRequest(http.MethodPost, "/preview", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.PreviewResponse
	decodeEnvelope(t, rec, &resp)
	assert.False(t, resp.Defined)
	assert.NotEmpty(t, resp.UUID)
	assert.Contains(t, resp.DomainXML, "<name>geniprofile-node-0</name>")
	assert.Contains(t, resp.DomainXML, ">1048576</memory>")
}

func TestPreview_DefineWithoutHypervisor(t *testing.T) {
	h := newTestProfileHandler(t)

	rec := httptest.NewRecorder()
	h.Preview(rec, httptest.NewRequest(http.MethodPost, "/preview", strings.NewReader(`{"define":true}`)))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type fakeInspector struct {
	info api.HypervisorInfo
	err  error
}

func (f fakeInspector) Info() (api.HypervisorInfo, error) {
	return f.info, f.err
}

func TestHypervisor(t *testing.T) {
	tests := []struct {
		name      string
		inspector HypervisorInspector
		code      int
	}{
		{name: "not configured", inspector: nil, code: http.StatusServiceUnavailable},
		{
			name:      "healthy",
			inspector: fakeInspector{info: api.HypervisorInfo{URI: "qemu:///system", Alive: true}},
			code:      http.StatusOK,
		},
		{
			name:      "failing",
			inspector: fakeInspector{err: errors.New("connection reset")},
			code:      http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystem(tt.inspector, discardLogger())

			rec := httptest.NewRecorder()
			h.Hypervisor(rec, httptest.NewRequest(http.MethodGet, "/hypervisor", nil))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
