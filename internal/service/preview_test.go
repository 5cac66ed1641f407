package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"libvirt.org/go/libvirtxml"

	"github.com/terabiome/geniprofile/internal/portal"
	"github.com/terabiome/geniprofile/internal/preview"
)

type fakeDefiner struct {
	xml     string
	started bool
	err     error
}

func (f *fakeDefiner) DefineDomain(domainXML string, start bool) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.xml = domainXML
	f.started = start
	return "fake-uuid", nil
}

func newTestPreviewService(t *testing.T, definer DomainDefiner) *PreviewService {
	t.Helper()
	return NewPreviewService(newTestService(t), definer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPreview_RenderOnly(t *testing.T) {
	svc := newTestPreviewService(t, nil)

	result, err := svc.Preview(context.Background(), PreviewRequest{
		Parameters: map[string]any{"nodeType": "d740", "sharedVlanName": "oran"},
		Options:    preview.Options{Bridge: "br0"},
	})
	require.NoError(t, err)
	assert.False(t, result.Defined)

	var domain libvirtxml.Domain
	require.NoError(t, domain.Unmarshal(result.DomainXML))
	assert.Equal(t, result.UUID.String(), domain.UUID)
	assert.Equal(t, uint(8), domain.VCPU.Value)
	assert.Len(t, domain.Devices.Interfaces, 2)
}

func TestPreview_DefineWithoutHypervisor(t *testing.T) {
	svc := newTestPreviewService(t, nil)

	_, err := svc.Preview(context.Background(), PreviewRequest{Define: true})
	assert.ErrorIs(t, err, ErrNoHypervisor)
}

func TestPreview_StartImpliesDefine(t *testing.T) {
	definer := &fakeDefiner{}
	svc := newTestPreviewService(t, definer)

	result, err := svc.Preview(context.Background(), PreviewRequest{Start: true})
	require.NoError(t, err)
	assert.True(t, result.Defined)
	assert.True(t, definer.started)
	assert.Equal(t, result.DomainXML, definer.xml)
}

func TestPreview_DefineFailure(t *testing.T) {
	svc := newTestPreviewService(t, &fakeDefiner{err: errors.New("permission denied")})

	_, err := svc.Preview(context.Background(), PreviewRequest{Define: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestPreview_InvalidParameters(t *testing.T) {
	definer := &fakeDefiner{}
	svc := newTestPreviewService(t, definer)

	_, err := svc.Preview(context.Background(), PreviewRequest{
		Parameters: map[string]any{"publicIPCount": "lots"},
		Define:     true,
	})

	var verr *portal.VerificationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, definer.xml)
}
