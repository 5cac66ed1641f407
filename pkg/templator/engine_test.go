package templator

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_LoadTemplateStringWithSprig(t *testing.T) {
	engine := NewEngine()
	require.NoError(t, engine.LoadTemplateString("greeting", `{{ .Name | upper }} on {{ .Vlan | default "no vlan" }}`))

	out, err := engine.RenderToString("greeting", map[string]string{"Name": "node-0", "Vlan": ""})
	require.NoError(t, err)
	assert.Equal(t, "NODE-0 on no vlan", out)
}

func TestEngine_LoadTemplateFS(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/head.md.tpl": {Data: []byte("release {{ .Release }}")},
	}

	engine := NewEngine()
	require.NoError(t, engine.LoadTemplateFS("head", fsys, "templates/head.md.tpl"))
	assert.True(t, engine.HasTemplate("head"))

	out, err := engine.RenderToBytes("head", struct{ Release string }{"h-release"})
	require.NoError(t, err)
	assert.Equal(t, "release h-release", string(out))
}

func TestEngine_LoadTemplateFSMissingFile(t *testing.T) {
	engine := NewEngine()
	err := engine.LoadTemplateFS("head", fstest.MapFS{}, "missing.tpl")
	require.Error(t, err)
	assert.False(t, engine.HasTemplate("head"))
}

func TestEngine_LoadTemplateFromPathAndRenderToFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tail.md.tpl")
	require.NoError(t, os.WriteFile(src, []byte("{{ .Count }} addresses"), 0o644))

	engine := NewEngine()
	require.NoError(t, engine.LoadTemplate("tail", src))

	dst := filepath.Join(dir, "tail.md")
	require.NoError(t, engine.RenderToFile("tail", dst, map[string]int{"Count": 3}))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "3 addresses", string(data))
}

func TestEngine_RenderUnknownTemplate(t *testing.T) {
	_, err := NewEngine().RenderToBytes("nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template nope not found")
}

func TestEngine_MissingKeyFails(t *testing.T) {
	engine := NewEngine()
	require.NoError(t, engine.LoadTemplateString("strict", "{{ .Absent }}"))

	_, err := engine.RenderToString("strict", map[string]string{})
	require.Error(t, err)
}
