package templator

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Engine holds named text templates. Every template has the sprig function
// set available.
type Engine struct {
	templates map[string]*template.Template
}

func NewEngine() *Engine {
	return &Engine{
		templates: make(map[string]*template.Template),
	}
}

func (e *Engine) LoadTemplate(name, path string) error {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).ParseFiles(path)
	if err != nil {
		return fmt.Errorf("failed to load template %s from %s: %w", name, path, err)
	}
	e.templates[name] = tmpl.Lookup(filepath.Base(path))
	return nil
}

// LoadTemplateFS parses a single file from fsys under name.
func (e *Engine) LoadTemplateFS(name string, fsys fs.FS, path string) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read template %s from %s: %w", name, path, err)
	}
	return e.LoadTemplateString(name, string(data))
}

func (e *Engine) LoadTemplateString(name, text string) error {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	e.templates[name] = tmpl
	return nil
}

func (e *Engine) HasTemplate(name string) bool {
	_, exists := e.templates[name]
	return exists
}

func (e *Engine) RenderToFile(name, outputPath string, data any) error {
	tmpl, exists := e.templates[name]
	if !exists {
		return fmt.Errorf("template %s not found", name)
	}

	file, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return nil
}

func (e *Engine) RenderToBytes(name string, data any) ([]byte, error) {
	tmpl, exists := e.templates[name]
	if !exists {
		return nil, fmt.Errorf("template %s not found", name)
	}

	buf := bytes.NewBuffer([]byte{})
	if err := tmpl.Execute(buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return buf.Bytes(), nil
}

func (e *Engine) RenderToString(name string, data any) (string, error) {
	b, err := e.RenderToBytes(name, data)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
