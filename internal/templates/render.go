// Package templates renders HTML fragments: feature popups, toggle buttons
// and the viewer page.
package templates

import (
	"bytes"
	"embed"
	"html/template"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed fragments/*.html pages/*.html
var embedded embed.FS

// funcMap provides common template functions.
var funcMap = template.FuncMap{
	"join": strings.Join,
}

// Renderer manages HTML fragment templates.
type Renderer struct {
	templates *template.Template
	mu        sync.RWMutex
}

// New creates a renderer from *.html files in dir, layered over the
// embedded templates so a web directory can override single fragments.
func New(dir string) (*Renderer, error) {
	tmpl, err := parseEmbedded()
	if err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		if tmpl, err = tmpl.ParseFiles(matches...); err != nil {
			return nil, err
		}
	}
	return &Renderer{templates: tmpl}, nil
}

func parseEmbedded() (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(embedded, "fragments/*.html", "pages/*.html")
}

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
)

// Default returns the renderer for the embedded templates.
func Default() *Renderer {
	defaultOnce.Do(func() {
		tmpl := template.Must(parseEmbedded())
		defaultRenderer = &Renderer{templates: tmpl}
	})
	return defaultRenderer
}

// Render renders a named template to a string.
func (r *Renderer) Render(name string, data any) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MustRender renders a template and panics on error.
// Use only when you're certain the template exists.
func (r *Renderer) MustRender(name string, data any) string {
	s, err := r.Render(name, data)
	if err != nil {
		panic(err)
	}
	return s
}
