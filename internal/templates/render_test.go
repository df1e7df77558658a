package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_RendersEmbedded(t *testing.T) {
	r := Default()

	html, err := r.Render("overlay-popup", "Adams <County>")
	require.NoError(t, err)
	assert.Equal(t, `<div class="overlay-popup"><strong>Adams &lt;County&gt;</strong></div>`, html)

	html, err = r.Render("toggle-bar", []map[string]any{
		{"MapID": "senate", "OverlayID": "counties", "Label": "Show Counties", "Visible": false},
		{"MapID": "senate", "OverlayID": "zipcodes", "Label": "Hide Zip Codes", "Visible": true},
	})
	require.NoError(t, err)
	assert.Contains(t, html, `id="toggle-senate-counties" class="overlay-toggle"`)
	assert.Contains(t, html, `id="toggle-senate-zipcodes" class="overlay-toggle active"`)
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Default().Render("missing", nil)
	assert.Error(t, err)
	assert.Panics(t, func() { Default().MustRender("missing", nil) })
}

func TestNew_OverridesFragment(t *testing.T) {
	dir := t.TempDir()
	override := `{{define "overlay-popup"}}<p>{{.}}</p>{{end}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "popup.html"), []byte(override), 0644))

	r, err := New(dir)
	require.NoError(t, err)

	html, err := r.Render("overlay-popup", "Boulder")
	require.NoError(t, err)
	assert.Equal(t, "<p>Boulder</p>", html)

	// Templates the directory does not define still come from the embed.
	_, err = r.Render("overlay-toggle", map[string]any{"MapID": "house", "OverlayID": "counties", "Label": "Show Counties"})
	assert.NoError(t, err)
}

func TestNew_EmptyDir(t *testing.T) {
	r, err := New(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	_, err = r.Render("district-popup", map[string]any{"Label": "Senate District", "District": "1"})
	assert.NoError(t, err)
}
