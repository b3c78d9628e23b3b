package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_AllPlaceholders(t *testing.T) {
	tmpl := `<html><head><style>body { color: #333; }</style></head>` +
		`<body>Hi {{name}}, you paid {{price}} for a session with {{mentor_name}}.` +
		` Join: <a href="{{hyperlink}}">here</a></body></html>`

	out, err := Render(tmpl, map[string]string{
		"name":        "Ann",
		"price":       "42",
		"hyperlink":   "http://x",
		"mentor_name": "Bo",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Hi Ann, you paid 42 for a session with Bo.")
	assert.Contains(t, out, `href="http://x"`)
	assert.Contains(t, out, "body { color: #333; }", "literal CSS braces must survive")
	assert.NotContains(t, out, "{{", "no residual double-brace markers")
	assert.NotContains(t, out, "}}")
}

func TestRender_LiteralBracesOnlyRoundTrip(t *testing.T) {
	tmpl := `<style>.card { margin: 0; } @media (max-width: 600px) { .card { padding: 4px; } }</style>`

	out, err := Render(tmpl, map[string]string{"name": "unused", "extra": "also unused"})
	require.NoError(t, err)
	assert.Equal(t, tmpl, out)
}

func TestRender_Idempotent(t *testing.T) {
	tmpl := `<style>a { color: red; }</style><p>{{name}} pays {{price}}</p>` +
		`<a href="{{hyperlink}}">{{mentor_name}}</a>`
	bindings := map[string]string{
		"name":        "Ann",
		"price":       "50.0",
		"hyperlink":   "https://meet.example/abc",
		"mentor_name": "Bo",
	}

	once, err := Render(tmpl, bindings)
	require.NoError(t, err)

	twice, err := Render(once, bindings)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestRender_MissingBinding(t *testing.T) {
	tmpl := `<p>{{name}} owes {{price}}</p>`

	_, err := Render(tmpl, map[string]string{"name": "Ann"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingBinding)
	assert.Contains(t, err.Error(), "price")
}

func TestRender_PlaceholdersAreCaseSensitive(t *testing.T) {
	// {{Name}} is not in the vocabulary, so it is literal brace text
	// and survives untouched.
	tmpl := `<p>{{Name}} and {{name}}</p>`

	out, err := Render(tmpl, map[string]string{"name": "Ann"})
	require.NoError(t, err)
	assert.Equal(t, `<p>{{Name}} and Ann</p>`, out)
}

func TestRender_UnknownDoubleBraceTextSurvives(t *testing.T) {
	tmpl := `<p>docs about {{templating}} syntax</p>`

	out, err := Render(tmpl, map[string]string{"name": "Ann"})
	require.NoError(t, err)
	assert.Equal(t, tmpl, out)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>{{name}}</p>"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>{{name}}</p>", got)

	_, err = Load(filepath.Join(dir, "missing.html"))
	require.Error(t, err)
}

func TestRender_ShippedTemplate(t *testing.T) {
	tmpl, err := Load(filepath.Join("..", "..", "template.html"))
	require.NoError(t, err)

	for _, p := range Placeholders {
		require.Contains(t, tmpl, "{{"+p+"}}")
	}

	out, err := Render(tmpl, map[string]string{
		"name":        "Ann",
		"price":       "50.0",
		"hyperlink":   "https://meet.example/abc",
		"mentor_name": "Bo",
	})
	require.NoError(t, err)
	assert.False(t, strings.Contains(out, "{{"), "no residual markers in shipped template")
}
