package web

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_ParseAllPages(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"index.html", "upload.html", "competitor.html", "settings.html", "test_parser.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestTemplates_NavigationHighlight(t *testing.T) {
	tmpl := MustTemplates()

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "settings.html", map[string]any{
		"current_tab": "settings",
		"api_key":     "sk-<test>",
		"saved":       true,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `href="/settings" class="active"`)
	assert.NotContains(t, out, `href="/upload" class="active"`)
	assert.Contains(t, out, "sk-&lt;test&gt;")
}

func TestStatic_ContainsAssets(t *testing.T) {
	for _, name := range []string{"style.css", "app.js"} {
		_, err := fs.Stat(Static(), name)
		assert.NoError(t, err, name)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "42%", formatPercent(0.42))
	assert.Equal(t, "100%", formatPercent(1))
	assert.Equal(t, "0%", formatPercent(0))
}
