// Package web embeds the HTML templates and static assets served by the dashboard.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page and partial template
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"percent": formatPercent,
	}).ParseFS(templateFS, "templates/*.html")
}

// MustTemplates is Templates for use at startup; the templates are compiled in
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// Static returns the asset tree rooted at static/
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
