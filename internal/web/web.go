// Package web holds the embedded page templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page template. Page names are the file names,
// e.g. "home.html".
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}
