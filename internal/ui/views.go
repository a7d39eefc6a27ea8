// File: internal/ui/views.go
package ui

import (
	"embed"
	"html/template"
	"io/fs"
)

// PageTemplate is the name gin renders for GET /.
const PageTemplate = "index.html"

//go:embed templates/*.html
var viewsFS embed.FS

// loadTemplatesFromFS parses every page template under dir.
func loadTemplatesFromFS(fsys fs.FS, dir string) (*template.Template, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, err
	}
	return template.ParseFS(sub, "*.html")
}

// LoadTemplates parses the embedded page templates. Call during startup; if it
// returns an error, do not start the server.
func LoadTemplates() (*template.Template, error) {
	return loadTemplatesFromFS(viewsFS, "templates")
}
