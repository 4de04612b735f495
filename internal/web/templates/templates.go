// Package templates holds the embedded HTML pages for the browser UI.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed *.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "*.html"))

// Render writes the named page with the given data and status code.
func Render(w http.ResponseWriter, status int, name string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
