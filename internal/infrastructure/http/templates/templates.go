// Package templates embeds the catalog's HTML pages
package templates

import (
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed html/*.html
var files embed.FS

// Parse parses every page together with the shared layout blocks
func Parse() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "html/*.html")
}

// Funcs returns the helpers available to every page
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 at 3:04 PM")
		},
		"lower": strings.ToLower,
		// chartSrc marks a base64 PNG data URI as safe for img src
		"chartSrc": func(uri string) template.URL {
			if !strings.HasPrefix(uri, "data:image/png;base64,") {
				return ""
			}
			return template.URL(uri)
		},
	}
}
