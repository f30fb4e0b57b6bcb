package web

import (
	"embed"
	"html/template"
	"regexp"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var nonDigits = regexp.MustCompile(`\D`)

// walink strips a phone number down to digits for a wa.me chat link.
func walink(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

func parseTemplates() (*template.Template, error) {
	return template.New("campulse").
		Funcs(template.FuncMap{"walink": walink}).
		ParseFS(templateFS, "templates/*.html")
}
