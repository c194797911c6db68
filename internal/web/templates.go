package web

import (
	"embed"
	"html/template"

	"career-recommender/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"confidence": report.FormatConfidence,
	}
	return template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
