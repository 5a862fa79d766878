package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"ksfit/internal/view"
)

//go:embed templates/*.html
var templateFiles embed.FS

var fragments = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// HTMLFragment renders a report as the markup of the results content area
func HTMLFragment(report view.Report) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, "results", report); err != nil {
		return "", fmt.Errorf("failed to render results fragment: %w", err)
	}
	return template.HTML(buf.String()), nil
}
