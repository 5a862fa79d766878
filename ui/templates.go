package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
)

//go:embed templates/*.html templates/*.md
var templateFiles embed.FS

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// loadHelp renders the markdown help panel shown under the form
func loadHelp() (template.HTML, error) {
	src, err := templateFiles.ReadFile("templates/help.md")
	if err != nil {
		return "", fmt.Errorf("failed to read help: %w", err)
	}
	return template.HTML(markdown.ToHTML(src, nil, nil)), nil
}

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	// Render to a buffer first so a template error never leaves a half-written page
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("[Templates] error rendering %s: %v", templateName, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("[Templates] error writing %s: %v", templateName, err)
	}
}
