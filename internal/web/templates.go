package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

type Templates struct {
	all *template.Template
}

func ParseTemplates() (*Templates, error) {
	t, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Templates{all: t}, nil
}

func (t *Templates) RenderPage(w http.ResponseWriter, data ViewData) {
	t.RenderPageStatus(w, http.StatusOK, data)
}

// RenderPageStatus renders data.ContentTemplate inside the base layout.
// Nothing is written until both templates succeed.
func (t *Templates) RenderPageStatus(w http.ResponseWriter, status int, data ViewData) {
	var content bytes.Buffer
	if err := t.all.ExecuteTemplate(&content, data.ContentTemplate, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	pageData := data
	pageData.ContentHTML = template.HTML(content.String())
	var page bytes.Buffer
	if err := t.all.ExecuteTemplate(&page, "base", pageData); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = page.WriteTo(w)
}
