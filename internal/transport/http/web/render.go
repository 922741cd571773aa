// Package web serves the single study page.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders the page templates for echo.
type Renderer struct {
	templates *template.Template
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewRenderer parses the embedded templates.
func NewRenderer() *Renderer {
	r := &Renderer{
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		sanitizer: bluemonday.UGCPolicy(),
	}
	r.templates = template.Must(template.New("").Funcs(template.FuncMap{
		"markdown": r.Markdown,
		"label":    label,
	}).ParseFS(templateFS, "templates/*.html"))
	return r
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Markdown converts model output to sanitized HTML. Output that fails to
// convert is shown escaped.
func (r *Renderer) Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(r.sanitizer.SanitizeBytes(buf.Bytes()))
}

func label(f domain.Feature) string {
	switch f {
	case domain.FeatureExplain:
		return "Concept Explainer"
	case domain.FeatureSummarize:
		return "Summarizer"
	case domain.FeatureQuiz:
		return "Quiz Generator"
	case domain.FeatureFlashcards:
		return "Flashcards"
	case domain.FeatureHistory:
		return "History"
	}
	return "Home"
}
