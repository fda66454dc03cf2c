package http

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/mind-engage/sheetquiz/internal/quiz"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"imageSrc": func(v *string) string {
		if v == nil {
			return ""
		}
		return imageSrc(*v)
	},
}).ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Page  Page
	View  quiz.View
	Error string
}

func templateFor(p quiz.Phase) string {
	switch p {
	case quiz.PhaseInProgress:
		return "test.html"
	case quiz.PhaseSubmitted:
		return "summary.html"
	}
	return "upload.html"
}

func (h *QuizHandlers) render(w http.ResponseWriter, s *quiz.Session, status int, msg string) {
	v := s.View()
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, templateFor(v.Phase), pageData{Page: h.Page, View: v, Error: msg}); err != nil {
		log.Printf("render %s: %v", v.Phase, err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// imageSrc serves bare file names from /assets and leaves real URLs alone.
func imageSrc(v string) string {
	if u, err := url.Parse(v); err == nil && (u.Scheme != "" || strings.HasPrefix(v, "/")) {
		return v
	}
	parts := strings.Split(strings.TrimPrefix(v, "./"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return "/assets/" + strings.Join(parts, "/")
}
