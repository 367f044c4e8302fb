// Package view renders the server-side HTML pages and carries one-shot flash
// messages between a form post and the page it redirects to.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"minisocial/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names
const (
	PageIndex    = "index.html"
	PageProfile  = "profile.html"
	PageLogin    = "login.html"
	PageRegister = "register.html"
	PageNotFound = "not_found.html"
)

var pageNames = []string{PageIndex, PageProfile, PageLogin, PageRegister, PageNotFound}

// PageData is the template input shared by every page.
type PageData struct {
	Title   string
	Viewer  *model.UserSummary
	Flashes []string

	// index
	Feed  string
	Posts []model.FeedPost

	// profile
	Profile *model.Profile
}

var funcs = template.FuncMap{
	"dict": dict,
}

// dict builds a map from alternating keys and values so a partial can take
// more than one argument.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes a page. Output is buffered so a template error still yields a
// clean 500 instead of a half-written page.
func (v *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) {
	tmpl, ok := v.pages[page]
	if !ok {
		log.Printf("[view] unknown page %q", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("[view] render %s: %v", page, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
