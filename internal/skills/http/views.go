package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/aussiebroadwan/myskills/pkg/httpx"
	"github.com/aussiebroadwan/myskills/pkg/slogx"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	viewWelcome    = "welcome"
	viewListSkills = "listSkills"
	viewSkill      = "skill"
	viewLogin      = "login"
	viewError      = "error"
)

// Views holds one parsed template set per page, each combined with the
// shared layout.
type Views struct {
	pages map[string]*template.Template
}

func NewViews() (*Views, error) {
	v := &Views{pages: map[string]*template.Template{}}
	for _, name := range []string{viewWelcome, viewListSkills, viewSkill, viewLogin, viewError} {
		t, err := template.New(name+".html").ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// Render writes page name with status. The page is rendered into a buffer
// first so a template failure can still become a 500.
func (v *Views) Render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, ok := v.pages[name]
	if !ok {
		slogx.FromContext(r.Context()).Error("unknown view", "view", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		slogx.FromContext(r.Context()).Error("render view", "view", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// page is the data every view needs for the layout.
type page struct {
	Title    string
	Username string
}

type errorView struct {
	page
	Status  int
	Message string
}

// RenderError shows the generic error page.
func (v *Views) RenderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	v.Render(w, r, status, viewError, errorView{
		page:    page{Title: http.StatusText(status), Username: httpx.UsernameFromContext(r.Context())},
		Status:  status,
		Message: message,
	})
}

// ServerError logs err and shows a generic 500 page.
func (v *Views) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Error("request failed", "error", err)
	v.RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}
