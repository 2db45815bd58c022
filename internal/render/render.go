package render

import (
	"errors"
	"html/template"
	"io"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// pages are the templates rendered inside base.html
var pages = []string{
	"index.html",
	"detail.html",
	"post-form.html",
	"comment-form.html",
	"category.html",
	"profile.html",
	"profile-edit.html",
	"login.html",
	"signup.html",
	"about.html",
	"rules.html",
	"403.html",
	"404.html",
	"500.html",
}

// TemplateRegistry implements echo.Renderer over a map of parsed templates,
// one entry per page, each paired with the shared base layout.
type TemplateRegistry struct {
	templates map[string]*template.Template
}

// NewTemplateRegistry parses every page template from dir
func NewTemplateRegistry(dir string) (*TemplateRegistry, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFiles(
			filepath.Join(dir, page),
			filepath.Join(dir, "base.html"),
			filepath.Join(dir, "post-list.html"),
		)
		if err != nil {
			return nil, err
		}
		templates[page] = tmpl
	}
	return &TemplateRegistry{templates: templates}, nil
}

// Render renders the named page into the base layout
func (t *TemplateRegistry) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return errors.New("template not found: " + name)
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}
