package echoweb

import (
	"html/template"
	"io"
	iofs "io/fs"
	"path"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/spms/core/session"
	appfs "github.com/trezcool/spms/fs"
)

const (
	csrfFieldName = "csrf_token"
	baseTemplate  = "templates/_base.gohtml"
)

type (
	navItem struct {
		Path  string
		Label string
	}

	// pageData is what every view receives; page-specific values live in Data.
	pageData struct {
		Title     string
		Active    string
		Session   session.Session
		Flashes   []Flash
		CSRFField template.HTML
		Nav       []navItem
		Data      interface{}
	}

	views struct {
		cache map[string]*template.Template
	}
)

var nav = []navItem{
	{Path: "/", Label: "Dashboard"},
	{Path: "/students", Label: "Students"},
	{Path: "/batches", Label: "Batches"},
	{Path: "/assignments", Label: "Assignments"},
	{Path: "/mock-interviews", Label: "Mock Interviews"},
	{Path: "/coding-contests", Label: "Coding Contests"},
	{Path: "/placement", Label: "Placement Ready"},
}

var _ echo.Renderer = (*views)(nil)

// parseTemplates pairs every page template with the base layout.
func parseTemplates(strict bool) (*views, error) {
	fps, err := iofs.Glob(appfs.Templates, "templates/*.gohtml")
	if err != nil {
		return nil, errors.Wrap(err, "listing templates")
	}

	v := &views{cache: make(map[string]*template.Template, len(fps))}
	for _, fp := range fps {
		fname := path.Base(fp)
		if strings.HasPrefix(fname, "_") {
			continue
		}
		tmpl, err := template.New(fname).ParseFS(appfs.Templates, baseTemplate, fp)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing template %s", fname)
		}
		if strict {
			tmpl = tmpl.Option("missingkey=error")
		}
		v.cache[strings.TrimSuffix(fname, path.Ext(fname))] = tmpl
	}
	return v, nil
}

func (v *views) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := v.cache[name]
	if !ok {
		return errors.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// render wraps data in the page layout and writes it with the given status code.
func render(ctx echo.Context, code int, name, title string, data interface{}) error {
	return ctx.Render(code, name, pageData{
		Title:     title,
		Active:    activePath(ctx.Request().URL.Path),
		Session:   getSession(ctx),
		Flashes:   getFlashes(ctx),
		CSRFField: csrf.TemplateField(ctx.Request()),
		Nav:       nav,
		Data:      data,
	})
}

// activePath maps a request path to its navigation entry ("/students/edit/3" → "/students").
func activePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "/"
	}
	return "/" + strings.SplitN(p, "/", 2)[0]
}
