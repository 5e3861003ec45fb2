package echoweb

import (
	"html/template"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core/assignment"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/fs"
)

const (
	layoutFile = "templates/base.html"
	pagesDir   = "templates/pages"
)

// absent values render as blanks
var templateFuncs = template.FuncMap{
	"nullInt": func(n null.Int) string {
		if !n.Valid {
			return ""
		}
		return strconv.Itoa(n.Int)
	},
	"nullDate": func(t null.Time) string {
		if !t.Valid {
			return ""
		}
		return t.Time.Format(assignment.DateLayout)
	},
	"gradePoints": func(g *grade.Grade) string {
		if g == nil {
			return ""
		}
		return g.PointsString()
	},
	"gradeComment": func(g *grade.Grade) string {
		if g == nil {
			return ""
		}
		return g.Comment
	},
	"timestamp": func(t time.Time) string {
		return t.Format("Jan 2, 2006 15:04 MST")
	},
}

// templateRenderer is an echo.Renderer over the embedded pages; each page is executed inside the base layout.
type templateRenderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*templateRenderer)(nil)

func newTemplateRenderer() (*templateRenderer, error) {
	fps, err := fs.Glob(appfs.FS, pagesDir+"/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "listing page templates")
	}

	r := &templateRenderer{pages: make(map[string]*template.Template, len(fps))}
	for _, fp := range fps {
		name := strings.TrimSuffix(path.Base(fp), ".html")
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(appfs.FS, layoutFile, fp)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing page template %q", name)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("page template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
