// Package web renders server-side pages from Go templates and serves their
// embedded static assets.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
)

// ViewDef names a page: its route pattern, template file, title and the
// data handed to the template.
type ViewDef struct {
	Route    string
	Template string
	Title    string
	Data     any
}

// ViewData is the template context. Pages build links with
// {{ .BasePath }} or the url func so the site works under any mount.
type ViewData struct {
	Title    string
	BasePath string
	Data     any
}

// TemplateSet maps each view file to its own clone of the layouts.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses every layout matching layoutGlob once, then clones
// that tree per view under viewDir. Parse failures surface here, never at
// request time.
func NewTemplateSet(fsys fs.FS, layoutGlob, viewDir, basePath string, views []ViewDef) (*TemplateSet, error) {
	funcs := template.FuncMap{
		"url": func(p string) string { return path.Join("/", basePath, p) },
	}

	layouts, err := template.New("").Funcs(funcs).ParseFS(fsys, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	viewFS, err := fs.Sub(fsys, viewDir)
	if err != nil {
		return nil, err
	}

	ts := &TemplateSet{views: make(map[string]*template.Template, len(views)), basePath: basePath}
	for _, v := range views {
		if _, dup := ts.views[v.Template]; dup {
			continue
		}
		t := template.Must(layouts.Clone())
		if _, err := t.ParseFS(viewFS, v.Template); err != nil {
			return nil, fmt.Errorf("parse view %s: %w", v.Template, err)
		}
		ts.views[v.Template] = t
	}
	return ts, nil
}

// PageHandler serves view inside layout with 200.
func (ts *TemplateSet) PageHandler(layout string, view ViewDef) http.HandlerFunc {
	return ts.ErrorHandler(layout, view, http.StatusOK)
}

// ErrorHandler serves view inside layout with status.
func (ts *TemplateSet) ErrorHandler(layout string, view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, status, layout, view); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// Render executes view into a buffer and only writes the response once the
// template succeeds, so a failing template never leaves half a page.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, layout string, view ViewDef) error {
	t, ok := ts.views[view.Template]
	if !ok {
		return fmt.Errorf("template not found: %s", view.Template)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layout, ViewData{
		Title:    view.Title,
		BasePath: ts.basePath,
		Data:     view.Data,
	}); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
