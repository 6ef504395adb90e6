package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	webui "erp-admin/web"
	"erp-admin/web/templates/layouts"
)

// pageTemplates are the page bodies rendered inside the app layout.
var pageTemplates = []string{
	"dashboard", "company_list", "company_editor", "tools",
	"audit_log", "settings", "addons", "builtin", "forbidden",
}

// renderer holds one parsed template set per page. Each set is the app layout
// plus that page's "content" block.
type renderer struct {
	pages map[string]*template.Template
	login *template.Template
}

func newRenderer(fsys fs.FS) (*renderer, error) {
	base, err := template.ParseFS(fsys, "templates/layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	rd := &renderer{pages: make(map[string]*template.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(fsys, "templates/pages/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		rd.pages[name] = t
	}
	rd.login, err = template.ParseFS(fsys, "templates/pages/login.html")
	if err != nil {
		return nil, fmt.Errorf("parse login: %w", err)
	}
	return rd, nil
}

func mustRenderer() *renderer {
	rd, err := newRenderer(webui.Templates)
	if err != nil {
		panic("web templates: " + err.Error())
	}
	return rd
}

// page renders name inside the app layout. The output is buffered so a
// template error still yields a clean 500.
func (rd *renderer) page(w http.ResponseWriter, r *http.Request, status int, name string, p layouts.Page) {
	t, ok := rd.pages[name]
	if !ok {
		serverErrorPage(w, r, fmt.Errorf("unknown page template %q", name))
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "app", p); err != nil {
		serverErrorPage(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (rd *renderer) loginPage(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	var buf bytes.Buffer
	if err := rd.login.ExecuteTemplate(&buf, "login", struct{ Error string }{errMsg}); err != nil {
		serverErrorPage(w, r, fmt.Errorf("render login: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
