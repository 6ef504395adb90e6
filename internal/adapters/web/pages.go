package web

import (
	"net/http"

	"erp-admin/internal/app"
	"erp-admin/internal/core"
	"erp-admin/web/templates/layouts"

	"github.com/go-chi/chi/v5"
)

// ── Login page ────────────────────────────────────────────────────────────────

// loginPage handles GET /login and renders the sign-in page.
// Redirects to the console if already authenticated.
func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.claimsFromRequest(r); err == nil {
		http.Redirect(w, r, "/admin/", http.StatusSeeOther)
		return
	}
	h.views.loginPage(w, r, http.StatusOK, "")
}

// loginFormSubmit handles POST /login (form-based login).
func (h *Handler) loginFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.views.loginPage(w, r, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	session, err := h.svc.AuthenticateUser(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		h.views.loginPage(w, r, http.StatusUnauthorized, "Invalid username or password.")
		return
	}
	if err := h.issueSession(w, session); err != nil {
		h.views.loginPage(w, r, http.StatusInternalServerError, "Server error. Please try again.")
		return
	}
	http.Redirect(w, r, "/admin/", http.StatusSeeOther)
}

// logoutPage handles POST /logout, clears the cookie and redirects to login.
func (h *Handler) logoutPage(w http.ResponseWriter, r *http.Request) {
	clearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// dashboardPage handles GET /admin/.
func (h *Handler) dashboardPage(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	prefs, err := h.svc.Preferences(r.Context(), actor.UserID)
	if err != nil {
		serverErrorPage(w, r, err)
		return
	}
	data := struct {
		Username string
		Module   core.Module
		Company  *core.Company
	}{actor.Username, prefs.Module, prefs.Company}
	h.render(w, r, http.StatusOK, "dashboard", "Dashboard", "dashboard", data)
}

// builtinPage handles GET /admin/{page} for host screens such as media or users.
func (h *Handler) builtinPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "page")
	title := slug
	for _, e := range core.DefaultMainMenu().Items() {
		if e.Slug == slug {
			title = e.Title
		}
	}
	h.render(w, r, http.StatusOK, "builtin", title, slug, nil)
}

// ── ERP pages ─────────────────────────────────────────────────────────────────

// auditLogPage handles GET /admin/erp-audit-log.
func (h *Handler) auditLogPage(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.RecentAudit(r.Context(), 100)
	if err != nil {
		serverErrorPage(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "audit_log", "Audit Log", core.PageAuditLog, res)
}

// settingsPage handles GET /admin/erp-settings.
func (h *Handler) settingsPage(w http.ResponseWriter, r *http.Request) {
	modules, err := h.svc.ListModules(r.Context())
	if err != nil {
		serverErrorPage(w, r, err)
		return
	}
	prefs, err := h.svc.Preferences(r.Context(), actorFromContext(r.Context()).UserID)
	if err != nil {
		serverErrorPage(w, r, err)
		return
	}
	data := struct {
		Modules *app.ModuleListResult
		Current core.Module
	}{modules, prefs.Module}
	h.render(w, r, http.StatusOK, "settings", "Settings", core.PageSettings, data)
}

// addonsPage handles GET /admin/erp-addons.
func (h *Handler) addonsPage(w http.ResponseWriter, r *http.Request) {
	modules, err := h.svc.ListModules(r.Context())
	if err != nil {
		serverErrorPage(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "addons", "Add-Ons", core.PageAddons, modules)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// requireCapability renders a 403 page for actors without capability c.
func (h *Handler) requireCapability(c core.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !actorFromContext(r.Context()).Can(c) {
				h.render(w, r, http.StatusForbidden, "forbidden", "Forbidden", "", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// render builds the filtered navigation for the request and renders page
// name inside the app layout.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, title, activeNav string, data any) {
	h.renderFlash(w, r, status, name, title, activeNav, "", "", data)
}

func (h *Handler) renderFlash(w http.ResponseWriter, r *http.Request, status int, name, title, activeNav, flash, flashKind string, data any) {
	actor := actorFromContext(r.Context())
	chrome, err := h.svc.AdminChrome(r.Context(), actor, currentURL(r))
	if err != nil {
		serverErrorPage(w, r, err)
		return
	}

	company := "- None -"
	if chrome.CurrentCompany != nil {
		company = chrome.CurrentCompany.Name
	}
	h.views.page(w, r, status, name, layouts.Page{
		Layout: layouts.AppLayoutData{
			Title:       title,
			ModuleTitle: chrome.CurrentModule.Title,
			CompanyName: company,
			Username:    actor.Username,
			Role:        actor.Role,
			ActiveNav:   activeNav,
			FlashMsg:    flash,
			FlashKind:   flashKind,
			Chrome:      chrome,
		},
		Data: data,
	})
}
