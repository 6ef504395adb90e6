package web

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"erp-admin/internal/app"
	"erp-admin/internal/core"
	webui "erp-admin/web"

	"github.com/go-chi/chi/v5"
)

// Config carries the adapter settings resolved by main.
type Config struct {
	AllowedOrigins string
	JWTSecret      string
	Metrics        *Metrics // optional; enables /metrics and request instrumentation
}

// Handler holds the ApplicationService, the chi router, and the page renderer.
type Handler struct {
	svc        app.ApplicationService
	router     chi.Router
	jwtSecret  string
	metrics    *Metrics
	views      *renderer
	fileServer http.Handler
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, cfg Config) http.Handler {
	staticFS, err := fs.Sub(webui.Static, "static")
	if err != nil {
		panic("web/static embed sub-FS failed: " + err.Error())
	}

	h := &Handler{
		svc:        svc,
		jwtSecret:  cfg.JWTSecret,
		metrics:    cfg.Metrics,
		views:      mustRenderer(),
		fileServer: http.FileServer(http.FS(staticFS)),
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	if h.metrics != nil {
		r.Use(h.metrics.Instrument)
	}
	r.Use(CORS(cfg.AllowedOrigins))

	// ── Health and metrics (public) ──────────────────────────────────────────
	r.Get("/api/health", h.health)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	// ── Auth (public API) ─────────────────────────────────────────────────────
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Static files served at /static/* ─────────────────────────────────────
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/static", h.fileServer).ServeHTTP(w, req)
	})

	// ── Browser login/logout (public HTML) ───────────────────────────────────
	r.Get("/login", h.loginPage)
	r.Post("/login", h.loginFormSubmit)
	r.Post("/logout", h.logoutPage)
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/admin/", http.StatusFound)
	})

	// ── Admin console (redirect to /login if unauthenticated) ────────────────
	// Context switches are intercepted before any page handler runs.
	r.Route("/admin", func(r chi.Router) {
		r.Use(h.RequireAuthBrowser)
		r.Use(RequestBodyLimit(1 << 20))
		r.Use(h.SwitchInterceptor)

		r.Get("/", h.dashboardPage)

		r.Group(func(r chi.Router) {
			r.Use(h.requireCapability(core.CapManageOptions))
			r.Get("/"+core.PageCompany, h.companyPage)
			r.Post("/"+core.PageCompany, h.companySubmit)
			r.Get("/"+core.PageTools, h.toolsPage)
			r.Post("/"+core.PageTools, h.toolsSubmit)
			r.Get("/"+core.PageAuditLog, h.auditLogPage)
			r.Get("/"+core.PageSettings, h.settingsPage)
			r.Get("/"+core.PageAddons, h.addonsPage)
		})

		// Host console screens outside the ERP pages.
		r.Get("/{page}", h.builtinPage)
	})

	// ── Protected API routes (return 401 JSON if unauthenticated) ────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)
		r.Get("/api/admin/chrome", h.apiChrome)
		r.Get("/api/companies", h.apiListCompanies)
		r.Get("/api/menus/hidden", h.apiHiddenMenus)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// apiChrome handles GET /api/admin/chrome and returns the filtered navigation
// for the caller, as rendered on the dashboard.
func (h *Handler) apiChrome(w http.ResponseWriter, r *http.Request) {
	chrome, err := h.svc.AdminChrome(r.Context(), actorFromContext(r.Context()), adminURL("/admin/"))
	if err != nil {
		writeError(w, r, "failed to build navigation", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, chrome)
}

func (h *Handler) apiListCompanies(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListCompanies(r.Context())
	if err != nil {
		writeError(w, r, "failed to list companies", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, res.Companies)
}

func (h *Handler) apiHiddenMenus(w http.ResponseWriter, r *http.Request) {
	if !actorFromContext(r.Context()).Can(core.CapManageOptions) {
		writeError(w, r, "manage_options required", "FORBIDDEN", http.StatusForbidden)
		return
	}
	res, err := h.svc.HiddenMenus(r.Context())
	if err != nil {
		writeError(w, r, "failed to load hide lists", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	type response struct {
		Main    []string `json:"main"`
		Toolbar []string `json:"toolbar"`
	}
	out := response{Main: res.Main, Toolbar: res.Toolbar}
	if out.Main == nil {
		out.Main = []string{}
	}
	if out.Toolbar == nil {
		out.Toolbar = []string{}
	}
	writeJSON(w, out)
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
