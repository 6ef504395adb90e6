package web

import (
	"net/http"
	"net/url"

	"erp-admin/internal/app"
	"erp-admin/internal/core"
	"erp-admin/internal/logger"
)

// toolsPage handles GET /admin/erp-tools and renders the menu visibility form.
func (h *Handler) toolsPage(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	hidden, err := h.svc.HiddenMenus(r.Context())
	if err != nil {
		serverErrorPage(w, r, err)
		return
	}
	nonce, err := h.svc.MintNonce(actor, core.NonceRemoveMenu)
	if err != nil {
		serverErrorPage(w, r, err)
		return
	}

	flash, kind := "", ""
	if r.URL.Query().Get("saved") == "1" {
		flash, kind = "Settings saved.", "success"
	}
	data := struct {
		Nonce  string
		Hidden *app.HiddenMenusResult
	}{nonce, hidden}
	h.renderFlash(w, r, http.StatusOK, "tools", "Tools", core.PageTools, flash, kind, data)
}

// toolsSubmit handles POST /admin/erp-tools. Rejected submissions change
// nothing and are not reported to the client; both paths redirect back.
func (h *Handler) toolsSubmit(w http.ResponseWriter, r *http.Request) {
	back := core.AdminURL(core.PageTools)
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	// The lists come from the body only; the token may also ride on the action URL.
	form := url.Values{}
	for k, v := range r.PostForm {
		form[k] = v
	}
	if tok := r.Form.Get(core.FieldNonce); tok != "" {
		form.Set(core.FieldNonce, tok)
	}

	res, err := h.svc.SaveHiddenMenus(r.Context(), actorFromContext(r.Context()), form)
	if err != nil {
		serverErrorPage(w, r, err)
		return
	}
	if !res.Applied {
		h.metrics.observeMenuSave(string(res.Reason))
		logger.From(r.Context()).Debug("menu visibility save ignored", logger.Reason(string(res.Reason)))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	h.metrics.observeMenuSave("applied")
	http.Redirect(w, r, back+"?saved=1", http.StatusSeeOther)
}
