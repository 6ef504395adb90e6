package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"erp-admin/internal/app"
	"erp-admin/internal/core"
)

type companyEditorData struct {
	ID    int
	Nonce string
	Input core.CompanyInput
	Error string
}

// companyPage handles GET /admin/erp-company?action=list|new|edit&id=N.
func (h *Handler) companyPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch q.Get("action") {
	case "new":
		h.renderCompanyEditor(w, r, http.StatusOK, companyEditorData{})
	case "edit":
		id := parseID(q.Get("id"))
		c, err := h.svc.GetCompany(r.Context(), id)
		if errors.Is(err, core.ErrNotFound) {
			h.renderCompanyList(w, r, http.StatusNotFound, "Company not found.", "error")
			return
		}
		if err != nil {
			serverErrorPage(w, r, err)
			return
		}
		h.renderCompanyEditor(w, r, http.StatusOK, companyEditorData{
			ID: c.ID,
			Input: core.CompanyInput{
				Name:         c.Name,
				Email:        c.Email,
				Phone:        c.Phone,
				Address:      c.Address,
				BaseCurrency: c.BaseCurrency,
			},
		})
	default:
		flash := ""
		switch q.Get("message") {
		case "created":
			flash = "Company created."
		case "updated":
			flash = "Company updated."
		}
		h.renderCompanyList(w, r, http.StatusOK, flash, "success")
	}
}

// companySubmit handles POST /admin/erp-company from the editor.
func (h *Handler) companySubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderCompanyEditor(w, r, http.StatusBadRequest, companyEditorData{Error: "Invalid form submission."})
		return
	}
	req := app.SaveCompanyRequest{
		ID:    parseID(r.PostForm.Get("id")),
		Nonce: r.PostForm.Get(core.FieldNonce),
		Input: core.CompanyInput{
			Name:         r.PostForm.Get("name"),
			Email:        r.PostForm.Get("email"),
			Phone:        r.PostForm.Get("phone"),
			Address:      r.PostForm.Get("address"),
			BaseCurrency: r.PostForm.Get("base_currency"),
		},
	}

	_, err := h.svc.SaveCompany(r.Context(), actorFromContext(r.Context()), req)
	if err != nil {
		data := companyEditorData{ID: req.ID, Input: req.Input}
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			data.Error = strings.TrimPrefix(err.Error(), app.ErrInvalidInput.Error()+": ")
			h.renderCompanyEditor(w, r, http.StatusUnprocessableEntity, data)
		case errors.Is(err, core.ErrInvalidNonce):
			data.Error = "The link you followed has expired. Please try again."
			h.renderCompanyEditor(w, r, http.StatusForbidden, data)
		case errors.Is(err, core.ErrNotFound):
			h.renderCompanyList(w, r, http.StatusNotFound, "Company not found.", "error")
		case errors.Is(err, app.ErrForbidden):
			h.render(w, r, http.StatusForbidden, "forbidden", "Forbidden", "", nil)
		default:
			serverErrorPage(w, r, err)
		}
		return
	}

	message := "updated"
	if req.ID == 0 {
		message = "created"
	}
	http.Redirect(w, r, core.AdminURL(core.PageCompany)+"?message="+message, http.StatusSeeOther)
}

func (h *Handler) renderCompanyList(w http.ResponseWriter, r *http.Request, status int, flash, kind string) {
	res, err := h.svc.ListCompanies(r.Context())
	if err != nil {
		serverErrorPage(w, r, err)
		return
	}
	h.renderFlash(w, r, status, "company_list", "Company", core.PageCompany, flash, kind, res)
}

func (h *Handler) renderCompanyEditor(w http.ResponseWriter, r *http.Request, status int, data companyEditorData) {
	nonce, err := h.svc.MintNonce(actorFromContext(r.Context()), core.NonceCompanyEdit)
	if err != nil {
		serverErrorPage(w, r, err)
		return
	}
	data.Nonce = nonce
	title := "Add New Company"
	if data.ID != 0 {
		title = "Edit Company"
	}
	h.render(w, r, status, "company_editor", title, core.PageCompany, data)
}

// parseID parses a record id. Anything but a positive integer is 0.
func parseID(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
