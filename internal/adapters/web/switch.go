package web

import (
	"net/http"
	"net/url"

	"erp-admin/internal/core"
	"erp-admin/internal/logger"

	"go.uber.org/zap"
)

// switchParams are stripped from the URL the switcher links are built from.
var switchParams = []string{core.ParamModule, core.NonceModeSwitch, core.ParamCompany, core.NonceCompanySwitch}

// SwitchInterceptor runs the module and company switches on every admin
// request. An applied switch ends the request with a 302; anything else falls
// through to the page unchanged.
func (h *Handler) SwitchInterceptor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if !q.Has(core.NonceModeSwitch) && !q.Has(core.NonceCompanySwitch) {
			next.ServeHTTP(w, r)
			return
		}

		// Values may come from the body as well; tokens are read from the query only.
		if err := r.ParseForm(); err != nil {
			next.ServeHTTP(w, r)
			return
		}
		actor := actorFromContext(r.Context())
		res, err := h.svc.HandleSwitch(r.Context(), actor, core.SwitchRequest{Query: q, Form: r.Form})
		if err != nil {
			serverErrorPage(w, r, err)
			return
		}
		h.metrics.observeSwitch(res)

		log := logger.From(r.Context())
		target, redirect := res.Outcome.Redirect()
		if !redirect {
			if res.Kind != "" {
				log.Debug("switch ignored", logger.Op(res.Kind), logger.Reason(string(res.Reason)), logger.UserID(actor.UserID))
			}
			next.ServeHTTP(w, r)
			return
		}
		log.Info("context switched", logger.Op(res.Kind), zap.String("value", res.Value), logger.UserID(actor.UserID))
		http.Redirect(w, r, target, http.StatusFound)
	})
}

// currentURL returns the request URL without switch parameters.
func currentURL(r *http.Request) *url.URL {
	u := *r.URL
	q := u.Query()
	for _, p := range switchParams {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
	return &u
}

func adminURL(path string) *url.URL {
	return &url.URL{Path: path}
}
