package core

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"erp-admin/internal/logger"
)

// Request parameters carrying the switch target.
const (
	ParamModule  = "erp-mode"
	ParamCompany = "erp-comp"
)

// RedirectHook may replace the post-switch redirect target. value is the new
// module key or company id. Hooks run in registration order.
type RedirectHook func(target, value string) string

// DenyReason explains why a switch request changed nothing.
type DenyReason string

const (
	DenyNoToken        DenyReason = "no_token"
	DenyCapability     DenyReason = "missing_capability"
	DenyInvalidToken   DenyReason = "invalid_token"
	DenyUnknownModule  DenyReason = "unknown_module"
	DenyUnknownCompany DenyReason = "unknown_company"
)

// Outcome tells the HTTP layer whether to stop with a redirect or continue
// normal request handling.
type Outcome struct {
	redirect string
}

// Continue lets the request fall through to its handler.
func Continue() Outcome { return Outcome{} }

// RedirectTo ends request handling with a redirect to target.
func RedirectTo(target string) Outcome { return Outcome{redirect: target} }

// Redirect returns the target and true when the outcome is a redirect.
func (o Outcome) Redirect() (string, bool) {
	return o.redirect, o.redirect != ""
}

// SwitchResult is either Applied (Value persisted, Outcome redirects) or
// Denied (Reason set, Outcome continues).
type SwitchResult struct {
	Applied bool
	Reason  DenyReason
	Value   string
	Outcome Outcome
}

func denied(reason DenyReason) SwitchResult {
	return SwitchResult{Reason: reason, Outcome: Continue()}
}

func applied(value, target string) SwitchResult {
	return SwitchResult{Applied: true, Value: value, Outcome: RedirectTo(target)}
}

// SwitchRequest carries the inbound parameters. Tokens are read from Query only;
// the target value is read from Form (query plus body) when set, else from Query.
type SwitchRequest struct {
	Query url.Values
	Form  url.Values
}

func (r SwitchRequest) token(name string) (string, bool) {
	if r.Query == nil {
		return "", false
	}
	v, ok := r.Query[name]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func (r SwitchRequest) value(name string) (string, bool) {
	src := r.Form
	if src == nil {
		src = r.Query
	}
	v, ok := src[name]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// SwitcherDeps wires a Switcher.
type SwitcherDeps struct {
	Preferences *Preferences
	Modules     *ModuleRegistry
	Companies   CompanyService
	Nonces      *NonceManager
	Audit       AuditLog // optional

	// AdminHomeURL is the default redirect target after a switch.
	AdminHomeURL string

	// CompanySwitchRequiresCapability gates company switching on manage_options
	// like module switching. When false only the token is checked.
	CompanySwitchRequiresCapability bool
}

// Switcher validates and applies module and company switches.
type Switcher struct {
	deps         SwitcherDeps
	moduleHooks  []RedirectHook
	companyHooks []RedirectHook
}

func NewSwitcher(deps SwitcherDeps) *Switcher {
	if deps.AdminHomeURL == "" {
		deps.AdminHomeURL = "/admin/"
	}
	return &Switcher{deps: deps}
}

// OnModuleSwitch registers a hook for the redirect after a module switch.
func (s *Switcher) OnModuleSwitch(h RedirectHook) {
	s.moduleHooks = append(s.moduleHooks, h)
}

// OnCompanySwitch registers a hook for the redirect after a company switch.
func (s *Switcher) OnCompanySwitch(h RedirectHook) {
	s.companyHooks = append(s.companyHooks, h)
}

// SwitchModule applies an erp-mode switch. Validation failures are reported as
// a denied result, never as an error; errors are storage failures only.
func (s *Switcher) SwitchModule(ctx context.Context, actor Actor, req SwitchRequest) (SwitchResult, error) {
	if !actor.Can(CapManageOptions) {
		return denied(DenyCapability), nil
	}
	token, ok := req.token(NonceModeSwitch)
	if !ok {
		return denied(DenyNoToken), nil
	}
	if err := s.deps.Nonces.Verify(token, actor.UserID, NonceModeSwitch); err != nil {
		return denied(DenyInvalidToken), nil
	}
	key, ok := req.value(ParamModule)
	if !ok || !s.deps.Modules.Has(key) {
		return denied(DenyUnknownModule), nil
	}

	if err := s.deps.Preferences.setActiveModule(ctx, actor, key); err != nil {
		return SwitchResult{}, fmt.Errorf("switch module: %w", err)
	}
	s.record(ctx, actor, AuditModuleSwitched, key)

	return applied(key, runHooks(s.moduleHooks, s.deps.AdminHomeURL, key)), nil
}

// SwitchCompany applies an erp-comp switch. The requested id is compared as an
// integer against the current company ids, so "3" matches company 3.
func (s *Switcher) SwitchCompany(ctx context.Context, actor Actor, req SwitchRequest) (SwitchResult, error) {
	if s.deps.CompanySwitchRequiresCapability && !actor.Can(CapManageOptions) {
		return denied(DenyCapability), nil
	}
	token, ok := req.token(NonceCompanySwitch)
	if !ok {
		return denied(DenyNoToken), nil
	}
	if err := s.deps.Nonces.Verify(token, actor.UserID, NonceCompanySwitch); err != nil {
		return denied(DenyInvalidToken), nil
	}
	raw, ok := req.value(ParamCompany)
	if !ok {
		return denied(DenyUnknownCompany), nil
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return denied(DenyUnknownCompany), nil
	}

	companies, err := s.deps.Companies.List(ctx)
	if err != nil {
		return SwitchResult{}, fmt.Errorf("switch company: %w", err)
	}
	if !containsCompany(companies, id) {
		return denied(DenyUnknownCompany), nil
	}

	if err := s.deps.Preferences.setActiveCompany(ctx, actor, id); err != nil {
		return SwitchResult{}, fmt.Errorf("switch company: %w", err)
	}
	value := strconv.Itoa(id)
	s.record(ctx, actor, AuditCompanySwitched, value)

	return applied(value, runHooks(s.companyHooks, s.deps.AdminHomeURL, value)), nil
}

// RenderSwitchMenu adds the module and company drop-downs to bar. Each entry
// links to current with the switch parameter and a fresh token. Actors without
// manage_options get nothing.
func (s *Switcher) RenderSwitchMenu(ctx context.Context, actor Actor, current *url.URL, bar *AdminBar) error {
	if !actor.Can(CapManageOptions) {
		return nil
	}

	mode, err := s.deps.Preferences.CurrentModule(ctx, actor)
	if err != nil {
		return fmt.Errorf("render switch menu: %w", err)
	}
	modeToken, err := s.deps.Nonces.Mint(actor.UserID, NonceModeSwitch)
	if err != nil {
		return err
	}

	bar.Add(AdminBarNode{
		ID:       "erp-mode-switch",
		Title:    "ERP Mode: " + mode.Title,
		Href:     "#",
		Icon:     "dashicons-randomize",
		Position: 0,
		Meta:     AdminBarMeta{Title: "Switch ERP Mode"},
	})
	for _, m := range s.deps.Modules.Modules() {
		bar.Add(AdminBarNode{
			ID:     "erp-mode-" + m.Key,
			Parent: "erp-mode-switch",
			Title:  m.Title,
			Href:   switchLink(current, ParamModule, m.Key, NonceModeSwitch, modeToken),
		})
	}

	companies, err := s.deps.Companies.List(ctx)
	if err != nil {
		return fmt.Errorf("render switch menu: %w", err)
	}
	active, err := s.deps.Preferences.CurrentCompany(ctx, actor)
	if err != nil {
		return fmt.Errorf("render switch menu: %w", err)
	}
	label := "- None -"
	if active != nil {
		label = active.Name
	}
	compToken, err := s.deps.Nonces.Mint(actor.UserID, NonceCompanySwitch)
	if err != nil {
		return err
	}

	bar.Add(AdminBarNode{
		ID:       "erp-comp-switch",
		Title:    "Company: " + label,
		Href:     "#",
		Icon:     "dashicons-admin-home",
		Position: 0,
		Meta:     AdminBarMeta{Title: "Switch Company"},
	})
	for _, c := range companies {
		id := strconv.Itoa(c.ID)
		bar.Add(AdminBarNode{
			ID:     "erp-comp-" + id,
			Parent: "erp-comp-switch",
			Title:  c.Name,
			Href:   switchLink(current, ParamCompany, id, NonceCompanySwitch, compToken),
		})
	}
	return nil
}

func (s *Switcher) record(ctx context.Context, actor Actor, action, detail string) {
	if s.deps.Audit == nil {
		return
	}
	if err := s.deps.Audit.Record(ctx, actor, action, detail); err != nil {
		logger.From(ctx).Warn("audit record failed",
			logger.Component("core.switcher"), logger.Op(action), logger.Err(err))
	}
}

// runHooks passes target through hooks. An empty result falls back to the
// admin home so an applied switch always redirects.
func runHooks(hooks []RedirectHook, target, value string) string {
	home := target
	for _, h := range hooks {
		target = h(target, value)
	}
	if target == "" {
		return home
	}
	return target
}

func containsCompany(companies []Company, id int) bool {
	for _, c := range companies {
		if c.ID == id {
			return true
		}
	}
	return false
}

func switchLink(current *url.URL, param, value, nonceParam, token string) string {
	u := url.URL{Path: "/admin/"}
	if current != nil {
		u = *current
	}
	q := u.Query()
	q.Set(param, value)
	q.Set(nonceParam, token)
	u.RawQuery = q.Encode()
	return u.RequestURI()
}
