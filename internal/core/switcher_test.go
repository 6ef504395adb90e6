package core_test

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"erp-admin/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin  = core.Actor{UserID: 1, Username: "alice", Role: core.RoleAdmin}
	member = core.Actor{UserID: 2, Username: "bob", Role: core.RoleMember}
)

type switchFixture struct {
	store     *countingStore
	modules   *core.ModuleRegistry
	companies *fakeCompanies
	nonces    *core.NonceManager
	audit     *fakeAudit
	prefs     *core.Preferences
	switcher  *core.Switcher
}

func newSwitchFixture(t *testing.T, gateCompany bool) *switchFixture {
	t.Helper()
	modules, err := core.NewRegistry([]core.Module{
		{Key: "hrm", Title: "HR Management"},
		{Key: "crm", Title: "CRM", Redirect: "/admin/crm-dashboard"},
		{Key: "accounting", Title: "Accounting"},
	}, nil)
	require.NoError(t, err)

	f := &switchFixture{
		store:     &countingStore{MemoryStore: core.NewMemoryStore()},
		modules:   modules,
		companies: newFakeCompanies("Acme", "Globex", "Initech"),
		nonces:    core.NewNonceManager("test-secret", time.Hour),
		audit:     &fakeAudit{},
	}
	f.prefs = core.NewPreferences(f.store, modules, f.companies)
	f.switcher = core.NewSwitcher(core.SwitcherDeps{
		Preferences:                     f.prefs,
		Modules:                         modules,
		Companies:                       f.companies,
		Nonces:                          f.nonces,
		Audit:                           f.audit,
		AdminHomeURL:                    "/admin/",
		CompanySwitchRequiresCapability: gateCompany,
	})
	return f
}

func (f *switchFixture) token(t *testing.T, actor core.Actor, action string) string {
	t.Helper()
	tok, err := f.nonces.Mint(actor.UserID, action)
	require.NoError(t, err)
	return tok
}

func modeRequest(token, key string) core.SwitchRequest {
	q := url.Values{}
	if token != "" {
		q.Set(core.NonceModeSwitch, token)
	}
	if key != "" {
		q.Set(core.ParamModule, key)
	}
	return core.SwitchRequest{Query: q}
}

func companyRequest(token, id string) core.SwitchRequest {
	q := url.Values{}
	if token != "" {
		q.Set(core.NonceCompanySwitch, token)
	}
	if id != "" {
		q.Set(core.ParamCompany, id)
	}
	return core.SwitchRequest{Query: q}
}

func TestSwitchModule_Applied(t *testing.T) {
	f := newSwitchFixture(t, true)
	ctx := context.Background()

	res, err := f.switcher.SwitchModule(ctx, admin, modeRequest(f.token(t, admin, core.NonceModeSwitch), "accounting"))
	require.NoError(t, err)

	assert.True(t, res.Applied)
	assert.Equal(t, "accounting", res.Value)
	target, ok := res.Outcome.Redirect()
	assert.True(t, ok)
	assert.Equal(t, "/admin/", target)

	m, err := f.prefs.CurrentModule(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "accounting", m.Key)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, core.AuditModuleSwitched, f.audit.entries[0].Action)
}

func TestSwitchModule_Denied(t *testing.T) {
	f := newSwitchFixture(t, true)
	other := core.NewNonceManager("other-secret", time.Hour)
	foreign, err := other.Mint(admin.UserID, core.NonceModeSwitch)
	require.NoError(t, err)

	tests := []struct {
		name   string
		actor  core.Actor
		req    func() core.SwitchRequest
		reason core.DenyReason
	}{
		{
			name:   "no capability",
			actor:  member,
			req:    func() core.SwitchRequest { return modeRequest(f.token(t, member, core.NonceModeSwitch), "crm") },
			reason: core.DenyCapability,
		},
		{
			name:   "anonymous",
			actor:  core.Actor{},
			req:    func() core.SwitchRequest { return modeRequest("x", "crm") },
			reason: core.DenyCapability,
		},
		{
			name:   "no token",
			actor:  admin,
			req:    func() core.SwitchRequest { return modeRequest("", "crm") },
			reason: core.DenyNoToken,
		},
		{
			name:   "garbage token",
			actor:  admin,
			req:    func() core.SwitchRequest { return modeRequest("not-a-token", "crm") },
			reason: core.DenyInvalidToken,
		},
		{
			name:   "token for another action",
			actor:  admin,
			req:    func() core.SwitchRequest { return modeRequest(f.token(t, admin, core.NonceCompanySwitch), "crm") },
			reason: core.DenyInvalidToken,
		},
		{
			name:   "token for another user",
			actor:  admin,
			req:    func() core.SwitchRequest { return modeRequest(f.token(t, member, core.NonceModeSwitch), "crm") },
			reason: core.DenyInvalidToken,
		},
		{
			name:   "token signed with another secret",
			actor:  admin,
			req:    func() core.SwitchRequest { return modeRequest(foreign, "crm") },
			reason: core.DenyInvalidToken,
		},
		{
			name:   "unknown module",
			actor:  admin,
			req:    func() core.SwitchRequest { return modeRequest(f.token(t, admin, core.NonceModeSwitch), "payroll") },
			reason: core.DenyUnknownModule,
		},
		{
			name:   "missing module",
			actor:  admin,
			req:    func() core.SwitchRequest { return modeRequest(f.token(t, admin, core.NonceModeSwitch), "") },
			reason: core.DenyUnknownModule,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.switcher.SwitchModule(context.Background(), tt.actor, tt.req())
			require.NoError(t, err)
			assert.False(t, res.Applied)
			assert.Equal(t, tt.reason, res.Reason)
			_, redirect := res.Outcome.Redirect()
			assert.False(t, redirect, "denied switch must not redirect")
		})
	}

	assert.Zero(t, f.store.metaWrites, "denied switches must not write preferences")
	assert.Empty(t, f.audit.entries)
}

func TestSwitchModule_RedirectHooks(t *testing.T) {
	f := newSwitchFixture(t, true)
	f.switcher.OnModuleSwitch(f.modules.ModuleRedirectHook())
	f.switcher.OnModuleSwitch(func(target, key string) string {
		if key == "hrm" {
			return target + "?welcome=hrm"
		}
		return target
	})
	ctx := context.Background()

	res, err := f.switcher.SwitchModule(ctx, admin, modeRequest(f.token(t, admin, core.NonceModeSwitch), "crm"))
	require.NoError(t, err)
	target, _ := res.Outcome.Redirect()
	assert.Equal(t, "/admin/crm-dashboard", target)

	res, err = f.switcher.SwitchModule(ctx, admin, modeRequest(f.token(t, admin, core.NonceModeSwitch), "hrm"))
	require.NoError(t, err)
	target, _ = res.Outcome.Redirect()
	assert.Equal(t, "/admin/?welcome=hrm", target)
}

func TestSwitch_EmptyHookTargetFallsBackToHome(t *testing.T) {
	f := newSwitchFixture(t, true)
	blank := func(string, string) string { return "" }
	f.switcher.OnModuleSwitch(blank)
	f.switcher.OnCompanySwitch(blank)
	ctx := context.Background()

	res, err := f.switcher.SwitchModule(ctx, admin, modeRequest(f.token(t, admin, core.NonceModeSwitch), "crm"))
	require.NoError(t, err)
	require.True(t, res.Applied)
	target, ok := res.Outcome.Redirect()
	assert.True(t, ok)
	assert.Equal(t, "/admin/", target)

	res, err = f.switcher.SwitchCompany(ctx, admin, companyRequest(f.token(t, admin, core.NonceCompanySwitch), "2"))
	require.NoError(t, err)
	require.True(t, res.Applied)
	target, ok = res.Outcome.Redirect()
	assert.True(t, ok)
	assert.Equal(t, "/admin/", target)
}

func TestSwitchModule_TargetFromForm(t *testing.T) {
	f := newSwitchFixture(t, true)
	req := core.SwitchRequest{
		Query: url.Values{core.NonceModeSwitch: {f.token(t, admin, core.NonceModeSwitch)}},
		Form:  url.Values{core.ParamModule: {"crm"}},
	}

	res, err := f.switcher.SwitchModule(context.Background(), admin, req)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "crm", res.Value)
}

func TestSwitchModule_TokenOnlyFromQuery(t *testing.T) {
	f := newSwitchFixture(t, true)
	req := core.SwitchRequest{
		Query: url.Values{core.ParamModule: {"crm"}},
		Form: url.Values{
			core.ParamModule:     {"crm"},
			core.NonceModeSwitch: {f.token(t, admin, core.NonceModeSwitch)},
		},
	}

	res, err := f.switcher.SwitchModule(context.Background(), admin, req)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, core.DenyNoToken, res.Reason)
}

func TestSwitchCompany_IntegerComparison(t *testing.T) {
	f := newSwitchFixture(t, true)
	ctx := context.Background()

	for _, raw := range []string{"3", " 3 ", "03"} {
		res, err := f.switcher.SwitchCompany(ctx, admin, companyRequest(f.token(t, admin, core.NonceCompanySwitch), raw))
		require.NoError(t, err)
		assert.True(t, res.Applied, "id %q", raw)
		assert.Equal(t, "3", res.Value)
	}

	c, err := f.prefs.CurrentCompany(ctx, admin)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Initech", c.Name)
}

func TestSwitchCompany_Denied(t *testing.T) {
	f := newSwitchFixture(t, true)
	ctx := context.Background()

	tests := []struct {
		name   string
		actor  core.Actor
		req    core.SwitchRequest
		reason core.DenyReason
	}{
		{"no capability when gated", member, companyRequest(f.token(t, member, core.NonceCompanySwitch), "1"), core.DenyCapability},
		{"no token", admin, companyRequest("", "1"), core.DenyNoToken},
		{"wrong action", admin, companyRequest(f.token(t, admin, core.NonceModeSwitch), "1"), core.DenyInvalidToken},
		{"unknown id", admin, companyRequest(f.token(t, admin, core.NonceCompanySwitch), "99"), core.DenyUnknownCompany},
		{"non-numeric id", admin, companyRequest(f.token(t, admin, core.NonceCompanySwitch), "3abc"), core.DenyUnknownCompany},
		{"missing id", admin, companyRequest(f.token(t, admin, core.NonceCompanySwitch), ""), core.DenyUnknownCompany},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.switcher.SwitchCompany(ctx, tt.actor, tt.req)
			require.NoError(t, err)
			assert.False(t, res.Applied)
			assert.Equal(t, tt.reason, res.Reason)
			_, redirect := res.Outcome.Redirect()
			assert.False(t, redirect)
		})
	}
	assert.Zero(t, f.store.metaWrites)
}

func TestSwitchCompany_TokenOnlyWhenUngated(t *testing.T) {
	f := newSwitchFixture(t, false)
	ctx := context.Background()
	f.switcher.OnCompanySwitch(func(target, id string) string { return "/admin/erp-company?id=" + id })

	res, err := f.switcher.SwitchCompany(ctx, member, companyRequest(f.token(t, member, core.NonceCompanySwitch), "2"))
	require.NoError(t, err)
	assert.True(t, res.Applied)
	target, _ := res.Outcome.Redirect()
	assert.Equal(t, "/admin/erp-company?id=2", target)
}

func TestSwitchCompany_ListFailureIsError(t *testing.T) {
	f := newSwitchFixture(t, true)
	f.companies.listErr = assert.AnError

	_, err := f.switcher.SwitchCompany(context.Background(), admin, companyRequest(f.token(t, admin, core.NonceCompanySwitch), "1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPreferences_Fallbacks(t *testing.T) {
	f := newSwitchFixture(t, true)
	ctx := context.Background()

	m, err := f.prefs.CurrentModule(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "hrm", m.Key, "unset preference falls back to the default module")

	require.NoError(t, f.store.SetUserMeta(ctx, admin.UserID, core.MetaActiveModule, "retired"))
	m, err = f.prefs.CurrentModule(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "hrm", m.Key, "stale preference falls back to the default module")

	c, err := f.prefs.CurrentCompany(ctx, admin)
	require.NoError(t, err)
	assert.Nil(t, c)

	require.NoError(t, f.store.SetUserMeta(ctx, admin.UserID, core.MetaActiveCompany, "42"))
	c, err = f.prefs.CurrentCompany(ctx, admin)
	require.NoError(t, err)
	assert.Nil(t, c, "deleted company reads as none")
}

func TestRenderSwitchMenu(t *testing.T) {
	f := newSwitchFixture(t, true)
	ctx := context.Background()
	current, _ := url.Parse("/admin/erp-tools?tab=menus")

	bar := core.NewAdminBar()
	require.NoError(t, f.switcher.RenderSwitchMenu(ctx, admin, current, bar))

	parent, ok := bar.Get("erp-mode-switch")
	require.True(t, ok)
	assert.Equal(t, "ERP Mode: HR Management", parent.Title)
	assert.Equal(t, "Switch ERP Mode", parent.Meta.Title)

	modes := bar.Children("erp-mode-switch")
	require.Len(t, modes, 3)
	assert.Equal(t, "erp-mode-crm", modes[1].ID)

	link, err := url.Parse(modes[1].Href)
	require.NoError(t, err)
	assert.Equal(t, "/admin/erp-tools", link.Path)
	assert.Equal(t, "menus", link.Query().Get("tab"))
	assert.Equal(t, "crm", link.Query().Get(core.ParamModule))

	// The minted link round-trips through SwitchModule.
	res, err := f.switcher.SwitchModule(ctx, admin, core.SwitchRequest{Query: link.Query()})
	require.NoError(t, err)
	assert.True(t, res.Applied)

	comp, ok := bar.Get("erp-comp-switch")
	require.True(t, ok)
	assert.Equal(t, "Company: - None -", comp.Title)
	companies := bar.Children("erp-comp-switch")
	require.Len(t, companies, 3)
	assert.True(t, strings.Contains(companies[0].Href, core.NonceCompanySwitch+"="))
}

func TestRenderSwitchMenu_ShowsActiveSelection(t *testing.T) {
	f := newSwitchFixture(t, true)
	ctx := context.Background()
	require.NoError(t, f.store.SetUserMeta(ctx, admin.UserID, core.MetaActiveModule, "crm"))
	require.NoError(t, f.store.SetUserMeta(ctx, admin.UserID, core.MetaActiveCompany, "2"))

	bar := core.NewAdminBar()
	require.NoError(t, f.switcher.RenderSwitchMenu(ctx, admin, nil, bar))

	mode, _ := bar.Get("erp-mode-switch")
	assert.Equal(t, "ERP Mode: CRM", mode.Title)
	comp, _ := bar.Get("erp-comp-switch")
	assert.Equal(t, "Company: Globex", comp.Title)
}

func TestRenderSwitchMenu_NoCapability(t *testing.T) {
	f := newSwitchFixture(t, true)
	bar := core.NewAdminBar()

	require.NoError(t, f.switcher.RenderSwitchMenu(context.Background(), member, nil, bar))
	assert.Empty(t, bar.Roots())
}
