package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"erp-admin/internal/core"
	"erp-admin/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// Deps wires an appService.
type Deps struct {
	Users       core.UserService
	Companies   core.CompanyService
	Modules     *core.ModuleRegistry
	Nonces      *core.NonceManager
	Audit       core.AuditLog
	Preferences *core.Preferences
	Switcher    *core.Switcher
	Visibility  *core.Visibility

	// MenuPosition places the ERP entry in the main menu.
	MenuPosition int
}

type appService struct {
	deps Deps
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(deps Deps) ApplicationService {
	if deps.MenuPosition <= 0 {
		deps.MenuPosition = core.DefaultMenuPosition
	}
	return &appService{deps: deps}
}

// AuthenticateUser verifies credentials against the stored bcrypt hash.
func (s *appService) AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error) {
	u, err := s.deps.Users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &UserSession{UserID: u.ID, Username: u.Username, Role: u.Role}, nil
}

// GetUser returns user profile by ID.
func (s *appService) GetUser(ctx context.Context, userID int) (*UserResult, error) {
	u, err := s.deps.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserResult{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}, nil
}

// CreateUser provisions an account with a bcrypt-hashed password.
func (s *appService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	role := req.Role
	if role == "" {
		role = core.RoleMember
	}
	if role != core.RoleAdmin && role != core.RoleMember {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.deps.Users.Create(ctx, username, strings.TrimSpace(req.Email), string(hash), role)
	if err != nil {
		return nil, err
	}
	return &UserResult{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}, nil
}

// HandleSwitch runs the module switch, then the company switch. A switch is
// attempted only when its token parameter is present.
func (s *appService) HandleSwitch(ctx context.Context, actor core.Actor, req core.SwitchRequest) (*SwitchResult, error) {
	out := &SwitchResult{SwitchResult: core.SwitchResult{Outcome: core.Continue()}}

	if req.Query.Has(core.NonceModeSwitch) {
		res, err := s.deps.Switcher.SwitchModule(ctx, actor, req)
		if err != nil {
			return nil, err
		}
		out = &SwitchResult{Kind: "module", SwitchResult: res}
		if res.Applied {
			return out, nil
		}
	}

	if req.Query.Has(core.NonceCompanySwitch) {
		res, err := s.deps.Switcher.SwitchCompany(ctx, actor, req)
		if err != nil {
			return nil, err
		}
		if res.Applied || out.Kind == "" {
			out = &SwitchResult{Kind: "company", SwitchResult: res}
		}
	}
	return out, nil
}

// AdminChrome builds the navigation: built-in entries, the ERP pages, the
// switcher drop-downs, then the hide-list filters.
func (s *appService) AdminChrome(ctx context.Context, actor core.Actor, current *url.URL) (*AdminChromeResult, error) {
	menu := core.DefaultMainMenu()
	core.RegisterAdminMenu(menu, s.deps.MenuPosition)
	if err := s.deps.Visibility.ApplyMenuFilters(ctx, menu); err != nil {
		return nil, fmt.Errorf("admin chrome: %w", err)
	}

	bar := core.DefaultAdminBar(actor)
	if err := s.deps.Switcher.RenderSwitchMenu(ctx, actor, current, bar); err != nil {
		return nil, fmt.Errorf("admin chrome: %w", err)
	}
	if err := s.deps.Visibility.ApplyToolbarFilters(ctx, bar); err != nil {
		return nil, fmt.Errorf("admin chrome: %w", err)
	}

	module, err := s.deps.Preferences.CurrentModule(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("admin chrome: %w", err)
	}
	company, err := s.deps.Preferences.CurrentCompany(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("admin chrome: %w", err)
	}

	out := &AdminChromeResult{
		Menu:           menu.Visible(actor),
		CurrentModule:  module,
		CurrentCompany: company,
	}
	for _, root := range bar.Roots() {
		out.Bar = append(out.Bar, AdminBarGroup{Node: root, Children: bar.Children(root.ID)})
	}
	return out, nil
}

// SaveHiddenMenus handles a tools form submission.
func (s *appService) SaveHiddenMenus(ctx context.Context, actor core.Actor, form url.Values) (*core.SaveResult, error) {
	res, err := s.deps.Visibility.SaveHiddenMenus(ctx, actor, form)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// HiddenMenus returns the stored hide lists.
func (s *appService) HiddenMenus(ctx context.Context) (*HiddenMenusResult, error) {
	h, err := s.deps.Visibility.Hidden(ctx)
	if err != nil {
		return nil, err
	}
	return &HiddenMenusResult{
		Main:            h.Main,
		Toolbar:         h.Toolbar,
		HideableMain:    core.HideableMainMenu(),
		HideableToolbar: core.HideableToolbar(),
	}, nil
}

// SetHiddenMenus overwrites the hide lists without a form token.
func (s *appService) SetHiddenMenus(ctx context.Context, req SetHiddenMenusRequest) (*HiddenMenusResult, error) {
	if err := s.deps.Visibility.SetHidden(ctx, req.Main, req.Toolbar); err != nil {
		return nil, err
	}
	return s.HiddenMenus(ctx)
}

// ListCompanies returns all companies.
func (s *appService) ListCompanies(ctx context.Context) (*CompanyListResult, error) {
	companies, err := s.deps.Companies.List(ctx)
	if err != nil {
		return nil, err
	}
	return &CompanyListResult{Companies: companies}, nil
}

// GetCompany returns one company.
func (s *appService) GetCompany(ctx context.Context, id int) (*core.Company, error) {
	return s.deps.Companies.GetByID(ctx, id)
}

// SaveCompany creates or updates a company.
func (s *appService) SaveCompany(ctx context.Context, actor core.Actor, req SaveCompanyRequest) (*core.Company, error) {
	if !actor.Can(core.CapManageOptions) {
		return nil, ErrForbidden
	}
	if err := s.deps.Nonces.Verify(req.Nonce, actor.UserID, core.NonceCompanyEdit); err != nil {
		return nil, err
	}
	in := req.Input
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		c      *core.Company
		err    error
		action = core.AuditCompanyCreated
	)
	if req.ID == 0 {
		c, err = s.deps.Companies.Create(ctx, in)
	} else {
		c, err = s.deps.Companies.Update(ctx, req.ID, in)
		action = core.AuditCompanyUpdated
	}
	if err != nil {
		return nil, err
	}

	if s.deps.Audit != nil {
		if err := s.deps.Audit.Record(ctx, actor, action, fmt.Sprintf("%d %s", c.ID, c.Name)); err != nil {
			logger.From(ctx).Warn("audit record failed",
				logger.Component("app"), logger.Op(action), logger.Err(err))
		}
	}
	return c, nil
}

// RecentAudit returns the newest audit entries.
func (s *appService) RecentAudit(ctx context.Context, limit int) (*AuditLogResult, error) {
	if limit <= 0 {
		limit = 50
	}
	if s.deps.Audit == nil {
		return &AuditLogResult{}, nil
	}
	entries, err := s.deps.Audit.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &AuditLogResult{Entries: entries}, nil
}

// ListModules returns the module registry and add-on catalogue.
func (s *appService) ListModules(_ context.Context) (*ModuleListResult, error) {
	return &ModuleListResult{
		Modules:      s.deps.Modules.Modules(),
		Default:      s.deps.Modules.Default(),
		Addons:       s.deps.Modules.Addons(),
		MenuPosition: s.deps.MenuPosition,
	}, nil
}

// Preferences returns a user's active module and company.
func (s *appService) Preferences(ctx context.Context, userID int) (*PreferencesResult, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	actor := u.Actor()
	module, err := s.deps.Preferences.CurrentModule(ctx, actor)
	if err != nil {
		return nil, err
	}
	company, err := s.deps.Preferences.CurrentCompany(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &PreferencesResult{UserID: u.ID, Module: module, Company: company}, nil
}

// MintNonce returns an anti-forgery token for actor and action.
func (s *appService) MintNonce(actor core.Actor, action string) (string, error) {
	return s.deps.Nonces.Mint(actor.UserID, action)
}
