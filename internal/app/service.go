package app

import (
	"context"
	"net/url"

	"erp-admin/internal/core"
)

// ApplicationService is the single interface all UI adapters (CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no markup, and no display logic of any kind.
type ApplicationService interface {
	// AuthenticateUser verifies credentials and returns a session on success.
	// Unknown users and wrong passwords both return ErrInvalidCredentials.
	AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error)

	// GetUser returns user profile by ID.
	GetUser(ctx context.Context, userID int) (*UserResult, error)

	// CreateUser provisions an account with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResult, error)

	// HandleSwitch runs the module switch and then the company switch for an
	// inbound admin request. The first applied switch wins and its Outcome
	// redirects; when neither applies the request continues.
	HandleSwitch(ctx context.Context, actor core.Actor, req core.SwitchRequest) (*SwitchResult, error)

	// AdminChrome builds the filtered main menu and admin bar for one page render.
	// current is the URL the switcher links are built from.
	AdminChrome(ctx context.Context, actor core.Actor, current *url.URL) (*AdminChromeResult, error)

	// SaveHiddenMenus handles a tools form submission.
	SaveHiddenMenus(ctx context.Context, actor core.Actor, form url.Values) (*core.SaveResult, error)

	// HiddenMenus returns the stored hide lists with the entries the tools form offers.
	HiddenMenus(ctx context.Context) (*HiddenMenusResult, error)

	// SetHiddenMenus overwrites the hide lists without a form token. Operator path.
	SetHiddenMenus(ctx context.Context, req SetHiddenMenusRequest) (*HiddenMenusResult, error)

	// ListCompanies returns all companies ordered by name.
	ListCompanies(ctx context.Context) (*CompanyListResult, error)

	// GetCompany returns one company. Missing ids wrap core.ErrNotFound.
	GetCompany(ctx context.Context, id int) (*core.Company, error)

	// SaveCompany creates (ID 0) or updates a company after checking capability and token.
	SaveCompany(ctx context.Context, actor core.Actor, req SaveCompanyRequest) (*core.Company, error)

	// RecentAudit returns the newest audit entries.
	RecentAudit(ctx context.Context, limit int) (*AuditLogResult, error)

	// ListModules returns the module registry and add-on catalogue.
	ListModules(ctx context.Context) (*ModuleListResult, error)

	// Preferences returns a user's active module and company.
	Preferences(ctx context.Context, userID int) (*PreferencesResult, error)

	// MintNonce returns an anti-forgery token for actor and action.
	MintNonce(actor core.Actor, action string) (string, error)
}
