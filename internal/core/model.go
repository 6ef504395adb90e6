package core

import "time"

// Capability names a permission checked before privileged operations.
type Capability string

const (
	CapRead          Capability = "read"
	CapManageOptions Capability = "manage_options"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Actor is the signed-in user a request acts on behalf of.
// The zero Actor is anonymous and holds no capabilities.
type Actor struct {
	UserID   int
	Username string
	Role     string
}

// Can reports whether the actor holds capability c.
func (a Actor) Can(c Capability) bool {
	if a.UserID == 0 {
		return false
	}
	switch c {
	case CapRead:
		return true
	case CapManageOptions:
		return a.Role == RoleAdmin
	default:
		return false
	}
}

// Module is one ERP mode the console can be switched into.
type Module struct {
	Key      string `yaml:"key" json:"key" jsonschema:"required,pattern=^[a-z0-9_-]+$,description=Short identifier used in switch links"`
	Title    string `yaml:"title" json:"title" jsonschema:"required,description=Display title"`
	Redirect string `yaml:"redirect,omitempty" json:"redirect,omitempty" jsonschema:"description=Landing URL after switching into this module"`
	Default  bool   `yaml:"default,omitempty" json:"default,omitempty" jsonschema:"description=Fallback module when an actor has none selected"`
}

// Addon is an entry of the add-ons catalogue page.
type Addon struct {
	Name        string `yaml:"name" json:"name" jsonschema:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	URL         string `yaml:"url,omitempty" json:"url,omitempty" jsonschema:"format=uri"`
}

type Company struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	BaseCurrency string    `json:"base_currency"`
	CreatedAt    time.Time `json:"created_at"`
}

// CompanyInput carries the editable company fields.
type CompanyInput struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	BaseCurrency string
}

// AuditEntry is one recorded administrative action.
type AuditEntry struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	AuditModuleSwitched  = "module_switched"
	AuditCompanySwitched = "company_switched"
	AuditMenusHidden     = "menus_hidden"
	AuditCompanyCreated  = "company_created"
	AuditCompanyUpdated  = "company_updated"
)
